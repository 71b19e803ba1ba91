// internal/utils/validator.go
package utils

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phonemarket/backend/internal/models"
)

var validate *validator.Validate

// PriceListExtensions are the upload types the price-list readers accept.
var PriceListExtensions = []string{".xlsx", ".xlsm", ".csv", ".txt"}

func init() {
	validate = validator.New()
	validate.RegisterValidation("source", validateSource)
	validate.RegisterValidation("pricelist_file", validatePriceListFile)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar checks a single value against a tag, e.g. "min=0,max=1000000".
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func validateSource(fl validator.FieldLevel) bool {
	return models.Source(fl.Field().String()).Valid()
}

func validatePriceListFile(fl validator.FieldLevel) bool {
	ext := strings.ToLower(filepath.Ext(fl.Field().String()))
	for _, allowed := range PriceListExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min", "gte":
		return e.Field() + " must be at least " + e.Param()
	case "max", "lte":
		return e.Field() + " must be at most " + e.Param()
	case "source":
		return "Source must be one of standard, simple, preorder"
	case "pricelist_file":
		return "Price list must be an .xlsx or .csv file"
	default:
		return e.Field() + " is invalid"
	}
}
