// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/phonemarket/backend/internal/i18n"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/pricelist"
	"github.com/phonemarket/backend/internal/services"
	"github.com/phonemarket/backend/internal/utils"
)

// respondError maps service errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	var (
		rangeErr      *services.RangeError
		loadErr       *pricelist.LoadError
		validationErr validator.ValidationErrors
	)

	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, "order")
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.NotFoundResponse(c, "category")
	case errors.Is(err, services.ErrOverrideNotFound):
		utils.NotFoundResponse(c, "markup")
	case errors.Is(err, services.ErrNotificationNotFound):
		utils.NotFoundResponse(c, "notification")
	case errors.Is(err, services.ErrCartEmpty):
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyCartEmpty), nil)
	case errors.Is(err, services.ErrInvalidQuantity):
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyValidationInvalid, "quantity"), nil)
	case errors.Is(err, services.ErrInvalidCommand):
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyAdminUnknownCommand), err.Error())
	case errors.As(err, &rangeErr):
		utils.BadRequestResponse(c,
			utils.Translate(c, i18n.KeyValidationOutOfRange, rangeErr.Field, rangeErr.Min.String(), rangeErr.Max.String()),
			gin.H{"value": rangeErr.Value.String()})
	case errors.Is(err, services.ErrFileTooLarge):
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", utils.Translate(c, i18n.KeyFileTooLarge), err.Error())
	case errors.Is(err, services.ErrFileTypeInvalid):
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyFileInvalidType), err.Error())
	case errors.Is(err, pricelist.ErrInvalidSource):
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyValidationSource), nil)
	case errors.As(err, &loadErr):
		if loadErr.Structural {
			utils.ErrorResponse(c, http.StatusUnprocessableEntity, "BAD_STRUCTURE", utils.Translate(c, i18n.KeyPriceListStructure), loadErr.Error())
			return
		}
		logrus.WithError(err).WithField("source", loadErr.Source).Error("Price list load failed")
		utils.ErrorResponse(c, http.StatusBadRequest, "LOAD_FAILED", utils.Translate(c, i18n.KeyPriceListFailed), loadErr.Error())
	case errors.As(err, &validationErr):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErr))
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON decodes and validates a request body, writing the error response itself.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func sourceParam(c *gin.Context, value string) (models.Source, bool) {
	source, err := models.ParseSource(value)
	if err != nil {
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyValidationSource), nil)
		return "", false
	}
	return source, true
}

func requireUser(c *gin.Context) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
	}
	return userID, ok
}
