// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phonemarket/backend/internal/i18n"
)

// APIResponse is the envelope of every JSON body the API writes.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func success(c *gin.Context, status int, data, meta interface{}) {
	c.JSON(status, APIResponse{Success: true, Data: data, Meta: meta})
}

func SuccessResponse(c *gin.Context, data interface{}) {
	success(c, http.StatusOK, data, nil)
}

func SuccessResponseWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	success(c, http.StatusOK, data, meta)
}

func CreatedResponse(c *gin.Context, data interface{}) {
	success(c, http.StatusCreated, data, nil)
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Error: &APIError{Code: code, Message: message, Details: details},
	})
}

// orDefault returns message, or key translated for the caller when message is empty.
func orDefault(c *gin.Context, message, key string, args ...interface{}) string {
	if message != "" {
		return message
	}
	return Translate(c, key, args...)
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST",
		orDefault(c, message, i18n.KeyValidationInvalid, "request"), details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", orDefault(c, message, i18n.KeyAuthRequired), nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", orDefault(c, message, i18n.KeyAdminAccessDenied), nil)
}

// NotFoundResponse looks up "<resource>.not_found" in the caller's language.
func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", Translate(c, resource+".not_found"), nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", orDefault(c, message, i18n.KeyError), nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", Translate(c, i18n.KeyValidationInvalid, "input"), errors)
}

func PaginatedResponse(c *gin.Context, result PaginationResult) {
	SetPaginationHeaders(c, result)
	SuccessResponseWithMeta(c, result.Data, gin.H{
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

// GetLangFromContext returns the language chosen by the i18n middleware, "en" by default.
func GetLangFromContext(c *gin.Context) string {
	if lang := c.GetString("lang"); lang != "" {
		return lang
	}
	return i18n.DefaultLanguage
}

// GetUserIDFromContext returns the caller id set by the identity middleware.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userID, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}

func IsAdminFromContext(c *gin.Context) bool {
	return c.GetBool("is_admin")
}

// Translate renders key in the caller's language.
func Translate(c *gin.Context, key string, args ...interface{}) string {
	return i18n.T(GetLangFromContext(c), key, args...)
}
