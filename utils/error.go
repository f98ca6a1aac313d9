package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interviewsched/models"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = GetLogger()
	}
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Code:    "internal",
					Message: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, code, message string, details map[string]any) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: message, Details: details})
}

// StatusFor maps a domain error code to its HTTP status.
func StatusFor(code models.ErrorCode) int {
	switch code {
	case models.CodeUnauthorized:
		return http.StatusUnauthorized
	case models.CodeForbidden:
		return http.StatusForbidden
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeConflict, models.CodeOverlap, models.CodeTwoDayLimit:
		return http.StatusConflict
	case models.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

// WriteError renders err as {code, message, details}. Errors that are not
// *models.Error are reported as invalid_input and logged.
func WriteError(c *gin.Context, logger *zap.Logger, err error) {
	e, ok := models.AsError(err)
	if !ok {
		logger.Error("Unclassified error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		e = models.NewError(models.CodeInvalidInput, err.Error())
	}
	JSONError(c, StatusFor(e.Code), string(e.Code), e.Message, e.Details)
}
