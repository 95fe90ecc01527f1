package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KRAadithiya/Meeting-Summarizer/services"
)

// ErrorResponse is the standardized error body.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// RespondWithError sends a standardized error response.
func RespondWithError(c *gin.Context, statusCode int, errorCode, message string) {
	c.JSON(statusCode, ErrorResponse{
		ErrorCode: errorCode,
		Message:   message,
	})
}

// RespondWithDomainError maps a pipeline error to the right HTTP status:
// invalid input -> 400, not found -> 404, anything else -> 500.
func RespondWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		RespondWithError(c, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, services.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, "not_found", err.Error())
	default:
		RespondWithError(c, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// RespondWithBadRequest sends a 400 Bad Request error.
func RespondWithBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, "bad_request", message)
}

// RespondWithNotFound sends a 404 Not Found error.
func RespondWithNotFound(c *gin.Context, message string) {
	RespondWithError(c, http.StatusNotFound, "not_found", message)
}

// RespondWithInternalError sends a 500 Internal Server Error.
func RespondWithInternalError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusInternalServerError, "internal_error", message)
}
