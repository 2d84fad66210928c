package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/trainerapi/internal/app/models/dto"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
	"github.com/yigit/trainerapi/internal/pkg/logger"
)

const internalErrorMessage = "Internal server error"

// HandleAPIError writes the JSON error reply for err. Client errors carry
// their message and details; anything else becomes an opaque 500 and the
// cause is only logged.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classify(err)

	if status == http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error().
			Err(err).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classify(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, clientDetail(dto.ErrorCodeResourceNotFound, err, "Resource not found")
	case errors.Is(err, apperrors.ErrReferenceNotFound):
		return http.StatusBadRequest, clientDetail(dto.ErrorCodeResourceInvalid, err, "Referenced resource not found")
	case errors.Is(err, apperrors.ErrAlreadyEnrolled), errors.Is(err, apperrors.ErrConflict):
		return http.StatusBadRequest, clientDetail(dto.ErrorCodeResourceAlreadyExists, err, "Resource already exists")
	case apperrors.Is(err, apperrors.ErrInvalidEnumValue, apperrors.ErrIDMismatch, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, clientDetail(dto.ErrorCodeValidationFailed, err, "Validation failed")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, internalErrorMessage)
	}
}

// clientDetail uses the message of the CustomError in err's chain, so the
// reply never shows the wrapping context added by services.
func clientDetail(code dto.ErrorCode, err error, fallback string) *dto.ErrorDetail {
	message := fallback
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		message = ce.Message
	}

	detail := dto.NewErrorDetail(code, message).WithSeverity(dto.ErrorSeverityWarning)
	if details := apperrors.DetailsOf(err); details != nil {
		detail = detail.WithDetails(details)
	}
	return detail
}

// Recovery turns a panic into the same opaque 500 reply as any other
// unexpected error.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, internalErrorMessage)))
	})
}
