package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursefeedback/internal/app/models/dto"
	"github.com/yigit/coursefeedback/internal/pkg/apperrors"
	"github.com/yigit/coursefeedback/internal/pkg/logger"
)

// HandleAPIError maps a service error to its status code and error envelope
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorResponse(err)
	if status >= http.StatusInternalServerError {
		lgr := logger.Component("api")
		lgr.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

func errorResponse(err error) (int, *dto.ErrorDetail) {
	message := apperrors.UserMessage(err)

	switch {
	case errors.Is(err, apperrors.ErrStore):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeDatabaseError, message)
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message).
			WithDetails(map[string]string{"entity": apperrors.NotFoundEntity(err)})
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	case errors.Is(err, apperrors.ErrDuplicateKey):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message)
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeAlreadyEnrolled, message)
	case errors.Is(err, apperrors.ErrNotEnrolled):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeNotEnrolled, message)
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
