// Package controllers maps HTTP requests onto the course, student and feedback services.
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursefeedback/internal/app/models/dto"
)

// bindJSON decodes the request body into req, answering 400 when binding fails
func bindJSON(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
