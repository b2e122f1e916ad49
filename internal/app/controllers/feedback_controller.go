package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursefeedback/internal/app/models/dto"
	"github.com/yigit/coursefeedback/internal/app/services"
	"github.com/yigit/coursefeedback/internal/middleware"
)

// FeedbackController handles course feedback
type FeedbackController struct {
	feedbackService services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService services.FeedbackService) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
	}
}

// SubmitFeedback records feedback from an enrolled student
func (c *FeedbackController) SubmitFeedback(ctx *gin.Context) {
	var req dto.SubmitFeedbackRequest
	if !bindJSON(ctx, &req) {
		return
	}

	entry, err := c.feedbackService.Submit(ctx, req.StudentEmail, req.CourseCode, req.Feedback)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(entry, "Feedback submitted successfully"))
}

// GetCourseFeedback lists the feedback for a course
func (c *FeedbackController) GetCourseFeedback(ctx *gin.Context) {
	entries, err := c.feedbackService.ListByCourse(ctx, ctx.Param("courseCode"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entries, ""))
}

// UpdateFeedback replaces the text of an entry
func (c *FeedbackController) UpdateFeedback(ctx *gin.Context) {
	var req dto.UpdateFeedbackRequest
	if !bindJSON(ctx, &req) {
		return
	}

	entry, err := c.feedbackService.Update(ctx, ctx.Param("id"), req.Feedback)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entry, "Feedback updated successfully"))
}

// DeleteFeedback removes an entry
func (c *FeedbackController) DeleteFeedback(ctx *gin.Context) {
	if err := c.feedbackService.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Feedback deleted successfully"))
}
