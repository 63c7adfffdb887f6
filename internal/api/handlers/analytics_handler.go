package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/domain/analytics"
	"github.com/linskybing/formpilot/pkg/response"
)

type AnalyticsHandler struct {
	svc *application.AnalyticsService
}

func NewAnalyticsHandler(svc *application.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// TrackView godoc
// @Summary Record a form view
// @Tags analytics
// @Accept json
// @Produce json
// @Param body body analytics.TrackViewDTO true "View event"
// @Success 201 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /analytics/track/view [post]
func (h *AnalyticsHandler) TrackView(c *gin.Context) {
	var input analytics.TrackViewDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	if input.UserAgent == "" {
		input.UserAgent = c.Request.UserAgent()
	}

	if _, err := h.svc.TrackView(c.Request.Context(), input, c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.MessageResponse{Message: "View tracked"})
}

// TrackInteraction godoc
// @Summary Record a field interaction
// @Tags analytics
// @Accept json
// @Produce json
// @Param body body analytics.TrackInteractionDTO true "Interaction event"
// @Success 201 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /analytics/track/interaction [post]
func (h *AnalyticsHandler) TrackInteraction(c *gin.Context) {
	var input analytics.TrackInteractionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if _, err := h.svc.TrackInteraction(c.Request.Context(), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.MessageResponse{Message: "Interaction tracked"})
}

// TrackSubmission godoc
// @Summary Record a form submission
// @Tags analytics
// @Accept json
// @Produce json
// @Param body body analytics.TrackSubmissionDTO true "Submission event"
// @Success 201 {object} response.SuccessResponse{data=analytics.Submission}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /analytics/track/submission [post]
func (h *AnalyticsHandler) TrackSubmission(c *gin.Context) {
	var input analytics.TrackSubmissionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	sub, err := h.svc.TrackSubmission(c.Request.Context(), input, c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Code: 0, Message: "Submission tracked", Data: sub})
}

// GetSummary godoc
// @Summary Analytics summary for a form
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Param period query string false "7d, 30d, 90d or all" default(30d)
// @Success 200 {object} response.SuccessResponse{data=analytics.Summary}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /analytics/{formId} [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	formID, ok := formIDParam(c, "formId")
	if !ok {
		return
	}
	period, err := analytics.ParsePeriod(c.Query("period"))
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.svc.OwnerSummary(c.Request.Context(), userID, formID, period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: summary})
}
