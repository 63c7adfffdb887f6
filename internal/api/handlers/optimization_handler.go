package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/domain/abtest"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/pkg/response"
)

type OptimizationHandler struct {
	svc    *application.OptimizationService
	abtest *application.ABTestService
}

func NewOptimizationHandler(svc *application.OptimizationService, ab *application.ABTestService) *OptimizationHandler {
	return &OptimizationHandler{svc: svc, abtest: ab}
}

// GetRecommendations godoc
// @Summary Ask the AI for optimization recommendations
// @Tags optimization
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Success 200 {object} response.SuccessResponse{data=optimization.Result}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /optimization/recommendations/{formId} [get]
func (h *OptimizationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	formID, ok := formIDParam(c, "formId")
	if !ok {
		return
	}

	result, err := h.svc.Recommendations(c.Request.Context(), userID, formID)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: result})
}

// ApplyOptimization godoc
// @Summary Apply recommendations as a new form version
// @Tags optimization
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param body body form.ApplyOptimizationDTO true "Recommendations to apply"
// @Success 201 {object} response.SuccessResponse{data=form.OptimizeResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /optimization/apply/{formId} [post]
func (h *OptimizationHandler) ApplyOptimization(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	formID, ok := formIDParam(c, "formId")
	if !ok {
		return
	}
	var input form.ApplyOptimizationDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.svc.Apply(c.Request.Context(), userID, formID, input.Recommendations)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Code: 0, Message: "Optimization applied", Data: res})
}

// GetHistory godoc
// @Summary Optimizations applied to a form, newest first
// @Tags optimization
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Success 200 {object} response.SuccessResponse{data=[]optimization.Record}
// @Failure 403 {object} response.ErrorResponse
// @Router /optimization/history/{formId} [get]
func (h *OptimizationHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	formID, ok := formIDParam(c, "formId")
	if !ok {
		return
	}

	records, err := h.svc.History(c.Request.Context(), userID, formID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: records})
}

// GetLineage godoc
// @Summary Version chain from a form back to its root
// @Tags optimization
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Success 200 {object} response.SuccessResponse{data=[]form.Form}
// @Failure 403 {object} response.ErrorResponse
// @Router /optimization/lineage/{formId} [get]
func (h *OptimizationHandler) GetLineage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	formID, ok := formIDParam(c, "formId")
	if !ok {
		return
	}

	chain, err := h.svc.Lineage(c.Request.Context(), userID, formID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: chain})
}

// CreateABTest godoc
// @Summary Start an A/B test between a form and a variant
// @Tags optimization
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param body body abtest.CreateABTestDTO true "Variant and traffic split"
// @Success 201 {object} response.SuccessResponse{data=abtest.ABTest}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /optimization/ab-test/{formId} [post]
func (h *OptimizationHandler) CreateABTest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	formID, ok := formIDParam(c, "formId")
	if !ok {
		return
	}
	var input abtest.CreateABTestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	test, err := h.abtest.CreateTest(c.Request.Context(), userID, formID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Code: 0, Message: "A/B test created", Data: test})
}

// ListABTests godoc
// @Summary A/B tests of a form
// @Tags optimization
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Success 200 {object} response.SuccessResponse{data=[]abtest.ABTest}
// @Router /optimization/ab-test/{formId} [get]
func (h *OptimizationHandler) ListABTests(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	formID, ok := formIDParam(c, "formId")
	if !ok {
		return
	}

	tests, err := h.abtest.ListTests(c.Request.Context(), userID, formID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: tests})
}

// GetABTest godoc
// @Summary Get an A/B test
// @Tags optimization
// @Security BearerAuth
// @Produce json
// @Param testId path string true "Test ID"
// @Success 200 {object} response.SuccessResponse{data=abtest.ABTest}
// @Failure 404 {object} response.ErrorResponse
// @Router /optimization/ab-tests/{testId} [get]
func (h *OptimizationHandler) GetABTest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	testID, ok := formIDParam(c, "testId")
	if !ok {
		return
	}

	test, err := h.abtest.GetTest(c.Request.Context(), userID, testID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: test})
}

// AssignVisitor godoc
// @Summary Pick the form a visitor should see
// @Description Deterministic per visitor key; public so the renderer can call it.
// @Tags optimization
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param body body abtest.AssignDTO true "Visitor key"
// @Success 200 {object} response.SuccessResponse{data=abtest.Assignment}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /optimization/ab-test/{formId}/assign [post]
func (h *OptimizationHandler) AssignVisitor(c *gin.Context) {
	formID, ok := formIDParam(c, "formId")
	if !ok {
		return
	}
	var input abtest.AssignDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	a, err := h.abtest.Assign(c.Request.Context(), formID, input.VisitorKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: a})
}
