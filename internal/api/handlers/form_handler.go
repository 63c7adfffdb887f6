package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/pkg/response"
	"github.com/linskybing/formpilot/pkg/utils"
)

type FormHandler struct {
	svc *application.FormService
}

func NewFormHandler(svc *application.FormService) *FormHandler {
	return &FormHandler{svc: svc}
}

// currentUser resolves the caller or writes 401.
func currentUser(c *gin.Context) (string, bool) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// formIDParam reads the :id path parameter or writes 400.
func formIDParam(c *gin.Context, name string) (string, bool) {
	id, err := utils.ParseIDParam(c, name)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid form id"})
		return "", false
	}
	return id, true
}

// CreateForm godoc
// @Summary Create a form
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body form.Schema true "Form definition"
// @Success 201 {object} response.SuccessResponse{data=form.Form}
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var candidate map[string]any
	if err := c.ShouldBindJSON(&candidate); err != nil {
		bindError(c, err)
		return
	}

	f, err := h.svc.CreateForm(c.Request.Context(), userID, candidate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Code: 0, Message: "Form created", Data: f})
}

// GenerateForm godoc
// @Summary Generate and save a form with AI
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body form.GenerateFormDTO true "Generation request"
// @Success 201 {object} response.SuccessResponse{data=form.Form}
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /forms/generate [post]
func (h *FormHandler) GenerateForm(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var input form.GenerateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	f, err := h.svc.GenerateForm(c.Request.Context(), userID, input)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Code: 0, Message: "Form generated", Data: f})
}

// PreviewForm godoc
// @Summary Generate a form with AI without saving it
// @Tags ai
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body form.GenerateFormDTO true "Generation request"
// @Success 200 {object} response.SuccessResponse{data=form.Schema}
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /ai/generate-form [post]
func (h *FormHandler) PreviewForm(c *gin.Context) {
	var input form.GenerateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	schema, err := h.svc.PreviewGenerated(c.Request.Context(), input)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "Form generated", Data: schema})
}

// GetMyForms godoc
// @Summary List the caller's forms
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} response.SuccessResponse{data=form.ListResult}
// @Router /forms/my [get]
func (h *FormHandler) GetMyForms(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	h.listForms(c, userID)
}

// GetUserForms godoc
// @Summary List a user's forms
// @Description Users may only list their own forms.
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User ID"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} response.SuccessResponse{data=form.ListResult}
// @Failure 403 {object} response.ErrorResponse
// @Router /forms/user/{userId} [get]
func (h *FormHandler) GetUserForms(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if c.Param("userId") != userID {
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "you can only list your own forms"})
		return
	}
	h.listForms(c, userID)
}

func (h *FormHandler) listForms(c *gin.Context, userID string) {
	page, err := utils.ParseQueryIntParam(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "page must be a positive integer"})
		return
	}
	limit, err := utils.ParseQueryIntParam(c, "limit", application.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "limit must be a positive integer"})
		return
	}

	res, err := h.svc.ListForms(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: res})
}

// GetForm godoc
// @Summary Get a form
// @Description Public so respondents can render the form.
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} response.SuccessResponse{data=form.Form}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	id, ok := formIDParam(c, "id")
	if !ok {
		return
	}
	f, err := h.svc.GetForm(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: f})
}

// UpdateForm godoc
// @Summary Update a form
// @Description Only title, description, fields and settings are applied; other keys are ignored and listed in ignoredFields.
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param body body object true "Partial form definition"
// @Success 200 {object} response.SuccessResponse{data=form.UpdateResult}
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{id} [put]
func (h *FormHandler) UpdateForm(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := formIDParam(c, "id")
	if !ok {
		return
	}
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.svc.UpdateForm(c.Request.Context(), userID, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "Form updated", Data: res})
}

// DeleteForm godoc
// @Summary Delete a form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} response.MessageResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{id} [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := formIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteForm(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Form deleted successfully"})
}

// AddField godoc
// @Summary Add a field to a form
// @Tags fields
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param body body form.AddFieldDTO true "Field and optional position"
// @Success 200 {object} response.SuccessResponse{data=form.Form}
// @Failure 400 {object} response.ValidationErrorResponse
// @Router /forms/{id}/fields [post]
func (h *FormHandler) AddField(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := formIDParam(c, "id")
	if !ok {
		return
	}
	var input form.AddFieldDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	f, err := h.svc.AddField(c.Request.Context(), userID, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "Field added", Data: f})
}

// UpdateField godoc
// @Summary Update a field
// @Description Keys set to null are removed from the field. The id cannot change.
// @Tags fields
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param fieldId path string true "Field ID"
// @Param body body object true "Field attributes"
// @Success 200 {object} response.SuccessResponse{data=form.Form}
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{id}/fields/{fieldId} [put]
func (h *FormHandler) UpdateField(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := formIDParam(c, "id")
	if !ok {
		return
	}
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	f, err := h.svc.UpdateField(c.Request.Context(), userID, id, c.Param("fieldId"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "Field updated", Data: f})
}

// RemoveField godoc
// @Summary Remove a field
// @Tags fields
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Param fieldId path string true "Field ID"
// @Success 200 {object} response.SuccessResponse{data=form.Form}
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{id}/fields/{fieldId} [delete]
func (h *FormHandler) RemoveField(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := formIDParam(c, "id")
	if !ok {
		return
	}

	f, err := h.svc.RemoveField(c.Request.Context(), userID, id, c.Param("fieldId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "Field removed", Data: f})
}

// MoveField godoc
// @Summary Move a field to a new position
// @Tags fields
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param fieldId path string true "Field ID"
// @Param body body form.MoveFieldDTO true "Target position"
// @Success 200 {object} response.SuccessResponse{data=form.Form}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{id}/fields/{fieldId}/move [post]
func (h *FormHandler) MoveField(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := formIDParam(c, "id")
	if !ok {
		return
	}
	var input form.MoveFieldDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	f, err := h.svc.MoveField(c.Request.Context(), userID, id, c.Param("fieldId"), *input.Position)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "Field moved", Data: f})
}
