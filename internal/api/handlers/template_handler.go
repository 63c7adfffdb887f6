package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/domain/template"
	"github.com/linskybing/formpilot/pkg/response"
)

type TemplateHandler struct {
	svc *application.TemplateService
}

func NewTemplateHandler(svc *application.TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

// ListTemplates godoc
// @Summary List form templates
// @Tags templates
// @Produce json
// @Param search query string false "Matches name, description or tags"
// @Param category query string false "Category, or all"
// @Success 200 {object} response.SuccessResponse{data=[]template.Template}
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates := h.svc.ListTemplates(template.Filter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: templates})
}

// ListCategories godoc
// @Summary Template categories
// @Tags templates
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=[]string}
// @Router /templates/categories [get]
func (h *TemplateHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: h.svc.Categories()})
}

// GetTemplate godoc
// @Summary Get a form template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} response.SuccessResponse{data=template.Template}
// @Failure 404 {object} response.ErrorResponse
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	t, err := h.svc.GetTemplate(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: t})
}

// Instantiate godoc
// @Summary Create a draft form from a template
// @Tags templates
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param body body form.InstantiateTemplateDTO false "Placeholder values"
// @Success 201 {object} response.SuccessResponse{data=form.Form}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /templates/{id}/instantiate [post]
func (h *TemplateHandler) Instantiate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var input form.InstantiateTemplateDTO
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
	}

	f, err := h.svc.Instantiate(c.Request.Context(), userID, c.Param("id"), input.Values)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Code: 0, Message: "Form created from template", Data: f})
}
