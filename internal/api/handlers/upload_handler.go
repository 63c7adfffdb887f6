package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/pkg/response"
)

type UploadHandler struct {
	svc *application.UploadService
}

func NewUploadHandler(svc *application.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// CreateUploadURL godoc
// @Summary Presigned upload URL for a file field
// @Tags fields
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param fieldId path string true "Field ID"
// @Param body body form.UploadURLDTO true "File to upload"
// @Success 200 {object} response.SuccessResponse{data=application.UploadTicket}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /forms/{id}/fields/{fieldId}/upload-url [post]
func (h *UploadHandler) CreateUploadURL(c *gin.Context) {
	formID, ok := formIDParam(c, "id")
	if !ok {
		return
	}
	var input form.UploadURLDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	ticket, err := h.svc.UploadURL(c.Request.Context(), formID, c.Param("fieldId"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Code: 0, Message: "OK", Data: ticket})
}
