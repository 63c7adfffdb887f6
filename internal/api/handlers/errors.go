package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/domain/abtest"
	"github.com/linskybing/formpilot/internal/domain/analytics"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/domain/template"
	"github.com/linskybing/formpilot/internal/llm"
	"github.com/linskybing/formpilot/pkg/response"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{form.ErrFormNotFound, http.StatusNotFound},
	{form.ErrFieldNotFound, http.StatusNotFound},
	{template.ErrTemplateNotFound, http.StatusNotFound},
	{abtest.ErrTestNotFound, http.StatusNotFound},
	{application.ErrForbidden, http.StatusForbidden},
	{abtest.ErrVariantNotOwned, http.StatusForbidden},
	{form.ErrInvalidPosition, http.StatusBadRequest},
	{template.ErrMissingValue, http.StatusBadRequest},
	{abtest.ErrInvalidSplit, http.StatusBadRequest},
	{abtest.ErrSameForm, http.StatusBadRequest},
	{abtest.ErrEmptyVisitorKey, http.StatusBadRequest},
	{analytics.ErrInvalidPeriod, http.StatusBadRequest},
	{application.ErrNotFileField, http.StatusBadRequest},
	{abtest.ErrTestNotActive, http.StatusConflict},
	{llm.ErrNotConfigured, http.StatusServiceUnavailable},
	{application.ErrUploadsUnavailable, http.StatusServiceUnavailable},
}

// respondError translates a service error into a response. Store failures
// surface as a generic 500; their detail has already been logged.
func respondError(c *gin.Context, err error) {
	writeError(c, err, http.StatusInternalServerError, "internal server error")
}

// respondUpstreamError is respondError for endpoints backed by the LLM, where
// an external failure is the provider's and maps to 502.
func respondUpstreamError(c *gin.Context, err error) {
	writeError(c, err, http.StatusBadGateway, "AI service failed to produce a usable result")
}

func writeError(c *gin.Context, err error, externalStatus int, externalMsg string) {
	_ = c.Error(err)

	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			c.JSON(s.status, response.ErrorResponse{Error: s.err.Error()})
			return
		}
	}

	var ext *application.ExternalServiceError
	if errors.As(err, &ext) {
		c.JSON(externalStatus, response.ErrorResponse{Error: externalMsg})
		return
	}

	if verr, ok := form.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, response.ValidationErrorResponse{
			Error:  "invalid form definition",
			Issues: verr.Issues,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal server error"})
}

// bindError renders a request binding failure.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingMessage(err)})
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body: " + err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	name := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", name)
	case "ip":
		return fmt.Sprintf("%s must be an IP address", name)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", name)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
