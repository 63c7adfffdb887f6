//go:build integration
// +build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/domain/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateHandler_Integration(t *testing.T) {
	ctx := GetTestContext()
	owner := NewHTTPClient(ctx.Router, ctx.OwnerToken)
	anon := NewHTTPClient(ctx.Router, "")

	t.Run("List and filter", func(t *testing.T) {
		resp, err := anon.GET("/templates", map[string]string{"category": "Marketing"})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var templates []template.Template
		require.NoError(t, resp.DecodeData(&templates))
		require.Len(t, templates, 1)
		assert.Equal(t, "lead-generation", templates[0].ID)
	})

	t.Run("Categories", func(t *testing.T) {
		resp, err := anon.GET("/templates/categories")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var categories []string
		require.NoError(t, resp.DecodeData(&categories))
		assert.Contains(t, categories, "HR")
	})

	t.Run("Get - Not Found", func(t *testing.T) {
		resp, err := anon.GET("/templates/nope")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Instantiate", func(t *testing.T) {
		resp, err := anon.POST("/templates/contact-form/instantiate", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, err = owner.POST("/templates/contact-form/instantiate", map[string]interface{}{
			"values": map[string]string{"company": "Acme"},
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))

		var f form.Form
		require.NoError(t, resp.DecodeData(&f))
		assert.Equal(t, "Contact Acme", f.Title)
		assert.Equal(t, ctx.OwnerID, f.UserID)
		assert.Equal(t, form.StatusDraft, f.Status)
	})
}
