//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormHandler_Integration(t *testing.T) {
	ctx := GetTestContext()
	owner := NewHTTPClient(ctx.Router, ctx.OwnerToken)
	other := NewHTTPClient(ctx.Router, ctx.OtherToken)
	anon := NewHTTPClient(ctx.Router, "")

	var created form.Form

	t.Run("CreateForm - Success", func(t *testing.T) {
		resp, err := owner.POST("/forms", contactForm("Contact us"))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))

		require.NoError(t, resp.DecodeData(&created))
		assert.Equal(t, ctx.OwnerID, created.UserID)
		assert.Equal(t, form.StatusDraft, created.Status)
		assert.Equal(t, 1, created.Version)
		assert.Len(t, created.Fields, 4)
	})

	t.Run("CreateForm - Unauthorized without Token", func(t *testing.T) {
		resp, err := anon.POST("/forms", contactForm("Nope"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("CreateForm - Invalid Input Validation", func(t *testing.T) {
		tests := []struct {
			name  string
			input map[string]interface{}
		}{
			{"Missing title", map[string]interface{}{"fields": []interface{}{}}},
			{"Select without options", map[string]interface{}{
				"title":  "T",
				"fields": []interface{}{map[string]interface{}{"type": "select", "label": "Pick"}},
			}},
			{"Unknown field type", map[string]interface{}{
				"title":  "T",
				"fields": []interface{}{map[string]interface{}{"type": "slider", "label": "Pick"}},
			}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp, err := owner.POST("/forms", tt.input)
				require.NoError(t, err)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
				assert.NotEmpty(t, resp.GetErrorMessage())
			})
		}
	})

	t.Run("GetForm - Public", func(t *testing.T) {
		resp, err := anon.GET("/forms/" + created.ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got form.Form
		require.NoError(t, resp.DecodeData(&got))
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("GetForm - Not Found", func(t *testing.T) {
		resp, err := anon.GET("/forms/" + uuid.NewString())
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("GetForm - Malformed ID", func(t *testing.T) {
		resp, err := anon.GET("/forms/not-a-uuid")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UpdateForm - Owner", func(t *testing.T) {
		resp, err := owner.PUT("/forms/"+created.ID, map[string]interface{}{
			"title":  "Contact the team",
			"status": "optimized",
			"userId": "someone-else",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))

		var res form.UpdateResult
		require.NoError(t, resp.DecodeData(&res))
		assert.Equal(t, "Contact the team", res.Form.Title)
		assert.Equal(t, ctx.OwnerID, res.Form.UserID)
		assert.Equal(t, form.StatusDraft, res.Form.Status)
		assert.ElementsMatch(t, []string{"status", "userId"}, res.Ignored)
	})

	t.Run("UpdateForm - Forbidden for Other User", func(t *testing.T) {
		resp, err := other.PUT("/forms/"+created.ID, map[string]interface{}{"title": "Mine now"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Field editing", func(t *testing.T) {
		resp, err := owner.POST(fmt.Sprintf("/forms/%s/fields", created.ID), map[string]interface{}{
			"field":    map[string]interface{}{"type": "textarea", "label": "Message"},
			"position": 2,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))

		var f form.Form
		require.NoError(t, resp.DecodeData(&f))
		require.Len(t, f.Fields, 5)
		added := f.Fields[2]
		assert.Equal(t, form.FieldTextarea, added.Type)

		resp, err = owner.POST(fmt.Sprintf("/forms/%s/fields/%s/move", created.ID, added.ID), map[string]interface{}{"position": 0})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, resp.DecodeData(&f))
		assert.Equal(t, added.ID, f.Fields[0].ID)

		resp, err = owner.PUT(fmt.Sprintf("/forms/%s/fields/%s", created.ID, added.ID), map[string]interface{}{"required": true})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, resp.DecodeData(&f))
		assert.True(t, f.Fields[0].Required)

		resp, err = owner.DELETE(fmt.Sprintf("/forms/%s/fields/%s", created.ID, added.ID))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, resp.DecodeData(&f))
		assert.Len(t, f.Fields, 4)

		resp, err = owner.DELETE(fmt.Sprintf("/forms/%s/fields/%s", created.ID, "missing"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("UploadURL - Public", func(t *testing.T) {
		resp, err := anon.POST(fmt.Sprintf("/forms/%s/fields/cv/upload-url", created.ID), map[string]interface{}{
			"fileName": "../resume.pdf",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))

		var ticket map[string]interface{}
		require.NoError(t, resp.DecodeData(&ticket))
		assert.Contains(t, ticket["url"], "storage.test")
		assert.Contains(t, ticket["key"], "forms/"+created.ID+"/cv/")
		assert.NotContains(t, ticket["key"], "..")

		resp, err = anon.POST(fmt.Sprintf("/forms/%s/fields/name/upload-url", created.ID), map[string]interface{}{
			"fileName": "a.pdf",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("ListForms - Pagination", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			resp, err := owner.POST("/forms", contactForm(fmt.Sprintf("Extra %d", i)))
			require.NoError(t, err)
			require.Equal(t, http.StatusCreated, resp.StatusCode)
		}

		resp, err := owner.GET("/forms/my", map[string]string{"page": "1", "limit": "2"})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res form.ListResult
		require.NoError(t, resp.DecodeData(&res))
		assert.Len(t, res.Forms, 2)
		assert.GreaterOrEqual(t, res.Pagination.Total, int64(4))

		resp, err = owner.GET("/forms/user/" + ctx.OtherID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, err = owner.GET("/forms/my", map[string]string{"page": "0"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("DeleteForm", func(t *testing.T) {
		resp, err := other.DELETE("/forms/" + created.ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, err = owner.DELETE("/forms/" + created.ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = anon.GET("/forms/" + created.ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
