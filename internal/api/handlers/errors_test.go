package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/domain/abtest"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordError(t *testing.T, write func(*gin.Context, error), err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	write(c, err)
	return w
}

func TestRespondError(t *testing.T) {
	external := &application.ExternalServiceError{Op: "get form", Target: "x", Err: errors.New("conn reset")}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", form.ErrFormNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", abtest.ErrTestNotFound), http.StatusNotFound},
		{"forbidden", application.ErrForbidden, http.StatusForbidden},
		{"bad split", abtest.ErrInvalidSplit, http.StatusBadRequest},
		{"inactive test", abtest.ErrTestNotActive, http.StatusConflict},
		{"llm off", llm.ErrNotConfigured, http.StatusServiceUnavailable},
		{"store failure", external, http.StatusInternalServerError},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := recordError(t, respondError, tt.err)
			assert.Equal(t, tt.want, w.Code)
			assert.NotContains(t, w.Body.String(), "conn reset")
		})
	}
}

func TestRespondUpstreamError(t *testing.T) {
	external := &application.ExternalServiceError{Op: "generate form", Target: "llm", Err: llm.ErrMalformedResponse}
	w := recordError(t, respondUpstreamError, external)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = recordError(t, respondUpstreamError, llm.ErrNotConfigured)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestValidationErrorBody(t *testing.T) {
	_, err := form.Validate(map[string]any{"fields": []any{}})
	require.Error(t, err)

	w := recordError(t, respondError, err)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error  string       `json:"error"`
		Issues []form.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid form definition", body.Error)
	require.NotEmpty(t, body.Issues)
	assert.Equal(t, form.KindMissingTitle, body.Issues[0].Kind)
}

func TestBindingMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var in form.UploadURLDTO
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", jsonBody(t, map[string]any{})))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "is required")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", jsonBody(t, "not an object")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}
