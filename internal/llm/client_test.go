package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/linskybing/formpilot/internal/domain/analytics"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/domain/optimization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply string
	err   error
	got   []CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.got = append(f.got, req)
	return f.reply, f.err
}

var testOptions = Options{GenerateTemperature: 0.7, OptimizeTemperature: 0.3, MaxOutputTokens: 2000}

func TestGenerateForm(t *testing.T) {
	fake := &fakeCompleter{reply: `{"title":"Contact","fields":[{"type":"email","label":"Email"}]}`}
	svc := NewService(fake, testOptions)

	candidate, err := svc.GenerateForm(context.Background(), GenerateRequest{
		Prompt:   "a contact form for a bakery",
		Industry: "food",
		Type:     "contact",
	})
	require.NoError(t, err)
	assert.Equal(t, "Contact", candidate["title"])

	require.Len(t, fake.got, 1)
	req := fake.got[0]
	assert.Contains(t, req.System, "Industry: food")
	assert.Contains(t, req.System, "Form type: contact")
	assert.Contains(t, req.User, "Create a form for: a contact form for a bakery")
	assert.Equal(t, float32(0.7), req.Temperature)
	assert.Equal(t, int32(2000), req.MaxOutputTokens)
}

func TestGenerateFormResponses(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		wantErr error
	}{
		{"fenced json", "```json\n{\"title\":\"T\",\"fields\":[]}\n```", nil},
		{"plain fence", "```\n{\"title\":\"T\",\"fields\":[]}```", nil},
		{"prose", "Sure! Here is your form.", ErrMalformedResponse},
		{"array root", `[{"title":"T"}]`, ErrMalformedResponse},
		{"truncated", `{"title":"T","fields":[`, ErrMalformedResponse},
		{"empty", "   ", ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeCompleter{reply: tt.reply}, testOptions)
			candidate, err := svc.GenerateForm(context.Background(), GenerateRequest{Prompt: "x"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "T", candidate["title"])
		})
	}
}

func TestGenerateFormProviderError(t *testing.T) {
	boom := errors.New("quota exceeded")
	svc := NewService(&fakeCompleter{err: boom}, testOptions)
	_, err := svc.GenerateForm(context.Background(), GenerateRequest{Prompt: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestOptimize(t *testing.T) {
	fake := &fakeCompleter{reply: `{
		"recommendations": [
			{"type":"field-optimization","description":"Phone is skipped","action":"Make phone optional","fieldId":"phone"},
			{"type":"ui-enhancement"}
		],
		"summary": {"currentCompletionRate":"12%","projectedImprovement":"+8%"}
	}`}
	svc := NewService(fake, testOptions)

	f := &form.Form{Title: "Contact", Fields: []form.Field{{ID: "phone", Type: form.FieldText, Label: "Phone"}}}
	summary := analytics.Summary{
		FormID:        "f1",
		TotalViews:    100,
		DropOffPoints: map[string]int{"phone": 40},
		Interactions:  []analytics.Interaction{{FieldID: "phone"}},
	}

	result, err := svc.Optimize(context.Background(), f, summary)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, optimization.PriorityMedium, result.Recommendations[0].Priority)
	assert.Equal(t, "phone", result.Recommendations[0].FieldID)
	assert.Equal(t, []string{}, result.Summary.KeyIssues)

	req := fake.got[0]
	assert.Equal(t, float32(0.3), req.Temperature)
	assert.Contains(t, req.User, `"dropOffPoints":{"phone":40}`)
	assert.Contains(t, req.User, `"title":"Contact"`)
	assert.NotContains(t, req.User, `"interactions"`)
}

func TestDisabled(t *testing.T) {
	var c Client = Disabled{}
	_, err := c.GenerateForm(context.Background(), GenerateRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = c.Optimize(context.Background(), &form.Form{}, analytics.Summary{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewGenAICompleterRequiresKey(t *testing.T) {
	_, err := NewGenAICompleter(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
