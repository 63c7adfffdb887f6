package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/linskybing/formpilot/internal/domain/analytics"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/domain/optimization"
)

var (
	ErrNotConfigured     = errors.New("llm provider is not configured")
	ErrMalformedResponse = errors.New("llm returned a malformed response")
)

// GenerateRequest describes the form the author wants.
type GenerateRequest struct {
	Prompt   string
	Industry string
	Type     string
}

// Client is the generation and optimization provider. Output is untrusted:
// callers validate generated forms before use.
type Client interface {
	GenerateForm(ctx context.Context, req GenerateRequest) (map[string]any, error)
	Optimize(ctx context.Context, f *form.Form, summary analytics.Summary) (*optimization.Result, error)
}

// Completer performs one system+user prompt exchange and returns the raw
// JSON text the model produced.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	System          string
	User            string
	Temperature     float32
	MaxOutputTokens int32
}

type Options struct {
	GenerateTemperature float32
	OptimizeTemperature float32
	MaxOutputTokens     int32
}

// Service turns form requests into prompts for a Completer and parses the
// answers.
type Service struct {
	completer Completer
	opts      Options
}

func NewService(c Completer, opts Options) *Service {
	return &Service{completer: c, opts: opts}
}

func (s *Service) GenerateForm(ctx context.Context, req GenerateRequest) (map[string]any, error) {
	system, user := generatePrompts(req)
	raw, err := s.completer.Complete(ctx, CompletionRequest{
		System:          system,
		User:            user,
		Temperature:     s.opts.GenerateTemperature,
		MaxOutputTokens: s.opts.MaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	var candidate map[string]any
	if err := decodeObject(raw, &candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (s *Service) Optimize(ctx context.Context, f *form.Form, summary analytics.Summary) (*optimization.Result, error) {
	formJSON, err := json.Marshal(f.Schema())
	if err != nil {
		return nil, err
	}
	analyticsJSON, err := json.Marshal(compactSummary(summary))
	if err != nil {
		return nil, err
	}

	system, user := optimizePrompts(formJSON, analyticsJSON)
	raw, err := s.completer.Complete(ctx, CompletionRequest{
		System:          system,
		User:            user,
		Temperature:     s.opts.OptimizeTemperature,
		MaxOutputTokens: s.opts.MaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	var result optimization.Result
	if err := decodeObject(raw, &result); err != nil {
		return nil, err
	}
	result.Normalize()
	return &result, nil
}

// compactSummary drops the raw event lists; the aggregates are what the model
// needs and the lists can be large.
func compactSummary(s analytics.Summary) map[string]any {
	return map[string]any{
		"period":                s.Period,
		"totalViews":            s.TotalViews,
		"totalSubmissions":      s.TotalSubmissions,
		"completionRate":        s.CompletionRate,
		"dropOffPoints":         s.DropOffPoints,
		"deviceAnalytics":       s.DeviceAnalytics,
		"averageCompletionTime": s.AverageCompletionTime,
	}
}

// decodeObject parses a JSON object, tolerating a surrounding markdown code
// fence.
func decodeObject(raw string, dst any) error {
	body := bytes.TrimSpace([]byte(raw))
	if bytes.HasPrefix(body, []byte("```")) {
		body = bytes.TrimPrefix(body, []byte("```json"))
		body = bytes.TrimPrefix(body, []byte("```"))
		body = bytes.TrimSuffix(bytes.TrimSpace(body), []byte("```"))
		body = bytes.TrimSpace(body)
	}
	if len(body) == 0 || body[0] != '{' {
		return ErrMalformedResponse
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Disabled is the Client used when no provider key is configured.
type Disabled struct{}

func (Disabled) GenerateForm(context.Context, GenerateRequest) (map[string]any, error) {
	return nil, ErrNotConfigured
}

func (Disabled) Optimize(context.Context, *form.Form, analytics.Summary) (*optimization.Result, error) {
	return nil, ErrNotConfigured
}
