//go:build integration
// +build integration

package integration

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/linskybing/formpilot/internal/llm"
)

// ScriptedCompleter answers model calls with canned JSON, in order.
type ScriptedCompleter struct {
	mu      sync.Mutex
	replies []string
	calls   []llm.CompletionRequest
}

// Queue appends replies for upcoming calls.
func (s *ScriptedCompleter) Queue(replies ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
}

func (s *ScriptedCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	if len(s.replies) == 0 {
		return "", llm.ErrMalformedResponse
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

// Calls returns the requests seen so far.
func (s *ScriptedCompleter) Calls() []llm.CompletionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.CompletionRequest(nil), s.calls...)
}

type stubPresigner struct{}

func (stubPresigner) PresignUpload(_ context.Context, key string, expiry time.Duration) (*url.URL, error) {
	return &url.URL{
		Scheme:   "http",
		Host:     "storage.test",
		Path:     "/form-uploads/" + key,
		RawQuery: "X-Amz-Expires=" + expiry.String(),
	}, nil
}

// contactForm is a minimal valid create body.
func contactForm(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"description": "Reach the team",
		"fields": []interface{}{
			map[string]interface{}{"id": "name", "type": "text", "label": "Name", "required": true},
			map[string]interface{}{"id": "email", "type": "email", "label": "Email", "required": true},
			map[string]interface{}{"id": "topic", "type": "select", "label": "Topic", "options": []string{"Sales", "Support"}},
			map[string]interface{}{"id": "cv", "type": "file", "label": "Attachment"},
		},
	}
}
