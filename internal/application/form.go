package application

import (
	"context"
	"math"

	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/llm"
	"github.com/linskybing/formpilot/internal/repository"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type FormService struct {
	Repos  *repository.Repos
	LLM    llm.Client
	Logger *zap.Logger
}

func NewFormService(repos *repository.Repos, client llm.Client, logger *zap.Logger) *FormService {
	return &FormService{
		Repos:  repos,
		LLM:    client,
		Logger: logger,
	}
}

// CreateForm validates candidate and stores it as a draft owned by userID.
func (s *FormService) CreateForm(ctx context.Context, userID string, candidate map[string]any) (*form.Form, error) {
	schema, err := form.Validate(candidate)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, form.Create(schema, userID, form.OriginManual))
}

// CreateFromSchema stores an already validated schema, as produced by a
// template.
func (s *FormService) CreateFromSchema(ctx context.Context, userID string, schema *form.Schema, origin form.Origin) (*form.Form, error) {
	return s.insert(ctx, form.Create(schema, userID, origin))
}

func (s *FormService) insert(ctx context.Context, f *form.Form) (*form.Form, error) {
	if err := s.Repos.Form.CreateForm(ctx, f); err != nil {
		return nil, storeErr(s.Logger, "create form", f.UserID, err)
	}
	return f, nil
}

// GetForm loads a form for rendering. Anyone holding the id may read it.
func (s *FormService) GetForm(ctx context.Context, id string) (*form.Form, error) {
	f, err := s.Repos.Form.GetFormByID(ctx, id)
	if err != nil {
		return nil, storeErr(s.Logger, "get form", id, err)
	}
	return f, nil
}

// GetOwnedForm loads a form for editing and checks that userID owns it.
func (s *FormService) GetOwnedForm(ctx context.Context, userID, id string) (*form.Form, error) {
	f, err := s.GetForm(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.IsOwnedBy(userID) {
		return nil, ErrForbidden
	}
	return f, nil
}

// UpdateForm merges patch into the stored content. Keys that cannot be set by
// clients are dropped, logged and reported back.
func (s *FormService) UpdateForm(ctx context.Context, userID, id string, patch map[string]any) (*form.UpdateResult, error) {
	existing, err := s.GetOwnedForm(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updated, ignored, err := form.Update(existing, patch)
	if len(ignored) > 0 {
		s.Logger.Debug("ignored immutable form fields",
			zap.String("form_id", id),
			zap.Strings("fields", ignored))
	}
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	return &form.UpdateResult{Form: updated, Ignored: ignored}, nil
}

func (s *FormService) save(ctx context.Context, f *form.Form) error {
	if err := s.Repos.Form.UpdateForm(ctx, f); err != nil {
		return storeErr(s.Logger, "update form", f.ID, err)
	}
	return nil
}

// DeleteForm hard-deletes a form together with the A/B tests that reference
// it. Derived variants keep their lineage pointer.
func (s *FormService) DeleteForm(ctx context.Context, userID, id string) error {
	if _, err := s.GetOwnedForm(ctx, userID, id); err != nil {
		return err
	}

	err := s.Repos.ExecTx(func(r *repository.Repos) error {
		if err := r.ABTest.DeleteTestsByForm(ctx, id); err != nil {
			return err
		}
		return r.Form.DeleteForm(ctx, id)
	})
	if err != nil {
		return storeErr(s.Logger, "delete form", id, err)
	}
	return nil
}

// ListForms returns one page of the user's forms, newest first.
func (s *FormService) ListForms(ctx context.Context, userID string, page, limit int) (*form.ListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if maxPage := math.MaxInt32 / limit; page > maxPage {
		page = maxPage
	}

	forms, total, err := s.Repos.Form.ListFormsByUser(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, storeErr(s.Logger, "list forms", userID, err)
	}
	if forms == nil {
		forms = []form.Form{}
	}
	return &form.ListResult{
		Forms:      forms,
		Pagination: form.Pagination{Page: page, Limit: limit, Total: total},
	}, nil
}

// PreviewGenerated asks the LLM for a form and returns the validated schema
// without storing it.
func (s *FormService) PreviewGenerated(ctx context.Context, input form.GenerateFormDTO) (*form.Schema, error) {
	input = input.WithDefaults()
	candidate, err := s.LLM.GenerateForm(ctx, llm.GenerateRequest{
		Prompt:   input.Prompt,
		Industry: input.Industry,
		Type:     input.Type,
	})
	if err != nil {
		s.Logger.Error("form generation failed", zap.String("industry", input.Industry), zap.Error(err))
		return nil, external("generate form", "llm", err)
	}

	schema, err := form.Validate(form.Sanitize(candidate))
	if err != nil {
		s.Logger.Warn("generated form rejected", zap.Error(err))
		return nil, external("generate form", "llm", err)
	}
	return schema, nil
}

// GenerateForm generates, validates and stores a form for userID.
func (s *FormService) GenerateForm(ctx context.Context, userID string, input form.GenerateFormDTO) (*form.Form, error) {
	schema, err := s.PreviewGenerated(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, form.Create(schema, userID, form.OriginAI))
}

// AddField inserts a field at position, appending when position is nil.
func (s *FormService) AddField(ctx context.Context, userID, id string, input form.AddFieldDTO) (*form.Form, error) {
	at := -1
	if input.Position != nil {
		at = *input.Position
	}
	return s.editSchema(ctx, userID, id, func(schema form.Schema) (*form.Schema, error) {
		return form.AddField(schema, input.Field, at)
	})
}

func (s *FormService) UpdateField(ctx context.Context, userID, id, fieldID string, patch map[string]any) (*form.Form, error) {
	return s.editSchema(ctx, userID, id, func(schema form.Schema) (*form.Schema, error) {
		return form.UpdateField(schema, fieldID, patch)
	})
}

func (s *FormService) RemoveField(ctx context.Context, userID, id, fieldID string) (*form.Form, error) {
	return s.editSchema(ctx, userID, id, func(schema form.Schema) (*form.Schema, error) {
		return form.RemoveField(schema, fieldID)
	})
}

func (s *FormService) MoveField(ctx context.Context, userID, id, fieldID string, position int) (*form.Form, error) {
	return s.editSchema(ctx, userID, id, func(schema form.Schema) (*form.Schema, error) {
		return form.MoveField(schema, fieldID, position)
	})
}

func (s *FormService) editSchema(ctx context.Context, userID, id string, edit func(form.Schema) (*form.Schema, error)) (*form.Form, error) {
	existing, err := s.GetOwnedForm(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	schema, err := edit(existing.Schema())
	if err != nil {
		return nil, err
	}
	updated := form.ReplaceSchema(existing, schema)
	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
