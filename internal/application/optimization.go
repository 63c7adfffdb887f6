package application

import (
	"context"
	"errors"

	"github.com/linskybing/formpilot/internal/domain/analytics"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/domain/optimization"
	"github.com/linskybing/formpilot/internal/llm"
	"github.com/linskybing/formpilot/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OptimizationService struct {
	Repos     *repository.Repos
	Forms     *FormService
	Analytics *AnalyticsService
	LLM       llm.Client
	Logger    *zap.Logger
}

func NewOptimizationService(repos *repository.Repos, forms *FormService, analytics *AnalyticsService, client llm.Client, logger *zap.Logger) *OptimizationService {
	return &OptimizationService{
		Repos:     repos,
		Forms:     forms,
		Analytics: analytics,
		LLM:       client,
		Logger:    logger,
	}
}

// Recommendations sends the form and its all-time analytics to the LLM.
func (s *OptimizationService) Recommendations(ctx context.Context, userID, formID string) (*optimization.Result, error) {
	f, err := s.Forms.GetOwnedForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}
	summary, err := s.Analytics.Summary(ctx, formID, analytics.PeriodAll)
	if err != nil {
		return nil, err
	}

	result, err := s.LLM.Optimize(ctx, f, *summary)
	if err != nil {
		s.Logger.Error("optimization failed", zap.String("form_id", formID), zap.Error(err))
		return nil, external("optimize form", formID, err)
	}
	return result, nil
}

// Apply derives the next version of the form from recommendations and stores
// it together with its audit record in one transaction.
func (s *OptimizationService) Apply(ctx context.Context, userID, formID string, recommendations []optimization.Recommendation) (*form.OptimizeResult, error) {
	parent, err := s.Forms.GetOwnedForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}

	child, record, err := form.DeriveOptimized(parent, recommendations, userID)
	if err != nil {
		return nil, err
	}

	err = s.Repos.ExecTx(func(r *repository.Repos) error {
		if err := r.Form.CreateForm(ctx, child); err != nil {
			return err
		}
		record.NewFormID = child.ID
		return r.Optimization.CreateRecord(ctx, record)
	})
	if err != nil {
		return nil, storeErr(s.Logger, "apply optimization", formID, err)
	}

	s.Logger.Info("optimization applied",
		zap.String("form_id", formID),
		zap.String("new_form_id", child.ID),
		zap.Int("version", child.Version))
	return &form.OptimizeResult{Form: child, Record: record}, nil
}

// History lists the optimizations applied to a form, newest first.
func (s *OptimizationService) History(ctx context.Context, userID, formID string) ([]optimization.Record, error) {
	if _, err := s.Forms.GetOwnedForm(ctx, userID, formID); err != nil {
		return nil, err
	}
	records, err := s.Repos.Optimization.ListRecordsByForm(ctx, formID)
	if err != nil {
		return nil, storeErr(s.Logger, "list optimizations", formID, err)
	}
	if records == nil {
		records = []optimization.Record{}
	}
	return records, nil
}

// Lineage walks originalFormId from the form back to its root. The walk stops
// at a deleted ancestor or at an id it has already visited.
func (s *OptimizationService) Lineage(ctx context.Context, userID, formID string) ([]form.Form, error) {
	current, err := s.Forms.GetOwnedForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}

	chain := []form.Form{*current}
	seen := map[string]struct{}{current.ID: {}}
	for current.OriginalFormID != nil {
		parentID := *current.OriginalFormID
		if _, dup := seen[parentID]; dup {
			s.Logger.Warn("form lineage cycle", zap.String("form_id", formID), zap.String("at", parentID))
			break
		}
		parent, err := s.Repos.Form.GetFormByID(ctx, parentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return nil, storeErr(s.Logger, "walk lineage", parentID, err)
		}
		seen[parentID] = struct{}{}
		chain = append(chain, *parent)
		current = parent
	}
	return chain, nil
}
