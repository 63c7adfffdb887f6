package repository

import (
	"context"
	"time"

	"github.com/linskybing/formpilot/internal/domain/analytics"
	"gorm.io/gorm"
)

type AnalyticsRepo interface {
	CreateView(ctx context.Context, v *analytics.View) error
	CreateInteraction(ctx context.Context, i *analytics.Interaction) error
	CreateSubmission(ctx context.Context, s *analytics.Submission) error
	CountViews(ctx context.Context, formID string, since time.Time) (int64, error)
	ListInteractions(ctx context.Context, formID string, since time.Time) ([]analytics.Interaction, error)
	ListSubmissions(ctx context.Context, formID string, since time.Time) ([]analytics.Submission, error)
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	WithTx(tx *gorm.DB) AnalyticsRepo
}

type DBAnalyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) *DBAnalyticsRepo {
	return &DBAnalyticsRepo{
		db: db,
	}
}

func (r *DBAnalyticsRepo) CreateView(ctx context.Context, v *analytics.View) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *DBAnalyticsRepo) CreateInteraction(ctx context.Context, i *analytics.Interaction) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *DBAnalyticsRepo) CreateSubmission(ctx context.Context, s *analytics.Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// A zero since means no lower bound.
func (r *DBAnalyticsRepo) CountViews(ctx context.Context, formID string, since time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&analytics.View{}).Where("form_id = ?", formID)
	if !since.IsZero() {
		query = query.Where("viewed_at >= ?", since)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *DBAnalyticsRepo) ListInteractions(ctx context.Context, formID string, since time.Time) ([]analytics.Interaction, error) {
	var rows []analytics.Interaction
	query := r.db.WithContext(ctx).Where("form_id = ?", formID)
	if !since.IsZero() {
		query = query.Where("occurred_at >= ?", since)
	}
	err := query.Order("occurred_at ASC").Find(&rows).Error
	return rows, err
}

func (r *DBAnalyticsRepo) ListSubmissions(ctx context.Context, formID string, since time.Time) ([]analytics.Submission, error) {
	var rows []analytics.Submission
	query := r.db.WithContext(ctx).Where("form_id = ?", formID)
	if !since.IsZero() {
		query = query.Where("submitted_at >= ?", since)
	}
	err := query.Order("submitted_at ASC").Find(&rows).Error
	return rows, err
}

// DeleteEventsBefore prunes raw events older than cutoff from all three event
// tables and reports how many rows went.
func (r *DBAnalyticsRepo) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			model  any
			column string
		}{
			{&analytics.View{}, "viewed_at"},
			{&analytics.Interaction{}, "occurred_at"},
			{&analytics.Submission{}, "submitted_at"},
		}
		for _, s := range steps {
			res := tx.Where(s.column+" < ?", cutoff).Delete(s.model)
			if res.Error != nil {
				return res.Error
			}
			total += res.RowsAffected
		}
		return nil
	})
	return total, err
}

func (r *DBAnalyticsRepo) WithTx(tx *gorm.DB) AnalyticsRepo {
	if tx == nil {
		return r
	}
	return &DBAnalyticsRepo{db: tx}
}
