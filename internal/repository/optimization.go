package repository

import (
	"context"

	"github.com/linskybing/formpilot/internal/domain/optimization"
	"gorm.io/gorm"
)

// OptimizationRepo is append-only: records are never updated or deleted.
type OptimizationRepo interface {
	CreateRecord(ctx context.Context, rec *optimization.Record) error
	ListRecordsByForm(ctx context.Context, formID string) ([]optimization.Record, error)
	WithTx(tx *gorm.DB) OptimizationRepo
}

type DBOptimizationRepo struct {
	db *gorm.DB
}

func NewOptimizationRepo(db *gorm.DB) *DBOptimizationRepo {
	return &DBOptimizationRepo{
		db: db,
	}
}

func (r *DBOptimizationRepo) CreateRecord(ctx context.Context, rec *optimization.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *DBOptimizationRepo) ListRecordsByForm(ctx context.Context, formID string) ([]optimization.Record, error) {
	var records []optimization.Record
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("applied_at DESC").
		Find(&records).Error
	return records, err
}

func (r *DBOptimizationRepo) WithTx(tx *gorm.DB) OptimizationRepo {
	if tx == nil {
		return r
	}
	return &DBOptimizationRepo{db: tx}
}
