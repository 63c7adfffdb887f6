package repository

import (
	"context"

	"github.com/linskybing/formpilot/internal/domain/abtest"
	"gorm.io/gorm"
)

type ABTestRepo interface {
	CreateTest(ctx context.Context, t *abtest.ABTest) error
	GetTest(ctx context.Context, id string) (*abtest.ABTest, error)
	ListTestsByForm(ctx context.Context, formID string) ([]abtest.ABTest, error)
	DeleteTestsByForm(ctx context.Context, formID string) error
	WithTx(tx *gorm.DB) ABTestRepo
}

type DBABTestRepo struct {
	db *gorm.DB
}

func NewABTestRepo(db *gorm.DB) *DBABTestRepo {
	return &DBABTestRepo{
		db: db,
	}
}

func (r *DBABTestRepo) CreateTest(ctx context.Context, t *abtest.ABTest) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *DBABTestRepo) GetTest(ctx context.Context, id string) (*abtest.ABTest, error) {
	var t abtest.ABTest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *DBABTestRepo) ListTestsByForm(ctx context.Context, formID string) ([]abtest.ABTest, error) {
	var tests []abtest.ABTest
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("created_at DESC").
		Find(&tests).Error
	return tests, err
}

// DeleteTestsByForm removes tests in which the form takes part on either arm.
func (r *DBABTestRepo) DeleteTestsByForm(ctx context.Context, formID string) error {
	return r.db.WithContext(ctx).
		Where("form_id = ? OR variant_form_id = ?", formID, formID).
		Delete(&abtest.ABTest{}).Error
}

func (r *DBABTestRepo) WithTx(tx *gorm.DB) ABTestRepo {
	if tx == nil {
		return r
	}
	return &DBABTestRepo{db: tx}
}
