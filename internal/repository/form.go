package repository

import (
	"context"

	"github.com/linskybing/formpilot/internal/domain/form"
	"gorm.io/gorm"
)

type FormRepo interface {
	CreateForm(ctx context.Context, f *form.Form) error
	GetFormByID(ctx context.Context, id string) (*form.Form, error)
	FormExists(ctx context.Context, id string) (bool, error)
	UpdateForm(ctx context.Context, f *form.Form) error
	DeleteForm(ctx context.Context, id string) error
	ListFormsByUser(ctx context.Context, userID string, offset, limit int) ([]form.Form, int64, error)
	WithTx(tx *gorm.DB) FormRepo
}

type DBFormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *DBFormRepo {
	return &DBFormRepo{
		db: db,
	}
}

func (r *DBFormRepo) CreateForm(ctx context.Context, f *form.Form) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *DBFormRepo) GetFormByID(ctx context.Context, id string) (*form.Form, error) {
	var f form.Form
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *DBFormRepo) FormExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&form.Form{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// UpdateForm writes the mutable columns only. Identity and lineage columns are
// set once on insert.
func (r *DBFormRepo) UpdateForm(ctx context.Context, f *form.Form) error {
	res := r.db.WithContext(ctx).Model(&form.Form{}).Where("id = ?", f.ID).Updates(map[string]any{
		"title":       f.Title,
		"description": f.Description,
		"fields":      f.Fields,
		"settings":    f.Settings,
		"updated_at":  f.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBFormRepo) DeleteForm(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&form.Form{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBFormRepo) ListFormsByUser(ctx context.Context, userID string, offset, limit int) ([]form.Form, int64, error) {
	var (
		forms []form.Form
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&form.Form{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&forms).Error
	return forms, total, err
}

func (r *DBFormRepo) WithTx(tx *gorm.DB) FormRepo {
	if tx == nil {
		return r
	}
	return &DBFormRepo{db: tx}
}
