package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	Form         FormRepo
	Optimization OptimizationRepo
	Analytics    AnalyticsRepo
	ABTest       ABTestRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Form:         NewFormRepo(db),
		Optimization: NewOptimizationRepo(db),
		Analytics:    NewAnalyticsRepo(db),
		ABTest:       NewABTestRepo(db),
		db:           db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Form:         r.Form.WithTx(tx),
		Optimization: r.Optimization.WithTx(tx),
		Analytics:    r.Analytics.WithTx(tx),
		ABTest:       r.ABTest.WithTx(tx),
		db:           tx,
	}
}

// ExecTx runs fn inside a transaction. Without a database handle, as with
// mocked repositories in tests, fn runs directly against r.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
