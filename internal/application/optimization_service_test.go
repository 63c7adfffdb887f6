package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/domain/analytics"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/domain/optimization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var phoneRecommendation = optimization.Recommendation{
	Type:        optimization.TypeFieldOptimization,
	Description: "Most respondents stop at the topic field",
	Action:      "Make topic optional",
	FieldID:     "topic",
	Priority:    optimization.PriorityHigh,
}

func TestRecommendations(t *testing.T) {
	ctx := context.Background()
	m := setupServices(t)
	stored := storedContact(t, "f1", "u1")
	m.form.EXPECT().GetFormByID(gomock.Any(), "f1").Return(stored, nil)
	m.events.EXPECT().CountViews(gomock.Any(), "f1", gomock.Any()).Return(int64(10), nil)
	m.events.EXPECT().ListInteractions(gomock.Any(), "f1", gomock.Any()).Return(nil, nil)
	m.events.EXPECT().ListSubmissions(gomock.Any(), "f1", gomock.Any()).Return(nil, nil)
	m.llm.EXPECT().Optimize(gomock.Any(), stored, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *form.Form, s analytics.Summary) (*optimization.Result, error) {
			if s.Period != analytics.PeriodAll || s.TotalViews != 10 {
				t.Fatalf("unexpected summary: %+v", s)
			}
			return &optimization.Result{Recommendations: []optimization.Recommendation{phoneRecommendation}}, nil
		})

	res, err := m.services.Optimization.Recommendations(ctx, "u1", "f1")
	require.NoError(t, err)
	assert.Len(t, res.Recommendations, 1)
}

func TestRecommendationsProviderFailure(t *testing.T) {
	ctx := context.Background()
	m := setupServices(t)
	m.form.EXPECT().GetFormByID(gomock.Any(), "f1").Return(storedContact(t, "f1", "u1"), nil)
	m.events.EXPECT().CountViews(gomock.Any(), "f1", gomock.Any()).Return(int64(0), nil)
	m.events.EXPECT().ListInteractions(gomock.Any(), "f1", gomock.Any()).Return(nil, nil)
	m.events.EXPECT().ListSubmissions(gomock.Any(), "f1", gomock.Any()).Return(nil, nil)
	m.llm.EXPECT().Optimize(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("503 from provider"))

	_, err := m.services.Optimization.Recommendations(ctx, "u1", "f1")
	var ext *application.ExternalServiceError
	require.ErrorAs(t, err, &ext)
	assert.Equal(t, "f1", ext.Target)
}

func TestApplyOptimization(t *testing.T) {
	ctx := context.Background()
	m := setupServices(t)
	parent := storedContact(t, "f1", "u1")
	m.form.EXPECT().GetFormByID(gomock.Any(), "f1").Return(parent, nil)

	var inserted *form.Form
	gomock.InOrder(
		m.form.EXPECT().CreateForm(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f *form.Form) error {
			f.ID = "f2"
			inserted = f
			return nil
		}),
		m.opt.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *optimization.Record) error {
			if r.NewFormID != "f2" || r.FormID != "f1" {
				t.Fatalf("record not linked: %+v", r)
			}
			return nil
		}),
	)

	res, err := m.services.Optimization.Apply(ctx, "u1", "f1", []optimization.Recommendation{phoneRecommendation})
	require.NoError(t, err)
	assert.Same(t, inserted, res.Form)
	assert.Equal(t, 2, res.Form.Version)
	assert.Equal(t, form.StatusOptimized, res.Form.Status)
	require.NotNil(t, res.Form.OriginalFormID)
	assert.Equal(t, "f1", *res.Form.OriginalFormID)
	assert.Equal(t, "u1", res.Record.AppliedBy)
	assert.Equal(t, 1, parent.Version)
}

func TestApplyOptimizationRollsUpStoreErrors(t *testing.T) {
	ctx := context.Background()
	m := setupServices(t)
	m.form.EXPECT().GetFormByID(gomock.Any(), "f1").Return(storedContact(t, "f1", "u1"), nil)
	m.form.EXPECT().CreateForm(gomock.Any(), gomock.Any()).Return(nil)
	m.opt.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := m.services.Optimization.Apply(ctx, "u1", "f1", nil)
	var ext *application.ExternalServiceError
	require.ErrorAs(t, err, &ext)
	assert.Equal(t, "apply optimization", ext.Op)
}

func TestOptimizationHistory(t *testing.T) {
	ctx := context.Background()
	m := setupServices(t)
	m.form.EXPECT().GetFormByID(gomock.Any(), "f1").Return(storedContact(t, "f1", "u1"), nil)
	m.opt.EXPECT().ListRecordsByForm(gomock.Any(), "f1").Return(nil, nil)

	records, err := m.services.Optimization.History(ctx, "u1", "f1")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestLineage(t *testing.T) {
	ctx := context.Background()

	variant := func(id, parent string, version int) *form.Form {
		f := storedContact(t, id, "u1")
		f.Version = version
		if parent != "" {
			p := parent
			f.OriginalFormID = &p
		}
		return f
	}
	ids := func(chain []form.Form) []string {
		out := make([]string, len(chain))
		for i, f := range chain {
			out[i] = f.ID
		}
		return out
	}

	t.Run("walks to the root", func(t *testing.T) {
		m := setupServices(t)
		m.form.EXPECT().GetFormByID(gomock.Any(), "v3").Return(variant("v3", "v2", 3), nil)
		m.form.EXPECT().GetFormByID(gomock.Any(), "v2").Return(variant("v2", "v1", 2), nil)
		m.form.EXPECT().GetFormByID(gomock.Any(), "v1").Return(variant("v1", "", 1), nil)

		chain, err := m.services.Optimization.Lineage(ctx, "u1", "v3")
		require.NoError(t, err)
		assert.Equal(t, []string{"v3", "v2", "v1"}, ids(chain))
	})

	t.Run("stops at a deleted ancestor", func(t *testing.T) {
		m := setupServices(t)
		m.form.EXPECT().GetFormByID(gomock.Any(), "v2").Return(variant("v2", "gone", 2), nil)
		m.form.EXPECT().GetFormByID(gomock.Any(), "gone").Return(nil, gorm.ErrRecordNotFound)

		chain, err := m.services.Optimization.Lineage(ctx, "u1", "v2")
		require.NoError(t, err)
		assert.Equal(t, []string{"v2"}, ids(chain))
	})

	t.Run("survives a corrupted cycle", func(t *testing.T) {
		m := setupServices(t)
		m.form.EXPECT().GetFormByID(gomock.Any(), "a").Return(variant("a", "b", 3), nil)
		m.form.EXPECT().GetFormByID(gomock.Any(), "b").Return(variant("b", "a", 2), nil)

		chain, err := m.services.Optimization.Lineage(ctx, "u1", "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids(chain))
	})
}
