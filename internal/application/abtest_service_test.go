package application_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/domain/abtest"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateABTest(t *testing.T) {
	ctx := context.Background()

	t.Run("default split", func(t *testing.T) {
		m := setupServices(t)
		pinServiceClock(m)
		m.form.EXPECT().GetFormByID(gomock.Any(), "f1").Return(storedContact(t, "f1", "u1"), nil)
		m.form.EXPECT().GetFormByID(gomock.Any(), "f2").Return(storedContact(t, "f2", "u1"), nil)
		m.abtest.EXPECT().CreateTest(gomock.Any(), gomock.Any()).Return(nil)

		test, err := m.services.ABTest.CreateTest(ctx, "u1", "f1", abtest.CreateABTestDTO{Variant: "f2"})
		require.NoError(t, err)
		assert.Equal(t, abtest.DefaultTrafficSplit, test.TrafficSplit)
		assert.Equal(t, abtest.StatusActive, test.Status)
		assert.Equal(t, fixedNow, test.CreatedAt)
	})

	t.Run("variant of another user", func(t *testing.T) {
		m := setupServices(t)
		m.form.EXPECT().GetFormByID(gomock.Any(), "f1").Return(storedContact(t, "f1", "u1"), nil)
		m.form.EXPECT().GetFormByID(gomock.Any(), "f2").Return(storedContact(t, "f2", "u2"), nil)

		_, err := m.services.ABTest.CreateTest(ctx, "u1", "f1", abtest.CreateABTestDTO{Variant: "f2"})
		assert.ErrorIs(t, err, abtest.ErrVariantNotOwned)
	})

	t.Run("missing variant", func(t *testing.T) {
		m := setupServices(t)
		m.form.EXPECT().GetFormByID(gomock.Any(), "f1").Return(storedContact(t, "f1", "u1"), nil)
		m.form.EXPECT().GetFormByID(gomock.Any(), "f2").Return(nil, gorm.ErrRecordNotFound)

		_, err := m.services.ABTest.CreateTest(ctx, "u1", "f1", abtest.CreateABTestDTO{Variant: "f2"})
		assert.ErrorIs(t, err, form.ErrFormNotFound)
	})

	t.Run("split out of range", func(t *testing.T) {
		m := setupServices(t)
		m.form.EXPECT().GetFormByID(gomock.Any(), "f1").Return(storedContact(t, "f1", "u1"), nil)
		m.form.EXPECT().GetFormByID(gomock.Any(), "f2").Return(storedContact(t, "f2", "u1"), nil)

		split := 100
		_, err := m.services.ABTest.CreateTest(ctx, "u1", "f1", abtest.CreateABTestDTO{Variant: "f2", TrafficSplit: &split})
		assert.ErrorIs(t, err, abtest.ErrInvalidSplit)
	})
}

func TestAssignVisitor(t *testing.T) {
	ctx := context.Background()

	t.Run("newest active test decides", func(t *testing.T) {
		m := setupServices(t)
		m.form.EXPECT().FormExists(gomock.Any(), "f1").Return(true, nil).Times(2)
		m.abtest.EXPECT().ListTestsByForm(gomock.Any(), "f1").Return([]abtest.ABTest{
			{ID: "paused", FormID: "f1", VariantFormID: "f9", TrafficSplit: 99, Status: abtest.StatusPaused},
			{ID: "t1", FormID: "f1", VariantFormID: "f2", TrafficSplit: 50, Status: abtest.StatusActive},
		}, nil).Times(2)

		first, err := m.services.ABTest.Assign(ctx, "f1", "visitor-123")
		require.NoError(t, err)
		assert.Equal(t, "t1", first.TestID)
		assert.Contains(t, []string{"f1", "f2"}, first.FormID)

		again, err := m.services.ABTest.Assign(ctx, "f1", "visitor-123")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})

	t.Run("no active test", func(t *testing.T) {
		m := setupServices(t)
		m.form.EXPECT().FormExists(gomock.Any(), "f1").Return(true, nil)
		m.abtest.EXPECT().ListTestsByForm(gomock.Any(), "f1").Return(nil, nil)

		a, err := m.services.ABTest.Assign(ctx, "f1", "v")
		require.NoError(t, err)
		assert.Equal(t, abtest.ArmOriginal, a.Arm)
		assert.Equal(t, "f1", a.FormID)
	})

	t.Run("empty key", func(t *testing.T) {
		m := setupServices(t)
		_, err := m.services.ABTest.Assign(ctx, "f1", "")
		assert.ErrorIs(t, err, abtest.ErrEmptyVisitorKey)
	})
}

func TestGetABTest(t *testing.T) {
	ctx := context.Background()
	m := setupServices(t)
	m.abtest.EXPECT().GetTest(gomock.Any(), "t1").Return(&abtest.ABTest{ID: "t1", CreatedBy: "u1"}, nil).Times(2)
	m.abtest.EXPECT().GetTest(gomock.Any(), "t2").Return(nil, gorm.ErrRecordNotFound)

	test, err := m.services.ABTest.GetTest(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", test.ID)

	_, err = m.services.ABTest.GetTest(ctx, "u2", "t1")
	assert.ErrorIs(t, err, application.ErrForbidden)

	_, err = m.services.ABTest.GetTest(ctx, "u1", "t2")
	assert.ErrorIs(t, err, abtest.ErrTestNotFound)
}
