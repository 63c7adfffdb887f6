package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/domain/analytics"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func pinServiceClock(m *serviceMocks) {
	m.services.Analytics.Now = func() time.Time { return fixedNow }
	m.services.ABTest.Now = func() time.Time { return fixedNow }
}

func TestTrackView(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the address and detects the device", func(t *testing.T) {
		m := setupServices(t)
		pinServiceClock(m)
		m.form.EXPECT().FormExists(gomock.Any(), "f1").Return(true, nil)
		m.events.EXPECT().CreateView(gomock.Any(), gomock.Any()).Return(nil)

		v, err := m.services.Analytics.TrackView(ctx, analytics.TrackViewDTO{
			FormID:    "f1",
			UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile",
		}, "198.51.100.4")
		require.NoError(t, err)
		assert.Equal(t, "mobile", v.Device)
		assert.Equal(t, utils.HashIP("pepper", "198.51.100.4"), v.IPHash)
		assert.Equal(t, fixedNow, v.ViewedAt)
	})

	t.Run("reported address wins over the connection", func(t *testing.T) {
		m := setupServices(t)
		m.form.EXPECT().FormExists(gomock.Any(), "f1").Return(true, nil)
		m.events.EXPECT().CreateView(gomock.Any(), gomock.Any()).Return(nil)

		v, err := m.services.Analytics.TrackView(ctx, analytics.TrackViewDTO{FormID: "f1", IPAddress: "203.0.113.9", Device: "kiosk"}, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, utils.HashIP("pepper", "203.0.113.9"), v.IPHash)
		assert.Equal(t, "kiosk", v.Device)
	})

	t.Run("unknown form", func(t *testing.T) {
		m := setupServices(t)
		m.form.EXPECT().FormExists(gomock.Any(), "nope").Return(false, nil)

		_, err := m.services.Analytics.TrackView(ctx, analytics.TrackViewDTO{FormID: "nope"}, "")
		assert.ErrorIs(t, err, form.ErrFormNotFound)
	})
}

func TestTrackInteractionAndSubmission(t *testing.T) {
	ctx := context.Background()
	m := setupServices(t)
	pinServiceClock(m)
	m.form.EXPECT().FormExists(gomock.Any(), "f1").Return(true, nil).Times(2)
	m.events.EXPECT().CreateInteraction(gomock.Any(), gomock.Any()).Return(nil)
	m.events.EXPECT().CreateSubmission(gomock.Any(), gomock.Any()).Return(nil)

	dur := int64(1500)
	in, err := m.services.Analytics.TrackInteraction(ctx, analytics.TrackInteractionDTO{
		FormID:          "f1",
		FieldID:         "email",
		InteractionType: "focus",
		Value:           map[string]any{"length": 3},
		Duration:        &dur,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"length":3}`, string(in.Value))
	assert.Equal(t, fixedNow, in.Timestamp)

	secs := 42.5
	sub, err := m.services.Analytics.TrackSubmission(ctx, analytics.TrackSubmissionDTO{
		FormID:         "f1",
		SubmissionData: map[string]any{"email": "a@b.co"},
		CompletionTime: &secs,
	}, "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	require.NoError(t, err)
	assert.Equal(t, "desktop", sub.Device)
	assert.JSONEq(t, `{"email":"a@b.co"}`, string(sub.SubmissionData))
	assert.Nil(t, sub.Location)
}

func TestAnalyticsSummary(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()

	t.Run("aggregates within the period", func(t *testing.T) {
		m := setupServices(t)
		pinServiceClock(m)
		since := fixedNow.AddDate(0, 0, -7)
		secs := func(v float64) *float64 { return &v }

		m.events.EXPECT().CountViews(gomock.Any(), "f1", since).Return(int64(8), nil)
		m.events.EXPECT().ListInteractions(gomock.Any(), "f1", since).Return([]analytics.Interaction{
			{FieldID: "email"}, {FieldID: "email"}, {FieldID: "phone"},
		}, nil)
		m.events.EXPECT().ListSubmissions(gomock.Any(), "f1", since).Return([]analytics.Submission{
			{Device: "mobile", CompletionTime: secs(30)},
			{CompletionTime: secs(61)},
		}, nil)

		s, err := m.services.Analytics.Summary(ctx, "f1", analytics.Period7d)
		require.NoError(t, err)
		assert.Equal(t, int64(8), s.TotalViews)
		assert.Equal(t, int64(2), s.TotalSubmissions)
		assert.Equal(t, 25.0, s.CompletionRate)
		assert.Equal(t, map[string]int{"email": 2, "phone": 1}, s.DropOffPoints)
		assert.Equal(t, map[string]int{"mobile": 1, "unknown": 1}, s.DeviceAnalytics)
		assert.Equal(t, int64(46), s.AverageCompletionTime)
	})

	t.Run("one failing read fails the summary", func(t *testing.T) {
		m := setupServices(t)
		m.events.EXPECT().CountViews(gomock.Any(), "f1", gomock.Any()).Return(int64(0), errors.New("timeout"))
		m.events.EXPECT().ListInteractions(gomock.Any(), "f1", gomock.Any()).Return(nil, nil).AnyTimes()
		m.events.EXPECT().ListSubmissions(gomock.Any(), "f1", gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := m.services.Analytics.Summary(ctx, "f1", analytics.PeriodAll)
		var ext *application.ExternalServiceError
		assert.ErrorAs(t, err, &ext)
	})

	t.Run("owner only", func(t *testing.T) {
		m := setupServices(t)
		m.form.EXPECT().GetFormByID(gomock.Any(), "f1").Return(storedContact(t, "f1", "owner"), nil)

		_, err := m.services.Analytics.OwnerSummary(ctx, "intruder", "f1", analytics.DefaultPeriod)
		assert.ErrorIs(t, err, application.ErrForbidden)
	})
}

func TestPruneEvents(t *testing.T) {
	ctx := context.Background()
	m := setupServices(t)
	pinServiceClock(m)

	n, err := m.services.Analytics.PruneEvents(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, n)

	m.events.EXPECT().DeleteEventsBefore(gomock.Any(), fixedNow.AddDate(0, 0, -30)).Return(int64(12), nil)
	n, err = m.services.Analytics.PruneEvents(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}
