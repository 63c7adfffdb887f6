package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/linskybing/formpilot/internal/domain/analytics"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/repository"
	"github.com/linskybing/formpilot/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

type AnalyticsService struct {
	Repos  *repository.Repos
	Salt   string
	Logger *zap.Logger
	Now    func() time.Time
}

func NewAnalyticsService(repos *repository.Repos, salt string, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		Repos:  repos,
		Salt:   salt,
		Logger: logger,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// TrackView records a render of a form. The reported address, or the
// connection address when none was reported, is stored only as a hash.
func (s *AnalyticsService) TrackView(ctx context.Context, input analytics.TrackViewDTO, clientIP string) (*analytics.View, error) {
	if err := s.ensureForm(ctx, input.FormID); err != nil {
		return nil, err
	}

	ip := input.IPAddress
	if ip == "" {
		ip = clientIP
	}
	device := input.Device
	if device == "" {
		device = analytics.DetectDevice(input.UserAgent)
	}

	v := &analytics.View{
		FormID:    input.FormID,
		UserAgent: input.UserAgent,
		IPHash:    utils.HashIP(s.Salt, ip),
		Referrer:  input.Referrer,
		Device:    device,
		ViewedAt:  s.Now(),
	}
	if err := s.Repos.Analytics.CreateView(ctx, v); err != nil {
		return nil, storeErr(s.Logger, "track view", input.FormID, err)
	}
	return v, nil
}

func (s *AnalyticsService) TrackInteraction(ctx context.Context, input analytics.TrackInteractionDTO) (*analytics.Interaction, error) {
	if err := s.ensureForm(ctx, input.FormID); err != nil {
		return nil, err
	}

	value, err := toJSON(input.Value)
	if err != nil {
		return nil, err
	}
	in := &analytics.Interaction{
		FormID:          input.FormID,
		FieldID:         input.FieldID,
		InteractionType: input.InteractionType,
		Value:           value,
		Duration:        input.Duration,
		Timestamp:       s.Now(),
	}
	if err := s.Repos.Analytics.CreateInteraction(ctx, in); err != nil {
		return nil, storeErr(s.Logger, "track interaction", input.FormID, err)
	}
	return in, nil
}

// TrackSubmission records a completed response. The device falls back to the
// request's user agent.
func (s *AnalyticsService) TrackSubmission(ctx context.Context, input analytics.TrackSubmissionDTO, userAgent string) (*analytics.Submission, error) {
	if err := s.ensureForm(ctx, input.FormID); err != nil {
		return nil, err
	}

	data, err := toJSON(input.SubmissionData)
	if err != nil {
		return nil, err
	}
	location, err := toJSON(input.Location)
	if err != nil {
		return nil, err
	}
	device := input.Device
	if device == "" {
		device = analytics.DetectDevice(userAgent)
	}

	sub := &analytics.Submission{
		FormID:         input.FormID,
		SubmissionData: data,
		CompletionTime: input.CompletionTime,
		Device:         device,
		Location:       location,
		SubmittedAt:    s.Now(),
	}
	if err := s.Repos.Analytics.CreateSubmission(ctx, sub); err != nil {
		return nil, storeErr(s.Logger, "track submission", input.FormID, err)
	}
	return sub, nil
}

func (s *AnalyticsService) ensureForm(ctx context.Context, formID string) error {
	ok, err := s.Repos.Form.FormExists(ctx, formID)
	if err != nil {
		return storeErr(s.Logger, "check form", formID, err)
	}
	if !ok {
		return form.ErrFormNotFound
	}
	return nil
}

// OwnerSummary is Summary restricted to the form's owner.
func (s *AnalyticsService) OwnerSummary(ctx context.Context, userID, formID string, period analytics.Period) (*analytics.Summary, error) {
	f, err := s.Repos.Form.GetFormByID(ctx, formID)
	if err != nil {
		return nil, storeErr(s.Logger, "get form", formID, err)
	}
	if !f.IsOwnedBy(userID) {
		return nil, ErrForbidden
	}
	return s.Summary(ctx, formID, period)
}

// Summary aggregates the events of formID inside period. The three event
// tables are read concurrently.
func (s *AnalyticsService) Summary(ctx context.Context, formID string, period analytics.Period) (*analytics.Summary, error) {
	since := period.Since(s.Now())

	var (
		views        int64
		interactions []analytics.Interaction
		submissions  []analytics.Submission
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		views, err = s.Repos.Analytics.CountViews(gctx, formID, since)
		return err
	})
	g.Go(func() error {
		var err error
		interactions, err = s.Repos.Analytics.ListInteractions(gctx, formID, since)
		return err
	})
	g.Go(func() error {
		var err error
		submissions, err = s.Repos.Analytics.ListSubmissions(gctx, formID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeErr(s.Logger, "load analytics", formID, err)
	}

	summary := analytics.Summarize(formID, period, views, interactions, submissions)
	return &summary, nil
}

// PruneEvents deletes raw events older than retentionDays. Zero or less keeps
// everything.
func (s *AnalyticsService) PruneEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.Now().AddDate(0, 0, -retentionDays)
	n, err := s.Repos.Analytics.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return 0, external("prune analytics", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}

func toJSON(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
