package application

import (
	"context"
	"errors"
	"time"

	"github.com/linskybing/formpilot/internal/domain/abtest"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ABTestService struct {
	Repos  *repository.Repos
	Forms  *FormService
	Logger *zap.Logger
	Now    func() time.Time
}

func NewABTestService(repos *repository.Repos, forms *FormService, logger *zap.Logger) *ABTestService {
	return &ABTestService{
		Repos:  repos,
		Forms:  forms,
		Logger: logger,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateTest starts an active test between formID and a variant owned by the
// same user.
func (s *ABTestService) CreateTest(ctx context.Context, userID, formID string, input abtest.CreateABTestDTO) (*abtest.ABTest, error) {
	if _, err := s.Forms.GetOwnedForm(ctx, userID, formID); err != nil {
		return nil, err
	}
	variant, err := s.Forms.GetForm(ctx, input.Variant)
	if err != nil {
		return nil, err
	}
	if !variant.IsOwnedBy(userID) {
		return nil, abtest.ErrVariantNotOwned
	}

	t, err := abtest.New(formID, variant.ID, userID, input.TrafficSplit, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.Repos.ABTest.CreateTest(ctx, t); err != nil {
		return nil, storeErr(s.Logger, "create a/b test", formID, err)
	}
	return t, nil
}

func (s *ABTestService) ListTests(ctx context.Context, userID, formID string) ([]abtest.ABTest, error) {
	if _, err := s.Forms.GetOwnedForm(ctx, userID, formID); err != nil {
		return nil, err
	}
	tests, err := s.Repos.ABTest.ListTestsByForm(ctx, formID)
	if err != nil {
		return nil, storeErr(s.Logger, "list a/b tests", formID, err)
	}
	if tests == nil {
		tests = []abtest.ABTest{}
	}
	return tests, nil
}

// Assign places a visitor in one arm of the newest active test of formID.
// Without an active test every visitor gets the original form.
func (s *ABTestService) Assign(ctx context.Context, formID, visitorKey string) (*abtest.Assignment, error) {
	if visitorKey == "" {
		return nil, abtest.ErrEmptyVisitorKey
	}
	ok, err := s.Repos.Form.FormExists(ctx, formID)
	if err != nil {
		return nil, storeErr(s.Logger, "check form", formID, err)
	}
	if !ok {
		return nil, form.ErrFormNotFound
	}

	tests, err := s.Repos.ABTest.ListTestsByForm(ctx, formID)
	if err != nil {
		return nil, storeErr(s.Logger, "list a/b tests", formID, err)
	}
	for i := range tests {
		if tests[i].Status != abtest.StatusActive {
			continue
		}
		a, err := tests[i].Assign(visitorKey)
		if err != nil {
			return nil, err
		}
		return &a, nil
	}
	return &abtest.Assignment{Arm: abtest.ArmOriginal, FormID: formID}, nil
}

// GetTest loads a single test for its owner.
func (s *ABTestService) GetTest(ctx context.Context, userID, testID string) (*abtest.ABTest, error) {
	t, err := s.Repos.ABTest.GetTest(ctx, testID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, abtest.ErrTestNotFound
	}
	if err != nil {
		return nil, storeErr(s.Logger, "get a/b test", testID, err)
	}
	if t.CreatedBy != userID {
		return nil, ErrForbidden
	}
	return t, nil
}
