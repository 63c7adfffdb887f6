package abtest

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

var (
	ErrTestNotFound    = errors.New("a/b test not found")
	ErrInvalidSplit    = errors.New("traffic split must be between 1 and 99")
	ErrSameForm        = errors.New("variant must differ from the original form")
	ErrVariantNotOwned = errors.New("variant form belongs to another user")
	ErrTestNotActive   = errors.New("a/b test is not active")
	ErrEmptyVisitorKey = errors.New("visitor key is required")
)

const (
	DefaultTrafficSplit = 50
	minSplit            = 1
	maxSplit            = 99
	bucketCount         = 100
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Arms a visitor can be assigned to.
const (
	ArmOriginal = "original"
	ArmVariant  = "variant"
)

// ABTest splits traffic between a form and one of its variants.
// TrafficSplit is the percentage of visitors sent to the variant.
type ABTest struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	FormID        string    `json:"formId" gorm:"type:uuid;not null;index"`
	VariantFormID string    `json:"variantFormId" gorm:"type:uuid;not null"`
	TrafficSplit  int       `json:"trafficSplit" gorm:"not null;default:50"`
	Status        Status    `json:"status" gorm:"size:20;not null;default:'active'"`
	CreatedBy     string    `json:"createdBy" gorm:"size:255;not null"`
	CreatedAt     time.Time `json:"createdAt" gorm:"not null"`
}

func (ABTest) TableName() string {
	return "ab_tests"
}

func (t *ABTest) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type CreateABTestDTO struct {
	Variant      string `json:"variant" binding:"required,uuid"`
	TrafficSplit *int   `json:"trafficSplit,omitempty"`
}

type AssignDTO struct {
	VisitorKey string `json:"visitorKey" binding:"required,max=255"`
}

// Assignment is the arm chosen for a visitor and the form it resolves to.
type Assignment struct {
	TestID string `json:"testId"`
	Arm    string `json:"arm"`
	FormID string `json:"formId"`
}

// New builds an active test. A nil split means the default even split.
func New(formID, variantID, createdBy string, split *int, now time.Time) (*ABTest, error) {
	s := DefaultTrafficSplit
	if split != nil {
		s = *split
	}
	if s < minSplit || s > maxSplit {
		return nil, ErrInvalidSplit
	}
	if formID == variantID {
		return nil, ErrSameForm
	}
	return &ABTest{
		FormID:        formID,
		VariantFormID: variantID,
		TrafficSplit:  s,
		Status:        StatusActive,
		CreatedBy:     createdBy,
		CreatedAt:     now,
	}, nil
}

// Assign picks an arm for visitorKey. The same key always lands in the same
// arm of a given test.
func (t *ABTest) Assign(visitorKey string) (Assignment, error) {
	if visitorKey == "" {
		return Assignment{}, ErrEmptyVisitorKey
	}
	if t.Status != StatusActive {
		return Assignment{}, ErrTestNotActive
	}
	a := Assignment{TestID: t.ID, Arm: ArmOriginal, FormID: t.FormID}
	if Bucket(t.ID, visitorKey) < t.TrafficSplit {
		a.Arm = ArmVariant
		a.FormID = t.VariantFormID
	}
	return a, nil
}

// Bucket maps a visitor of a test onto 0..99.
func Bucket(testID, visitorKey string) int {
	sum := blake2b.Sum256([]byte(testID + "\x00" + visitorKey))
	return int(binary.BigEndian.Uint64(sum[:8]) % bucketCount)
}
