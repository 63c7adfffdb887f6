package analytics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// View is one render of a published form. The viewer address is stored only
// as a salted hash.
type View struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	FormID    string    `json:"formId" gorm:"type:uuid;not null;index"`
	UserAgent string    `json:"userAgent" gorm:"type:text"`
	IPHash    string    `json:"-" gorm:"size:64"`
	Referrer  string    `json:"referrer" gorm:"type:text"`
	Device    string    `json:"device" gorm:"size:50"`
	ViewedAt  time.Time `json:"viewedAt" gorm:"not null;index"`
}

func (View) TableName() string {
	return "form_views"
}

func (v *View) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Interaction is a respondent touching a single field.
type Interaction struct {
	ID              string         `json:"id" gorm:"type:uuid;primaryKey"`
	FormID          string         `json:"formId" gorm:"type:uuid;not null;index"`
	FieldID         string         `json:"fieldId" gorm:"size:255"`
	InteractionType string         `json:"interactionType" gorm:"size:50"`
	Value           datatypes.JSON `json:"value,omitempty" gorm:"type:jsonb"`
	Duration        *int64         `json:"duration,omitempty"`
	Timestamp       time.Time      `json:"timestamp" gorm:"column:occurred_at;not null;index"`
}

func (Interaction) TableName() string {
	return "form_interactions"
}

func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Submission is a completed response. CompletionTime is in seconds.
type Submission struct {
	ID             string         `json:"id" gorm:"type:uuid;primaryKey"`
	FormID         string         `json:"formId" gorm:"type:uuid;not null;index"`
	SubmissionData datatypes.JSON `json:"submissionData" gorm:"type:jsonb"`
	CompletionTime *float64       `json:"completionTime,omitempty"`
	Device         string         `json:"device" gorm:"size:50"`
	Location       datatypes.JSON `json:"location,omitempty" gorm:"type:jsonb"`
	SubmittedAt    time.Time      `json:"submittedAt" gorm:"not null;index"`
}

func (Submission) TableName() string {
	return "form_submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Summary is the aggregated picture of a form handed to owners and to the
// optimizer.
type Summary struct {
	FormID                string         `json:"formId"`
	Period                Period         `json:"period"`
	TotalViews            int64          `json:"totalViews"`
	TotalSubmissions      int64          `json:"totalSubmissions"`
	CompletionRate        float64        `json:"completionRate"`
	DropOffPoints         map[string]int `json:"dropOffPoints"`
	DeviceAnalytics       map[string]int `json:"deviceAnalytics"`
	AverageCompletionTime int64          `json:"averageCompletionTime"`
	Interactions          []Interaction  `json:"interactions"`
	Submissions           []Submission   `json:"submissions"`
}
