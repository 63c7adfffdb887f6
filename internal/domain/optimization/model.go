package optimization

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recommendation kinds returned by the optimizer.
const (
	TypeFieldOptimization = "field-optimization"
	TypeFlowImprovement   = "flow-improvement"
	TypeValidationUpdate  = "validation-update"
	TypeUIEnhancement     = "ui-enhancement"
)

// Priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is one actionable suggestion from the optimizer.
type Recommendation struct {
	Type           string `json:"type"`
	Description    string `json:"description"`
	Action         string `json:"action"`
	ExpectedImpact string `json:"expectedImpact,omitempty"`
	FieldID        string `json:"fieldId,omitempty"`
	Priority       string `json:"priority,omitempty"`
}

// Summary is the optimizer's overall assessment.
type Summary struct {
	CurrentCompletionRate string   `json:"currentCompletionRate"`
	ProjectedImprovement  string   `json:"projectedImprovement"`
	KeyIssues             []string `json:"keyIssues"`
}

// Result is what the optimizer returns for a form.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	Summary         Summary          `json:"summary"`
}

// Record is an append-only audit entry for an applied optimization. Rows are
// inserted once and never updated.
type Record struct {
	ID              string                              `json:"id" gorm:"type:uuid;primaryKey"`
	FormID          string                              `json:"formId" gorm:"type:uuid;not null;index"`
	NewFormID       string                              `json:"newFormId" gorm:"type:uuid;not null"`
	Recommendations datatypes.JSONSlice[Recommendation] `json:"recommendations" gorm:"type:jsonb;not null"`
	AppliedBy       string                              `json:"appliedBy" gorm:"size:255;not null"`
	AppliedAt       time.Time                           `json:"appliedAt" gorm:"not null;index"`
}

func (Record) TableName() string {
	return "form_optimizations"
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Normalize fills defaults the model sometimes omits and drops entries that
// carry no action at all.
func (r *Result) Normalize() {
	kept := r.Recommendations[:0]
	for _, rec := range r.Recommendations {
		if rec.Description == "" && rec.Action == "" {
			continue
		}
		if rec.Priority == "" {
			rec.Priority = PriorityMedium
		}
		kept = append(kept, rec)
	}
	r.Recommendations = kept
	if r.Recommendations == nil {
		r.Recommendations = []Recommendation{}
	}
	if r.Summary.KeyIssues == nil {
		r.Summary.KeyIssues = []string{}
	}
}
