package form

import (
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/formpilot/internal/domain/optimization"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FieldType is the closed set of input kinds a form field can take.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldDate     FieldType = "date"
	FieldFile     FieldType = "file"
	FieldRating   FieldType = "rating"
)

var fieldTypes = map[FieldType]struct{}{
	FieldText: {}, FieldEmail: {}, FieldNumber: {}, FieldSelect: {}, FieldTextarea: {},
	FieldCheckbox: {}, FieldRadio: {}, FieldDate: {}, FieldFile: {}, FieldRating: {},
}

// Valid reports whether t belongs to the enumeration.
func (t FieldType) Valid() bool {
	_, ok := fieldTypes[t]
	return ok
}

// RequiresOptions reports whether the type is a choice type that needs options.
func (t FieldType) RequiresOptions() bool {
	return t == FieldSelect || t == FieldRadio || t == FieldCheckbox
}

// FieldTypes returns the enumeration in display order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldText, FieldEmail, FieldNumber, FieldTextarea, FieldSelect,
		FieldRadio, FieldCheckbox, FieldDate, FieldFile, FieldRating,
	}
}

// Status is the lifecycle state of a form record.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusGenerated Status = "generated"
	StatusOptimized Status = "optimized"
)

// Theme is the presentation theme stored in settings.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Origin tells Create how a form was authored.
type Origin string

const (
	OriginManual   Origin = "manual"
	OriginTemplate Origin = "template"
	OriginAI       Origin = "ai"
)

// FieldValidation holds optional per-field constraints.
type FieldValidation struct {
	Pattern   *string  `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Field is a single input of a form.
type Field struct {
	ID          string           `json:"id" yaml:"id"`
	Type        FieldType        `json:"type" yaml:"type"`
	Label       string           `json:"label" yaml:"label"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool             `json:"required" yaml:"required"`
	Options     []string         `json:"options,omitempty" yaml:"options,omitempty"`
	Validation  *FieldValidation `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// Settings controls how a form behaves once published.
type Settings struct {
	Theme                    Theme   `json:"theme" yaml:"theme"`
	ShowProgressBar          bool    `json:"showProgressBar" yaml:"showProgressBar"`
	AllowMultipleSubmissions bool    `json:"allowMultipleSubmissions" yaml:"allowMultipleSubmissions"`
	RedirectURL              *string `json:"redirectUrl,omitempty" yaml:"redirectUrl,omitempty"`
}

// DefaultSettings mirrors what the builder starts a new form with.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight, ShowProgressBar: true}
}

// Schema is the validated, author-controlled content of a form.
type Schema struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Fields      []Field  `json:"fields" yaml:"fields"`
	Settings    Settings `json:"settings" yaml:"settings"`
}

// Form is the persisted form definition.
type Form struct {
	ID                          string                                           `json:"id" gorm:"type:uuid;primaryKey"`
	UserID                      string                                           `json:"userId" gorm:"size:255;not null;index"`
	Title                       string                                           `json:"title" gorm:"size:255;not null"`
	Description                 string                                           `json:"description" gorm:"type:text"`
	Fields                      datatypes.JSONSlice[Field]                       `json:"fields" gorm:"type:jsonb;not null"`
	Settings                    datatypes.JSONType[Settings]                     `json:"settings" gorm:"type:jsonb;not null"`
	Version                     int                                              `json:"version" gorm:"not null;default:1"`
	Status                      Status                                           `json:"status" gorm:"size:20;not null;default:'draft'"`
	OriginalFormID              *string                                          `json:"originalFormId,omitempty" gorm:"type:uuid;index"`
	OptimizedBy                 *string                                          `json:"optimizedBy,omitempty" gorm:"size:255"`
	OptimizedAt                 *time.Time                                       `json:"optimizedAt,omitempty"`
	OptimizationRecommendations datatypes.JSONSlice[optimization.Recommendation] `json:"optimizationRecommendations,omitempty" gorm:"type:jsonb"`
	CreatedAt                   time.Time                                        `json:"createdAt" gorm:"not null;index"`
	UpdatedAt                   time.Time                                        `json:"updatedAt" gorm:"not null"`
}

func (Form) TableName() string {
	return "forms"
}

// BeforeCreate assigns the record id; callers never pick one themselves.
func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Schema returns a deep copy of the author-controlled content.
func (f *Form) Schema() Schema {
	return Schema{
		Title:       f.Title,
		Description: f.Description,
		Fields:      cloneFields(f.Fields),
		Settings:    cloneSettings(f.Settings.Data()),
	}
}

// IsOwnedBy reports whether userID owns the form.
func (f *Form) IsOwnedBy(userID string) bool {
	return f.UserID != "" && f.UserID == userID
}

// FieldByID returns the field with the given id.
func (f *Form) FieldByID(id string) (Field, bool) {
	for _, fd := range f.Fields {
		if fd.ID == id {
			return fd, true
		}
	}
	return Field{}, false
}

// Candidate renders the schema back into the untrusted shape accepted by
// Validate, so merged or edited content can be re-checked.
func (s Schema) Candidate() map[string]any {
	fields := make([]any, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, f.candidate())
	}
	settings := map[string]any{
		"theme":                    string(s.Settings.Theme),
		"showProgressBar":          s.Settings.ShowProgressBar,
		"allowMultipleSubmissions": s.Settings.AllowMultipleSubmissions,
	}
	if s.Settings.RedirectURL != nil {
		settings["redirectUrl"] = *s.Settings.RedirectURL
	}
	return map[string]any{
		"title":       s.Title,
		"description": s.Description,
		"fields":      fields,
		"settings":    settings,
	}
}

func (f Field) candidate() map[string]any {
	out := map[string]any{
		"type":     string(f.Type),
		"label":    f.Label,
		"required": f.Required,
	}
	if f.ID != "" {
		out["id"] = f.ID
	}
	if f.Placeholder != "" {
		out["placeholder"] = f.Placeholder
	}
	if f.Description != "" {
		out["description"] = f.Description
	}
	if f.Options != nil {
		opts := make([]any, len(f.Options))
		for i, o := range f.Options {
			opts[i] = o
		}
		out["options"] = opts
	}
	if v := f.Validation; v != nil {
		rules := map[string]any{}
		if v.Pattern != nil {
			rules["pattern"] = *v.Pattern
		}
		if v.MinLength != nil {
			rules["minLength"] = float64(*v.MinLength)
		}
		if v.MaxLength != nil {
			rules["maxLength"] = float64(*v.MaxLength)
		}
		if v.Min != nil {
			rules["min"] = *v.Min
		}
		if v.Max != nil {
			rules["max"] = *v.Max
		}
		out["validation"] = rules
	}
	return out
}

func cloneFields(in []Field) []Field {
	if in == nil {
		return nil
	}
	out := make([]Field, len(in))
	for i, f := range in {
		out[i] = f.clone()
	}
	return out
}

func (f Field) clone() Field {
	c := f
	if f.Options != nil {
		c.Options = append([]string(nil), f.Options...)
	}
	if f.Validation != nil {
		v := *f.Validation
		v.Pattern = clonePtr(f.Validation.Pattern)
		v.MinLength = clonePtr(f.Validation.MinLength)
		v.MaxLength = clonePtr(f.Validation.MaxLength)
		v.Min = clonePtr(f.Validation.Min)
		v.Max = clonePtr(f.Validation.Max)
		c.Validation = &v
	}
	return c
}

func cloneSettings(s Settings) Settings {
	c := s
	c.RedirectURL = clonePtr(s.RedirectURL)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
