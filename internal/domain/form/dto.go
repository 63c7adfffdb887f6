package form

import "github.com/linskybing/formpilot/internal/domain/optimization"

// Create and update bodies are bound as raw maps and go through Validate, so
// only the auxiliary requests have DTOs.

type GenerateFormDTO struct {
	Prompt   string `json:"prompt" binding:"required,max=4000"`
	Industry string `json:"industry,omitempty" binding:"omitempty,max=100"`
	Type     string `json:"type,omitempty" binding:"omitempty,max=100"`
}

// WithDefaults fills the industry and form type the generator assumes.
func (d GenerateFormDTO) WithDefaults() GenerateFormDTO {
	if d.Industry == "" {
		d.Industry = "general"
	}
	if d.Type == "" {
		d.Type = "contact"
	}
	return d
}

type ApplyOptimizationDTO struct {
	Recommendations []optimization.Recommendation `json:"recommendations" binding:"required,dive"`
}

type AddFieldDTO struct {
	Field    map[string]any `json:"field" binding:"required"`
	Position *int           `json:"position,omitempty"`
}

type MoveFieldDTO struct {
	Position *int `json:"position" binding:"required,min=0"`
}

type InstantiateTemplateDTO struct {
	Values map[string]string `json:"values"`
}

type UploadURLDTO struct {
	FileName    string `json:"fileName" binding:"required,max=255"`
	ContentType string `json:"contentType,omitempty" binding:"omitempty,max=255"`
}

// ListResult is a page of forms plus the total row count.
type ListResult struct {
	Forms      []Form     `json:"forms"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// UpdateResult reports the updated form together with patch keys that were
// dropped because they are not client settable.
type UpdateResult struct {
	Form    *Form    `json:"form"`
	Ignored []string `json:"ignoredFields,omitempty"`
}

// OptimizeResult is the applied optimization: the new variant and its audit
// entry.
type OptimizeResult struct {
	Form   *Form                `json:"form"`
	Record *optimization.Record `json:"record"`
}
