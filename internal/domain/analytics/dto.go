package analytics

type TrackViewDTO struct {
	FormID    string `json:"formId" binding:"required,uuid"`
	UserAgent string `json:"userAgent,omitempty" binding:"omitempty,max=1024"`
	IPAddress string `json:"ipAddress,omitempty" binding:"omitempty,ip"`
	Referrer  string `json:"referrer,omitempty" binding:"omitempty,max=2048"`
	Device    string `json:"device,omitempty" binding:"omitempty,max=50"`
}

type TrackInteractionDTO struct {
	FormID          string `json:"formId" binding:"required,uuid"`
	FieldID         string `json:"fieldId" binding:"required,max=255"`
	InteractionType string `json:"interactionType" binding:"required,max=50"`
	Value           any    `json:"value,omitempty"`
	Duration        *int64 `json:"duration,omitempty" binding:"omitempty,min=0"`
}

type TrackSubmissionDTO struct {
	FormID         string         `json:"formId" binding:"required,uuid"`
	SubmissionData map[string]any `json:"submissionData"`
	CompletionTime *float64       `json:"completionTime,omitempty" binding:"omitempty,min=0"`
	Device         string         `json:"device,omitempty" binding:"omitempty,max=50"`
	Location       any            `json:"location,omitempty"`
}
