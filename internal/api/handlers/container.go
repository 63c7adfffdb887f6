package handlers

import (
	"time"

	"github.com/linskybing/formpilot/internal/application"
	"go.uber.org/zap"
)

type Handlers struct {
	Form          *FormHandler
	Analytics     *AnalyticsHandler
	LiveAnalytics *LiveAnalyticsHandler
	Optimization  *OptimizationHandler
	Template      *TemplateHandler
	Upload        *UploadHandler
}

func New(svc *application.Services, liveInterval time.Duration, allowedOrigins []string, logger *zap.Logger) *Handlers {
	return &Handlers{
		Form:          NewFormHandler(svc.Form),
		Analytics:     NewAnalyticsHandler(svc.Analytics),
		LiveAnalytics: NewLiveAnalyticsHandler(svc.Analytics, liveInterval, allowedOrigins, logger),
		Optimization:  NewOptimizationHandler(svc.Optimization, svc.ABTest),
		Template:      NewTemplateHandler(svc.Template),
		Upload:        NewUploadHandler(svc.Upload),
	}
}
