package application

import (
	"time"

	"github.com/linskybing/formpilot/internal/domain/template"
	"github.com/linskybing/formpilot/internal/llm"
	"github.com/linskybing/formpilot/internal/repository"
	"github.com/linskybing/formpilot/internal/storage"
	"go.uber.org/zap"
)

// Deps are the collaborators beyond the store.
type Deps struct {
	LLM          llm.Client
	Presigner    storage.Presigner
	Catalog      *template.Catalog
	IPHashSalt   string
	UploadExpiry time.Duration
	Logger       *zap.Logger
}

type Services struct {
	Form         *FormService
	Analytics    *AnalyticsService
	Optimization *OptimizationService
	ABTest       *ABTestService
	Template     *TemplateService
	Upload       *UploadService
}

func New(repos *repository.Repos, deps Deps) *Services {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := deps.LLM
	if client == nil {
		client = llm.Disabled{}
	}

	forms := NewFormService(repos, client, logger)
	analyticsSvc := NewAnalyticsService(repos, deps.IPHashSalt, logger)
	return &Services{
		Form:         forms,
		Analytics:    analyticsSvc,
		Optimization: NewOptimizationService(repos, forms, analyticsSvc, client, logger),
		ABTest:       NewABTestService(repos, forms, logger),
		Template:     NewTemplateService(deps.Catalog, forms),
		Upload:       NewUploadService(forms, deps.Presigner, deps.UploadExpiry, logger),
	}
}
