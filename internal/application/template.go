package application

import (
	"context"

	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/domain/template"
)

type TemplateService struct {
	Catalog *template.Catalog
	Forms   *FormService
}

func NewTemplateService(catalog *template.Catalog, forms *FormService) *TemplateService {
	return &TemplateService{Catalog: catalog, Forms: forms}
}

func (s *TemplateService) ListTemplates(filter template.Filter) []template.Template {
	return s.Catalog.List(filter)
}

func (s *TemplateService) Categories() []string {
	return s.Catalog.Categories()
}

func (s *TemplateService) GetTemplate(id string) (template.Template, error) {
	return s.Catalog.Get(id)
}

// Instantiate renders template id with values and stores the result as a
// draft owned by userID.
func (s *TemplateService) Instantiate(ctx context.Context, userID, id string, values map[string]string) (*form.Form, error) {
	schema, err := s.Catalog.Instantiate(id, values)
	if err != nil {
		return nil, err
	}
	return s.Forms.CreateFromSchema(ctx, userID, schema, form.OriginTemplate)
}
