package template

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/pkg/utils"
	"gopkg.in/yaml.v2"
)

//go:embed catalog.yaml
var builtin []byte

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrMissingValue     = errors.New("template value missing")
)

// Template is a reusable form body with {{placeholder}} slots.
type Template struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	Description  string            `json:"description" yaml:"description"`
	Category     string            `json:"category" yaml:"category"`
	Tags         []string          `json:"tags" yaml:"tags"`
	Defaults     map[string]string `json:"defaults,omitempty" yaml:"defaults"`
	Placeholders []string          `json:"placeholders" yaml:"-"`
	FieldCount   int               `json:"fieldCount" yaml:"-"`
	Form         map[string]any    `json:"form" yaml:"-"`
}

// Catalog is an immutable, ordered set of templates.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

// Builtin parses the catalog shipped with the binary.
func Builtin() (*Catalog, error) {
	return Parse(builtin)
}

// Parse reads a multi-document YAML stream, one template per document. Every
// template body must validate once its defaults are applied.
func Parse(content []byte) (*Catalog, error) {
	c := &Catalog{byID: map[string]int{}}
	for i, doc := range utils.SplitYAMLDocuments(string(content)) {
		var t Template
		if err := yaml.Unmarshal([]byte(doc), &t); err != nil {
			return nil, fmt.Errorf("template document %d: %w", i, err)
		}
		if t.ID == "" {
			return nil, fmt.Errorf("template document %d: missing id", i)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("template %q defined twice", t.ID)
		}

		raw, err := utils.DecodeYAML([]byte(doc))
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", t.ID, err)
		}
		root, _ := raw.(map[string]any)
		body, ok := root["form"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("template %q: form must be a mapping", t.ID)
		}
		t.Form = body
		t.Placeholders = utils.Placeholders(body)
		if fields, ok := body["fields"].([]any); ok {
			t.FieldCount = len(fields)
		}

		if _, err := t.Render(nil); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.ID, err)
		}

		c.byID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t)
	}
	return c, nil
}

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	Search   string
	Category string
}

// List returns templates matching f in catalog order. Search matches name,
// description or any tag, case-insensitively; category must match exactly
// (case-insensitive), with "all" meaning any.
func (c *Catalog) List(f Filter) []Template {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.TrimSpace(f.Category)
	out := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		if category != "" && !strings.EqualFold(category, "all") && !strings.EqualFold(category, t.Category) {
			continue
		}
		if search != "" && !t.matches(search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := map[string]struct{}{}
	for _, t := range c.templates {
		seen[t.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Get looks a template up by id.
func (c *Catalog) Get(id string) (Template, error) {
	i, ok := c.byID[id]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	return c.templates[i], nil
}

// Instantiate renders template id with values and validates the result.
func (c *Catalog) Instantiate(id string, values map[string]string) (*form.Schema, error) {
	t, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	return t.Render(values)
}

// Render fills the placeholders from values, falling back to the template's
// defaults. Supplied values are stripped of markup. The filled body must pass
// form validation.
func (t Template) Render(values map[string]string) (*form.Schema, error) {
	merged := make(map[string]string, len(t.Defaults)+len(values))
	for k, v := range t.Defaults {
		merged[k] = v
	}
	for k, v := range values {
		if v = strings.TrimSpace(form.SanitizeText(v)); v != "" {
			merged[k] = v
		}
	}

	var missing []string
	for _, name := range t.Placeholders {
		if _, ok := merged[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingValue, strings.Join(missing, ", "))
	}

	body := utils.ReplacePlaceholdersInValue(deepCopy(t.Form), merged).(map[string]any)
	return form.Validate(body)
}

func (t Template) matches(search string) bool {
	if strings.Contains(strings.ToLower(t.Name), search) ||
		strings.Contains(strings.ToLower(t.Description), search) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func deepCopy(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, v2 := range x {
			m[k] = deepCopy(v2)
		}
		return m
	case []any:
		s := make([]any, len(x))
		for i, v2 := range x {
			s[i] = deepCopy(v2)
		}
		return s
	}
	return v
}
