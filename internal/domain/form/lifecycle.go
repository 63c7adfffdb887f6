package form

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/formpilot/internal/domain/optimization"
	"gorm.io/datatypes"
)

// Now and NewFieldID are package hooks so tests can pin time and ids.
var (
	Now        = func() time.Time { return time.Now().UTC() }
	NewFieldID = func() string { return uuid.NewString() }
)

var mutableKeys = map[string]struct{}{
	"title":       {},
	"description": {},
	"fields":      {},
	"settings":    {},
}

// Create turns a validated schema into a new, not yet persisted form. The
// record id is assigned by the store on insert.
func Create(schema *Schema, ownerID string, origin Origin) *Form {
	now := Now()
	status := StatusDraft
	if origin == OriginAI {
		status = StatusGenerated
	}
	return &Form{
		UserID:      ownerID,
		Title:       schema.Title,
		Description: schema.Description,
		Fields:      datatypes.JSONSlice[Field](assignFieldIDs(cloneFields(schema.Fields))),
		Settings:    datatypes.NewJSONType(cloneSettings(schema.Settings)),
		Version:     1,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Update merges patch into the content of existing and re-validates the
// result. Keys outside title, description, fields and settings are dropped
// and returned as ignored; identity and history fields are never client
// settable. existing is left untouched.
func Update(existing *Form, patch map[string]any) (*Form, []string, error) {
	candidate := existing.Schema().Candidate()

	var ignored []string
	for key, val := range patch {
		if _, ok := mutableKeys[key]; !ok {
			ignored = append(ignored, key)
			continue
		}
		if key == "settings" {
			candidate[key] = mergeSettings(candidate[key], val)
			continue
		}
		candidate[key] = val
	}
	sort.Strings(ignored)

	schema, err := Validate(candidate)
	if err != nil {
		return nil, ignored, err
	}

	updated := existing.clone()
	updated.Title = schema.Title
	updated.Description = schema.Description
	updated.Fields = datatypes.JSONSlice[Field](assignFieldIDs(schema.Fields))
	updated.Settings = datatypes.NewJSONType(schema.Settings)
	updated.UpdatedAt = Now()
	return updated, ignored, nil
}

// ReplaceSchema swaps in content produced by the editing helpers.
func ReplaceSchema(existing *Form, schema *Schema) *Form {
	updated := existing.clone()
	updated.Title = schema.Title
	updated.Description = schema.Description
	updated.Fields = datatypes.JSONSlice[Field](assignFieldIDs(cloneFields(schema.Fields)))
	updated.Settings = datatypes.NewJSONType(cloneSettings(schema.Settings))
	updated.UpdatedAt = Now()
	return updated
}

// DeriveOptimized produces the next version of parent along its lineage
// together with the audit entry describing the step. The new form has no id
// until it is inserted; callers set record.NewFormID afterwards. Concurrent
// derivations from one parent may yield siblings sharing a version number.
func DeriveOptimized(parent *Form, recommendations []optimization.Recommendation, appliedBy string) (*Form, *optimization.Record, error) {
	if parent.ID == "" {
		return nil, nil, ErrParentNotPersisted
	}

	now := Now()
	parentID := parent.ID
	by := appliedBy
	at := now
	recs := append([]optimization.Recommendation(nil), recommendations...)

	child := &Form{
		UserID:                      parent.UserID,
		Title:                       parent.Title,
		Description:                 parent.Description,
		Fields:                      datatypes.JSONSlice[Field](cloneFields(parent.Fields)),
		Settings:                    datatypes.NewJSONType(cloneSettings(parent.Settings.Data())),
		Version:                     parent.Version + 1,
		Status:                      StatusOptimized,
		OriginalFormID:              &parentID,
		OptimizedBy:                 &by,
		OptimizedAt:                 &at,
		OptimizationRecommendations: datatypes.JSONSlice[optimization.Recommendation](recs),
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}
	if child.Version < 2 {
		child.Version = 2
	}

	record := &optimization.Record{
		FormID:          parentID,
		Recommendations: datatypes.JSONSlice[optimization.Recommendation](append([]optimization.Recommendation(nil), recs...)),
		AppliedBy:       appliedBy,
		AppliedAt:       now,
	}
	return child, record, nil
}

func (f *Form) clone() *Form {
	c := *f
	c.Fields = datatypes.JSONSlice[Field](cloneFields(f.Fields))
	c.Settings = datatypes.NewJSONType(cloneSettings(f.Settings.Data()))
	c.OriginalFormID = clonePtr(f.OriginalFormID)
	c.OptimizedBy = clonePtr(f.OptimizedBy)
	c.OptimizedAt = clonePtr(f.OptimizedAt)
	if f.OptimizationRecommendations != nil {
		c.OptimizationRecommendations = append(datatypes.JSONSlice[optimization.Recommendation](nil), f.OptimizationRecommendations...)
	}
	return &c
}

// assignFieldIDs gives every field without an id a fresh one that does not
// collide with ids already present.
func assignFieldIDs(fields []Field) []Field {
	used := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.ID != "" {
			used[f.ID] = struct{}{}
		}
	}
	for i := range fields {
		if fields[i].ID != "" {
			continue
		}
		id := NewFieldID()
		for {
			if _, taken := used[id]; !taken {
				break
			}
			id = NewFieldID()
		}
		used[id] = struct{}{}
		fields[i].ID = id
	}
	return fields
}

func mergeSettings(current, patch any) any {
	base, ok := current.(map[string]any)
	over, ok2 := patch.(map[string]any)
	if !ok || !ok2 {
		return patch
	}
	merged := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range over {
		merged[k] = v
	}
	return merged
}
