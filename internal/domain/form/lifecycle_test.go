package form

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/linskybing/formpilot/internal/domain/optimization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gorm.io/datatypes"
)

var formCmp = cmp.AllowUnexported(datatypes.JSONType[Settings]{})

func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := Now
	Now = func() time.Time { return at }
	t.Cleanup(func() { Now = orig })
}

func sequentialIDs(t *testing.T) {
	t.Helper()
	orig := NewFieldID
	var n int64
	NewFieldID = func() string { return fmt.Sprintf("fld-%d", atomic.AddInt64(&n, 1)) }
	t.Cleanup(func() { NewFieldID = orig })
}

func mustValidate(t *testing.T, candidate map[string]any) *Schema {
	t.Helper()
	schema, err := Validate(candidate)
	require.NoError(t, err)
	return schema
}

func persisted(f *Form, id string) *Form {
	f.ID = id
	return f
}

func TestCreateContactScenario(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	pinClock(t, at)
	sequentialIDs(t)

	schema := mustValidate(t, map[string]any{
		"title":  "Contact",
		"fields": []any{map[string]any{"type": "email", "label": "Email"}},
	})
	f := Create(schema, "u1", OriginManual)

	assert.Empty(t, f.ID)
	assert.Equal(t, 1, f.Version)
	assert.Equal(t, StatusDraft, f.Status)
	assert.Nil(t, f.OriginalFormID)
	assert.Equal(t, "u1", f.UserID)
	assert.Equal(t, at, f.CreatedAt)
	assert.Equal(t, at, f.UpdatedAt)
	require.Len(t, f.Fields, 1)
	assert.Equal(t, "fld-1", f.Fields[0].ID)
}

func TestCreateStatusByOrigin(t *testing.T) {
	schema := mustValidate(t, map[string]any{"title": "T", "fields": []any{}})
	assert.Equal(t, StatusDraft, Create(schema, "u", OriginManual).Status)
	assert.Equal(t, StatusDraft, Create(schema, "u", OriginTemplate).Status)
	assert.Equal(t, StatusGenerated, Create(schema, "u", OriginAI).Status)
}

func TestCreateKeepsExistingIDs(t *testing.T) {
	sequentialIDs(t)
	schema := mustValidate(t, map[string]any{"title": "T", "fields": []any{
		map[string]any{"id": "fld-1", "type": "text", "label": "A"},
		map[string]any{"type": "text", "label": "B"},
	}})
	f := Create(schema, "u", OriginManual)
	assert.Equal(t, "fld-1", f.Fields[0].ID)
	assert.Equal(t, "fld-2", f.Fields[1].ID, "generated id must skip ids already in use")
	assert.Empty(t, schema.Fields[1].ID, "schema must not be mutated")
}

func TestRoundTripRevalidation(t *testing.T) {
	candidates := []map[string]any{
		{"title": "Contact", "fields": []any{map[string]any{"type": "email", "label": "Email"}}},
		{
			"title":       "Survey",
			"description": "Tell us",
			"fields": []any{
				map[string]any{"id": "q1", "type": "rating", "label": "Score", "required": true,
					"validation": map[string]any{"min": 1.0, "max": 5.0}},
				map[string]any{"type": "checkbox", "label": "Topics", "options": []any{"a", "b"}},
				map[string]any{"type": "text", "label": "Name", "placeholder": "Jane",
					"validation": map[string]any{"pattern": "^[A-Z]", "minLength": 2.0, "maxLength": 40.0}},
			},
			"settings": map[string]any{"theme": "auto", "redirectUrl": "https://example.com"},
		},
	}

	for i, c := range candidates {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			created := Create(mustValidate(t, c), "u1", OriginManual)
			again, err := Validate(created.Schema().Candidate())
			require.NoError(t, err)
			if diff := cmp.Diff(created.Schema(), *again); diff != "" {
				t.Fatalf("re-validation changed the schema (-created +again):\n%s", diff)
			}
		})
	}
}

func TestUpdateIgnoresImmutableFields(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pinClock(t, created)
	existing := persisted(Create(mustValidate(t, map[string]any{
		"title":  "Contact",
		"fields": []any{map[string]any{"type": "email", "label": "Email"}},
	}), "u1", OriginManual), "f1")

	later := created.Add(time.Hour)
	pinClock(t, later)

	updated, ignored, err := Update(existing, map[string]any{
		"title":     "Contact us",
		"version":   99.0,
		"id":        "hijack",
		"userId":    "u2",
		"createdAt": "1999-01-01T00:00:00Z",
		"status":    "optimized",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"createdAt", "id", "status", "userId", "version"}, ignored)
	assert.Equal(t, "Contact us", updated.Title)
	assert.Equal(t, 1, updated.Version)
	assert.Equal(t, "f1", updated.ID)
	assert.Equal(t, "u1", updated.UserID)
	assert.Equal(t, StatusDraft, updated.Status)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)

	assert.Equal(t, "Contact", existing.Title, "existing must not change")
	assert.Equal(t, created, existing.UpdatedAt)
}

func TestUpdateMergesSettings(t *testing.T) {
	existing := persisted(Create(mustValidate(t, map[string]any{
		"title":    "T",
		"fields":   []any{},
		"settings": map[string]any{"theme": "dark", "allowMultipleSubmissions": true},
	}), "u1", OriginManual), "f1")

	updated, _, err := Update(existing, map[string]any{"settings": map[string]any{"showProgressBar": false}})
	require.NoError(t, err)
	assert.Equal(t, Settings{Theme: ThemeDark, AllowMultipleSubmissions: true}, updated.Settings.Data())
}

func TestUpdateRevalidates(t *testing.T) {
	existing := persisted(Create(mustValidate(t, map[string]any{"title": "T", "fields": []any{}}), "u1", OriginManual), "f1")

	_, _, err := Update(existing, map[string]any{"title": "  "})
	assert.Equal(t, []ErrorKind{KindMissingTitle}, kindsOf(t, err))

	_, _, err = Update(existing, map[string]any{"fields": []any{map[string]any{"type": "select", "label": "Pick"}}})
	assert.Equal(t, []ErrorKind{KindMissingOptions}, kindsOf(t, err))
}

func TestDeriveOptimizedScenario(t *testing.T) {
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	pinClock(t, at)

	parent := &Form{ID: "f1", UserID: "owner", Title: "Contact", Version: 1, Status: StatusDraft,
		Fields:   datatypes.JSONSlice[Field]{{ID: "a", Type: FieldText, Label: "Name", Options: nil}},
		Settings: datatypes.NewJSONType(DefaultSettings()),
	}
	recs := []optimization.Recommendation{{Type: optimization.TypeFieldOptimization, Description: "Shorten", Action: "Drop the name field", FieldID: "a"}}

	child, record, err := DeriveOptimized(parent, recs, "u1")
	require.NoError(t, err)

	assert.Empty(t, child.ID)
	require.NotNil(t, child.OriginalFormID)
	assert.Equal(t, "f1", *child.OriginalFormID)
	assert.Equal(t, 2, child.Version)
	assert.Equal(t, StatusOptimized, child.Status)
	assert.Equal(t, "u1", *child.OptimizedBy)
	assert.Equal(t, at, *child.OptimizedAt)
	assert.Equal(t, "owner", child.UserID)
	assert.Equal(t, recs, []optimization.Recommendation(child.OptimizationRecommendations))

	assert.Equal(t, "f1", record.FormID)
	assert.Equal(t, "u1", record.AppliedBy)
	assert.Equal(t, at, record.AppliedAt)
	assert.Empty(t, record.NewFormID)
}

func TestDeriveOptimizedLeavesParentUntouched(t *testing.T) {
	maxLen := 10
	parent := &Form{ID: "p", UserID: "owner", Title: "T", Version: 3, Status: StatusOptimized,
		OriginalFormID: ptr("root"),
		Fields: datatypes.JSONSlice[Field]{
			{ID: "a", Type: FieldSelect, Label: "Pick", Options: []string{"x", "y"}, Validation: &FieldValidation{MaxLength: &maxLen}},
		},
		Settings: datatypes.NewJSONType(Settings{Theme: ThemeAuto, RedirectURL: ptr("https://example.com")}),
	}
	snapshot := *parent.clone()

	child, _, err := DeriveOptimized(parent, nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, child.Version)

	child.Fields[0].Options[0] = "mutated"
	*child.Fields[0].Validation.MaxLength = 99
	s := child.Settings.Data()
	*s.RedirectURL = "https://evil.example"

	if diff := cmp.Diff(snapshot, *parent, formCmp); diff != "" {
		t.Fatalf("parent changed (-before +after):\n%s", diff)
	}
}

func TestDeriveOptimizedRequiresPersistedParent(t *testing.T) {
	_, _, err := DeriveOptimized(&Form{Version: 1}, nil, "u1")
	assert.ErrorIs(t, err, ErrParentNotPersisted)
}

func TestDeriveOptimizedChain(t *testing.T) {
	node := &Form{ID: "v1", Version: 1, Status: StatusGenerated, Settings: datatypes.NewJSONType(DefaultSettings())}
	for i := 2; i <= 5; i++ {
		child, _, err := DeriveOptimized(node, nil, "u1")
		require.NoError(t, err)
		assert.Equal(t, i, child.Version)
		assert.Equal(t, node.ID, *child.OriginalFormID)
		node = persisted(child, fmt.Sprintf("v%d", i))
	}
}

func TestDeriveOptimizedConcurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	parent := &Form{ID: "f1", UserID: "owner", Title: "T", Version: 1,
		Fields:   datatypes.JSONSlice[Field]{{ID: "a", Type: FieldText, Label: "Name"}},
		Settings: datatypes.NewJSONType(DefaultSettings()),
	}
	snapshot := *parent.clone()

	const workers = 16
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		seq   int
		ids   = map[string]struct{}{}
		fails []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child, _, err := DeriveOptimized(parent, nil, "u1")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fails = append(fails, err)
				return
			}
			// stand-in for the store assigning ids on insert
			seq++
			persisted(child, fmt.Sprintf("child-%d", seq))
			ids[child.ID] = struct{}{}
			if child.Version != 2 || *child.OriginalFormID != "f1" {
				fails = append(fails, fmt.Errorf("bad child %+v", child))
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, fails)
	assert.Len(t, ids, workers)
	if diff := cmp.Diff(snapshot, *parent, formCmp); diff != "" {
		t.Fatalf("parent changed (-before +after):\n%s", diff)
	}
}
