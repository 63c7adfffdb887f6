package utils

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitYAMLDocuments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name: "single document",
			input: `
id: contact
name: Contact form
`,
			expected: []string{"id: contact\nname: Contact form"},
		},
		{
			name: "multiple documents with --- separator",
			input: `
---
id: contact
---
id: survey
`,
			expected: []string{"id: contact", "id: survey"},
		},
		{
			name: "separator text inside values",
			input: `---
id: feedback
description: "--- not a separator ---"
---
id: survey
form:
  title: "Survey --- 2024"`,
			expected: []string{
				"id: feedback\ndescription: \"--- not a separator ---\"",
				"id: survey\nform:\n  title: \"Survey --- 2024\"",
			},
		},
		{
			name:     "only separators",
			input:    "---\n---\n",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := SplitYAMLDocuments(tt.input)
			if !reflect.DeepEqual(actual, tt.expected) {
				t.Errorf("SplitYAMLDocuments() = %v, want %v", actual, tt.expected)
			}
		})
	}
}

func TestReplacePlaceholders(t *testing.T) {
	values := map[string]string{
		"company": "Acme",
		"event":   "Launch Day",
	}

	assert.Equal(t, "Contact Acme about Launch Day", ReplacePlaceholders("Contact {{company}} about {{ event }}", values))
	assert.Equal(t, "Hello {{missing}}", ReplacePlaceholders("Hello {{missing}}", values))
}

func TestReplacePlaceholdersInValue(t *testing.T) {
	doc := map[string]any{
		"title": "{{company}} survey",
		"fields": []any{
			map[string]any{"label": "How was {{event}}?", "required": true},
		},
	}

	out := ReplacePlaceholdersInValue(doc, map[string]string{"company": "Acme", "event": "the demo"}).(map[string]any)
	assert.Equal(t, "Acme survey", out["title"])
	field := out["fields"].([]any)[0].(map[string]any)
	assert.Equal(t, "How was the demo?", field["label"])
	assert.Equal(t, true, field["required"])
}

func TestPlaceholders(t *testing.T) {
	doc := map[string]any{
		"title":  "{{company}} feedback",
		"fields": []any{map[string]any{"label": "Rate {{product}} by {{company}}"}},
	}
	assert.Equal(t, []string{"company", "product"}, Placeholders(doc))
	assert.Empty(t, Placeholders("no slots here"))
}

func TestDecodeYAML(t *testing.T) {
	doc, err := DecodeYAML([]byte(`
title: Contact
fields:
  - type: number
    label: Age
    validation:
      min: 18
      max: 120.5
  - 1: numeric key
`))
	require.NoError(t, err)

	m, ok := doc.(map[string]any)
	require.True(t, ok)
	fields := m["fields"].([]any)
	rules := fields[0].(map[string]any)["validation"].(map[string]any)
	assert.Equal(t, 18, rules["min"])
	assert.Equal(t, 120.5, rules["max"])
	assert.Equal(t, "numeric key", fields[1].(map[string]any)["1"])

	_, err = DecodeYAML([]byte("title: [unterminated"))
	assert.Error(t, err)
}

func TestYAMLToJSON(t *testing.T) {
	out, err := YAMLToJSON("title: Contact\nfields:\n  - type: email\n    label: Email\n")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Contact"`)
	assert.Contains(t, out, `"type": "email"`)
}
