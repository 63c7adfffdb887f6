package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// SplitYAMLDocuments splits a multi-document stream on lines holding only
// "---". Separators inside quoted values are left alone.
var SplitYAMLDocuments = func(content string) []string {
	lines := strings.Split(content, "\n")
	docs := make([]string, 0)
	var currentDoc []string

	flush := func() {
		if len(currentDoc) == 0 {
			return
		}
		if doc := strings.TrimSpace(strings.Join(currentDoc, "\n")); doc != "" {
			docs = append(docs, doc)
		}
		currentDoc = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "---" || strings.HasPrefix(trimmed, "--- ") {
			flush()
			continue
		}
		currentDoc = append(currentDoc, line)
	}
	flush()

	return docs
}

// DecodeYAML unmarshals a YAML document into JSON-compatible values: maps
// keyed by string, slices, and scalars.
func DecodeYAML(content []byte) (any, error) {
	var obj any
	if err := yaml.Unmarshal(content, &obj); err != nil {
		return nil, err
	}
	return convertToStringKeys(obj), nil
}

// YAMLToJSON re-encodes a YAML document as indented JSON.
var YAMLToJSON = func(yamlContent string) (string, error) {
	obj, err := DecodeYAML([]byte(yamlContent))
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func convertToStringKeys(v any) any {
	switch x := v.(type) {
	case map[any]any:
		m2 := make(map[string]any, len(x))
		for k, v2 := range x {
			m2[fmt.Sprint(k)] = convertToStringKeys(v2)
		}
		return m2
	case []any:
		for i, v2 := range x {
			x[i] = convertToStringKeys(v2)
		}
	}
	return v
}

// ReplacePlaceholders substitutes {{key}} occurrences in s.
func ReplacePlaceholders(s string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := placeholderPattern.FindStringSubmatch(m)[1]
		if val, ok := values[key]; ok {
			return val
		}
		return m
	})
}

// ReplacePlaceholdersInValue substitutes placeholders in every string of a
// decoded document, in place.
func ReplacePlaceholdersInValue(v any, values map[string]string) any {
	switch val := v.(type) {
	case string:
		return ReplacePlaceholders(val, values)
	case []any:
		for i := range val {
			val[i] = ReplacePlaceholdersInValue(val[i], values)
		}
		return val
	case map[string]any:
		for k, v2 := range val {
			val[k] = ReplacePlaceholdersInValue(v2, values)
		}
		return val
	default:
		return v
	}
}

// Placeholders lists the distinct placeholder names used anywhere in v,
// sorted.
func Placeholders(v any) []string {
	seen := map[string]struct{}{}
	var walk func(any)
	walk = func(v any) {
		switch val := v.(type) {
		case string:
			for _, m := range placeholderPattern.FindAllStringSubmatch(val, -1) {
				seen[m[1]] = struct{}{}
			}
		case []any:
			for _, item := range val {
				walk(item)
			}
		case map[string]any:
			for _, item := range val {
				walk(item)
			}
		}
	}
	walk(v)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
