package form

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Validate checks an untrusted candidate and returns the structurally valid
// schema. Title and fields-array failures stop validation immediately; every
// other issue is collected so the author sees the full list at once.
func Validate(candidate map[string]any) (*Schema, error) {
	var issues issueList

	title, ok := candidate["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		issues.add(KindMissingTitle, "Title is required and must be a non-empty string")
		return nil, issues.err()
	}

	rawFields, ok := candidate["fields"].([]any)
	if !ok {
		issues.add(KindFieldsNotArray, "Fields must be an array")
		return nil, issues.err()
	}

	schema := &Schema{
		Title:  strings.TrimSpace(title),
		Fields: make([]Field, 0, len(rawFields)),
	}

	switch d := candidate["description"].(type) {
	case nil:
	case string:
		schema.Description = d
	default:
		issues.add(KindInvalidDescription, "Description must be a string")
	}

	seen := make(map[string]int, len(rawFields))
	for i, raw := range rawFields {
		f, ok := validateField(i, raw, &issues)
		if !ok {
			continue
		}
		if f.ID != "" {
			if first, dup := seen[f.ID]; dup {
				issues.addField(KindDuplicateFieldID, i, f.ID, f.ID,
					"Field id %q at position %d duplicates position %d", f.ID, i, first)
				continue
			}
			seen[f.ID] = i
		}
		schema.Fields = append(schema.Fields, f)
	}

	schema.Settings = validateSettings(candidate["settings"], &issues)

	if err := issues.err(); err != nil {
		return nil, err
	}
	return schema, nil
}

// ValidateJSON decodes a JSON document and validates it. Anything other than
// a JSON object is reported as a missing title.
func ValidateJSON(data []byte) (*Schema, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	candidate, ok := doc.(map[string]any)
	if !ok {
		var issues issueList
		issues.add(KindMissingTitle, "Title is required and must be a non-empty string")
		return nil, issues.err()
	}
	return Validate(candidate)
}

func validateField(pos int, raw any, issues *issueList) (Field, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		issues.addField(KindIncompleteField, pos, "", "", "Field at position %d must be an object", pos)
		return Field{}, false
	}

	id, idOK := fieldID(obj["id"])
	if !idOK {
		issues.addField(KindInvalidFieldAttribute, pos, "", "id", "Field at position %d has a non-string id", pos)
	}

	typ, typeOK := obj["type"].(string)
	label, labelOK := obj["label"].(string)
	if !typeOK || !labelOK || strings.TrimSpace(typ) == "" || strings.TrimSpace(label) == "" {
		issues.addField(KindIncompleteField, pos, id, "", "Field at position %d must have a type and label", pos)
		return Field{}, false
	}

	ft := FieldType(typ)
	if !ft.Valid() {
		issues.addField(KindUnknownFieldType, pos, id, typ, "Invalid field type: %s", typ)
		return Field{}, false
	}

	f := Field{ID: id, Type: ft, Label: label}
	valid := idOK

	if s, ok := optionalString(obj["placeholder"]); ok {
		f.Placeholder = s
	} else {
		issues.addField(KindInvalidFieldAttribute, pos, id, "placeholder", "Field %q placeholder must be a string", label)
		valid = false
	}
	if s, ok := optionalString(obj["description"]); ok {
		f.Description = s
	} else {
		issues.addField(KindInvalidFieldAttribute, pos, id, "description", "Field %q description must be a string", label)
		valid = false
	}
	switch r := obj["required"].(type) {
	case nil:
	case bool:
		f.Required = r
	default:
		issues.addField(KindInvalidFieldAttribute, pos, id, "required", "Field %q required must be a boolean", label)
		valid = false
	}

	if ft.RequiresOptions() {
		opts, ok := validateOptions(obj["options"])
		switch {
		case !ok:
			issues.addField(KindInvalidFieldAttribute, pos, id, "options", "Field %q options must be non-empty strings", label)
			valid = false
		case len(opts) == 0:
			issues.addField(KindMissingOptions, pos, id, string(ft), "Field %q of type %s needs at least one option", label, ft)
			valid = false
		default:
			f.Options = opts
		}
	}

	if raw, present := obj["validation"]; present && raw != nil {
		rules, ok := validateRules(pos, id, label, raw, issues)
		if !ok {
			valid = false
		}
		f.Validation = rules
	}

	return f, valid
}

func fieldID(v any) (string, bool) {
	switch id := v.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(id), true
	case float64:
		if id == math.Trunc(id) && !math.IsInf(id, 0) {
			return strconv.FormatFloat(id, 'f', -1, 64), true
		}
	case int:
		return strconv.Itoa(id), true
	}
	return "", false
}

func optionalString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", true
	case string:
		return s, true
	}
	return "", false
}

func validateOptions(v any) ([]string, bool) {
	if v == nil {
		return nil, true
	}
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	opts := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, false
		}
		opts = append(opts, s)
	}
	return opts, true
}

func validateRules(pos int, id, label string, raw any, issues *issueList) (*FieldValidation, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		issues.addField(KindInvalidFieldAttribute, pos, id, "validation", "Field %q validation must be an object", label)
		return nil, false
	}

	rules := &FieldValidation{}
	valid := true
	bad := func(attr, msg string) {
		issues.addField(KindInvalidFieldAttribute, pos, id, attr, "Field %q %s", label, msg)
		valid = false
	}

	switch p := obj["pattern"].(type) {
	case nil:
	case string:
		if p != "" {
			rules.Pattern = &p
		}
	default:
		bad("pattern", "pattern must be a string")
	}

	if n, present, ok := number(obj["minLength"]); !ok {
		bad("minLength", "minLength must be a number")
	} else if present {
		if v, ok := length(n); ok {
			rules.MinLength = &v
		} else {
			bad("minLength", "minLength must be a whole number")
		}
	}
	if n, present, ok := number(obj["maxLength"]); !ok {
		bad("maxLength", "maxLength must be a number")
	} else if present {
		if v, ok := length(n); ok {
			rules.MaxLength = &v
		} else {
			bad("maxLength", "maxLength must be a whole number")
		}
	}
	if n, present, ok := number(obj["min"]); !ok {
		bad("min", "min must be a number")
	} else if present {
		rules.Min = &n
	}
	if n, present, ok := number(obj["max"]); !ok {
		bad("max", "max must be a number")
	} else if present {
		rules.Max = &n
	}

	contradiction := func(msg string, args ...any) {
		issues.addField(KindContradictoryValidation, pos, id, "", msg, args...)
		valid = false
	}
	if rules.MinLength != nil && *rules.MinLength < 0 {
		contradiction("Field %q minLength cannot be negative", label)
	}
	if rules.MaxLength != nil && *rules.MaxLength < 0 {
		contradiction("Field %q maxLength cannot be negative", label)
	}
	if rules.MinLength != nil && rules.MaxLength != nil && *rules.MinLength > *rules.MaxLength {
		contradiction("Field %q minLength %d exceeds maxLength %d", label, *rules.MinLength, *rules.MaxLength)
	}
	if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
		contradiction("Field %q min %v exceeds max %v", label, *rules.Min, *rules.Max)
	}

	if *rules == (FieldValidation{}) {
		return nil, valid
	}
	return rules, valid
}

// length converts a decoded length bound. Fractions and values outside the
// int32 range are rejected; negatives pass through for the bounds check.
func length(n float64) (int, bool) {
	if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

// number accepts the numeric shapes produced by the JSON and YAML decoders.
func number(v any) (n float64, present, ok bool) {
	switch x := v.(type) {
	case nil:
		return 0, false, true
	case float64:
		return x, true, true
	case float32:
		return float64(x), true, true
	case int:
		return float64(x), true, true
	case int64:
		return float64(x), true, true
	case json.Number:
		f, err := x.Float64()
		return f, true, err == nil
	}
	return 0, true, false
}

func validateSettings(raw any, issues *issueList) Settings {
	settings := DefaultSettings()
	if raw == nil {
		return settings
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		issues.add(KindInvalidSettings, "Settings must be an object")
		return settings
	}

	switch t := obj["theme"].(type) {
	case nil:
	case string:
		switch Theme(t) {
		case ThemeLight, ThemeDark, ThemeAuto:
			settings.Theme = Theme(t)
		default:
			issues.add(KindInvalidSettings, "Unknown theme: %s", t)
		}
	default:
		issues.add(KindInvalidSettings, "Theme must be a string")
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{"showProgressBar", &settings.ShowProgressBar},
		{"allowMultipleSubmissions", &settings.AllowMultipleSubmissions},
	}
	for _, fl := range flags {
		switch b := obj[fl.key].(type) {
		case nil:
		case bool:
			*fl.dst = b
		default:
			issues.add(KindInvalidSettings, "%s must be a boolean", fl.key)
		}
	}

	switch u := obj["redirectUrl"].(type) {
	case nil:
	case string:
		u = strings.TrimSpace(u)
		if u == "" {
			break
		}
		parsed, err := url.Parse(u)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			issues.add(KindInvalidSettings, "redirectUrl must be an absolute http(s) URL")
			break
		}
		settings.RedirectURL = &u
	default:
		issues.add(KindInvalidSettings, "redirectUrl must be a string")
	}

	return settings
}
