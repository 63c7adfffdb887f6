package form

// The editing helpers never touch their input: each returns a new Schema that
// has passed Validate again.

// NewField returns a blank field of type t with a fresh id. Choice types start
// with a single placeholder option. The label is empty and must be filled in
// before the field validates.
func NewField(t FieldType) Field {
	f := Field{ID: NewFieldID(), Type: t}
	if t.RequiresOptions() {
		f.Options = []string{"Option 1"}
	}
	return f
}

// AddField inserts raw at position at. A negative position appends.
func AddField(s Schema, raw map[string]any, at int) (*Schema, error) {
	fields := s.Candidate()["fields"].([]any)
	if at < 0 {
		at = len(fields)
	}
	if at > len(fields) {
		return nil, ErrInvalidPosition
	}

	entry := copyMap(raw)
	if id, ok := entry["id"]; !ok || id == nil || id == "" {
		entry["id"] = NewFieldID()
	}

	out := make([]any, 0, len(fields)+1)
	out = append(out, fields[:at]...)
	out = append(out, entry)
	out = append(out, fields[at:]...)
	return revalidate(s, out)
}

// UpdateField overlays patch onto the field with the given id. The id itself
// cannot be changed.
func UpdateField(s Schema, id string, patch map[string]any) (*Schema, error) {
	idx := indexOf(s.Fields, id)
	if idx < 0 {
		return nil, ErrFieldNotFound
	}
	fields := s.Candidate()["fields"].([]any)
	merged := copyMap(fields[idx].(map[string]any))
	for k, v := range patch {
		if k == "id" {
			continue
		}
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	fields[idx] = merged
	return revalidate(s, fields)
}

// RemoveField drops the field with the given id.
func RemoveField(s Schema, id string) (*Schema, error) {
	idx := indexOf(s.Fields, id)
	if idx < 0 {
		return nil, ErrFieldNotFound
	}
	out := s.Clone()
	out.Fields = append(out.Fields[:idx], out.Fields[idx+1:]...)
	return &out, nil
}

// MoveField relocates the field with the given id to index to.
func MoveField(s Schema, id string, to int) (*Schema, error) {
	idx := indexOf(s.Fields, id)
	if idx < 0 {
		return nil, ErrFieldNotFound
	}
	if to < 0 || to >= len(s.Fields) {
		return nil, ErrInvalidPosition
	}
	out := s.Clone()
	f := out.Fields[idx]
	out.Fields = append(out.Fields[:idx], out.Fields[idx+1:]...)
	out.Fields = append(out.Fields[:to], append([]Field{f}, out.Fields[to:]...)...)
	return &out, nil
}

// Clone returns a deep copy of s.
func (s Schema) Clone() Schema {
	return Schema{
		Title:       s.Title,
		Description: s.Description,
		Fields:      cloneFields(s.Fields),
		Settings:    cloneSettings(s.Settings),
	}
}

func revalidate(s Schema, fields []any) (*Schema, error) {
	candidate := s.Candidate()
	candidate["fields"] = fields
	return Validate(candidate)
}

func indexOf(fields []Field, id string) int {
	if id == "" {
		return -1
	}
	for i, f := range fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
