package document

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Fields is a schema-less document body as decoded from a JSON request.
type Fields map[string]any

// String returns the value under key when it is a string, otherwise "".
func (f Fields) String(key string) string {
	value, ok := f[key].(string)
	if !ok {
		return ""
	}
	return value
}

// Without returns a copy of the document with the given keys removed. Used
// to split indexed key fields from the free-form remainder before storage.
func (f Fields) Without(keys ...string) Fields {
	remainder := make(Fields, len(f))
	for key, value := range f {
		remainder[key] = value
	}
	for _, key := range keys {
		delete(remainder, key)
	}
	return remainder
}

// Merge returns a copy of the document with every key in patch overwriting
// the prior value. Keys absent from patch are untouched; a supplied key
// replaces the old value wholesale.
func (f Fields) Merge(patch Fields) Fields {
	merged := make(Fields, len(f)+len(patch))
	for key, value := range f {
		merged[key] = value
	}
	for key, value := range patch {
		merged[key] = value
	}
	return merged
}

// ToJSON serializes the document for a datatypes.JSON column.
func ToJSON(f Fields) (datatypes.JSON, error) {
	if f == nil {
		f = Fields{}
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("document: marshal fields: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// FromJSON decodes a stored datatypes.JSON column back into a document.
func FromJSON(raw datatypes.JSON) (Fields, error) {
	if len(raw) == 0 {
		return Fields{}, nil
	}
	fields := Fields{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("document: unmarshal fields: %w", err)
	}
	return fields, nil
}
