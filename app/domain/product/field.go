package product

import (
	"encoding/json"
	"strings"
)

// FieldKind tags the shape a content-store attribute arrived in. Editors
// author the same attribute as a plain string, a list of strings, or a
// reference object depending on the document's age, so every shape must
// decode without error.
type FieldKind int

const (
	FieldEmpty FieldKind = iota
	FieldString
	FieldArray
	FieldRef
)

// Field is the tagged union over the content store's loose attribute shapes.
// Unknown shapes decode to FieldEmpty rather than failing the record.
type Field struct {
	Kind FieldKind
	Str  string
	Arr  []string
	Main string
	Name string
}

// StringField wraps a plain string value.
func StringField(s string) Field {
	return Field{Kind: FieldString, Str: s}
}

type refShape struct {
	Main    string `json:"main"`
	Name    string `json:"name"`
	Current string `json:"current"`
	Title   string `json:"title"`
}

func (f *Field) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*f = Field{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Field{Kind: FieldString, Str: s}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		arr := make([]string, 0, len(items))
		for _, item := range items {
			var entry string
			if err := json.Unmarshal(item, &entry); err == nil {
				arr = append(arr, entry)
				continue
			}
			var ref refShape
			if err := json.Unmarshal(item, &ref); err == nil {
				if v := firstNonEmpty(ref.Main, ref.Name, ref.Title, ref.Current); v != "" {
					arr = append(arr, v)
				}
			}
		}
		*f = Field{Kind: FieldArray, Arr: arr}
		return nil
	}

	var ref refShape
	if err := json.Unmarshal(data, &ref); err == nil {
		*f = Field{Kind: FieldRef, Main: firstNonEmpty(ref.Main, ref.Current), Name: firstNonEmpty(ref.Name, ref.Title)}
		return nil
	}

	*f = Field{}
	return nil
}

// Normalize flattens the field to a single display string. The match over
// the tag is exhaustive; every shape, including malformed input, coerces to
// a string or "".
func (f Field) Normalize() string {
	switch f.Kind {
	case FieldString:
		return strings.TrimSpace(f.Str)
	case FieldArray:
		parts := make([]string, 0, len(f.Arr))
		for _, v := range f.Arr {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		return strings.Join(parts, ", ")
	case FieldRef:
		if f.Main != "" {
			return strings.TrimSpace(f.Main)
		}
		return strings.TrimSpace(f.Name)
	default:
		return ""
	}
}

// List returns the field as a slice, splitting nothing: strings become a
// one-element slice, references resolve like Normalize.
func (f Field) List() []string {
	switch f.Kind {
	case FieldArray:
		out := make([]string, 0, len(f.Arr))
		for _, v := range f.Arr {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case FieldString, FieldRef:
		if v := f.Normalize(); v != "" {
			return []string{v}
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
