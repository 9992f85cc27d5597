package settings

import "maps"

// Document is a decoded settings file.
type Document = map[string]any

// Kind selects how Merge combines a field.
type Kind int

const (
	// Scalar fields are replaced by the partial value. Arrays are scalars.
	Scalar Kind = iota
	// Object fields merge recursively using Fields. Keys absent from the
	// partial are kept, and keys missing from Fields are scalars.
	Object
	// Map fields add or overwrite whole entries, keeping the rest.
	Map
	// ObjectWhenPresent merges like Object, but a missing current value
	// starts from Default instead of empty.
	ObjectWhenPresent
)

// Field describes one key of a document.
type Field struct {
	Kind   Kind
	Fields Schema
	// Default seeds ObjectWhenPresent fields.
	Default map[string]any
}

// Schema maps keys to their merge behavior. Unlisted keys are scalars.
type Schema map[string]Field

// Merge returns current with partial applied according to schema. Neither
// input is modified. A nil value in partial deletes that key.
func Merge(schema Schema, current, partial Document) Document {
	out := deepCopyMap(current)
	if out == nil {
		out = Document{}
	}
	if len(partial) == 0 {
		return out
	}

	for key, pv := range partial {
		if pv == nil {
			delete(out, key)
			continue
		}
		field := schema[key]
		pm, isMap := pv.(map[string]any)

		switch {
		case field.Kind == Scalar || !isMap:
			out[key] = deepCopy(pv)

		case field.Kind == Map:
			cm, _ := out[key].(map[string]any)
			if cm == nil {
				cm = map[string]any{}
			}
			for k, v := range pm {
				if v == nil {
					delete(cm, k)
					continue
				}
				cm[k] = deepCopy(v)
			}
			out[key] = cm

		default:
			cm, _ := out[key].(map[string]any)
			if cm == nil && field.Kind == ObjectWhenPresent {
				cm = field.Default
			}
			out[key] = Merge(field.Fields, cm, pm)
		}
	}

	// Defaulted objects are filled in whenever their parent is merged.
	for key, field := range schema {
		if field.Kind != ObjectWhenPresent || field.Default == nil {
			continue
		}
		if _, touched := partial[key]; touched {
			continue
		}
		if _, ok := out[key].(map[string]any); !ok {
			out[key] = deepCopyMap(field.Default)
		}
	}
	return out
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case map[string]string:
		return maps.Clone(t)
	default:
		return v
	}
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopy(v)
	}
	return out
}

// Clone returns a deep copy of doc.
func Clone(doc Document) Document {
	return deepCopyMap(doc)
}

// Lookup follows path through nested objects.
func Lookup(doc Document, path ...string) (any, bool) {
	var cur any = doc
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// String returns the string at path, or "".
func String(doc Document, path ...string) string {
	v, _ := Lookup(doc, path...)
	s, _ := v.(string)
	return s
}
