package catalog

import (
	"strings"

	"github.com/spf13/cast"
)

// Entry is a raw CMS object. The backend is duck-typed: identifiers arrive
// as numbers or strings, product references as nested objects or bare
// scalars, and every field may be absent. Entry keeps the raw shape and
// offers defensive accessors over it.
type Entry map[string]interface{}

// Raw returns the raw value for key, or nil.
func (e Entry) Raw(key string) interface{} {
	if e == nil {
		return nil
	}
	return e[key]
}

// Child returns the nested object under key, or nil if the value is absent
// or not an object.
func (e Entry) Child(key string) Entry {
	if m, ok := e.Raw(key).(map[string]interface{}); ok {
		return Entry(m)
	}
	return nil
}

// Str returns the value under key coerced to a trimmed string. Numbers
// stringify without a decimal point when integral, so numeric and string
// ids compare equal. Objects and arrays yield "".
func (e Entry) Str(key string) string {
	v := e.Raw(key)
	if v == nil {
		return ""
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return ""
	}
	return strings.TrimSpace(cast.ToString(v))
}

// FirstStr returns the first non-empty Str among keys.
func (e Entry) FirstStr(keys ...string) string {
	for _, key := range keys {
		if s := e.Str(key); s != "" {
			return s
		}
	}
	return ""
}

// flatten lifts a CMS attributes envelope: {id, attributes: {...}} becomes
// one flat entry, with the envelope's id/documentId preserved when the
// attributes object does not carry its own.
func flatten(e Entry) Entry {
	attrs := e.Child("attributes")
	if len(attrs) == 0 {
		return e
	}

	merged := make(Entry, len(attrs)+2)
	for k, v := range attrs {
		merged[k] = v
	}
	for _, key := range []string{"id", "documentId"} {
		if _, ok := merged[key]; !ok {
			if v, ok := e[key]; ok {
				merged[key] = v
			}
		}
	}
	return merged
}
