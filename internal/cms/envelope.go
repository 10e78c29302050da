package cms

import (
	"encoding/json"

	"autoparts-storefront-api/internal/catalog"
)

// UnwrapList tolerates every list envelope the CMS has produced across
// drafts: a bare array, {data:[...]}, {items:[...]}, {results:[...]} and
// the doubly-wrapped {data:{data:[...]}}. Anything else yields an empty
// list rather than an error.
func UnwrapList(raw json.RawMessage) []catalog.Entry {
	if len(raw) == 0 {
		return nil
	}

	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}

	return unwrapListValue(payload, 0)
}

func unwrapListValue(v interface{}, depth int) []catalog.Entry {
	if depth > 2 {
		return nil
	}

	switch value := v.(type) {
	case []interface{}:
		return toEntries(value)
	case map[string]interface{}:
		for _, key := range []string{"data", "items", "results"} {
			child, ok := value[key]
			if !ok {
				continue
			}
			if entries := unwrapListValue(child, depth+1); entries != nil {
				return entries
			}
		}
		return nil
	default:
		return nil
	}
}

func toEntries(values []interface{}) []catalog.Entry {
	entries := make([]catalog.Entry, 0, len(values))
	for _, v := range values {
		if m, ok := v.(map[string]interface{}); ok {
			entries = append(entries, catalog.Entry(m))
		}
	}
	return entries
}

// UnwrapEntity unwraps a single-entity response: {data:X}, {item:X} or a
// bare object. Returns nil when no object is found.
func UnwrapEntity(raw json.RawMessage) catalog.Entry {
	if len(raw) == 0 {
		return nil
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}

	for _, key := range []string{"data", "item"} {
		if m, ok := payload[key].(map[string]interface{}); ok {
			return catalog.Entry(m)
		}
	}

	if len(payload) == 0 {
		return nil
	}
	return catalog.Entry(payload)
}
