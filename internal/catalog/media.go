package catalog

import "strings"

// ResolveMediaURL extracts a usable URL from any media shape the CMS
// produces: a bare string, an array of candidates (first resolvable wins),
// an object carrying url or formats.{medium,small,thumbnail}.url, or
// data/attributes envelopes of arbitrary depth. Returns "" when nothing
// resolves.
func ResolveMediaURL(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		for _, candidate := range v {
			if resolved := ResolveMediaURL(candidate); resolved != "" {
				return resolved
			}
		}
		return ""
	case map[string]interface{}:
		e := Entry(v)
		if u := e.Str("url"); u != "" {
			return u
		}
		if formats := e.Child("formats"); formats != nil {
			for _, size := range []string{"medium", "small", "thumbnail"} {
				if u := formats.Child(size).Str("url"); u != "" {
					return u
				}
			}
		}
		if data, ok := e["data"]; ok {
			if resolved := ResolveMediaURL(data); resolved != "" {
				return resolved
			}
		}
		if attrs, ok := e["attributes"]; ok {
			return ResolveMediaURL(attrs)
		}
		return ""
	default:
		return ""
	}
}

// AbsoluteURL joins a possibly relative media URL against the CMS host
// (the API base with its /api suffix already stripped). Already-absolute
// URLs pass through unchanged.
func AbsoluteURL(raw, baseHost string) string {
	if raw == "" {
		return ""
	}

	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}

	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	if baseHost == "" {
		return raw
	}
	return strings.TrimRight(baseHost, "/") + raw
}
