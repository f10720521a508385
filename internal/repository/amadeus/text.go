package amadeus

import (
	"encoding/json"
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// textValue absorbs the provider's inconsistent free-text fields: a plain
// string, an object exposing "text" or "description", or an array whose first
// element is one of those.
type textValue string

func (t *textValue) UnmarshalJSON(data []byte) error {
	*t = textValue(extractText(data))
	return nil
}

func (t textValue) String() string {
	return string(t)
}

func extractText(data []byte) string {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return ""
	}
	return stripTags(flattenText(raw))
}

func flattenText(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v["text"].(string); ok {
			return s
		}
		if s, ok := v["description"].(string); ok {
			return s
		}
	case []any:
		if len(v) > 0 {
			return flattenText(v[0])
		}
	}
	return ""
}

func stripTags(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}
