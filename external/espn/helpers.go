package espn

import (
	"strconv"
	"strings"
)

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	value, ok := src[key].(map[string]any)
	if !ok {
		return nil
	}
	return value
}

func getSlice(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	value, ok := src[key].([]any)
	if !ok {
		return nil
	}
	return value
}

func firstMap(src map[string]any, key string) map[string]any {
	items := getSlice(src, key)
	if len(items) == 0 {
		return nil
	}
	value, ok := items[0].(map[string]any)
	if !ok {
		return nil
	}
	return value
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	return stringValue(src[key])
}

func stringValue(raw any) string {
	switch typed := raw.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		// Feed ids and scores arrive as numbers in some responses.
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

func getStringAny(src map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := getString(src, key); value != "" {
			return value
		}
	}
	return ""
}

func getFloat(src map[string]any, key string) (float64, bool) {
	if src == nil {
		return 0, false
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return 0, false
	}
	return asFloat(raw)
}

func asFloat(raw any) (float64, bool) {
	switch typed := raw.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func getInt(src map[string]any, key string) (int, bool) {
	v, ok := getFloat(src, key)
	if !ok {
		return 0, false
	}
	return int(v), true
}

func lookupBool(src map[string]any, key string) (bool, bool) {
	if src == nil {
		return false, false
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return false, false
	}
	switch typed := raw.(type) {
	case bool:
		return typed, true
	case float64:
		return typed != 0, true
	case string:
		return strings.EqualFold(strings.TrimSpace(typed), "true"), true
	default:
		return false, false
	}
}

func getBool(src map[string]any, key string) bool {
	if src == nil {
		return false
	}
	switch typed := src[key].(type) {
	case bool:
		return typed
	case string:
		return strings.EqualFold(strings.TrimSpace(typed), "true")
	case float64:
		return typed != 0
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}

// periodNumber reads a play/linescore period that may be a bare number
// or a {number, displayValue, value} object.
func periodNumber(raw any) int {
	switch typed := raw.(type) {
	case map[string]any:
		if v, ok := getFloat(typed, "number"); ok {
			return int(v)
		}
		if v, ok := getFloat(typed, "value"); ok {
			return int(v)
		}
		if v, err := strconv.Atoi(getString(typed, "displayValue")); err == nil {
			return v
		}
		return 0
	default:
		if v, ok := asFloat(raw); ok {
			return int(v)
		}
		return 0
	}
}
