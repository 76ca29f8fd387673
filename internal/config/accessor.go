package config

import (
	"strconv"
	"strings"
	"time"
)

// lookup walks a dotted path through nested maps.
func lookup(data map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	current := data
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		current, ok = v.(map[string]any)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

func getBool(data map[string]any, path string, dst *bool) error {
	v, ok := lookup(data, path)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case bool:
		*dst = t
	case string:
		b, ok := parseBool(t)
		if !ok {
			return &TypeError{Path: path, Expected: "bool", Actual: v}
		}
		*dst = b
	default:
		return &TypeError{Path: path, Expected: "bool", Actual: v}
	}
	return nil
}

// parseBool accepts the words environment variables commonly use.
func parseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}

func getString(data map[string]any, path string, dst *string) error {
	v, ok := lookup(data, path)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return &TypeError{Path: path, Expected: "string", Actual: v}
	}
	*dst = s
	return nil
}

// getDuration accepts a duration string ("300ms"), or a number of
// milliseconds given as a number or a plain integer string.
func getDuration(data map[string]any, path string, dst *time.Duration) error {
	v, ok := lookup(data, path)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		if ms, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			*dst = time.Duration(ms) * time.Millisecond
			break
		}
		d, err := time.ParseDuration(t)
		if err != nil {
			return &ValidationError{Path: path, Value: t, Message: err.Error()}
		}
		*dst = d
	case int:
		*dst = time.Duration(t) * time.Millisecond
	case int64:
		*dst = time.Duration(t) * time.Millisecond
	case uint64:
		*dst = time.Duration(t) * time.Millisecond
	case float64:
		*dst = time.Duration(t * float64(time.Millisecond))
	case time.Duration:
		*dst = t
	default:
		return &TypeError{Path: path, Expected: "duration", Actual: v}
	}
	return nil
}
