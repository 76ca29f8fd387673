package loader

import (
	"os"
	"strings"
)

// EnvLoader maps environment variables onto setting paths.
type EnvLoader struct {
	mapping map[string]string // env var -> dotted setting path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader for the default CONFETTI_* variables.
func NewEnvLoader() *EnvLoader {
	return NewEnvLoaderWithMapping(DefaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with a custom mapping.
func NewEnvLoaderWithMapping(mapping map[string]string) *EnvLoader {
	return &EnvLoader{mapping: mapping, lookup: os.LookupEnv}
}

// DefaultEnvMapping returns the recognised environment variables.
func DefaultEnvMapping() map[string]string {
	return map[string]string{
		"CONFETTI_ENABLED":   "confetti.enabled",
		"CONFETTI_DEBOUNCE":  "confetti.debounce",
		"CONFETTI_DURATION":  "confetti.duration",
		"CONFETTI_WIDTH":     "confetti.width",
		"CONFETTI_FLOATING":  "confetti.floating",
		"CONFETTI_LOG_LEVEL": "logging.level",
		"CONFETTI_LOG_FILE":  "logging.file",
		"CONFETTI_SCRIPT":    "plugin.script",
	}
}

// Load returns the set variables as a nested map of raw strings. Values are
// converted to the setting's type when the configuration is applied.
// Empty values are kept; they are not treated as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			SetByPath(config, path, val)
		}
	}
	return config, nil
}

// SetByPath sets value at a dotted path, creating intermediate maps.
func SetByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
