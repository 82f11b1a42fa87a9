package services

import (
	"fmt"
	"sort"
	"strings"
)

// Custom errors
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "Validation error"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "Validation error: " + strings.Join(parts, "; ")
}

// ConfigurationError reports a profile value the tutor has no behavior for.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unsupported %s %q", e.Field, e.Value)
}

// RelayError wraps every failure of a chat backend round trip.
type RelayError struct {
	Backend string
	Model   string
	Err     error
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("%s relay (%s) failed: %v", e.Backend, e.Model, e.Err)
}

func (e *RelayError) Unwrap() error { return e.Err }
