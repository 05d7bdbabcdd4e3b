// Package theme holds the UI theme preference: a process-wide setting that is
// read from storage once at startup and persisted on every change.
package theme

import (
	"fmt"
	"strings"

	"countries/pkg/platform/sentinel"
)

// Theme is the UI color scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default is used when nothing has been stored yet.
const Default = Light

// Parse accepts "light" or "dark" in any case.
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("unknown theme %q: %w", s, sentinel.ErrInvalidInput)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string {
	return string(t)
}
