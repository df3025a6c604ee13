package entities

import (
	"errors"
	"strings"
)

// DefaultThemeName is the built-in theme used when none is configured or found
const DefaultThemeName = "default"

// Theme is a named stylesheet for rendered decks
type Theme struct {
	// Name is the theme identifier
	Name string `toml:"name" json:"name"`

	// DisplayName is the human-readable theme name
	DisplayName string `toml:"display_name" json:"display_name"`

	// Description provides details about the theme
	Description string `toml:"description" json:"description"`

	// Author is the theme creator
	Author string `toml:"author" json:"author"`

	// Variables override CSS custom properties declared in :root
	Variables map[string]string `toml:"variables" json:"variables,omitempty"`

	// Stylesheet is the CSS embedded into the deck
	Stylesheet string `toml:"-" json:"-"`

	// BuiltIn marks themes shipped inside the binary
	BuiltIn bool `toml:"-" json:"built_in"`

	// Fallback is set when the requested theme was missing and the default was used
	Fallback bool `toml:"-" json:"fallback,omitempty"`
}

// Validate ensures the theme has valid required fields
func (t *Theme) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}

	if !IsValidThemeName(t.Name) {
		return errors.New("theme name must contain only lowercase letters, numbers, and hyphens")
	}

	if strings.TrimSpace(t.Stylesheet) == "" {
		return errors.New("theme stylesheet is empty")
	}

	if t.DisplayName == "" {
		t.DisplayName = t.Name
	}

	return nil
}

// ThemeInfo describes an available theme
type ThemeInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	BuiltIn     bool   `json:"built_in"`
	Path        string `json:"path,omitempty"`
}

// IsValidThemeName reports whether name is a safe theme identifier
func IsValidThemeName(name string) bool {
	if name == "" {
		return false
	}

	for _, char := range name {
		isLowercase := char >= 'a' && char <= 'z'
		isDigit := char >= '0' && char <= '9'
		isHyphen := char == '-'

		if !isLowercase && !isDigit && !isHyphen {
			return false
		}
	}

	// Cannot start or end with hyphen
	return !strings.HasPrefix(name, "-") && !strings.HasSuffix(name, "-")
}
