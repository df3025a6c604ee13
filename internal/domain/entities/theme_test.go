package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTheme_Validate(t *testing.T) {
	tests := []struct {
		name    string
		theme   Theme
		wantErr string
	}{
		{
			name:  "valid theme",
			theme: Theme{Name: "dark", DisplayName: "Dark", Stylesheet: "body{}"},
		},
		{
			name:    "missing name",
			theme:   Theme{Stylesheet: "body{}"},
			wantErr: "theme name is required",
		},
		{
			name:    "invalid name",
			theme:   Theme{Name: "Dark Mode", Stylesheet: "body{}"},
			wantErr: "lowercase",
		},
		{
			name:    "empty stylesheet",
			theme:   Theme{Name: "dark", Stylesheet: "  \n"},
			wantErr: "stylesheet is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.theme.Validate()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("display name defaults to name", func(t *testing.T) {
		theme := Theme{Name: "paper", Stylesheet: "body{}"}
		assert.NoError(t, theme.Validate())
		assert.Equal(t, "paper", theme.DisplayName)
	})
}

func TestIsValidThemeName(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"default", true},
		{"dark-2", true},
		{"", false},
		{"-dark", false},
		{"dark-", false},
		{"Dark", false},
		{"dark_mode", false},
		{"../dark", false},
		{"a/b", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidThemeName(tt.input))
		})
	}
}

func TestCacheStats_HitRate(t *testing.T) {
	assert.Equal(t, 0.0, CacheStats{}.HitRate())
	assert.InDelta(t, 0.75, CacheStats{Hits: 3, Misses: 1}.HitRate(), 1e-9)
}
