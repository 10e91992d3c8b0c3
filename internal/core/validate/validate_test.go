package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Rust", false},
		{"minimum length", "Go", false},
		{"maximum length", strings.Repeat("a", 50), false},
		{"padded to valid", "  Go  ", false},
		{"empty", "", true},
		{"only spaces", "   ", true},
		{"too short", "R", true},
		{"too short after trim", " R ", true},
		{"too long", strings.Repeat("a", 51), true},
		{"multibyte counts runes", strings.Repeat("ж", 50), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Title(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Title(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Systems language", false},
		{"exactly ten", "0123456789", false},
		{"empty", "", true},
		{"nine chars", "012345678", true},
		{"padded short", "   short   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Description(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Description(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestResourceURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://react.dev", false},
		{"with path", "https://nodejs.org/en/docs/", false},
		{"http with port", "http://localhost:8080/x", false},
		{"relative path", "/docs/intro", true},
		{"bare word", "react", true},
		{"missing host", "https://", true},
		{"scheme only", "mailto:", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ResourceURL(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "ResourceURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestUsername(t *testing.T) {
	require.NoError(t, Username("admin"))
	require.Error(t, Username("  "))
}
