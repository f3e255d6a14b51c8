package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxLen   int
		expected string
	}{
		{name: "shorter than max", s: "github", maxLen: 10, expected: "github"},
		{name: "equal to max", s: "github", maxLen: 6, expected: "github"},
		{name: "longer than max", s: "production-api-key", maxLen: 10, expected: "product..."},
		{name: "maxLen less than 3", s: "github", maxLen: 2, expected: "gi"},
		{name: "maxLen exactly 3", s: "github", maxLen: 3, expected: "..."},
		{name: "empty string", s: "", maxLen: 5, expected: ""},
		{name: "maxLen zero", s: "github", maxLen: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateString(tt.s, tt.maxLen))
		})
	}
}

func TestPadString(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		width    int
		expected string
	}{
		{name: "shorter than width", s: "db", width: 5, expected: "db   "},
		{name: "equal to width", s: "vault", width: 5, expected: "vault"},
		{name: "longer than width", s: "vaults", width: 5, expected: "vaults"},
		{name: "empty string", s: "", width: 3, expected: "   "},
		{name: "width zero", s: "db", width: 0, expected: "db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PadString(tt.s, tt.width))
		})
	}
}

func TestRenderTable(t *testing.T) {
	columns := []Column{
		{Name: "Label", Key: "label"},
		{Name: "Profile", Key: "profile", Width: 8},
	}
	rows := []map[string]string{
		{"label": "github", "profile": "work"},
		{"label": "aws", "profile": "personal-long-name"},
	}

	var buf bytes.Buffer
	RenderTable(&buf, columns, rows)

	out := buf.String()
	assert.Contains(t, out, "Label")
	assert.Contains(t, out, "github")
	// Width 8 truncates the long profile value
	assert.Contains(t, out, "perso...")
	assert.NotContains(t, out, "personal-long-name")
}

func TestRenderTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, []Column{{Name: "Label", Key: "label"}}, nil)
	assert.Empty(t, buf.String())
}
