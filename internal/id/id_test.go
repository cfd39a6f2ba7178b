package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDocumentNumber(t *testing.T) {
	tests := []struct {
		prefix           string
		year, month, seq int
		want             string
	}{
		{"INV", 2025, 1, 1, "INV-202501-001"},
		{"QT", 2025, 12, 99, "QT-202512-099"},
		{"RC", 2026, 10, 123, "RC-202610-123"},
		{"INV", 2026, 3, 1000, "INV-202603-1000"},
	}
	for _, tt := range tests {
		got := FormatDocumentNumber(tt.prefix, tt.year, tt.month, tt.seq)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"INV-202501-001", 1, true},
		{"INV-202501-042", 42, true},
		{"INV-202501-1234", 1234, true},
		{"custom-7", 7, true},
		{"INV-202501-", 0, false},
		{"INV202501001", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseSequence(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input: %q", tt.input)
		assert.Equal(t, tt.want, got, "input: %q", tt.input)
	}
}

func TestParseDocumentNumber(t *testing.T) {
	tests := []struct {
		input      string
		wantPrefix string
		wantYear   int
		wantMonth  int
		wantSeq    int
	}{
		{"INV-202501-001", "INV", 2025, 1, 1},
		{"QT-202512-099", "QT", 2025, 12, 99},
		{"ACME-INV-202610-1000", "ACME-INV", 2026, 10, 1000},
	}
	for _, tt := range tests {
		prefix, year, month, seq, err := ParseDocumentNumber(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantPrefix, prefix)
		assert.Equal(t, tt.wantYear, year)
		assert.Equal(t, tt.wantMonth, month)
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParseDocumentNumber_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"INV-001",
		"INV-2025-001",
		"INV-202513-001",
		"INV-2025ab-001",
		"INV-202501-xyz",
	}
	for _, input := range badInputs {
		_, _, _, _, err := ParseDocumentNumber(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}
