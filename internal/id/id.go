package id

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// sequenceSuffix matches the trailing "-NNN" of a document number.
var sequenceSuffix = regexp.MustCompile(`-(\d+)$`)

// FormatDocumentNumber returns a document number like "INV-202501-001".
// Sequences above 999 keep growing without re-padding ("INV-202501-1000").
func FormatDocumentNumber(prefix string, year, month, seq int) string {
	return fmt.Sprintf("%s-%04d%02d-%03d", prefix, year, month, seq)
}

// ParseSequence extracts the trailing sequence from any string ending in
// "-<digits>". ok is false when there is no such suffix.
func ParseSequence(number string) (seq int, ok bool) {
	m := sequenceSuffix.FindStringSubmatch(number)
	if m == nil {
		return 0, false
	}
	seq, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return seq, true
}

// ParseDocumentNumber parses "INV-202501-001" into its parts. The prefix may
// itself contain dashes; only the last two segments are structural.
func ParseDocumentNumber(number string) (prefix string, year, month, seq int, err error) {
	parts := strings.Split(number, "-")
	if len(parts) < 3 {
		return "", 0, 0, 0, fmt.Errorf("invalid document number format: %q", number)
	}

	period := parts[len(parts)-2]
	if len(period) != 6 {
		return "", 0, 0, 0, fmt.Errorf("invalid period in document number %q: want YYYYMM", number)
	}

	year, err = strconv.Atoi(period[:4])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid year in document number %q: %w", number, err)
	}

	month, err = strconv.Atoi(period[4:])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid month in document number %q: %w", number, err)
	}
	if month < 1 || month > 12 {
		return "", 0, 0, 0, fmt.Errorf("invalid month in document number %q: %d", number, month)
	}

	seq, err = strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid sequence in document number %q: %w", number, err)
	}

	prefix = strings.Join(parts[:len(parts)-2], "-")
	return prefix, year, month, seq, nil
}
