// Package issuelog keeps an append-only CSV record of every document number
// that was issued and committed.
package issuelog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/billdoc-dev/billdoc/internal/model"
)

// Entry is one row in the issuance log.
type Entry struct {
	Timestamp time.Time
	Type      model.DocumentType
	Number    string
	Client    string
	Payable   decimal.Decimal
	File      string
}

// Header is the CSV header for issued.csv.
const Header = "timestamp,type,number,client,payable,file"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "logs/issued.csv"
	colTimestamp = 0
	colType      = 1
	colNumber    = 2
	colClient    = 3
	colPayable   = 4
	colFile      = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colType] = string(e.Type)
	row[colNumber] = e.Number
	row[colClient] = e.Client
	row[colPayable] = e.Payable.StringFixed(2)
	row[colFile] = e.File
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	payable, err := decimal.NewFromString(record[colPayable])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing payable %q: %w", record[colPayable], err)
	}

	return Entry{
		Timestamp: ts,
		Type:      model.DocumentType(record[colType]),
		Number:    record[colNumber],
		Client:    record[colClient],
		Payable:   payable,
		File:      record[colFile],
	}, nil
}

// Append writes entries to <projectRoot>/logs/issued.csv, creating the file and header if needed.
func Append(projectRoot string, entries ...Entry) error {
	dir := filepath.Join(projectRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(projectRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening issuance log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <projectRoot>/logs/issued.csv.
// Returns an empty slice if the file does not exist.
func Read(projectRoot string) ([]Entry, error) {
	path := filepath.Join(projectRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening issuance log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// Path returns the log location relative to a project root.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, logFile)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading issuance log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
