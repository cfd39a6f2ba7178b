// Package numbering issues sequential document numbers per document type,
// restarting the sequence every calendar month.
//
// The counter state is an explicit Metadata record. The pure functions in
// this file take a record and return a new one; Registry adds the
// load-before-every-operation persistence around them.
package numbering

import (
	"maps"
	"time"

	"github.com/billdoc-dev/billdoc/internal/id"
	"github.com/billdoc-dev/billdoc/internal/model"
)

// Counter is the persisted state of one document series.
type Counter struct {
	LastNumber int    `json:"lastNumber"`
	Prefix     string `json:"prefix"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

// Metadata maps each document type to its counter.
type Metadata map[model.DocumentType]Counter

// Default returns zeroed counters for every document type in now's period.
func Default(now time.Time) Metadata {
	md := make(Metadata, len(model.DocumentTypes))
	for _, t := range model.DocumentTypes {
		md[t] = defaultCounter(t, now)
	}
	return md
}

func defaultCounter(t model.DocumentType, now time.Time) Counter {
	return Counter{
		LastNumber: 0,
		Prefix:     t.DefaultPrefix(),
		Year:       now.Year(),
		Month:      int(now.Month()),
	}
}

// normalize fills in missing series and prefixes left by older or hand-edited files.
func (m Metadata) normalize(now time.Time) Metadata {
	out := make(Metadata, len(model.DocumentTypes))
	maps.Copy(out, m)
	for _, t := range model.DocumentTypes {
		c, ok := out[t]
		if !ok || c.Month < 1 || c.Month > 12 {
			out[t] = defaultCounter(t, now)
			continue
		}
		if c.Prefix == "" {
			c.Prefix = t.DefaultPrefix()
			out[t] = c
		}
	}
	return out
}

// InPeriod reports whether c belongs to now's year and month.
func (c Counter) InPeriod(now time.Time) bool {
	return c.Year == now.Year() && c.Month == int(now.Month())
}

// rolled returns c as it stands in now's period: unchanged when the period
// matches, otherwise reset to zero in the new period.
func (c Counter) rolled(now time.Time) Counter {
	if c.InPeriod(now) {
		return c
	}
	return Counter{
		LastNumber: 0,
		Prefix:     c.Prefix,
		Year:       now.Year(),
		Month:      int(now.Month()),
	}
}

// Next returns the number the next document of type t would receive. The
// monthly rollover is applied to the result only; md is not modified.
func Next(md Metadata, t model.DocumentType, now time.Time) string {
	c := md.normalize(now)[t].rolled(now)
	return id.FormatDocumentNumber(c.Prefix, c.Year, c.Month, c.LastNumber+1)
}

// Observe records that number was issued for type t. The counter only moves
// forward: it becomes max(current, trailing sequence of number). The
// number's own embedded period is not checked. ok is false when number has
// no trailing "-<digits>" sequence, in which case only the rollover applies.
func Observe(md Metadata, t model.DocumentType, number string, now time.Time) (out Metadata, ok bool) {
	out = md.normalize(now)
	c := out[t].rolled(now)

	seq, ok := id.ParseSequence(number)
	if ok && seq > c.LastNumber {
		c.LastNumber = seq
	}
	out[t] = c
	return out, ok
}

// Reset zeroes the counter of type t in now's period.
func Reset(md Metadata, t model.DocumentType, now time.Time) Metadata {
	out := md.normalize(now)
	c := out[t]
	c.LastNumber = 0
	c.Year = now.Year()
	c.Month = int(now.Month())
	out[t] = c
	return out
}
