package numbering

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/billdoc-dev/billdoc/internal/model"
)

// Registry issues and records document numbers against a Store.
//
// Every operation re-reads the store and holds no lock between the read and
// the write. Two processes committing at once can lose an update; the tool
// is meant for a single operator.
type Registry struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger
}

// NewRegistry returns a Registry. A nil clock means time.Now and a nil
// logger means slog.Default().
func NewRegistry(store Store, clock func() time.Time, logger *slog.Logger) *Registry {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{store: store, now: clock, logger: logger}
}

// Load returns the stored metadata, or defaults when the store is missing,
// unreadable or corrupt.
func (r *Registry) Load() Metadata {
	return r.load(r.now())
}

// load reads the record for the period of now. Each operation reads the
// clock once and passes it down so normalizing and rolling over agree.
func (r *Registry) load(now time.Time) Metadata {
	md, err := r.store.Load()
	switch {
	case err == nil:
		return md.normalize(now)
	case errors.Is(err, fs.ErrNotExist):
		r.logger.Debug("no metadata stored yet, using defaults")
	default:
		r.logger.Warn("metadata unreadable, falling back to defaults", slog.Any("error", err))
	}
	return Default(now)
}

// PeekNext returns the next number for t without recording anything.
func (r *Registry) PeekNext(t model.DocumentType) (string, error) {
	if !t.Valid() {
		return "", fmt.Errorf("unknown document type %q", t)
	}
	now := r.now()
	return Next(r.load(now), t, now), nil
}

// Commit records number as issued for t. The counter never decreases; a
// number at or below the current counter only persists the rollover, if any.
// A failed write returns an error matching ErrNotCommitted.
func (r *Registry) Commit(t model.DocumentType, number string) error {
	if !t.Valid() {
		return fmt.Errorf("unknown document type %q", t)
	}
	now := r.now()
	md := r.load(now)
	before := md[t]
	if !before.InPeriod(now) {
		r.logger.Info("numbering period rolled over",
			slog.String("type", string(t)),
			slog.Int("from_year", before.Year),
			slog.Int("from_month", before.Month),
			slog.Int("to_year", now.Year()),
			slog.Int("to_month", int(now.Month())))
	}

	md, ok := Observe(md, t, number, now)
	if !ok {
		r.logger.Warn("document number has no trailing sequence, counter unchanged",
			slog.String("type", string(t)), slog.String("number", number))
	}

	if err := r.store.Save(md); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrNotCommitted, t, number, err)
	}
	r.logger.Debug("document number committed",
		slog.String("type", string(t)),
		slog.String("number", number),
		slog.Int("last_number", md[t].LastNumber))
	return nil
}

// Reset zeroes the counter for t in the current period.
func (r *Registry) Reset(t model.DocumentType) error {
	if !t.Valid() {
		return fmt.Errorf("unknown document type %q", t)
	}
	now := r.now()
	md := Reset(r.load(now), t, now)
	if err := r.store.Save(md); err != nil {
		return fmt.Errorf("resetting %s counter: %w", t, err)
	}
	return nil
}

// Initialize writes default metadata unless the store already holds a
// readable record.
func (r *Registry) Initialize() error {
	if _, err := r.store.Load(); err == nil {
		return nil
	}
	if err := r.store.Save(Default(r.now())); err != nil {
		return fmt.Errorf("initializing metadata: %w", err)
	}
	return nil
}
