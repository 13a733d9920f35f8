// Package enrich fills manga rows with bibliographic data from a lookup service.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lepinkainen/manga-autofill/internal/dataset"
	"github.com/lepinkainen/manga-autofill/internal/errors"
	"github.com/lepinkainen/manga-autofill/internal/googlebooks"
	"github.com/lepinkainen/manga-autofill/internal/ratelimit"
)

// Input and output column names
const (
	ColumnTitle  = "title"
	ColumnBand   = "band"
	ColumnAuthor = "author"

	ColumnAutor    = "Autor"
	ColumnVerlag   = "Verlag"
	ColumnISBN     = "ISBN"
	ColumnCoverURL = "Cover URL"
)

// UnknownAuthor is shown in progress output for rows without an author.
const UnknownAuthor = "Unbekannt"

// DefaultDelay is the minimum spacing between two lookups.
const DefaultDelay = time.Second

// Lookuper resolves one title/volume/author to a metadata record.
// It returns nil, nil when nothing usable was found.
type Lookuper interface {
	Lookup(ctx context.Context, title, volume, author string) (*googlebooks.Record, error)
}

// Summary counts the outcome of a run.
type Summary struct {
	Rows     int
	Enriched int
	Skipped  int
	NotFound int
}

// Enricher walks a dataset row by row and merges lookup results into it.
type Enricher struct {
	lookup  Lookuper
	limiter *ratelimit.Limiter
	logger  *slog.Logger
	summary Summary
}

// Option is a functional option for configuring the Enricher.
type Option func(*Enricher)

// WithLimiter sets the cadence applied before every lookup.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(e *Enricher) {
		if l != nil {
			e.limiter = l
		}
	}
}

// WithLogger sets the logger notices are written to.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Enricher using lookup for every complete row.
func New(lookup Lookuper, opts ...Option) *Enricher {
	e := &Enricher{
		lookup:  lookup,
		limiter: ratelimit.New("GoogleBooks", DefaultDelay),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run enriches ds in place and returns it. Rows without title or band are
// skipped without a lookup. Lookups start at least one limiter interval
// apart, measured start to start, so request latency counts toward the
// interval. A lookup error aborts the run; rows processed before the failure
// keep their new values.
func (e *Enricher) Run(ctx context.Context, ds *dataset.Dataset) (*dataset.Dataset, error) {
	e.summary = Summary{Rows: ds.Len()}

	for i, row := range ds.Rows {
		title, hasTitle := row.Get(ColumnTitle)
		band, hasBand := row.Get(ColumnBand)
		if !hasTitle || !hasBand {
			e.skip(i, hasTitle, hasBand)
			continue
		}

		author := UnknownAuthor
		queryAuthor := ""
		if v, ok := row.Get(ColumnAuthor); ok {
			author = v.String()
			queryAuthor = author
		}

		e.logger.Info("Processing manga", "row", i, "title", title.String(), "band", band.String(), "author", author)

		if err := e.limiter.Wait(ctx); err != nil {
			return ds, err
		}

		record, err := e.lookup.Lookup(ctx, title.String(), band.String(), queryAuthor)
		if err != nil {
			return ds, fmt.Errorf("lookup for row %d (%s): %w", i, title.String(), err)
		}

		if record == nil {
			e.summary.NotFound++
			e.logger.Warn("No data found", "row", i, "title", title.String())
			continue
		}

		apply(ds, i, record)
		e.summary.Enriched++
	}

	return ds, nil
}

// Summary returns the counts of the last Run.
func (e *Enricher) Summary() Summary {
	return e.summary
}

func (e *Enricher) skip(row int, hasTitle, hasBand bool) {
	var missing []string
	if !hasTitle {
		missing = append(missing, ColumnTitle)
	}
	if !hasBand {
		missing = append(missing, ColumnBand)
	}

	e.summary.Skipped++
	e.logger.Warn("Skipping row with missing title or band", "row", row, "error", errors.NewRowIncompleteError(row, missing...))
}

// apply overwrites the output columns of row i with record.
func apply(ds *dataset.Dataset, i int, record *googlebooks.Record) {
	ds.Set(i, ColumnAutor, dataset.Text(record.Authors))
	ds.Set(i, ColumnVerlag, dataset.Text(record.Publisher))
	ds.Set(i, ColumnISBN, dataset.Text(record.ISBN))
	ds.Set(i, ColumnCoverURL, dataset.Text(record.CoverURL))
}
