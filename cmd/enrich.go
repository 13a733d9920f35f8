package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lepinkainen/manga-autofill/internal/config"
	"github.com/lepinkainen/manga-autofill/internal/dataset"
	"github.com/lepinkainen/manga-autofill/internal/datastore"
	"github.com/lepinkainen/manga-autofill/internal/enrich"
	"github.com/lepinkainen/manga-autofill/internal/googlebooks"
	"github.com/lepinkainen/manga-autofill/internal/ratelimit"
)

// datasetteTable is the SQLite table the enriched rows are exported to
const datasetteTable = "manga"

// EnrichFile loads input, enriches every row and writes the result next to
// the input file. A missing input file fails before any row is processed.
func EnrichFile(ctx context.Context, input string, settings config.Settings) error {
	ds, err := dataset.Load(input)
	if err != nil {
		return err
	}

	client := googlebooks.NewClient(
		googlebooks.WithBaseURL(settings.GoogleBooksBaseURL),
		googlebooks.WithDomainHint(settings.DomainHint),
		googlebooks.WithHTTPClient(&http.Client{Timeout: settings.HTTPTimeout}),
	)

	enricher := enrich.New(client,
		enrich.WithLimiter(ratelimit.New("GoogleBooks", settings.Delay)),
	)

	ds, err = enricher.Run(ctx, ds)
	if err != nil {
		return fmt.Errorf("enrichment aborted: %w", err)
	}

	output := dataset.OutputPath(input)
	if err := dataset.Save(ds, output); err != nil {
		return err
	}

	if settings.DatasetteEnabled {
		if err := datastore.ExportToSQLite(settings.DatasetteDBFile, datasetteTable, ds); err != nil {
			return fmt.Errorf("failed to write datasette export: %w", err)
		}
	}

	summary := enricher.Summary()
	slog.Info("Enrichment complete",
		"output", output,
		"rows", summary.Rows,
		"enriched", summary.Enriched,
		"skipped", summary.Skipped,
		"not_found", summary.NotFound,
	)

	return nil
}
