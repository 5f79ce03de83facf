// Package archive renders reports to CSV and stores them, either on demand
// or on a schedule from the worker.
package archive

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog"

	"donorhub/internal/report"
	"donorhub/internal/storage"
	"donorhub/pkg/zip"
)

// Renderer produces a serialized report.
type Renderer interface {
	Render(ctx context.Context, req report.Request) (*report.Output, error)
}

// Result describes one stored report.
type Result struct {
	Type     report.Type `json:"type"`
	Filename string      `json:"filename"`
	Location string      `json:"location"`
	Rows     int         `json:"rows"`
}

type Archiver struct {
	renderer Renderer
	store    storage.Store
	types    []report.Type
	logger   zerolog.Logger
	now      func() time.Time
}

// New returns an Archiver that stores reports in store. types lists the
// reports written by each scheduled run.
func New(renderer Renderer, store storage.Store, types []report.Type, logger zerolog.Logger) *Archiver {
	return &Archiver{
		renderer: renderer,
		store:    store,
		types:    types,
		logger:   logger.With().Str("component", "archive").Logger(),
		now:      time.Now,
	}
}

// ParseTypes validates report names from configuration.
func ParseTypes(names []string) ([]report.Type, error) {
	out := make([]report.Type, 0, len(names))
	for _, n := range names {
		t, err := report.ParseType(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// ArchiveReport renders one report as CSV and stores it under "<type>/".
func (a *Archiver) ArchiveReport(ctx context.Context, t report.Type, filters report.Filters) (*Result, error) {
	return a.archive(ctx, t, filters, string(t))
}

func (a *Archiver) archive(ctx context.Context, t report.Type, filters report.Filters, dir string) (*Result, error) {
	out, err := a.renderer.Render(ctx, report.Request{Type: t, Format: report.FormatCSV, Filters: filters})
	if err != nil {
		return nil, err
	}
	key := path.Join(dir, out.Filename)
	loc, err := a.store.Put(ctx, key, out.Body, out.ContentType)
	if err != nil {
		return nil, fmt.Errorf("archive: store %s: %w", key, err)
	}
	a.logger.Info().Str("type", string(t)).Str("location", loc).Int("rows", out.Rows).Msg("report archived")
	return &Result{Type: t, Filename: out.Filename, Location: loc, Rows: out.Rows}, nil
}

// PreviousMonth returns filters covering the UTC calendar month before now.
func PreviousMonth(now time.Time) (report.Filters, string) {
	start := report.TruncateToMonth(now).AddDate(0, -1, 0)
	end := start.AddDate(0, 1, -1)
	return report.Filters{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}, start.Format("2006-01")
}

// RunOnce archives every configured report for the previous month. A failing
// report does not stop the others; their errors are joined.
func (a *Archiver) RunOnce(ctx context.Context) ([]Result, error) {
	filters, period := PreviousMonth(a.now())
	var (
		results []Result
		errs    []error
	)
	for _, t := range a.types {
		res, err := a.archive(ctx, t, filters, path.Join(string(t), period))
		if err != nil {
			a.logger.Error().Err(err).Str("type", string(t)).Str("period", period).Msg("archive failed")
			errs = append(errs, fmt.Errorf("%s: %w", t, err))
			continue
		}
		results = append(results, *res)
	}
	return results, errors.Join(errs...)
}

// Run calls RunOnce immediately and then every interval until ctx ends.
func (a *Archiver) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := a.RunOnce(ctx); err != nil && ctx.Err() == nil {
			a.logger.Warn().Err(err).Msg("archive run finished with errors")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Bundle renders every report type as CSV into a single zip archive.
func Bundle(ctx context.Context, renderer Renderer, filters report.Filters, at time.Time) ([]byte, error) {
	entries := make([]zip.Entry, 0, len(report.Types))
	for _, t := range report.Types {
		out, err := renderer.Render(ctx, report.Request{Type: t, Format: report.FormatCSV, Filters: filters})
		if err != nil {
			return nil, err
		}
		entries = append(entries, zip.Entry{Name: out.Filename, Data: out.Body, Modified: at})
	}
	return zip.Archive(entries)
}

// BundleFilename names the zip produced by Bundle.
func BundleFilename(at time.Time) string {
	return fmt.Sprintf("reports-%s.zip", at.UTC().Format("2006-01-02"))
}
