// Package dataset loads the climate and rainfall files into read-only
// in-memory tables and resolves queries against them.
package dataset

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/climate-normals-api/internal/observability"
)

// meta describes a loaded table.
type meta struct {
	name     string
	path     string
	columns  []string
	rows     int
	loadedAt time.Time
}

func newMeta(name, path string, columns []string, rows int) meta {
	return meta{name: name, path: path, columns: slices.Clone(columns), rows: rows, loadedAt: clock.Now()}
}

// Info reports where a table came from and what it holds.
type Info struct {
	Name     string
	Path     string
	Rows     int
	Columns  []string
	LoadedAt time.Time
}

// Info returns the table's metadata.
func (m meta) Info() Info {
	return Info{Name: m.name, Path: m.path, Rows: m.rows, Columns: slices.Clone(m.columns), LoadedAt: m.loadedAt}
}

// Datasets is the data context shared read-only by every request handler.
type Datasets struct {
	Climate  *ClimateTable
	Rainfall *RainfallTable
}

// Load reads both datasets concurrently. Any failure, or cancellation of ctx,
// aborts the whole load.
func Load(ctx context.Context, climatePath, rainfallPath string, logger *slog.Logger, metrics *observability.Metrics) (*Datasets, error) {
	var ds Datasets
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := clock.Now()
		t, err := LoadClimate(gctx, climatePath)
		if err != nil {
			return err
		}
		ds.Climate = t
		observeLoad(logger, metrics, t.Info(), clock.Since(start))
		return nil
	})
	g.Go(func() error {
		start := clock.Now()
		t, err := LoadRainfall(gctx, rainfallPath)
		if err != nil {
			return err
		}
		ds.Rainfall = t
		observeLoad(logger, metrics, t.Info(), clock.Since(start))
		if dups := t.Duplicates(); len(dups) > 0 {
			logger.Warn("duplicate rainfall locations, first row wins", "count", len(dups))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func observeLoad(logger *slog.Logger, metrics *observability.Metrics, info Info, took time.Duration) {
	logger.Info("dataset loaded", "dataset", info.Name, "path", info.Path, "rows", info.Rows, "duration", took)
	if metrics != nil {
		metrics.DatasetRows.WithLabelValues(info.Name).Set(float64(info.Rows))
		metrics.DatasetLoadDuration.WithLabelValues(info.Name).Set(took.Seconds())
	}
}

// CheckReadiness reports an error until both tables are loaded.
func (d *Datasets) CheckReadiness(_ context.Context) error {
	if d == nil || d.Climate == nil || d.Rainfall == nil {
		return errors.New("datasets not loaded")
	}
	return nil
}

// Info returns metadata for both tables.
func (d *Datasets) Info() []Info {
	return []Info{d.Climate.Info(), d.Rainfall.Info()}
}
