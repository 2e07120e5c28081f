// Package query answers API requests by resolving rows from the loaded
// tables and deriving metrics from them.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/couchcryptid/climate-normals-api/internal/dataset"
	"github.com/couchcryptid/climate-normals-api/internal/domain"
	"github.com/couchcryptid/climate-normals-api/internal/observability"
)

// ClimateFilter selects climate records. Date takes precedence over a range;
// when neither is set every record matches.
type ClimateFilter struct {
	Date  string
	Start string
	End   string
}

// ClimateService answers daily climate queries.
type ClimateService struct {
	table   *dataset.ClimateTable
	stats   *cache.Cache
	metrics *observability.Metrics
}

// NewClimateService creates a service over table. Column statistics are
// cached for statsTTL; the table never changes, so the TTL only bounds memory.
func NewClimateService(table *dataset.ClimateTable, statsTTL time.Duration, metrics *observability.Metrics) *ClimateService {
	return &ClimateService{
		table:   table,
		stats:   cache.New(statsTTL, 2*statsTTL),
		metrics: metrics,
	}
}

// Records returns the records matching f. Date takes precedence over a range,
// and an empty filter returns every row. A lone start or end is rejected with
// ErrMissingParameter; it is not treated as an unfiltered request.
func (s *ClimateService) Records(f ClimateFilter) ([]domain.ClimateRecord, error) {
	f.Date, f.Start, f.End = strings.TrimSpace(f.Date), strings.TrimSpace(f.Start), strings.TrimSpace(f.End)

	switch {
	case f.Date != "":
		d, err := domain.ParseDate(f.Date)
		if err != nil {
			return nil, err
		}
		return s.table.FindByDate(d), nil
	case f.Start != "" && f.End != "":
		start, err := domain.ParseDate(f.Start)
		if err != nil {
			return nil, err
		}
		end, err := domain.ParseDate(f.End)
		if err != nil {
			return nil, err
		}
		return s.table.FindByDateRange(start, end), nil
	case f.Start != "" || f.End != "":
		return nil, fmt.Errorf("%w: both \"start\" and \"end\" are required for a date range", domain.ErrMissingParameter)
	default:
		return s.table.All(), nil
	}
}

// Stats returns min, max, mean and median of a numeric column.
func (s *ClimateService) Stats(column string) (domain.Stats, error) {
	col, err := domain.ParseClimateColumn(column)
	if err != nil {
		return domain.Stats{}, err
	}

	key := "stats:" + col.String()
	if v, ok := s.stats.Get(key); ok {
		s.observeCache("hit")
		return v.(domain.Stats), nil
	}
	s.observeCache("miss")

	st, err := domain.ColumnStats(s.table.Values(col))
	if err != nil {
		return domain.Stats{}, fmt.Errorf("column %s: %w", col, err)
	}
	s.stats.SetDefault(key, st)
	return st, nil
}

// Columns returns the dataset's column names, date first.
func (s *ClimateService) Columns() []string {
	return domain.ClimateColumnNames()
}

func (s *ClimateService) observeCache(result string) {
	if s.metrics != nil {
		s.metrics.StatsCache.WithLabelValues(result).Inc()
	}
}
