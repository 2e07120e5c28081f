package dataset

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/couchcryptid/climate-normals-api/internal/domain"
)

// ClimateTable is the read-only, in-memory daily climate dataset.
type ClimateTable struct {
	meta
	records []domain.ClimateRecord
	byDate  map[time.Time][]int
}

// dateLayouts are accepted in the date column; the second matches files
// written by dataframe tools that serialize timestamps.
var dateLayouts = []string{domain.DateLayout, "2006-01-02 15:04:05"}

// LoadClimate reads the climate dataset at path. It stops early with the
// context's error when ctx is cancelled.
func LoadClimate(ctx context.Context, path string) (*ClimateTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fr, err := readFrame(path)
	if err != nil {
		return nil, err
	}

	dates, err := fr.column(path, domain.DateColumn)
	if err != nil {
		return nil, err
	}
	values := make(map[domain.ClimateColumn][]string)
	for _, c := range domain.ClimateColumns() {
		col, err := fr.column(path, c.String())
		if err != nil {
			return nil, err
		}
		values[c] = col
	}

	records := make([]domain.ClimateRecord, fr.rows)
	for i := 0; i < fr.rows; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, err := parseRecordDate(dates[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %w", domain.ErrLoadFailure, path, i+2, err)
		}
		rec := domain.ClimateRecord{Date: d}
		for _, c := range domain.ClimateColumns() {
			v, err := parseCell(values[c][i])
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d column %s: %w", domain.ErrLoadFailure, path, i+2, c, err)
			}
			setClimateValue(&rec, c, v)
		}
		records[i] = rec
	}

	t := NewClimateTable(records)
	t.meta = newMeta("climate", path, fr.names, len(records))
	return t, nil
}

// NewClimateTable indexes records in the given order. Used directly by tests
// to build fixture tables.
func NewClimateTable(records []domain.ClimateRecord) *ClimateTable {
	t := &ClimateTable{
		meta:    newMeta("climate", "", domain.ClimateColumnNames(), len(records)),
		records: records,
		byDate:  make(map[time.Time][]int),
	}
	for i, r := range records {
		t.byDate[r.Date] = append(t.byDate[r.Date], i)
	}
	return t
}

func parseRecordDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		d, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func setClimateValue(r *domain.ClimateRecord, c domain.ClimateColumn, v float64) {
	switch c {
	case domain.MeanTemp:
		r.MeanTemp = v
	case domain.Humidity:
		r.Humidity = v
	case domain.WindSpeed:
		r.WindSpeed = v
	case domain.MeanPressure:
		r.MeanPressure = v
	}
}

// Len returns the number of records.
func (t *ClimateTable) Len() int { return len(t.records) }

// All returns every record in file order.
func (t *ClimateTable) All() []domain.ClimateRecord {
	return slices.Clone(t.records)
}

// FindByDate returns the records observed on date, in file order.
func (t *ClimateTable) FindByDate(date time.Time) []domain.ClimateRecord {
	idx := t.byDate[truncateDay(date)]
	out := make([]domain.ClimateRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, t.records[i])
	}
	return out
}

// FindByDateRange returns the records with start <= date <= end, in file order.
func (t *ClimateTable) FindByDateRange(start, end time.Time) []domain.ClimateRecord {
	start, end = truncateDay(start), truncateDay(end)
	out := make([]domain.ClimateRecord, 0)
	for _, r := range t.records {
		if !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out
}

// Values returns column c across all records, in file order.
func (t *ClimateTable) Values(c domain.ClimateColumn) []float64 {
	out := make([]float64, len(t.records))
	for i, r := range t.records {
		out[i] = r.Value(c)
	}
	return out
}

func truncateDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
