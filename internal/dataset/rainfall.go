package dataset

import (
	"context"
	"fmt"
	"slices"

	"github.com/couchcryptid/climate-normals-api/internal/domain"
)

// Column names of the rainfall normals file.
const (
	StateColumn    = "STATE_UT_NAME"
	DistrictColumn = "DISTRICT"
)

// Location is a (state, district) key.
type Location struct {
	State    string
	District string
}

// RainfallTable is the read-only, in-memory rainfall normals dataset.
type RainfallTable struct {
	meta
	records    []domain.RainfallRecord
	index      map[Location]int
	states     []string
	districts  map[string][]string
	duplicates []Location
}

// LoadRainfall reads the rainfall normals dataset at path. State and district
// names are trimmed before indexing.
func LoadRainfall(ctx context.Context, path string) (*RainfallTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fr, err := readFrame(path)
	if err != nil {
		return nil, err
	}

	states, err := fr.column(path, StateColumn)
	if err != nil {
		return nil, err
	}
	districts, err := fr.column(path, DistrictColumn)
	if err != nil {
		return nil, err
	}
	var monthly [12][]string
	for _, m := range domain.Months() {
		if monthly[m], err = fr.column(path, m.String()); err != nil {
			return nil, err
		}
	}
	annual, err := fr.column(path, domain.AnnualCode)
	if err != nil {
		return nil, err
	}

	records := make([]domain.RainfallRecord, fr.rows)
	for i := 0; i < fr.rows; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := domain.RainfallRecord{State: states[i], District: districts[i]}
		for m := range monthly {
			v, err := parseCell(monthly[m][i])
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d column %s: %w", domain.ErrLoadFailure, path, i+2, domain.Month(m), err)
			}
			rec.Monthly[m] = v
		}
		if rec.Annual, err = parseCell(annual[i]); err != nil {
			return nil, fmt.Errorf("%w: %s row %d column %s: %w", domain.ErrLoadFailure, path, i+2, domain.AnnualCode, err)
		}
		records[i] = rec
	}

	t := NewRainfallTable(records)
	t.meta = newMeta("rainfall", path, fr.names, len(records))
	return t, nil
}

// NewRainfallTable normalizes and indexes records. When a location appears
// more than once the first row wins; later rows are reported by Duplicates.
func NewRainfallTable(records []domain.RainfallRecord) *RainfallTable {
	cols := []string{StateColumn, DistrictColumn}
	cols = append(cols, domain.MonthCodes(domain.Months())...)
	cols = append(cols, domain.AnnualCode)

	t := &RainfallTable{
		meta:      newMeta("rainfall", "", cols, len(records)),
		records:   make([]domain.RainfallRecord, len(records)),
		index:     make(map[Location]int, len(records)),
		districts: make(map[string][]string),
	}
	for i, r := range records {
		r.State = normalizeKey(r.State)
		r.District = normalizeKey(r.District)
		t.records[i] = r

		key := Location{State: r.State, District: r.District}
		if _, ok := t.index[key]; ok {
			t.duplicates = append(t.duplicates, key)
			continue
		}
		t.index[key] = i
		if _, ok := t.districts[r.State]; !ok {
			t.states = append(t.states, r.State)
		}
		t.districts[r.State] = append(t.districts[r.State], r.District)
	}

	slices.Sort(t.states)
	for _, ds := range t.districts {
		slices.Sort(ds)
	}
	return t
}

// Len returns the number of rows, duplicates included.
func (t *RainfallTable) Len() int { return len(t.records) }

// FindByLocation returns the record for (state, district). Inputs are
// normalized the same way as the stored keys.
func (t *RainfallTable) FindByLocation(state, district string) (domain.RainfallRecord, error) {
	key := Location{State: normalizeKey(state), District: normalizeKey(district)}
	i, ok := t.index[key]
	if !ok {
		return domain.RainfallRecord{}, fmt.Errorf("%w: data for state=%s, district=%s", domain.ErrNotFound, key.State, key.District)
	}
	return t.records[i], nil
}

// States returns the distinct state names, sorted.
func (t *RainfallTable) States() []string {
	return slices.Clone(t.states)
}

// Districts returns the distinct districts of state, sorted.
func (t *RainfallTable) Districts(state string) ([]string, error) {
	state = normalizeKey(state)
	ds, ok := t.districts[state]
	if !ok {
		return nil, fmt.Errorf("%w: state %q", domain.ErrNotFound, state)
	}
	return slices.Clone(ds), nil
}

// Locations returns every indexed (state, district) pair in file order.
func (t *RainfallTable) Locations() []Location {
	out := make([]Location, 0, len(t.index))
	for i, r := range t.records {
		key := Location{State: r.State, District: r.District}
		if t.index[key] == i {
			out = append(out, key)
		}
	}
	return out
}

// Records returns every row in file order, duplicates included.
func (t *RainfallTable) Records() []domain.RainfallRecord {
	return slices.Clone(t.records)
}

// Duplicates returns locations that appeared more than once, one entry per
// extra occurrence.
func (t *RainfallTable) Duplicates() []Location {
	return slices.Clone(t.duplicates)
}
