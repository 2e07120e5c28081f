package query

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/climate-normals-api/internal/dataset"
	"github.com/couchcryptid/climate-normals-api/internal/domain"
)

// RainfallReading is a single month (or ANNUAL) normal for a district.
type RainfallReading struct {
	State    string
	District string
	Month    string
	Value    float64
	// Annual is set when Month is a calendar month.
	Annual *float64
}

// MonthProbability is a threshold test on one month's normal.
type MonthProbability struct {
	State    string
	District string
	Month    domain.Month
	domain.ThresholdResult
}

// RangeProbability is a threshold test over a resolved month range.
type RangeProbability struct {
	State     string
	District  string
	Months    []domain.Month
	Values    []float64
	Threshold float64
	domain.RangeResult
}

// MonthlyNormals holds all twelve monthly normals of a district.
type MonthlyNormals struct {
	State    string
	District string
	Monthly  [12]float64
}

// RainfallService answers rainfall normal queries.
type RainfallService struct {
	table *dataset.RainfallTable
}

// NewRainfallService creates a service over table.
func NewRainfallService(table *dataset.RainfallTable) *RainfallService {
	return &RainfallService{table: table}
}

// States lists the states in the dataset.
func (s *RainfallService) States() []string {
	return s.table.States()
}

// Districts lists the districts of state.
func (s *RainfallService) Districts(state string) ([]string, error) {
	if err := checkRequired("state", state); err != nil {
		return nil, err
	}
	return s.table.Districts(state)
}

// Rainfall returns the normal for a month code or ANNUAL. For a calendar
// month the annual total is included when the row has one.
func (s *RainfallService) Rainfall(state, district, month string) (RainfallReading, error) {
	if err := checkRequired("state", state, "district", district, "month", month); err != nil {
		return RainfallReading{}, err
	}
	code := domain.NormalizeMonthCode(month)
	if _, ok := domain.ParseMonth(code); !ok && code != domain.AnnualCode {
		return RainfallReading{}, fmt.Errorf("%w: month must be one of %s or %s",
			domain.ErrInvalidMonth, strings.Join(domain.MonthCodes(domain.Months()), ", "), domain.AnnualCode)
	}

	rec, err := s.table.FindByLocation(state, district)
	if err != nil {
		return RainfallReading{}, err
	}
	v, err := rec.Lookup(code)
	if err != nil {
		return RainfallReading{}, fmt.Errorf("rainfall for %s/%s %s: %w", rec.State, rec.District, code, err)
	}

	reading := RainfallReading{State: rec.State, District: rec.District, Month: code, Value: v}
	if code != domain.AnnualCode {
		if annual, err := rec.Lookup(domain.AnnualCode); err == nil {
			reading.Annual = &annual
		}
	}
	return reading, nil
}

// Probability tests one month's normal against threshold.
func (s *RainfallService) Probability(state, district, month string, threshold float64) (MonthProbability, error) {
	if err := checkRequired("state", state, "district", district, "month", month); err != nil {
		return MonthProbability{}, err
	}
	m, ok := domain.ParseMonth(month)
	if !ok {
		return MonthProbability{}, fmt.Errorf("%w: month must be one of %s",
			domain.ErrInvalidMonth, strings.Join(domain.MonthCodes(domain.Months()), ", "))
	}
	if err := domain.ValidateThreshold(threshold); err != nil {
		return MonthProbability{}, err
	}

	rec, err := s.table.FindByLocation(state, district)
	if err != nil {
		return MonthProbability{}, err
	}
	v, err := rec.Month(m)
	if err != nil {
		return MonthProbability{}, fmt.Errorf("rainfall for %s/%s %s: %w", rec.State, rec.District, m, err)
	}

	return MonthProbability{
		State:           rec.State,
		District:        rec.District,
		Month:           m,
		ThresholdResult: domain.ThresholdProbability(v, threshold),
	}, nil
}

// RangeProbability tests each month from startMonth to endMonth, wrapping
// across the year boundary, and aggregates the results.
func (s *RainfallService) RangeProbability(state, district, startMonth, endMonth string, threshold float64) (RangeProbability, error) {
	if err := checkRequired("state", state, "district", district, "start_month", startMonth, "end_month", endMonth); err != nil {
		return RangeProbability{}, err
	}
	for _, code := range []string{startMonth, endMonth} {
		if _, ok := domain.ParseMonth(code); !ok {
			return RangeProbability{}, fmt.Errorf("%w: %q is not a month", domain.ErrInvalidMonth, strings.TrimSpace(code))
		}
	}
	if err := domain.ValidateThreshold(threshold); err != nil {
		return RangeProbability{}, err
	}

	rec, err := s.table.FindByLocation(state, district)
	if err != nil {
		return RangeProbability{}, err
	}
	months := domain.ResolveMonthRange(startMonth, endMonth)
	values, err := rec.Values(months)
	if err != nil {
		return RangeProbability{}, fmt.Errorf("rainfall for %s/%s: %w", rec.State, rec.District, err)
	}

	return RangeProbability{
		State:       rec.State,
		District:    rec.District,
		Months:      months,
		Values:      values,
		Threshold:   threshold,
		RangeResult: domain.RangeThresholdProbability(values, threshold),
	}, nil
}

// Monthly returns all twelve monthly normals of a district.
func (s *RainfallService) Monthly(state, district string) (MonthlyNormals, error) {
	if err := checkRequired("state", state, "district", district); err != nil {
		return MonthlyNormals{}, err
	}
	rec, err := s.table.FindByLocation(state, district)
	if err != nil {
		return MonthlyNormals{}, err
	}
	if _, err := rec.Values(domain.Months()); err != nil {
		return MonthlyNormals{}, fmt.Errorf("rainfall for %s/%s: %w", rec.State, rec.District, err)
	}
	return MonthlyNormals{State: rec.State, District: rec.District, Monthly: rec.Monthly}, nil
}

// checkRequired checks name/value pairs and reports every blank parameter at once.
func checkRequired(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingParameter, strings.Join(missing, ", "))
	}
	return nil
}
