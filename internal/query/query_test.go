package query

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-normals-api/internal/dataset"
	"github.com/couchcryptid/climate-normals-api/internal/domain"
	"github.com/couchcryptid/climate-normals-api/internal/observability"
)

func day(d int) time.Time {
	return time.Date(2017, time.January, d, 0, 0, 0, 0, time.UTC)
}

func newClimateService(t *testing.T) (*ClimateService, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	table := dataset.NewClimateTable([]domain.ClimateRecord{
		{Date: day(1), MeanTemp: 10, Humidity: 80, WindSpeed: 1, MeanPressure: 1015},
		{Date: day(2), MeanTemp: 14, Humidity: 70, WindSpeed: 3, MeanPressure: 1017},
		{Date: day(3), MeanTemp: 12, Humidity: 60, WindSpeed: 2, MeanPressure: 1016},
	})
	return NewClimateService(table, time.Minute, metrics), metrics
}

func newRainfallService() *RainfallService {
	return NewRainfallService(dataset.NewRainfallTable([]domain.RainfallRecord{
		{
			State:    "Kerala",
			District: " Idukki ",
			Monthly:  [12]float64{13.4, 34.9, 61.2, 159.1, 230.3, 640.8, 843.1, 560.0, 337.2, 422.8, 228.4, 42.9},
			Annual:   3574.1,
		},
		{
			State:    "Kerala",
			District: "Wayanad",
			Monthly:  [12]float64{math.NaN(), 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
			Annual:   math.NaN(),
		},
	}))
}

// --- climate ---

func TestClimateService_Records(t *testing.T) {
	svc, _ := newClimateService(t)

	t.Run("single date", func(t *testing.T) {
		recs, err := svc.Records(ClimateFilter{Date: "2017-01-02"})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, 14.0, recs[0].MeanTemp)
	})

	t.Run("date wins over range", func(t *testing.T) {
		recs, err := svc.Records(ClimateFilter{Date: "2017-01-01", Start: "2017-01-01", End: "2017-01-03"})
		require.NoError(t, err)
		assert.Len(t, recs, 1)
	})

	t.Run("range", func(t *testing.T) {
		recs, err := svc.Records(ClimateFilter{Start: "2017-01-02", End: "2017-01-03"})
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		recs, err := svc.Records(ClimateFilter{})
		require.NoError(t, err)
		assert.Len(t, recs, 3)
	})

	t.Run("half a range", func(t *testing.T) {
		_, err := svc.Records(ClimateFilter{Start: "2017-01-02"})
		require.ErrorIs(t, err, domain.ErrMissingParameter)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.Records(ClimateFilter{Date: "yesterday"})
		require.ErrorIs(t, err, domain.ErrInvalidParameter)
	})
}

func TestClimateService_Stats(t *testing.T) {
	svc, metrics := newClimateService(t)

	st, err := svc.Stats("meantemp")
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Min: 10, Max: 14, Mean: 12, Median: 12}, st)

	_, err = svc.Stats("meantemp")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StatsCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StatsCache.WithLabelValues("hit")))
}

func TestClimateService_StatsInvalidColumn(t *testing.T) {
	svc, _ := newClimateService(t)

	_, err := svc.Stats("date")
	require.ErrorIs(t, err, domain.ErrInvalidColumn)

	_, err = svc.Stats("rain")
	require.ErrorIs(t, err, domain.ErrInvalidColumn)
}

func TestClimateService_StatsEmptyTable(t *testing.T) {
	svc := NewClimateService(dataset.NewClimateTable(nil), time.Minute, nil)
	_, err := svc.Stats("humidity")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// --- rainfall ---

func TestRainfallService_Rainfall(t *testing.T) {
	svc := newRainfallService()

	t.Run("month includes annual", func(t *testing.T) {
		r, err := svc.Rainfall("Kerala", "Idukki", "jan")
		require.NoError(t, err)
		assert.Equal(t, "JAN", r.Month)
		assert.Equal(t, 13.4, r.Value)
		require.NotNil(t, r.Annual)
		assert.Equal(t, 3574.1, *r.Annual)
	})

	t.Run("annual omits annual", func(t *testing.T) {
		r, err := svc.Rainfall("Kerala", "Idukki", "ANNUAL")
		require.NoError(t, err)
		assert.Equal(t, 3574.1, r.Value)
		assert.Nil(t, r.Annual)
	})

	t.Run("blank annual cell is omitted", func(t *testing.T) {
		r, err := svc.Rainfall("Kerala", "Wayanad", "FEB")
		require.NoError(t, err)
		assert.Nil(t, r.Annual)
	})

	t.Run("blank month cell", func(t *testing.T) {
		_, err := svc.Rainfall("Kerala", "Wayanad", "JAN")
		require.ErrorIs(t, err, domain.ErrComputation)
	})

	t.Run("invalid month", func(t *testing.T) {
		_, err := svc.Rainfall("Kerala", "Idukki", "JANUARY")
		require.ErrorIs(t, err, domain.ErrInvalidMonth)
	})

	t.Run("missing parameters", func(t *testing.T) {
		_, err := svc.Rainfall("Kerala", "", " ")
		require.ErrorIs(t, err, domain.ErrMissingParameter)
		assert.Contains(t, err.Error(), "district, month")
	})

	t.Run("absent district", func(t *testing.T) {
		_, err := svc.Rainfall("Kerala", "Kollam", "JAN")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRainfallService_Probability(t *testing.T) {
	svc := newRainfallService()

	p, err := svc.Probability("Kerala", "Idukki", "JUN", 600)
	require.NoError(t, err)
	assert.Equal(t, domain.Jun, p.Month)
	assert.Equal(t, 640.8, p.Value)
	assert.Equal(t, 100.0, p.ProbabilityPercent)
	assert.Equal(t, 40.8, p.Difference)

	_, err = svc.Probability("Kerala", "Idukki", "ANNUAL", 600)
	require.ErrorIs(t, err, domain.ErrInvalidMonth)

	_, err = svc.Probability("Kerala", "Idukki", "JUN", math.NaN())
	require.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestRainfallService_RangeProbability(t *testing.T) {
	svc := newRainfallService()

	got, err := svc.RangeProbability("Kerala", "Idukki", "NOV", "FEB", 40)
	require.NoError(t, err)

	want := RangeProbability{
		State:     "Kerala",
		District:  "Idukki",
		Months:    []domain.Month{domain.Nov, domain.Dec, domain.Jan, domain.Feb},
		Values:    []float64{228.4, 42.9, 13.4, 34.9},
		Threshold: 40,
		RangeResult: domain.RangeResult{
			Elements: []domain.ThresholdResult{
				{Value: 228.4, Threshold: 40, ProbabilityPercent: 100, Difference: 188.4},
				{Value: 42.9, Threshold: 40, ProbabilityPercent: 100, Difference: 2.9},
				{Value: 13.4, Threshold: 40, ProbabilityPercent: 0, Difference: -26.6},
				{Value: 34.9, Threshold: 40, ProbabilityPercent: 0, Difference: -5.1},
			},
			Average:               79.9,
			ProbabilityPercent:    50,
			AverageMinusThreshold: 39.9,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RangeProbability mismatch (-want +got):\n%s", diff)
	}

	_, err = svc.RangeProbability("Kerala", "Idukki", "FOO", "FEB", 40)
	require.ErrorIs(t, err, domain.ErrInvalidMonth)
}

func TestRainfallService_Monthly(t *testing.T) {
	svc := newRainfallService()

	m, err := svc.Monthly("Kerala", "Idukki")
	require.NoError(t, err)
	assert.Equal(t, 843.1, m.Monthly[domain.Jul])

	_, err = svc.Monthly("Kerala", "Wayanad")
	require.ErrorIs(t, err, domain.ErrComputation)

	_, err = svc.Monthly("", "Idukki")
	require.ErrorIs(t, err, domain.ErrMissingParameter)
}

func TestRainfallService_Enumerations(t *testing.T) {
	svc := newRainfallService()

	assert.Equal(t, []string{"Kerala"}, svc.States())

	ds, err := svc.Districts("Kerala")
	require.NoError(t, err)
	assert.Equal(t, []string{"Idukki", "Wayanad"}, ds)

	_, err = svc.Districts("")
	require.ErrorIs(t, err, domain.ErrMissingParameter)
}
