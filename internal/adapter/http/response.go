package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/couchcryptid/climate-normals-api/internal/dataset"
	"github.com/couchcryptid/climate-normals-api/internal/domain"
	"github.com/couchcryptid/climate-normals-api/internal/query"
)

type errorResponse struct {
	Error string `json:"error"`
}

type climateRecordResponse struct {
	Date         string   `json:"date"`
	MeanTemp     *float64 `json:"meantemp"`
	Humidity     *float64 `json:"humidity"`
	WindSpeed    *float64 `json:"wind_speed"`
	MeanPressure *float64 `json:"meanpressure"`
}

type statsResponse struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

type statesResponse struct {
	States []string `json:"states"`
}

type districtsResponse struct {
	State     string   `json:"state"`
	Districts []string `json:"districts"`
}

type rainfallResponse struct {
	State      string   `json:"state"`
	District   string   `json:"district"`
	Month      string   `json:"month"`
	RainfallMM float64  `json:"rainfall_mm"`
	AnnualMM   *float64 `json:"annual_mm,omitempty"`
}

type monthProbabilityResponse struct {
	Month              string  `json:"month"`
	RainfallMM         float64 `json:"rainfall_mm"`
	ThresholdMM        float64 `json:"threshold_mm"`
	ProbabilityPercent float64 `json:"probability_percent"`
	VariableDifference float64 `json:"variable_difference"`
}

type probabilityResponse struct {
	State    string `json:"state"`
	District string `json:"district"`
	monthProbabilityResponse
}

type rangeProbabilityResponse struct {
	State                 string                     `json:"state"`
	District              string                     `json:"district"`
	Months                []string                   `json:"months"`
	RainfallValuesMM      []float64                  `json:"rainfall_values_mm"`
	AverageRainfallMM     float64                    `json:"average_rainfall_mm"`
	CustomThresholdMM     float64                    `json:"custom_threshold_mm"`
	ProbabilityPercent    float64                    `json:"probability_percent"`
	AverageMinusThreshold float64                    `json:"average_minus_threshold"`
	PerMonth              []monthProbabilityResponse `json:"per_month"`
}

type monthlyResponse struct {
	State             string             `json:"state"`
	District          string             `json:"district"`
	MonthlyRainfallMM map[string]float64 `json:"monthly_rainfall_mm"`
}

type datasetResponse struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Rows     int       `json:"rows"`
	Columns  []string  `json:"columns"`
	LoadedAt time.Time `json:"loaded_at"`
}

func formatClimateRecords(recs []domain.ClimateRecord) []climateRecordResponse {
	out := make([]climateRecordResponse, len(recs))
	for i, r := range recs {
		out[i] = climateRecordResponse{
			Date:         r.Date.Format(domain.DateLayout),
			MeanTemp:     nullable(r.MeanTemp),
			Humidity:     nullable(r.Humidity),
			WindSpeed:    nullable(r.WindSpeed),
			MeanPressure: nullable(r.MeanPressure),
		}
	}
	return out
}

func formatStats(s domain.Stats) statsResponse {
	return statsResponse{Min: s.Min, Max: s.Max, Mean: s.Mean, Median: s.Median}
}

func formatRainfall(r query.RainfallReading) rainfallResponse {
	return rainfallResponse{
		State:      r.State,
		District:   r.District,
		Month:      r.Month,
		RainfallMM: r.Value,
		AnnualMM:   r.Annual,
	}
}

func formatMonthProbability(m domain.Month, r domain.ThresholdResult) monthProbabilityResponse {
	return monthProbabilityResponse{
		Month:              m.String(),
		RainfallMM:         r.Value,
		ThresholdMM:        r.Threshold,
		ProbabilityPercent: r.ProbabilityPercent,
		VariableDifference: r.Difference,
	}
}

func formatProbability(p query.MonthProbability) probabilityResponse {
	return probabilityResponse{
		State:                    p.State,
		District:                 p.District,
		monthProbabilityResponse: formatMonthProbability(p.Month, p.ThresholdResult),
	}
}

func formatRangeProbability(p query.RangeProbability) rangeProbabilityResponse {
	perMonth := make([]monthProbabilityResponse, len(p.Elements))
	for i, e := range p.Elements {
		perMonth[i] = formatMonthProbability(p.Months[i], e)
	}
	return rangeProbabilityResponse{
		State:                 p.State,
		District:              p.District,
		Months:                domain.MonthCodes(p.Months),
		RainfallValuesMM:      p.Values,
		AverageRainfallMM:     p.Average,
		CustomThresholdMM:     p.Threshold,
		ProbabilityPercent:    p.ProbabilityPercent,
		AverageMinusThreshold: p.AverageMinusThreshold,
		PerMonth:              perMonth,
	}
}

func formatMonthly(m query.MonthlyNormals) monthlyResponse {
	vals := make(map[string]float64, len(m.Monthly))
	for _, month := range domain.Months() {
		vals[month.String()] = m.Monthly[month]
	}
	return monthlyResponse{State: m.State, District: m.District, MonthlyRainfallMM: vals}
}

func formatDatasets(infos []dataset.Info) []datasetResponse {
	out := make([]datasetResponse, len(infos))
	for i, info := range infos {
		out[i] = datasetResponse{
			Name:     info.Name,
			Path:     info.Path,
			Rows:     info.Rows,
			Columns:  info.Columns,
			LoadedAt: info.LoadedAt,
		}
	}
	return out
}

// nullable maps blank (NaN) cells to JSON null.
func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingParameter),
		errors.Is(err, domain.ErrInvalidParameter),
		errors.Is(err, domain.ErrInvalidMonth),
		errors.Is(err, domain.ErrInvalidColumn):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends the error payload. Server-side failures are logged and
// answered with a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context(), s.logger).Error("request failed", "error", err)
		msg = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON encodes v before committing the status, so a payload that cannot
// be encoded becomes a 500 instead of a truncated 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response", "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n')) //nolint:errcheck // client may have gone away
}
