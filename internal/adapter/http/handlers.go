package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/climate-normals-api/internal/domain"
	"github.com/couchcryptid/climate-normals-api/internal/query"
)

// --- climate ---

// handleClimate serves GET /climate?date= or ?start=&end=. Passing only one of
// start and end is a 400, not a request for the whole table.
func (s *Server) handleClimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	recs, err := s.climate.Records(query.ClimateFilter{
		Date:  q.Get("date"),
		Start: q.Get("start"),
		End:   q.Get("end"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatClimateRecords(recs))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	params, err := requireParams(r, "column")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := s.climate.Stats(params["column"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatStats(st))
}

func (s *Server) handleColumns(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.climate.Columns())
}

// --- rainfall ---

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statesResponse{States: s.rainfall.States()})
}

func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	params, err := requireParams(r, "state")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	districts, err := s.rainfall.Districts(params["state"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, districtsResponse{State: params["state"], Districts: districts})
}

func (s *Server) handleRainfall(w http.ResponseWriter, r *http.Request) {
	params, err := requireParams(r, "state", "district", "month")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	reading, err := s.rainfall.Rainfall(params["state"], params["district"], params["month"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatRainfall(reading))
}

func (s *Server) handleRainfallProbability(w http.ResponseWriter, r *http.Request) {
	params, err := requireParams(r, "state", "district", "month", "threshold")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	threshold, err := parseThreshold(params["threshold"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.rainfall.Probability(params["state"], params["district"], params["month"], threshold)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatProbability(p))
}

func (s *Server) handleRainfallRangeProbability(w http.ResponseWriter, r *http.Request) {
	params, err := requireParams(r, "state", "district", "start_month", "end_month", "threshold")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	threshold, err := parseThreshold(params["threshold"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.rainfall.RangeProbability(params["state"], params["district"], params["start_month"], params["end_month"], threshold)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatRangeProbability(p))
}

func (s *Server) handleRainfallMonthly(w http.ResponseWriter, r *http.Request) {
	params, err := requireParams(r, "state", "district")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.rainfall.Monthly(params["state"], params["district"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatMonthly(m))
}

func (s *Server) handleDatasets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, formatDatasets(s.catalog.Info()))
}

// requireParams returns the named query parameters, trimmed, or a
// MissingParameter error listing every blank one.
func requireParams(r *http.Request, names ...string) (map[string]string, error) {
	q := r.URL.Query()
	params := make(map[string]string, len(names))
	var missing []string
	for _, name := range names {
		v := strings.TrimSpace(q.Get(name))
		if v == "" {
			missing = append(missing, strconv.Quote(name))
			continue
		}
		params[name] = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingParameter, strings.Join(missing, ", "))
	}
	return params, nil
}

func parseThreshold(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: threshold %q is not a number", domain.ErrInvalidParameter, s)
	}
	return v, nil
}
