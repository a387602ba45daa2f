package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// ReportResponse is the JSON body served by Handler.
type ReportResponse struct {
	Status    Status                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Checks    map[string]CheckResponse `json:"checks,omitempty"`
}

// CheckResponse is one check inside a ReportResponse.
type CheckResponse struct {
	Status   Status         `json:"status"`
	Message  string         `json:"message,omitempty"`
	Duration string         `json:"duration,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// NewReportResponse converts a report to its JSON form.
func NewReportResponse(r Report) ReportResponse {
	out := ReportResponse{
		Status:    r.Status,
		Timestamp: r.Timestamp.UTC().Format(time.RFC3339),
		Checks:    make(map[string]CheckResponse, len(r.Results)),
	}
	for name, res := range r.Results {
		check := CheckResponse{
			Status:   res.Status,
			Message:  res.Message,
			Duration: res.Duration.String(),
			Details:  res.Details,
		}
		if res.Error != nil {
			check.Error = res.Error.Error()
		}
		out.Checks[name] = check
	}
	return out
}

// StatusCode maps s to 200, or 503 when unhealthy.
func StatusCode(s Status) int {
	if s >= StatusUnhealthy {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

// Handler serves the aggregated report as JSON. A "check" query parameter
// runs only the named checker, answering 404 for unknown names.
func Handler(agg *Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var report Report
		if name := r.URL.Query().Get("check"); name != "" {
			res, err := agg.Check(r.Context(), name)
			if err != nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
				return
			}
			report = Report{
				Status:    res.Status,
				Results:   map[string]Result{name: res},
				Timestamp: res.Timestamp,
			}
		} else {
			report = agg.Run(r.Context())
		}
		writeJSON(w, StatusCode(report.Status), NewReportResponse(report))
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
