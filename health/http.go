package health

import (
	"encoding/json"
	"net/http"
)

// ShallowHandler returns the handler for the lightweight liveness
// endpoint. It performs no I/O and answers 200 with {"status":"ok"}; if
// building that response fails it answers 500 with the error message.
func ShallowHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := json.Marshal(map[string]string{"status": "ok"})
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// ExtendedHandler returns the handler for the extended health endpoint.
// It runs the aggregator's full probe set and renders every probe's
// result under its own key next to the aggregate status. The HTTP status
// is 200 only when every probe passed.
func ExtendedHandler(agg *Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := agg.Run(r.Context())

		body := make(map[string]any, len(report.Results)+1)
		body["status"] = report.Status()
		for _, pr := range report.Results {
			body[pr.Name] = probeBody(pr.Result)
		}

		status := http.StatusOK
		if !report.OK {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, body)
	}
}

// probeBody flattens one probe result for the wire: the ok flag, the
// diagnostic details at top level, and the captured error when failed.
func probeBody(r Result) map[string]any {
	body := make(map[string]any, len(r.Details)+2)
	body["ok"] = r.OK
	for k, v := range r.Details {
		body[k] = v
	}
	if r.Err != "" {
		body["error"] = r.Err
	}
	return body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "error",
		"message": err.Error(),
	})
}
