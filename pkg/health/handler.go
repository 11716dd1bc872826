package health

import (
	"encoding/json"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// LivenessHandler always responds OK: the process is up.
// It never touches Redis, so a lost connection does not restart the pod.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, &Response{Status: StatusHealthy}, "OK")
	}
}

// ReadinessHandler runs checks on every request and answers 503 if any fails.
// The plain text body of a failed run names the failing checks.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := run(r.Context(), checks, cfg)
		if err == nil {
			respond(w, r, http.StatusOK, resp, "OK")
			return
		}
		text := "Service Unavailable: " + strings.Join(FailedChecks(err), ", ")
		respond(w, r, http.StatusServiceUnavailable, resp, text)
	}
}

// respond encodes resp as JSON or YAML when asked to, and writes text otherwise.
// ?format= takes precedence over the Accept header.
func respond(w http.ResponseWriter, r *http.Request, status int, resp *Response, text string) {
	w.Header().Set("Cache-Control", "no-store")

	switch format(r) {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	case "yaml":
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(status)
		_ = yaml.NewEncoder(w).Encode(resp)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(text))
	}
}

func format(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f == "json" || f == "yaml" {
		return f
	}
	accept := r.Header.Get("Accept")
	switch {
	case strings.Contains(accept, "application/json"):
		return "json"
	case strings.Contains(accept, "yaml"):
		return "yaml"
	}
	return "text"
}
