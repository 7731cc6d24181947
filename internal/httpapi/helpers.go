package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends a structured error body: {"error": "..."}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeMessage sends a structured success body: {"message": "..."}.
func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// decodeJSON decodes the request body into v. Unknown keys are rejected so a
// misspelled patch field fails loudly instead of being silently ignored.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// errInvalidPage reports a non-integer skip or limit query parameter.
var errInvalidPage = errors.New("skip and limit must be integers")

// parsePage reads the skip/limit query parameters. Defaults and bounds are
// applied by the resource service; this only parses.
func parsePage(r *http.Request) (skip, limit int, err error) {
	q := r.URL.Query()

	if raw := q.Get("skip"); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errInvalidPage
		}
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errInvalidPage
		}
	}
	return skip, limit, nil
}
