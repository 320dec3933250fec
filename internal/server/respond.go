package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"avplanner/internal/ingest"
	"avplanner/internal/logging"
	"avplanner/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError emits the uniform {"error": "..."} body every handler uses.
func writeError(w http.ResponseWriter, status int, err error) {
	logging.ServerDebug("request failed status=%d: %v", status, err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeStoreError maps a CRUD failure: not found 404, otherwise 500.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

// writeIngestError maps a pipeline failure: validation 400, everything past
// the process boundary (backend call, malformed model output) 502.
func writeIngestError(w http.ResponseWriter, err error) {
	if errors.Is(err, ingest.ErrEmptyPrompt) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeError(w, http.StatusBadGateway, err)
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathIndex parses the positional {index} path segment.
func pathIndex(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("index"))
}
