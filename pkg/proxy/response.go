package proxy

import (
	"encoding/json"
	"net/http"

	"mercator-hq/relay/pkg/proxy/types"
)

// WriteJSONResponse writes v as a JSON body with the given status.
func WriteJSONResponse(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteErrorResponse writes {"error": message} with the given status.
func WriteErrorResponse(w http.ResponseWriter, status int, message string) error {
	return WriteJSONResponse(w, status, types.NewErrorResponse(message))
}
