package api

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/json-iterator/go/extra"

	apperrors "canchas/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Clients send ids both as numbers and as numeric strings.
func init() {
	extra.RegisterFuzzyDecoders()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, e *apperrors.HTTPError) {
	writeJSON(w, e.Code, ErrorResponse{Error: e.Message})
}
