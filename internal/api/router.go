package api

import (
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func NewRouter(reservations *ReservationHandler, health *HealthHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/reservations/batch", reservations.CreateBatch).Methods("POST")
	r.HandleFunc("/api/reservations/availability", reservations.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/reservations", reservations.ListSchedule).Methods("GET")
	r.HandleFunc("/courts", reservations.ListCourts).Methods("GET")
	r.HandleFunc("/health", health.Health).Methods("GET")

	return r
}

// WithMiddleware adds CORS, an access log and panic recovery around h.
func WithMiddleware(h http.Handler, allowedOrigins []string, accessLog io.Writer) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return handlers.RecoveryHandler()(handlers.CombinedLoggingHandler(accessLog, cors(h)))
}
