package web

import (
	"phonetrace/internal/location"

	"github.com/gorilla/mux"
)

// NewRouter sets up the API routes
func NewRouter(locationHandlers *location.LocationHandlers) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", locationHandlers.GetStatus).Methods("GET")
	api.HandleFunc("/phone-location", locationHandlers.LookupLocation).Methods("POST")

	return r
}
