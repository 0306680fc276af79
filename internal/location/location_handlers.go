package location

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"phonetrace/db"
	"phonetrace/internal/config"
)

type LocationHandlers struct {
	Service *LocationService
	Config  *config.Config
}

func NewLocationHandlers(service *LocationService, cfg *config.Config) *LocationHandlers {
	return &LocationHandlers{Service: service, Config: cfg}
}

type lookupRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	APIKeyConfigured bool   `json:"apiKeyConfigured"`
	Message          string `json:"message"`
}

// GetStatus reports whether the external provider credential is configured
func (h *LocationHandlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := statusResponse{APIKeyConfigured: h.Config.IsProviderConfigured()}
	if status.APIKeyConfigured {
		status.Message = "AbstractAPI key is configured"
	} else {
		status.Message = "AbstractAPI key is missing. Data will be generated using simulation."
	}
	writeJSON(w, http.StatusOK, status)
}

// LookupLocation resolves a phone number to a location record
func (h *LocationHandlers) LookupLocation(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return
	}
	if req.PhoneNumber == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Phone number is required"})
		return
	}

	record, err := h.Service.Resolve(r.Context(), req.PhoneNumber)
	if errors.Is(err, db.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, messageResponse{
			Message: fmt.Sprintf("Unable to find location information for %s.", req.PhoneNumber),
		})
		return
	}
	if err != nil {
		log.Printf("Error processing phone location request: %v", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{
			Message: "Failed to process phone location request. Please try again later.",
		})
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
