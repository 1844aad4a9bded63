package handler

import (
	"net/http"

	"github.com/pkordes/when/internal/zone"
)

// GetTimezones handles GET /v1/timezones.
// It returns the embedded IANA identifier list as a sorted JSON array.
func (s *Server) GetTimezones(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, zone.Identifiers())
}
