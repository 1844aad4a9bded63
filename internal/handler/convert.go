package handler

import "net/http"

// GetConvert handles GET /v1/convert?expr=...
// It parses and evaluates the expression and returns the outcome: 400 when
// the expr parameter is missing, 422 with a classified error code when the
// expression itself is bad, 500 for anything else.
func (s *Server) GetConvert(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("expr")
	if input == "" {
		respondError(w, http.StatusBadRequest, "missing_parameter", "expr query parameter is required")
		return
	}

	out, err := s.converter.Convert(input)
	if err != nil {
		code, client := errorCode(err)
		if client {
			respondError(w, http.StatusUnprocessableEntity, code, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, code, "conversion failed")
		return
	}

	respondJSON(w, http.StatusOK, out)
}
