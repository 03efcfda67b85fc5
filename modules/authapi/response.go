package authapi

import (
	"encoding/json"
	"net/http"
)

// userPayload is the identity summary returned to clients. It never carries
// credentials or raw store records.
type userPayload struct {
	ID      string `json:"id"`
	LoginID string `json:"login_id"`
	Email   string `json:"email"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	User    userPayload `json:"user"`
}

type checkResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *userPayload `json:"user,omitempty"`
}

type logoutResponse struct {
	Success bool `json:"success"`
}

type registerResponse struct {
	Success bool        `json:"success"`
	User    userPayload `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
