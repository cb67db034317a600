package dto

import (
	"encoding/json"
	"net/http"
)

type Error struct {
	Message string `json:"message"`
}

// WriteError replies with a JSON {"message": ...} body and the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Error{Message: message})
}
