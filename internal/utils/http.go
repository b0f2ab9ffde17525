package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data and writes it as the response body with the given
// status code, setting Content-Type to application/json first.
//
// Every JSON body the credential endpoints emit goes through here, success
// and error payloads alike (the login token envelope, the user listing, the
// mapped error messages), so the wire format stays uniform across handlers.
// The field-name caveats live on the models: the user model hides UserID and
// PasswordHash from serialization, and nothing here re-checks that.
//
// A marshal failure answers 500 in plain text, since at that point no JSON
// body can be trusted, and returns the wrapped error for the caller to log.
// The byte count is the number of body bytes actually written.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
