package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spendtrack/spendtrack-services/models"
)

// DayFormat is accepted for spending days alongside full RFC 3339 timestamps.
const DayFormat = "2006-01-02"

func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {

	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most current data
	w.Header().Set("Cache-Control", "max-age=0")

	// Conditionally set the Location header if provided
	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// WriteError serializes a handler-level failure as {"error": message}.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteResponse(w, statusCode, models.ErrorResponse{Error: message})
}

// parseDay parses a spending day, accepting RFC 3339 timestamps or bare dates.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DayFormat, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable day %q", s)
}
