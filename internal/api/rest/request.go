package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"carrental-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// decode unmarshals and validates a request body. Both failure modes are
// validation errors to the caller.
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("malformed request body: %w", domain.ErrValidation)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}
	return nil
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a %s date: %w", field, dateLayout, domain.ErrValidation)
	}
	return t, nil
}
