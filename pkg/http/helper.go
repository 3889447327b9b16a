package http

import (
	"fmt"
	"net/http"
	"time"

	apperrors "roombook/pkg/errors"
)

// ExtractTime reads an RFC3339 query parameter. A missing parameter yields the zero time.
func ExtractTime(r *http.Request, name string) (time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput(fmt.Sprintf("invalid %s format, must be RFC3339", name))
	}
	return t.UTC(), nil
}
