package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "roombook/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"invalid input", apperrors.InvalidInput("end time must be after start time"), http.StatusBadRequest, apperrors.CodeInvalidInput, "end time must be after start time"},
		{"not found", apperrors.NotFoundWithID("room does not exist", "Room", "r1"), http.StatusNotFound, apperrors.CodeNotFound, "room does not exist"},
		{"invalid state", apperrors.InvalidState("cannot cancel"), http.StatusConflict, apperrors.CodeInvalidState, "cannot cancel"},
		{"internal hides cause", apperrors.Internal("Failed to load room", errors.New("mongo password wrong")), http.StatusInternalServerError, apperrors.CodeInternal, "Internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, apperrors.CodeInternal, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, WriteError(rec, tt.err))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			resp := decodeError(t, rec)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.message, resp.Error)
		})
	}
}

func TestWriteCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteCreated(rec, map[string]bool{"booked": true}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"booked":true}}`, rec.Body.String())
}

func TestExtractTime(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?start_time=2026-02-09T12:00:00%2B02:00&bad=tomorrow", nil)

	got, err := ExtractTime(req, "start_time")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC), got)

	got, err = ExtractTime(req, "end_time")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ExtractTime(req, "bad")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}
