package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"roombook/internal/bookings/repository"
	"roombook/internal/bookings/service"
	"roombook/internal/bookings/validator"
	"roombook/pkg/clock"
	"roombook/pkg/logger"
	"roombook/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)

type testServer struct {
	router *httprouter.Router
	system *service.BookingSystem
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.Discard()
	repo := repository.NewMemoryRoomRepository(
		model.NewRoom("room1", "Aurora"),
		model.NewRoom("room2", "Borealis"),
	)
	ids := 0
	system := service.NewBookingSystem(repo, nil, clock.NewFixed(now), log,
		service.WithIDGenerator(func() string {
			ids++
			return "b" + strconv.Itoa(ids)
		}),
	)
	t.Cleanup(system.Wait)

	router := httprouter.New()
	NewBookingHandler(system, validator.NewBookingValidator(log), log).RegisterRoutes(router)
	NewHealthHandler(nil, log).RegisterRoutes(router)
	return &testServer{router: router, system: system}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) book(t *testing.T, roomID, start, end string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"room_id":"` + roomID + `","start_time":"` + start + `","end_time":"` + end + `"}`
	return s.do(t, http.MethodPost, "/api/v1/bookings", body)
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestBookRoomEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.book(t, "room1", "2026-02-09T10:00:00Z", "2026-02-09T11:00:00Z")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"booked":true}}`, rec.Body.String())

	rec = s.book(t, "room1", "2026-02-09T10:30:00Z", "2026-02-09T11:30:00Z")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"data":{"booked":false}}`, rec.Body.String())
}

func TestBookRoomEndpoint_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		status  int
		code    string
		message string
	}{
		{"malformed json", `{"room_id":`, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body"},
		{"missing room", `{"start_time":"2026-02-09T10:00:00Z","end_time":"2026-02-09T11:00:00Z"}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid booking request"},
		{"reversed", `{"room_id":"room1","start_time":"2026-02-09T11:00:00Z","end_time":"2026-02-09T10:00:00Z"}`, http.StatusBadRequest, "INVALID_INPUT", service.MsgEndBeforeStart},
		{"past", `{"room_id":"room1","start_time":"2026-02-09T08:00:00Z","end_time":"2026-02-09T10:00:00Z"}`, http.StatusBadRequest, "INVALID_INPUT", service.MsgBookingInPast},
		{"unknown room", `{"room_id":"room9","start_time":"2026-02-09T10:00:00Z","end_time":"2026-02-09T11:00:00Z"}`, http.StatusNotFound, "NOT_FOUND", service.MsgRoomNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/v1/bookings", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			body := errorBody(t, rec)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestCancelBookingEndpoint(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.book(t, "room1", "2026-02-09T10:00:00Z", "2026-02-09T11:00:00Z").Code)

	rec := s.do(t, http.MethodDelete, "/api/v1/bookings/id/b1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"cancelled":true}}`, rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/api/v1/bookings/id/b1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"data":{"cancelled":false}}`, rec.Body.String())
}

func TestGetBookingEndpoint(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.book(t, "room2", "2026-02-09T10:00:00Z", "2026-02-09T11:00:00Z").Code)

	rec := s.do(t, http.MethodGet, "/api/v1/bookings/id/b1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"b1","room_id":"room2","start_time":"2026-02-09T10:00:00Z","end_time":"2026-02-09T11:00:00Z"}}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/bookings/id/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.MsgBookingNotFound, errorBody(t, rec)["error"])
}

func TestRoomsEndpoints(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.book(t, "room1", "2026-02-09T10:00:00Z", "2026-02-09T11:00:00Z").Code)

	rec := s.do(t, http.MethodGet, "/api/v1/rooms", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data []RoomResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 2)
	assert.Equal(t, "room1", list.Data[0].ID)
	assert.Len(t, list.Data[0].Bookings, 1)
	assert.Empty(t, list.Data[1].Bookings)

	rec = s.do(t, http.MethodGet, "/api/v1/rooms/available?start_time=2026-02-09T10:30:00Z&end_time=2026-02-09T12:00:00Z", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var available struct {
		Data []RoomResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &available))
	require.Len(t, available.Data, 1)
	assert.Equal(t, "room2", available.Data[0].ID)
}

func TestAvailableRoomsEndpoint_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/rooms/available?start_time=2026-02-09T10:30:00Z", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgAvailabilityWindow, errorBody(t, rec)["error"])

	rec = s.do(t, http.MethodGet, "/api/v1/rooms/available?start_time=noon&end_time=2026-02-09T12:00:00Z", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid start_time format, must be RFC3339", errorBody(t, rec)["error"])
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","database":"disabled"}`, rec.Body.String())
}
