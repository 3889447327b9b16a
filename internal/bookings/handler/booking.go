package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"roombook/internal/bookings/validator"
	apperrors "roombook/pkg/errors"
	httputil "roombook/pkg/http"
	"roombook/pkg/logger"
	"roombook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// BookingService is the part of service.BookingSystem the HTTP layer drives.
type BookingService interface {
	BookRoom(ctx context.Context, roomID string, start, end time.Time) (bool, error)
	CancelBooking(ctx context.Context, bookingID string) (bool, error)
	GetBooking(ctx context.Context, bookingID string) (model.Booking, error)
	GetAvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error)
	ListRooms(ctx context.Context) ([]*model.Room, error)
}

type BookingResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type RoomResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Bookings []BookingResponse `json:"bookings"`
}

type BookResult struct {
	Booked bool `json:"booked"`
}

type CancelResult struct {
	Cancelled bool `json:"cancelled"`
}

func toBookingResponse(b model.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID(),
		RoomID:    b.RoomID(),
		StartTime: b.StartTime(),
		EndTime:   b.EndTime(),
	}
}

func toRoomResponses(rooms []*model.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		bookings := room.Bookings()
		resp := RoomResponse{
			ID:       room.ID(),
			Name:     room.Name(),
			Bookings: make([]BookingResponse, 0, len(bookings)),
		}
		for _, b := range bookings {
			resp.Bookings = append(resp.Bookings, toBookingResponse(b))
		}
		out = append(out, resp)
	}
	return out
}

type BookingHandler struct {
	service   BookingService
	validator *validator.BookingValidator
	log       *logger.Logger
}

func NewBookingHandler(service BookingService, validator *validator.BookingValidator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:   service,
		validator: validator,
		log:       log,
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) write(w http.ResponseWriter, handler string, status int, data any) {
	if err := httputil.WriteJSON(w, status, httputil.SuccessResponse{Data: data}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "operation", "WriteJSON", "error", err)
	}
}

func (h *BookingHandler) BookRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.BookRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "BookRoom", apperrors.InvalidInput("Invalid request body"))
		return
	}
	if err := h.validator.ValidateBookRequest(&req); err != nil {
		h.writeError(w, "BookRoom", apperrors.Validation("Invalid booking request", map[string]any{"error": err.Error()}))
		return
	}

	booked, err := h.service.BookRoom(r.Context(), req.RoomID, req.StartTime, req.EndTime)
	if err != nil {
		h.writeError(w, "BookRoom", err)
		return
	}

	status := http.StatusCreated
	if !booked {
		status = http.StatusConflict
	}
	h.write(w, "BookRoom", status, BookResult{Booked: booked})
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cancelled, err := h.service.CancelBooking(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "CancelBooking", err)
		return
	}

	status := http.StatusOK
	if !cancelled {
		status = http.StatusNotFound
	}
	h.write(w, "CancelBooking", status, CancelResult{Cancelled: cancelled})
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetBooking(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetBooking", err)
		return
	}
	h.write(w, "GetBooking", http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) ListRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.ListRooms(r.Context())
	if err != nil {
		h.writeError(w, "ListRooms", err)
		return
	}
	h.write(w, "ListRooms", http.StatusOK, toRoomResponses(rooms))
}

func (h *BookingHandler) AvailableRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start, err := httputil.ExtractTime(r, "start_time")
	if err != nil {
		h.writeError(w, "AvailableRooms", err)
		return
	}
	end, err := httputil.ExtractTime(r, "end_time")
	if err != nil {
		h.writeError(w, "AvailableRooms", err)
		return
	}

	rooms, err := h.service.GetAvailableRooms(r.Context(), start, end)
	if err != nil {
		h.writeError(w, "AvailableRooms", err)
		return
	}
	h.write(w, "AvailableRooms", http.StatusOK, toRoomResponses(rooms))
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.BookRoom)
	router.GET("/api/v1/bookings/id/:id", h.GetBooking)
	router.DELETE("/api/v1/bookings/id/:id", h.CancelBooking)
	router.GET("/api/v1/rooms", h.ListRooms)
	router.GET("/api/v1/rooms/available", h.AvailableRooms)
}
