package notification

import (
	"context"
	"time"

	"roombook/pkg/model"
)

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"

	SchemaVersion = "1"
	Source        = "roombook-bookings"
)

// Gateway tells the outside world that a booking was made or cancelled.
// Callers treat every method as best effort.
type Gateway interface {
	SendBookingConfirmation(ctx context.Context, booking model.Booking) error
	SendCancellationConfirmation(ctx context.Context, booking model.Booking) error
}

// BookingEvent is the payload published for every notification.
type BookingEvent struct {
	EventType  string    `json:"event_type" validate:"required,oneof=booking.confirmed booking.cancelled"`
	BookingID  string    `json:"booking_id" validate:"required"`
	RoomID     string    `json:"room_id" validate:"required"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking model.Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		EventType:  eventType,
		BookingID:  booking.ID(),
		RoomID:     booking.RoomID(),
		StartTime:  booking.StartTime(),
		EndTime:    booking.EndTime(),
		OccurredAt: occurredAt.UTC(),
	}
}
