package notification

import (
	"context"

	"roombook/pkg/logger"
	"roombook/pkg/model"
)

// LogGateway records notifications in the service log. Used when no broker is configured.
type LogGateway struct {
	log *logger.Logger
}

func NewLogGateway(log *logger.Logger) *LogGateway {
	return &LogGateway{log: log}
}

func (g *LogGateway) SendBookingConfirmation(ctx context.Context, booking model.Booking) error {
	g.emit(ctx, EventBookingConfirmed, booking)
	return nil
}

func (g *LogGateway) SendCancellationConfirmation(ctx context.Context, booking model.Booking) error {
	g.emit(ctx, EventBookingCancelled, booking)
	return nil
}

func (g *LogGateway) emit(ctx context.Context, eventType string, booking model.Booking) {
	g.log.InfoContext(ctx, "Booking notification",
		"event_type", eventType,
		"booking_id", booking.ID(),
		"room_id", booking.RoomID(),
		"start_time", booking.StartTime(),
		"end_time", booking.EndTime(),
	)
}
