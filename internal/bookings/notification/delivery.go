package notification

import (
	"context"
	"fmt"

	"roombook/pkg/kafka"
	"roombook/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// Delivery hands a decoded booking event to the end recipient.
type Delivery interface {
	Deliver(ctx context.Context, event BookingEvent) error
}

// LogDelivery writes each event to the log in place of an e-mail or SMS channel.
type LogDelivery struct {
	log *logger.Logger
}

func NewLogDelivery(log *logger.Logger) *LogDelivery {
	return &LogDelivery{log: log}
}

func (d *LogDelivery) Deliver(ctx context.Context, event BookingEvent) error {
	subject := "Your booking is confirmed"
	if event.EventType == EventBookingCancelled {
		subject = "Your booking was cancelled"
	}
	d.log.InfoContext(ctx, "Delivered booking notification",
		"subject", subject,
		"event_type", event.EventType,
		"booking_id", event.BookingID,
		"room_id", event.RoomID,
		"start_time", event.StartTime,
		"end_time", event.EndTime,
	)
	return nil
}

// NewEventHandler decodes booking events off the wire and passes them to delivery.
// Malformed events are permanent failures so the consumer parks them on the DLQ.
func NewEventHandler(delivery Delivery, log *logger.Logger) kafka.MessageHandler {
	validate := validator.New()

	return func(ctx context.Context, msg kafka.Message) error {
		var event BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("failed to decode booking event", err)
		}
		if err := validate.Struct(event); err != nil {
			return kafka.NewPermanentError("invalid booking event", err)
		}

		if err := delivery.Deliver(ctx, event); err != nil {
			log.Warn("Booking notification delivery failed",
				"event_id", msg.EventID(),
				"booking_id", event.BookingID,
				"error", err,
			)
			return fmt.Errorf("deliver %s: %w", event.EventType, err)
		}
		return nil
	}
}
