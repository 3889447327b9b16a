package notification

import (
	"context"
	"fmt"

	"roombook/pkg/clock"
	"roombook/pkg/kafka"
	"roombook/pkg/model"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaGateway struct {
	publisher Publisher
	clock     clock.Clock
}

func NewKafkaGateway(publisher Publisher, clk clock.Clock) *KafkaGateway {
	return &KafkaGateway{publisher: publisher, clock: clk}
}

func (g *KafkaGateway) SendBookingConfirmation(ctx context.Context, booking model.Booking) error {
	return g.publish(ctx, EventBookingConfirmed, booking)
}

func (g *KafkaGateway) SendCancellationConfirmation(ctx context.Context, booking model.Booking) error {
	return g.publish(ctx, EventBookingCancelled, booking)
}

// publish keys messages by room id so that every event of a room lands on one partition in order.
func (g *KafkaGateway) publish(ctx context.Context, eventType string, booking model.Booking) error {
	now := g.clock.Now()
	msg, err := kafka.NewMessage().
		WithKey(booking.RoomID()).
		WithValue(NewBookingEvent(eventType, booking, now)).
		WithEventType(eventType).
		WithCorrelationID(booking.ID()).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithTimestamp(now).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}

	if err := g.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}
