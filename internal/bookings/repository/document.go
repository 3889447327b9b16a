package repository

import (
	"fmt"
	"time"

	bookingserrors "roombook/internal/bookings/errors"
	"roombook/pkg/model"
)

type roomDocument struct {
	ID        string            `bson:"_id"`
	Name      string            `bson:"name"`
	Bookings  []bookingDocument `bson:"bookings"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

type bookingDocument struct {
	ID        string    `bson:"id"`
	StartTime time.Time `bson:"start_time"`
	EndTime   time.Time `bson:"end_time"`
}

func toRoomDocument(room *model.Room, now time.Time) roomDocument {
	bookings := room.Bookings()
	doc := roomDocument{
		ID:        room.ID(),
		Name:      room.Name(),
		Bookings:  make([]bookingDocument, 0, len(bookings)),
		UpdatedAt: now.UTC().Truncate(time.Millisecond),
	}
	for _, b := range bookings {
		doc.Bookings = append(doc.Bookings, bookingDocument{
			ID:        b.ID(),
			StartTime: b.StartTime().UTC(),
			EndTime:   b.EndTime().UTC(),
		})
	}
	return doc
}

func (d roomDocument) toModel() (*model.Room, error) {
	room := model.NewRoom(d.ID, d.Name)
	for _, bd := range d.Bookings {
		b, err := model.NewBooking(bd.ID, d.ID, bd.StartTime.UTC(), bd.EndTime.UTC())
		if err != nil {
			return nil, fmt.Errorf("%w: room %s booking %s: %v", bookingserrors.ErrInvalidRoom, d.ID, bd.ID, err)
		}
		room.AddBooking(b)
	}
	return room, nil
}
