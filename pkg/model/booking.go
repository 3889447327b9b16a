package model

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("end time must be after start time")

// Booking is an immutable reservation of a room over the half-open interval [start, end).
type Booking struct {
	id        string
	roomID    string
	startTime time.Time
	endTime   time.Time
}

func NewBooking(id, roomID string, startTime, endTime time.Time) (Booking, error) {
	if !endTime.After(startTime) {
		return Booking{}, ErrInvalidInterval
	}
	return Booking{
		id:        id,
		roomID:    roomID,
		startTime: startTime,
		endTime:   endTime,
	}, nil
}

func (b Booking) ID() string           { return b.id }
func (b Booking) RoomID() string       { return b.roomID }
func (b Booking) StartTime() time.Time { return b.startTime }
func (b Booking) EndTime() time.Time   { return b.endTime }

// Overlaps reports whether the booking intersects [start, end). Touching endpoints do not overlap.
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.startTime.Before(end) && start.Before(b.endTime)
}

// HasStarted reports whether the booking is no longer strictly in the future at now.
func (b Booking) HasStarted(now time.Time) bool {
	return !b.startTime.After(now)
}
