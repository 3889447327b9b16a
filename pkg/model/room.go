package model

import (
	"sort"
	"time"
)

// Room owns its bookings. Conflict checks are the caller's job: AddBooking inserts unconditionally.
type Room struct {
	id       string
	name     string
	bookings map[string]Booking
}

func NewRoom(id, name string) *Room {
	return &Room{
		id:       id,
		name:     name,
		bookings: make(map[string]Booking),
	}
}

func (r *Room) ID() string   { return r.id }
func (r *Room) Name() string { return r.name }

func (r *Room) IsAvailable(start, end time.Time) bool {
	for _, b := range r.bookings {
		if b.Overlaps(start, end) {
			return false
		}
	}
	return true
}

func (r *Room) AddBooking(b Booking) {
	r.bookings[b.ID()] = b
}

func (r *Room) RemoveBooking(bookingID string) bool {
	if _, ok := r.bookings[bookingID]; !ok {
		return false
	}
	delete(r.bookings, bookingID)
	return true
}

func (r *Room) HasBooking(bookingID string) bool {
	_, ok := r.bookings[bookingID]
	return ok
}

func (r *Room) FindBooking(bookingID string) (Booking, bool) {
	b, ok := r.bookings[bookingID]
	return b, ok
}

// Bookings returns the room's bookings ordered by start time.
func (r *Room) Bookings() []Booking {
	out := make([]Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].startTime.Equal(out[j].startTime) {
			return out[i].id < out[j].id
		}
		return out[i].startTime.Before(out[j].startTime)
	})
	return out
}

func (r *Room) Clone() *Room {
	c := NewRoom(r.id, r.name)
	for id, b := range r.bookings {
		c.bookings[id] = b
	}
	return c
}
