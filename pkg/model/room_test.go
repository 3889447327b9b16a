package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, time.UTC)
}

func mustBooking(t *testing.T, id string, start, end time.Time) Booking {
	t.Helper()
	b, err := NewBooking(id, "room1", start, end)
	require.NoError(t, err)
	return b
}

func TestNewBooking_RejectsEmptyOrReversedInterval(t *testing.T) {
	_, err := NewBooking("b1", "room1", at(11, 0), at(11, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewBooking("b1", "room1", at(12, 0), at(11, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	b, err := NewBooking("b1", "room1", at(10, 0), at(11, 0))
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID())
	assert.Equal(t, "room1", b.RoomID())
	assert.Equal(t, at(10, 0), b.StartTime())
	assert.Equal(t, at(11, 0), b.EndTime())
}

func TestRoom_IsAvailable_HalfOpenIntervals(t *testing.T) {
	room := NewRoom("room1", "Test Room")
	room.AddBooking(mustBooking(t, "b1", at(10, 0), at(11, 0)))

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		available bool
	}{
		{"same interval", at(10, 0), at(11, 0), false},
		{"contained", at(10, 30), at(10, 45), false},
		{"containing", at(9, 0), at(12, 0), false},
		{"overlaps start", at(9, 30), at(10, 30), false},
		{"overlaps end", at(10, 59), at(11, 30), false},
		{"touches end", at(11, 0), at(12, 0), true},
		{"touches start", at(9, 0), at(10, 0), true},
		{"disjoint", at(13, 0), at(14, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.available, room.IsAvailable(tt.start, tt.end))
		})
	}
}

func TestRoom_BookingMembership(t *testing.T) {
	room := NewRoom("room1", "Test Room")
	b := mustBooking(t, "b1", at(10, 0), at(11, 0))

	assert.False(t, room.HasBooking("b1"))
	_, found := room.FindBooking("b1")
	assert.False(t, found)

	room.AddBooking(b)
	assert.True(t, room.HasBooking("b1"))
	got, found := room.FindBooking("b1")
	require.True(t, found)
	assert.Equal(t, b, got)

	assert.True(t, room.RemoveBooking("b1"))
	assert.False(t, room.RemoveBooking("b1"))
	assert.False(t, room.HasBooking("b1"))
	assert.True(t, room.IsAvailable(at(10, 0), at(11, 0)))
}

func TestRoom_BookingsOrderedByStart(t *testing.T) {
	room := NewRoom("room1", "Test Room")
	room.AddBooking(mustBooking(t, "late", at(15, 0), at(16, 0)))
	room.AddBooking(mustBooking(t, "early", at(8, 0), at(9, 0)))
	room.AddBooking(mustBooking(t, "mid", at(12, 0), at(13, 0)))

	var ids []string
	for _, b := range room.Bookings() {
		ids = append(ids, b.ID())
	}
	assert.Equal(t, []string{"early", "mid", "late"}, ids)
}

func TestRoom_CloneIsIndependent(t *testing.T) {
	room := NewRoom("room1", "Test Room")
	room.AddBooking(mustBooking(t, "b1", at(10, 0), at(11, 0)))

	clone := room.Clone()
	clone.AddBooking(mustBooking(t, "b2", at(12, 0), at(13, 0)))
	clone.RemoveBooking("b1")

	assert.True(t, room.HasBooking("b1"))
	assert.False(t, room.HasBooking("b2"))
	assert.Equal(t, room.ID(), clone.ID())
	assert.Equal(t, room.Name(), clone.Name())
}

func TestBooking_HasStarted(t *testing.T) {
	b := mustBooking(t, "b1", at(10, 0), at(11, 0))

	assert.False(t, b.HasStarted(at(9, 59)))
	assert.True(t, b.HasStarted(at(10, 0)))
	assert.True(t, b.HasStarted(at(12, 0)))
}
