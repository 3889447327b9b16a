package validator

import (
	"testing"
	"time"

	bookingserrors "roombook/internal/bookings/errors"
	"roombook/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBookRequest(t *testing.T) {
	v := NewBookingValidator(logger.Discard())
	start := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     BookRoomRequest
		wantErr bool
		field   string
	}{
		{"valid", BookRoomRequest{RoomID: "room-1", StartTime: start, EndTime: start.Add(time.Hour)}, false, ""},
		{"missing room", BookRoomRequest{StartTime: start, EndTime: start.Add(time.Hour)}, true, "RoomID"},
		{"missing start", BookRoomRequest{RoomID: "room-1", EndTime: start}, true, "StartTime"},
		{"missing end", BookRoomRequest{RoomID: "room-1", StartTime: start}, true, "EndTime"},
		{"bad room id", BookRoomRequest{RoomID: "room 1", StartTime: start, EndTime: start.Add(time.Hour)}, true, "RoomID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBookRequest(&tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestParseRoomSeed(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	rooms, err := v.ParseRoomSeed(" room1:Aurora , room2:Borealis   Hall ")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "room1", rooms[0].ID())
	assert.Equal(t, "Aurora", rooms[0].Name())
	assert.Equal(t, "room2", rooms[1].ID())
	assert.Equal(t, "Borealis Hall", rooms[1].Name())

	rooms, err = v.ParseRoomSeed("   ")
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestParseRoomSeed_Rejects(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	for _, seed := range []string{
		"room1",
		"room1:",
		":Aurora",
		"room1:Aurora,room1:Again",
		"bad id:Aurora",
	} {
		t.Run(seed, func(t *testing.T) {
			_, err := v.ParseRoomSeed(seed)
			assert.ErrorIs(t, err, bookingserrors.ErrInvalidSeed)
		})
	}
}
