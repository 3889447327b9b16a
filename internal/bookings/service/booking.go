package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "roombook/internal/bookings/errors"
	"roombook/internal/bookings/notification"
	"roombook/internal/bookings/repository"
	"roombook/pkg/clock"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/logger"
	"roombook/pkg/model"

	"github.com/google/uuid"
)

const (
	MsgBookingArguments     = "booking requires valid start/end times and a room id"
	MsgEndBeforeStart       = "end time must be after start time"
	MsgBookingInPast        = "cannot book a time in the past"
	MsgRoomNotFound         = "room does not exist"
	MsgBookingIDRequired    = "booking id cannot be null"
	MsgCancelStartedBooking = "cannot cancel a booking that has started or ended"
	MsgAvailabilityWindow   = "must supply both start and end time"
	MsgBookingNotFound      = "booking does not exist"

	DefaultNotificationTimeout = 5 * time.Second
)

// BookingSystem books, cancels and queries room reservations.
// It holds no state of its own beyond its collaborators.
type BookingSystem struct {
	repo                repository.RoomRepository
	notifier            notification.Gateway
	clock               clock.Clock
	locker              repository.RoomLocker
	newID               func() string
	notificationTimeout time.Duration
	log                 *logger.Logger
	inflight            sync.WaitGroup
}

type Option func(*BookingSystem)

func WithLocker(locker repository.RoomLocker) Option {
	return func(s *BookingSystem) {
		s.locker = locker
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *BookingSystem) {
		s.newID = newID
	}
}

func WithNotificationTimeout(timeout time.Duration) Option {
	return func(s *BookingSystem) {
		if timeout > 0 {
			s.notificationTimeout = timeout
		}
	}
}

func NewBookingSystem(
	repo repository.RoomRepository,
	notifier notification.Gateway,
	clk clock.Clock,
	log *logger.Logger,
	opts ...Option,
) *BookingSystem {
	s := &BookingSystem{
		repo:                repo,
		notifier:            notifier,
		clock:               clk,
		locker:              repository.NewKeyedMutexLocker(),
		newID:               uuid.NewString,
		notificationTimeout: DefaultNotificationTimeout,
		log:                 log,
	}
	if s.notifier == nil {
		s.notifier = notification.NewLogGateway(log)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BookRoom reserves [start, end) in the room. It reports false without error when the
// interval overlaps an existing booking.
func (s *BookingSystem) BookRoom(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	now := s.clock.Now()

	if roomID == "" || start.IsZero() || end.IsZero() {
		return false, s.invalidInput(MsgBookingArguments, "room_id", roomID)
	}
	if !end.After(start) {
		return false, s.invalidInput(MsgEndBeforeStart, "room_id", roomID, "start_time", start, "end_time", end)
	}
	if start.Before(now) {
		return false, s.invalidInput(MsgBookingInPast, "room_id", roomID, "start_time", start, "now", now)
	}

	release, err := s.lockRoom(ctx, roomID)
	if err != nil {
		return false, err
	}
	defer release()

	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrRoomNotFound) {
			return false, apperrors.NotFoundWithID(MsgRoomNotFound, "Room", roomID)
		}
		s.log.Error("Failed to load room", "room_id", roomID, "error", err)
		return false, apperrors.Internal("Failed to load room", err)
	}

	if !room.IsAvailable(start, end) {
		s.log.Debug("Room not available",
			"room_id", roomID,
			"start_time", start,
			"end_time", end,
		)
		return false, nil
	}

	booking, err := model.NewBooking(s.newID(), roomID, start, end)
	if err != nil {
		return false, apperrors.Internal("Failed to create booking", err)
	}
	room.AddBooking(booking)

	if err := s.repo.Save(ctx, room); err != nil {
		s.log.Error("Failed to save room", "room_id", roomID, "booking_id", booking.ID(), "error", err)
		return false, apperrors.Internal("Failed to save booking", err)
	}

	s.log.Info("Booking created successfully",
		"booking_id", booking.ID(),
		"room_id", roomID,
		"start_time", start,
		"end_time", end,
	)
	s.dispatch(ctx, notification.EventBookingConfirmed, booking, s.notifier.SendBookingConfirmation)
	return true, nil
}

// CancelBooking removes a future booking. An unknown id reports false without error,
// while a booking that has already started is an invalid-state error.
func (s *BookingSystem) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	now := s.clock.Now()

	if bookingID == "" {
		return false, s.invalidInput(MsgBookingIDRequired)
	}

	located, err := s.findRoomWithBooking(ctx, bookingID)
	if err != nil {
		return false, err
	}
	if located == nil {
		s.log.Debug("Booking not found for cancellation", "booking_id", bookingID)
		return false, nil
	}

	release, err := s.lockRoom(ctx, located.ID())
	if err != nil {
		return false, err
	}
	defer release()

	// The room may have changed between the scan and taking the lock.
	room, err := s.repo.FindByID(ctx, located.ID())
	if err != nil {
		if errors.Is(err, bookingserrors.ErrRoomNotFound) {
			return false, nil
		}
		s.log.Error("Failed to load room", "room_id", located.ID(), "error", err)
		return false, apperrors.Internal("Failed to load room", err)
	}

	booking, found := room.FindBooking(bookingID)
	if !found {
		return false, nil
	}
	if booking.HasStarted(now) {
		s.log.Warn("Booking cancellation rejected",
			"booking_id", bookingID,
			"room_id", room.ID(),
			"start_time", booking.StartTime(),
			"now", now,
		)
		return false, apperrors.InvalidState(MsgCancelStartedBooking)
	}

	room.RemoveBooking(bookingID)
	if err := s.repo.Save(ctx, room); err != nil {
		s.log.Error("Failed to save room", "room_id", room.ID(), "booking_id", bookingID, "error", err)
		return false, apperrors.Internal("Failed to cancel booking", err)
	}

	s.log.Info("Booking cancelled successfully",
		"booking_id", bookingID,
		"room_id", room.ID(),
	)
	s.dispatch(ctx, notification.EventBookingCancelled, booking, s.notifier.SendCancellationConfirmation)
	return true, nil
}

// GetAvailableRooms lists the rooms free for the whole of [start, end) in repository order.
// Windows in the past are allowed.
func (s *BookingSystem) GetAvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error) {
	if start.IsZero() || end.IsZero() {
		return nil, s.invalidInput(MsgAvailabilityWindow)
	}
	if !end.After(start) {
		return nil, s.invalidInput(MsgEndBeforeStart, "start_time", start, "end_time", end)
	}

	rooms, err := s.loadRooms(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.IsAvailable(start, end) {
			available = append(available, room)
		}
	}

	s.log.Debug("Availability query completed",
		"start_time", start,
		"end_time", end,
		"rooms", len(rooms),
		"available", len(available),
	)
	return available, nil
}

func (s *BookingSystem) GetBooking(ctx context.Context, bookingID string) (model.Booking, error) {
	if bookingID == "" {
		return model.Booking{}, s.invalidInput(MsgBookingIDRequired)
	}

	room, err := s.findRoomWithBooking(ctx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if room == nil {
		return model.Booking{}, apperrors.NotFoundWithID(MsgBookingNotFound, "Booking", bookingID)
	}

	booking, _ := room.FindBooking(bookingID)
	return booking, nil
}

func (s *BookingSystem) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return s.loadRooms(ctx)
}

// Wait blocks until every notification dispatched so far has finished.
func (s *BookingSystem) Wait() {
	s.inflight.Wait()
}

// --- Helpers ---

func (s *BookingSystem) invalidInput(message string, args ...any) error {
	s.log.Warn("Booking request rejected", append([]any{"reason", message}, args...)...)
	return apperrors.InvalidInput(message)
}

func (s *BookingSystem) loadRooms(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

// findRoomWithBooking returns nil when no room holds the booking.
func (s *BookingSystem) findRoomWithBooking(ctx context.Context, bookingID string) (*model.Room, error) {
	rooms, err := s.loadRooms(ctx)
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		if room.HasBooking(bookingID) {
			return room, nil
		}
	}
	return nil, nil
}

func (s *BookingSystem) lockRoom(ctx context.Context, roomID string) (func(), error) {
	release, err := s.locker.Lock(ctx, roomID)
	if err == nil {
		return release, nil
	}

	switch {
	case errors.Is(err, bookingserrors.ErrLockHeld):
		s.log.Warn("Room lock contention", "room_id", roomID, "error", err)
		return nil, apperrors.Conflict("This room is currently being booked by another request. Please try again.")
	case errors.Is(err, context.DeadlineExceeded):
		return nil, apperrors.Timeout("Timed out waiting for room lock")
	default:
		s.log.Error("Failed to acquire room lock", "room_id", roomID, "error", err)
		return nil, apperrors.Internal("Failed to acquire room lock", err)
	}
}

// dispatch sends a notification in the background. The outcome never reaches the caller.
func (s *BookingSystem) dispatch(ctx context.Context, event string, booking model.Booking, send func(context.Context, model.Booking) error) {
	ctx = context.WithoutCancel(ctx)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("Booking notification panicked",
					"event_type", event,
					"booking_id", booking.ID(),
					"panic", fmt.Sprint(r),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(ctx, s.notificationTimeout)
		defer cancel()

		if err := send(ctx, booking); err != nil {
			s.log.Warn("Failed to send booking notification",
				"event_type", event,
				"booking_id", booking.ID(),
				"room_id", booking.RoomID(),
				"error", err,
			)
		}
	}()
}
