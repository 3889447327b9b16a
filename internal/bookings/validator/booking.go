package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	bookingserrors "roombook/internal/bookings/errors"
	"roombook/pkg/logger"
	"roombook/pkg/model"
	"roombook/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

var (
	roomIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// BookRoomRequest is the body of POST /api/v1/bookings.
type BookRoomRequest struct {
	RoomID    string    `json:"room_id" validate:"required,max=64,room_id"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

// RoomSeed is one entry of the ROOM_SEED catalog.
type RoomSeed struct {
	ID   string `validate:"required,max=64,room_id"`
	Name string `validate:"required,max=128"`
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("room_id", validateRoomID); err != nil {
		log.Fatal("Failed to register 'room_id' validator",
			"error", err,
		)
	}

	log.Debug("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func validateRoomID(fl validator.FieldLevel) bool {
	return roomIDRegex.MatchString(fl.Field().String())
}

func (v *BookingValidator) ValidateBookRequest(req *BookRoomRequest) error {
	return v.validateStruct(req)
}

// ParseRoomSeed reads a catalog of the form "id:name,id:name". Blank input yields no rooms.
func (v *BookingValidator) ParseRoomSeed(seed string) ([]*model.Room, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var rooms []*model.Room
	for i, entry := range strings.Split(seed, ",") {
		id, name, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok {
			return nil, fmt.Errorf("%w: entry %d %q is not id:name", bookingserrors.ErrInvalidSeed, i, entry)
		}

		rs := RoomSeed{ID: strings.TrimSpace(id), Name: sanitizer.DisplayName(name)}
		if err := v.validateStruct(&rs); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", bookingserrors.ErrInvalidSeed, i, err)
		}
		if _, dup := seen[rs.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate room id %q", bookingserrors.ErrInvalidSeed, rs.ID)
		}
		seen[rs.ID] = struct{}{}

		rooms = append(rooms, model.NewRoom(rs.ID, rs.Name))
	}
	return rooms, nil
}

func (v *BookingValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "room_id":
			message = fmt.Sprintf("%s may only contain letters, digits, '_', '.' and '-'", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
