package repository

import (
	"context"

	"roombook/pkg/model"
)

// RoomRepository loads and persists rooms together with their booking sets.
// FindByID returns bookingserrors.ErrRoomNotFound for an unknown id.
// FindAll returns rooms in a stable order that callers may rely on.
type RoomRepository interface {
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindAll(ctx context.Context) ([]*model.Room, error)
	Save(ctx context.Context, room *model.Room) error
}
