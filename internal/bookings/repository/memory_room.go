package repository

import (
	"context"
	"sync"

	bookingserrors "roombook/internal/bookings/errors"
	"roombook/pkg/model"
)

// memoryRoomRepository keeps clones so that callers only change stored state through Save.
type memoryRoomRepository struct {
	mu    sync.RWMutex
	rooms map[string]*model.Room
	order []string
}

func NewMemoryRoomRepository(rooms ...*model.Room) RoomRepository {
	r := &memoryRoomRepository{
		rooms: make(map[string]*model.Room, len(rooms)),
	}
	for _, room := range rooms {
		r.put(room)
	}
	return r
}

func (r *memoryRoomRepository) put(room *model.Room) {
	if _, exists := r.rooms[room.ID()]; !exists {
		r.order = append(r.order, room.ID())
	}
	r.rooms[room.ID()] = room.Clone()
}

func (r *memoryRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, bookingserrors.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (r *memoryRoomRepository) FindAll(ctx context.Context) ([]*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*model.Room, 0, len(r.order))
	for _, id := range r.order {
		rooms = append(rooms, r.rooms[id].Clone())
	}
	return rooms, nil
}

func (r *memoryRoomRepository) Save(ctx context.Context, room *model.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(room)
	return nil
}
