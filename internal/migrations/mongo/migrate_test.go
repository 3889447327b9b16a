package mongo

import (
	"testing"
	"time"

	"roombook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCollections(t *testing.T) {
	defs := Collections()
	require.Len(t, defs, 2)
	assert.Equal(t, "Rooms", defs[0].Name)
	assert.Equal(t, "Room_locks", defs[1].Name)
	for _, def := range defs {
		assert.Contains(t, def.Validator, "$jsonSchema")
		assert.NotEmpty(t, def.Indexes)
	}
}

func TestRoomLocksIndexes_ExpireImmediately(t *testing.T) {
	ttl := RoomLocksIndexes[0]
	require.NotNil(t, ttl.Options.ExpireAfterSeconds)
	assert.Equal(t, int32(0), *ttl.Options.ExpireAfterSeconds)
	assert.Equal(t, bson.D{{Key: "expires_at", Value: 1}}, ttl.Keys)
}

func TestSeedRoomModel_OnlyInsertsMissingRooms(t *testing.T) {
	now := time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)
	wm := seedRoomModel(model.NewRoom("room1", "Aurora"), now)

	m, ok := wm.(*mongo.UpdateOneModel)
	require.True(t, ok)
	assert.Equal(t, bson.M{"_id": "room1"}, m.Filter)
	require.NotNil(t, m.Upsert)
	assert.True(t, *m.Upsert)

	update := m.Update.(bson.M)
	assert.Equal(t, bson.M{"name": "Aurora", "bookings": bson.A{}, "updated_at": now}, update["$setOnInsert"])
}
