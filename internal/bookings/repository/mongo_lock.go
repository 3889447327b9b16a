package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "roombook/internal/bookings/errors"
	"roombook/pkg/config"
	"roombook/pkg/logger"
	"roombook/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	LockCollectionName = "Room_locks"
	releaseTimeout     = 5 * time.Second
)

// mongoRoomLocker takes an advisory lock document per room. A TTL index on expires_at
// reaps locks of crashed holders; expired locks are also cleared eagerly on contention.
type mongoRoomLocker struct {
	collection    *mongo.Collection
	log           *logger.Logger
	ttl           time.Duration
	retries       int
	retryInterval time.Duration
	now           func() time.Time
}

func NewMongoRoomLocker(cfg *config.Config) RoomLocker {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomLocker{
		collection:    db.Collection(LockCollectionName),
		log:           cfg.Log,
		ttl:           cfg.RoomLockTTL,
		retries:       cfg.RoomLockRetries,
		retryInterval: cfg.RoomLockRetryInterval,
		now:           time.Now,
	}
}

func lockID(roomID string) string {
	return fmt.Sprintf("room_lock_%s", roomID)
}

func (l *mongoRoomLocker) Lock(ctx context.Context, roomID string) (func(), error) {
	id := lockID(roomID)
	owner := uuid.NewString()

	for attempt := 0; ; attempt++ {
		now := l.now().UTC()
		lock := &model.RoomLock{
			ID:        id,
			RoomID:    roomID,
			Owner:     owner,
			ExpiresAt: now.Add(l.ttl),
			CreatedAt: now,
		}

		_, err := l.collection.InsertOne(ctx, lock)
		if err == nil {
			return l.releaser(ctx, id, owner), nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to acquire room lock: %w", err)
		}

		res, err := l.collection.DeleteOne(ctx, bson.M{"_id": id, "expires_at": bson.M{"$lte": now}})
		if err != nil {
			l.log.Warn("Failed to clear expired room lock", "lock_id", id, "error", err)
		} else if res.DeletedCount > 0 {
			l.log.Info("Cleared expired room lock", "lock_id", id)
			continue
		}

		if attempt >= l.retries {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrLockHeld, roomID)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}
}

func (l *mongoRoomLocker) releaser(ctx context.Context, id, owner string) func() {
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		if _, err := l.collection.DeleteOne(releaseCtx, bson.M{"_id": id, "owner": owner}); err != nil {
			l.log.Warn("Failed to release room lock", "lock_id", id, "error", err)
		}
	}
}
