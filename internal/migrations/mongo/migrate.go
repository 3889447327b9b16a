package mongo

import (
	"context"
	"fmt"
	"time"

	"roombook/internal/bookings/repository"
	"roombook/internal/migrations/mongo/validators"
	"roombook/pkg/logger"
	"roombook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// Booking ids are unique across all rooms. The partial filter keeps rooms with no
	// bookings out of the unique index.
	RoomsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "bookings.id", Value: 1}},
			Options: options.Index().
				SetName("bookings_id_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"bookings.id": bson.M{"$exists": true}}),
		},
		{
			Keys:    bson.D{{Key: "bookings.start_time", Value: 1}, {Key: "bookings.end_time", Value: 1}},
			Options: options.Index().SetName("bookings_interval"),
		},
	}

	RoomLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("expires_at_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "room_id", Value: 1}},
			Options: options.Index().SetName("room_id"),
		},
	}
)

type CollectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func Collections() []CollectionDef {
	return []CollectionDef{
		{Name: repository.CollectionName, Indexes: RoomsIndexes, Validator: validators.RoomValidator},
		{Name: repository.LockCollectionName, Indexes: RoomLocksIndexes, Validator: validators.RoomLockValidator},
	}
}

// RunMigration creates or updates the room collections and inserts any seed rooms that are
// not stored yet. Existing rooms, and their bookings, are left untouched.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger, seed []*model.Room) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, log, def.Name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, log, def.Name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	if err := seedRooms(ctx, db.Collection(repository.CollectionName), log, seed); err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}

	log.Info("All migrations applied successfully", "database", db.Name())
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, log *logger.Logger, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, log *logger.Logger, name string, models []mongo.IndexModel) error {
	names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", names)
	return nil
}

func seedRooms(ctx context.Context, coll *mongo.Collection, log *logger.Logger, rooms []*model.Room) error {
	if len(rooms) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(rooms))
	now := time.Now().UTC().Truncate(time.Millisecond)
	for _, room := range rooms {
		writes = append(writes, seedRoomModel(room, now))
	}

	res, err := coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return err
	}
	log.Info("Seeded rooms", "requested", len(rooms), "inserted", res.UpsertedCount)
	return nil
}

func seedRoomModel(room *model.Room, now time.Time) mongo.WriteModel {
	return mongo.NewUpdateOneModel().
		SetFilter(bson.M{"_id": room.ID()}).
		SetUpdate(bson.M{"$setOnInsert": bson.M{
			"name":       room.Name(),
			"bookings":   bson.A{},
			"updated_at": now,
		}}).
		SetUpsert(true)
}
