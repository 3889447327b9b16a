package main

import (
	"context"
	"time"

	"roombook/internal/bookings/validator"
	mongoMigration "roombook/internal/migrations/mongo"
	"roombook/pkg/config"
)

const (
	JobName          = "mongo-migration"
	migrationTimeout = 120 * time.Second
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	cfg := config.Load(JobName)

	seed, err := validator.NewBookingValidator(cfg.Log).ParseRoomSeed(cfg.RoomSeed)
	if err != nil {
		cfg.Log.Fatal("Invalid room seed", "error", err)
	}

	cfg.SetMongo()
	cfg.Log.Info("Starting Mongo migration job", "seed_rooms", len(seed))

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	err = mongoMigration.RunMigration(ctx, db, cfg.Log, seed)
	cfg.GracefulShutdown()
	if err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}
