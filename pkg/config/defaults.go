package config

import "time"

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
	BackendKafka  = "kafka"
	BackendLog    = "log"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roombook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRoomStore = BackendMongo
	DefaultRoomLock  = BackendMemory
	DefaultNotifier  = BackendLog
	DefaultRoomSeed  = ""

	DefaultRoomLockTTL           = 10 * time.Second
	DefaultRoomLockRetries       = 5
	DefaultRoomLockRetryInterval = 50 * time.Millisecond

	DefaultNotificationTimeout   = 5 * time.Second
	DefaultBookingEventsTopic    = "booking-events"
	DefaultBookingEventsDLQTopic = "booking-events-dlq"
	DefaultNotifierGroupID       = "roombook-notifier"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 << 20

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
