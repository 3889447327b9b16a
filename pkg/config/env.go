package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRoomStore = "ROOM_STORE"
	EnvRoomLock  = "ROOM_LOCK"
	EnvNotifier  = "NOTIFIER"
	EnvRoomSeed  = "ROOM_SEED"

	EnvRoomLockTTL           = "ROOM_LOCK_TTL"
	EnvRoomLockRetries       = "ROOM_LOCK_RETRIES"
	EnvRoomLockRetryInterval = "ROOM_LOCK_RETRY_INTERVAL"

	EnvNotificationTimeout   = "NOTIFICATION_TIMEOUT"
	EnvBookingEventsTopic    = "BOOKING_EVENTS_TOPIC"
	EnvBookingEventsDLQTopic = "BOOKING_EVENTS_DLQ_TOPIC"
	EnvNotifierGroupID       = "NOTIFIER_GROUP_ID"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
