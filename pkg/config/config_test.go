package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, BackendMongo, cfg.RoomStore)
	assert.Equal(t, BackendMemory, cfg.RoomLock)
	assert.Equal(t, BackendLog, cfg.Notifier)
	assert.Equal(t, DefaultNotificationTimeout, cfg.NotificationTimeout)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvRoomStore, "MEMORY")
	t.Setenv(EnvNotifier, "kafka")
	t.Setenv(EnvRoomLockRetries, "2")
	t.Setenv(EnvNotificationTimeout, "750ms")
	t.Setenv(EnvRoomSeed, "room1:Aurora")

	cfg := FromEnv()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.RoomStore)
	assert.Equal(t, BackendKafka, cfg.Notifier)
	assert.Equal(t, 2, cfg.RoomLockRetries)
	assert.Equal(t, 750*time.Millisecond, cfg.NotificationTimeout)
	assert.Equal(t, "room1:Aurora", cfg.RoomSeed)
	assert.False(t, cfg.UsesMongo())
}

func TestFromEnv_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv(EnvRoomLockRetries, "many")
	t.Setenv(EnvRoomLockTTL, "soon")

	cfg := FromEnv()

	assert.Equal(t, DefaultRoomLockRetries, cfg.RoomLockRetries)
	assert.Equal(t, DefaultRoomLockTTL, cfg.RoomLockTTL)
}

func TestValidate_AccumulatesErrors(t *testing.T) {
	cfg := FromEnv()
	cfg.Port = "0"
	cfg.RoomStore = "postgres"
	cfg.MongoURI = "http://localhost"
	cfg.NotificationTimeout = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Port must be between 1 and 65535")
	assert.Contains(t, err.Error(), "RoomStore must be one of [mongo, memory]")
	assert.Contains(t, err.Error(), "NotificationTimeout must be positive")
}

func TestValidate_SkipsMongoChecksForMemoryBackends(t *testing.T) {
	cfg := FromEnv()
	cfg.RoomStore = BackendMemory
	cfg.RoomLock = BackendMemory
	cfg.MongoURI = ""

	assert.NoError(t, cfg.Validate())
}

func TestRedactMongoURI(t *testing.T) {
	assert.Equal(t, "mongodb://***:***@db:27017", redactMongoURI("mongodb://admin:secret@db:27017"))
	assert.Equal(t, "mongodb://localhost:27017", redactMongoURI("mongodb://localhost:27017"))
}
