package kafkaconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, DefaultProducerCompression, cfg.ProducerCompression)
	assert.Equal(t, int64(DefaultConsumerStartOffset), cfg.ConsumerStartOffset)
}

func TestLoad_TrimsBrokerList(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "kafka-1:9092, kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "kafka-1:9092,")
	t.Setenv(EnvKafkaProducerCompression, "brotli")
	t.Setenv(EnvKafkaProducerRequireAcks, "2")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broker 1 cannot be empty")
	assert.Contains(t, err.Error(), "ProducerCompression must be one of")
	assert.Contains(t, err.Error(), "ProducerRequireAcks must be -1, 0, or 1")
}
