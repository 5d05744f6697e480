package backends

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsFromEnvDisabledWithoutTopic(t *testing.T) {
	t.Setenv(SNSTopicKey, "")

	p, topic, err := EventsFromEnv(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Empty(t, topic)
}

func TestEventsFromEnvBuildsPublisherForTopic(t *testing.T) {
	arn := "arn:aws:sns:us-east-1:000000000000:siteconf-events"
	t.Setenv(SNSTopicKey, arn)
	t.Setenv(SNSEndpointKey, "http://localhost:4566")
	t.Setenv("AWS_REGION", "us-east-1")

	p, topic, err := EventsFromEnv(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Equal(t, arn, topic)
}

func TestFromEnvDefaultsToMemory(t *testing.T) {
	t.Setenv(SettingsBackendEnvKey, "")

	store, dir, err := FromEnv()
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.NotNil(t, dir)
}

func TestFromEnvRejectsUnknownBackend(t *testing.T) {
	t.Setenv(SettingsBackendEnvKey, "etcd")

	_, _, err := FromEnv()
	assert.Error(t, err)
}
