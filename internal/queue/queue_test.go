package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	failOn    types.EventType
	closed    bool
}

func (c *fakeChannel) PublishWithContext(
	ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing,
) error {
	if msg.Type == c.failOn.String() {
		return errors.New("channel closed")
	}
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestQueueManager_Disabled(t *testing.T) {
	qm, err := NewQueueManager(nil)
	require.NoError(t, err)
	qm.PublishEvents(context.Background(), []types.ProtocolEvent{{Type: types.EventLstMinted}})
	qm.Shutdown()
}

func TestQueueManager_PublishEvents(t *testing.T) {
	ch := &fakeChannel{failOn: types.EventBurnDeferred}
	qm := &QueueManager{name: "lst-events", channel: ch}

	events := []types.ProtocolEvent{
		{Type: types.EventLstMinted, Round: 3, Amount: 100},
		{Type: types.EventBurnDeferred, Round: 3, Amount: 5},
		{Type: types.EventStakeDelegated, Round: 3, Validator: 1, Amount: 50},
	}
	qm.PublishEvents(context.Background(), events)

	require.Len(t, ch.published, 2, "a failed publish does not stop the batch")
	assert.Equal(t, []string{"lst-events", "lst-events"}, ch.keys)
	assert.Equal(t, "application/json", ch.published[0].ContentType)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var decoded types.ProtocolEvent
	require.NoError(t, json.Unmarshal(ch.published[1].Body, &decoded))
	assert.Equal(t, events[2], decoded)

	qm.Shutdown()
	assert.True(t, ch.closed)
}
