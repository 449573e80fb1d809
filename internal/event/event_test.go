package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishDeliversToSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(ContainerOpened, func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})
	bus.Subscribe(ContainerOpened, func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	err := bus.Publish(context.Background(), Event{
		Version: "1.0",
		Type:    ContainerOpened,
		Payload: ContainerOpenedPayloadV1{UserID: "user-1", ContainerID: "wooden_chest"},
	})

	require.NoError(t, err)
	require.Len(t, received, 2)
	payload, ok := received[0].Payload.(ContainerOpenedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "user-1", payload.UserID)
}

func TestMemoryBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), Event{Type: BetSettled})

	require.NoError(t, err)
}

func TestMemoryBus_PublishFiltersByType(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	bus.Subscribe(RankPromoted, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), Event{Type: QuestCompleted}))
	require.NoError(t, bus.Publish(context.Background(), Event{Type: RankPromoted}))

	assert.Equal(t, 1, calls)
}

func TestMemoryBus_AggregatesHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()

	delivered := false
	bus.Subscribe(SeasonLevelUp, func(ctx context.Context, e Event) error {
		return assert.AnError
	})
	bus.Subscribe(SeasonLevelUp, func(ctx context.Context, e Event) error {
		delivered = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: SeasonLevelUp})

	// One failing handler must not stop delivery to the others.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 handler error(s)")
	assert.True(t, delivered)
}
