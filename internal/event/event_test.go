package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckBot_Go/internal/domain"
)

func TestMemoryBus_DeliversToSubscribersInOrder(t *testing.T) {
	bus := NewMemoryBus()
	var order []string

	bus.Subscribe(RareItemDropped, func(ctx context.Context, evt Event) error {
		order = append(order, "first")
		return nil
	})
	bus.Subscribe(RareItemDropped, func(ctx context.Context, evt Event) error {
		order = append(order, "second")
		return nil
	})
	bus.Subscribe(BoostExpired, func(ctx context.Context, evt Event) error {
		order = append(order, "other type")
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewRareItemDroppedEvent("1", "haka", 1_000_000, 1, SourceManualRoll)))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), NewBoostExpiredEvent("1", domain.BoostKindLogin)))
}

func TestMemoryBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewMemoryBus()
	errSend := errors.New("delivery failed")
	called := 0

	bus.Subscribe(RareItemDropped, func(ctx context.Context, evt Event) error { return errSend })
	bus.Subscribe(RareItemDropped, func(ctx context.Context, evt Event) error {
		called++
		return nil
	})

	err := bus.Publish(context.Background(), NewRareItemDroppedEvent("1", "haka", 1_000_000, 3, SourceManualRoll))
	require.Error(t, err)
	assert.ErrorIs(t, err, errSend)
	assert.Contains(t, err.Error(), "1 handler(s) failed")
	assert.Equal(t, 1, called)
}

func TestMemoryBus_SubscribeDuringPublish(t *testing.T) {
	bus := NewMemoryBus()
	late := 0
	bus.Subscribe(BoostExpired, func(ctx context.Context, evt Event) error {
		bus.Subscribe(BoostExpired, func(ctx context.Context, evt Event) error {
			late++
			return nil
		})
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewBoostExpiredEvent("1", domain.BoostKindAdmin)))
	assert.Equal(t, 0, late, "a handler added mid-publish only sees later events")

	require.NoError(t, bus.Publish(context.Background(), NewBoostExpiredEvent("1", domain.BoostKindAdmin)))
	assert.Equal(t, 1, late)
}

func TestConstructors_Envelope(t *testing.T) {
	evt := NewRareItemDroppedEvent("7", "rainbow haka", 100_000_000, 2, SourceAutoRoll)
	assert.Equal(t, RareItemDropped, evt.Type)
	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.Equal(t, SourceAutoRoll, evt.Source)
	assert.NotEmpty(t, evt.ID)
	assert.False(t, evt.OccurredAt.IsZero())

	p, err := DecodePayload[RareItemDroppedPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, "7", p.UserID)
	assert.Equal(t, "rainbow haka", p.Item)
	assert.EqualValues(t, 100_000_000, p.BaseDenominator)
	assert.Equal(t, 2, p.ServerTotalOwned)

	other := NewRareItemDroppedEvent("7", "rainbow haka", 100_000_000, 2, SourceAutoRoll)
	assert.NotEqual(t, evt.ID, other.ID)

	expired := NewBoostExpiredEvent(domain.BroadcastUserID, domain.BoostKindAdmin)
	assert.Empty(t, expired.Source)
}

func TestNewAutoRollFinishedEvent(t *testing.T) {
	evt := NewAutoRollFinishedEvent(domain.AutoRollResult{
		UserID:     "9",
		SessionID:  "s-1",
		FoundItems: map[string]int{"haka": 3},
		TotalRolls: 3,
		Reason:     domain.ReasonManualStop,
	})

	p, err := DecodePayload[AutoRollFinishedPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, string(domain.ReasonManualStop), p.Reason)
	assert.Equal(t, map[string]int{"haka": 3}, p.ResultsLog)
	assert.Empty(t, p.Error)
}

func TestDecodePayload(t *testing.T) {
	t.Run("pointer payload", func(t *testing.T) {
		p, err := DecodePayload[BoostExpiredPayloadV1](&BoostExpiredPayloadV1{UserID: "3", Kind: domain.BoostKindLogin})
		require.NoError(t, err)
		assert.Equal(t, "3", p.UserID)
	})

	t.Run("nil payload", func(t *testing.T) {
		_, err := DecodePayload[BoostExpiredPayloadV1](nil)
		assert.Error(t, err)

		var nilPtr *BoostExpiredPayloadV1
		_, err = DecodePayload[BoostExpiredPayloadV1](nilPtr)
		assert.Error(t, err)
	})

	t.Run("after a JSON round trip", func(t *testing.T) {
		data, err := json.Marshal(NewAutoRollFinishedEvent(domain.AutoRollResult{
			UserID:     "9",
			FoundItems: map[string]int{"みず": 4},
			TotalRolls: 4,
			Reason:     domain.ReasonTimeExpired,
		}))
		require.NoError(t, err)

		var evt Event
		require.NoError(t, json.Unmarshal(data, &evt))
		_, isMap := evt.Payload.(map[string]any)
		require.True(t, isMap)

		p, err := DecodePayload[AutoRollFinishedPayloadV1](evt.Payload)
		require.NoError(t, err)
		assert.Equal(t, 4, p.TotalRolls)
		assert.Equal(t, 4, p.ResultsLog["みず"])
		assert.Equal(t, string(domain.ReasonTimeExpired), p.Reason)
	})

	t.Run("unencodable payload", func(t *testing.T) {
		_, err := DecodePayload[BoostExpiredPayloadV1](make(chan int))
		assert.Error(t, err)
	})
}
