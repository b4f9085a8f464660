package discord

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/event"
)

type sentText struct {
	channel string
	content string
	embed   *discordgo.MessageEmbed
}

// fakeMessenger records messages instead of calling Discord
type fakeMessenger struct {
	mu      sync.Mutex
	sent    []sentText
	dms     []string
	sendErr error
	dmErr   error
}

func (f *fakeMessenger) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sentText{channel: channelID, content: content})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *fakeMessenger) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sentText{channel: channelID, embed: embed})
	return &discordgo.Message{ChannelID: channelID}, nil
}

func (f *fakeMessenger) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dmErr != nil {
		return nil, f.dmErr
	}
	f.dms = append(f.dms, recipientID)
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func TestNotifier_RareDropAnnouncedInChannel(t *testing.T) {
	msgr := &fakeMessenger{}
	queue := &syncQueue{}
	n := NewNotifier(msgr, stubChannels{channel: "announce"}, queue)
	bus := event.NewMemoryBus()
	n.Register(bus)

	require.NoError(t, bus.Publish(context.Background(), event.NewRareItemDroppedEvent("42", "golden haka", 10_000, 3, event.SourceManualRoll)))

	assert.Equal(t, 1, queue.jobs)
	require.Len(t, msgr.sent, 1)
	assert.Equal(t, "announce", msgr.sent[0].channel)
	embed := msgr.sent[0].embed
	require.NotNil(t, embed)
	assert.Equal(t, FooterRareDrop, embed.Footer.Text)
	assert.Contains(t, embed.Description, "<@42>")

	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "golden haka", fields["Item"])
	assert.Equal(t, "1 in 10,000", fields["Odds"])
	assert.Equal(t, "3", fields["Server total"])
}

func TestNotifier_RareDropWithoutChannelIsDropped(t *testing.T) {
	msgr := &fakeMessenger{}
	n := NewNotifier(msgr, stubChannels{}, nil)

	require.NoError(t, n.HandleEvent(context.Background(), event.NewRareItemDroppedEvent("42", "golden haka", 10_000, 1, event.SourceAutoRoll)))

	assert.Empty(t, msgr.sent)
}

func TestNotifier_AutoRollSummaryByDM(t *testing.T) {
	msgr := &fakeMessenger{}
	n := NewNotifier(msgr, stubChannels{channel: "announce"}, &syncQueue{})

	evt := event.NewAutoRollFinishedEvent(domain.AutoRollResult{
		UserID:     "42",
		SessionID:  "s-1",
		FoundItems: map[string]int{"uku": 3, "haka": 1200, "alpaca": 3},
		TotalRolls: 1206,
		Reason:     domain.ReasonTimeExpired,
	})
	require.NoError(t, n.HandleEvent(context.Background(), evt))

	assert.Equal(t, []string{"42"}, msgr.dms)
	require.Len(t, msgr.sent, 1)
	assert.Equal(t, "dm-42", msgr.sent[0].channel)
	text := msgr.sent[0].content
	assert.Contains(t, text, "(**time expired**)")
	assert.Contains(t, text, "**Total rolls:** 1,206")

	haka := strings.Index(text, "- haka: 1,200")
	alpaca := strings.Index(text, "- alpaca: 3")
	uku := strings.Index(text, "- uku: 3")
	require.True(t, haka >= 0 && alpaca >= 0 && uku >= 0, text)
	assert.Less(t, haka, alpaca, "most frequent first")
	assert.Less(t, alpaca, uku, "ties by name")
}

func TestNotifier_LongSummaryIsSplit(t *testing.T) {
	msgr := &fakeMessenger{}
	n := NewNotifier(msgr, stubChannels{}, nil)

	found := make(map[string]int)
	for i := 0; i < 200; i++ {
		found[strings.Repeat("x", 20)+string(rune('a'+i%26))+strings.Repeat("y", i/26)] = i + 1
	}
	evt := event.NewAutoRollFinishedEvent(domain.AutoRollResult{UserID: "42", FoundItems: found, TotalRolls: 5000, Reason: domain.ReasonManualStop})
	require.NoError(t, n.HandleEvent(context.Background(), evt))

	assert.Greater(t, len(msgr.sent), 1)
	for _, m := range msgr.sent {
		assert.LessOrEqual(t, len(m.content), MessageLimit)
	}
}

func TestNotifier_EmptySummary(t *testing.T) {
	msgr := &fakeMessenger{}
	n := NewNotifier(msgr, stubChannels{}, nil)

	evt := event.NewAutoRollFinishedEvent(domain.AutoRollResult{UserID: "42", FoundItems: map[string]int{}, TotalRolls: 0, Reason: domain.ReasonManualStop})
	require.NoError(t, n.HandleEvent(context.Background(), evt))

	require.Len(t, msgr.sent, 1)
	assert.Contains(t, msgr.sent[0].content, "Sadly nothing was found")
}

func TestNotifier_ResumedDM(t *testing.T) {
	msgr := &fakeMessenger{}
	n := NewNotifier(msgr, stubChannels{}, nil)

	require.NoError(t, n.HandleEvent(context.Background(), event.NewAutoRollResumedEvent("42", "s-1", 2*time.Hour)))

	require.Len(t, msgr.sent, 1)
	assert.Contains(t, msgr.sent[0].content, "**2h 0m 0s**")
}

func TestNotifier_BoostExpired(t *testing.T) {
	t.Run("single user gets a DM", func(t *testing.T) {
		msgr := &fakeMessenger{}
		n := NewNotifier(msgr, stubChannels{channel: "announce"}, nil)

		require.NoError(t, n.HandleEvent(context.Background(), event.NewBoostExpiredEvent("42", domain.BoostKindLogin)))

		assert.Equal(t, []string{"42"}, msgr.dms)
		require.Len(t, msgr.sent, 1)
		assert.Contains(t, msgr.sent[0].content, "login luck boost has ended")
	})

	t.Run("broadcast goes to the channel", func(t *testing.T) {
		msgr := &fakeMessenger{}
		n := NewNotifier(msgr, stubChannels{channel: "announce"}, nil)

		require.NoError(t, n.HandleEvent(context.Background(), event.NewBoostExpiredEvent(domain.BroadcastUserID, domain.BoostKindAdmin)))

		assert.Empty(t, msgr.dms)
		require.Len(t, msgr.sent, 1)
		assert.Equal(t, "announce", msgr.sent[0].channel)
	})
}

func TestNotifier_DeliveryFailureIsSwallowed(t *testing.T) {
	msgr := &fakeMessenger{dmErr: errors.New("cannot send messages to this user")}
	n := NewNotifier(msgr, stubChannels{}, &syncQueue{})

	err := n.HandleEvent(context.Background(), event.NewAutoRollResumedEvent("42", "s-1", time.Minute))

	assert.NoError(t, err)
	assert.Empty(t, msgr.sent)
}

func TestNotifier_SendDMWrapsPlatformError(t *testing.T) {
	msgr := &fakeMessenger{sendErr: errors.New("503")}
	n := NewNotifier(msgr, stubChannels{}, nil)

	err := n.sendDM("42", "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPlatformDelivery)
}
