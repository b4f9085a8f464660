package discord

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/event"
	"github.com/osse101/LuckBot_Go/internal/logger"
	"github.com/osse101/LuckBot_Go/internal/metrics"
	"github.com/osse101/LuckBot_Go/internal/worker"
)

// Messenger is the part of a Discord session the notifier sends through
type Messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// ChannelSource reports the configured announcement channel
type ChannelSource interface {
	NotificationChannel() domain.Snowflake
}

// JobQueue runs deliveries off the publishing goroutine
type JobQueue interface {
	Enqueue(job worker.Job) bool
}

// Notifier turns engine events into Discord messages.
// Delivery failures are logged and counted, never returned to the publisher.
type Notifier struct {
	msgr     Messenger
	channels ChannelSource
	queue    JobQueue
}

// NewNotifier creates a notifier. A nil queue delivers inline.
func NewNotifier(msgr Messenger, channels ChannelSource, queue JobQueue) *Notifier {
	return &Notifier{msgr: msgr, channels: channels, queue: queue}
}

// Register subscribes to the events users are told about
func (n *Notifier) Register(bus event.Bus) {
	for _, t := range []event.Type{
		event.RareItemDropped,
		event.AutoRollFinished,
		event.AutoRollResumed,
		event.BoostExpired,
	} {
		bus.Subscribe(t, n.HandleEvent)
	}
}

// HandleEvent queues delivery of one event
func (n *Notifier) HandleEvent(ctx context.Context, evt event.Event) error {
	if n.queue == nil {
		n.deliver(ctx, evt)
		return nil
	}
	requestID := logger.GetRequestID(ctx)
	queued := n.queue.Enqueue(worker.JobFunc(func(jobCtx context.Context) error {
		if requestID != "" {
			jobCtx = logger.WithRequestID(jobCtx, requestID)
		}
		n.deliver(jobCtx, evt)
		return nil
	}))
	if !queued {
		logger.FromContext(ctx).Warn(LogMsgNotificationDropped, "event_type", evt.Type)
	}
	return nil
}

func (n *Notifier) deliver(ctx context.Context, evt event.Event) {
	log := logger.FromContext(ctx)

	var err error
	switch evt.Type {
	case event.RareItemDropped:
		p, derr := event.DecodePayload[event.RareItemDroppedPayloadV1](evt.Payload)
		if derr != nil {
			log.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", derr)
			return
		}
		err = n.announceRareDrop(ctx, p)

	case event.AutoRollFinished:
		p, derr := event.DecodePayload[event.AutoRollFinishedPayloadV1](evt.Payload)
		if derr != nil {
			log.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", derr)
			return
		}
		err = n.sendDM(p.UserID, autoRollSummary(p))

	case event.AutoRollResumed:
		p, derr := event.DecodePayload[event.AutoRollResumedPayloadV1](evt.Payload)
		if derr != nil {
			log.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", derr)
			return
		}
		remaining := time.Duration(p.RemainingSeconds * float64(time.Second))
		err = n.sendDM(p.UserID, fmt.Sprintf("🔁 Your auto-roll picked up where it left off after a restart. Time remaining: **%s**.", formatDuration(remaining)))

	case event.BoostExpired:
		p, derr := event.DecodePayload[event.BoostExpiredPayloadV1](evt.Payload)
		if derr != nil {
			log.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", derr)
			return
		}
		err = n.boostExpired(ctx, p)

	default:
		return
	}

	if err != nil {
		metrics.DiscordDeliveryFailures.WithLabelValues(string(evt.Type)).Inc()
		log.Warn(LogMsgDeliveryFailed, "type", evt.Type, "error", err)
		return
	}
	log.Debug(LogMsgNotificationSent, "type", evt.Type)
}

func (n *Notifier) announceRareDrop(ctx context.Context, p event.RareItemDroppedPayloadV1) error {
	channelID := n.channels.NotificationChannel()
	if channelID == "" {
		logger.FromContext(ctx).Debug(LogMsgNoNotifyChannel, "user_id", p.UserID, "item", p.Item)
		return nil
	}
	if _, err := n.msgr.ChannelMessageSendEmbed(string(channelID), rareDropEmbed(p)); err != nil {
		return fmt.Errorf(ErrMsgDeliveryFmt, domain.ErrPlatformDelivery, "rare drop", channelID, err)
	}
	return nil
}

func rareDropEmbed(p event.RareItemDroppedPayloadV1) *discordgo.MessageEmbed {
	embed := createEmbed("🎉 Rare Item Drop!", fmt.Sprintf("%s found a rare item!", mention(p.UserID)), ColorRare, FooterRareDrop)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Finder", Value: mention(p.UserID)},
		{Name: "Item", Value: p.Item},
		{Name: "Odds", Value: formatOdds(p.BaseDenominator)},
		{Name: "Found at", Value: time.Unix(p.FoundAt, 0).UTC().Format("2006-01-02 15:04:05 UTC")},
		{Name: "Server total", Value: formatCount(p.ServerTotalOwned)},
	}
	return embed
}

func (n *Notifier) boostExpired(ctx context.Context, p event.BoostExpiredPayloadV1) error {
	if p.UserID != domain.BroadcastUserID {
		return n.sendDM(p.UserID, fmt.Sprintf("⌛ Your %s luck boost has ended. Your luck is back to normal.", p.Kind))
	}

	channelID := n.channels.NotificationChannel()
	if channelID == "" {
		return nil
	}
	if _, err := n.msgr.ChannelMessageSend(string(channelID), "⌛ The admin luck boost has ended. Everyone's luck is back to normal."); err != nil {
		return fmt.Errorf(ErrMsgDeliveryFmt, domain.ErrPlatformDelivery, "boost expiry", channelID, err)
	}
	return nil
}

// sendDM opens the user's DM channel and sends text, split to fit the message limit
func (n *Notifier) sendDM(userID, text string) error {
	ch, err := n.msgr.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf(ErrMsgDeliveryFmt, domain.ErrPlatformDelivery, "dm channel", userID, err)
	}
	for _, chunk := range splitMessage(text, MessageChunkSize) {
		if _, err := n.msgr.ChannelMessageSend(ch.ID, chunk); err != nil {
			return fmt.Errorf(ErrMsgDeliveryFmt, domain.ErrPlatformDelivery, "dm", userID, err)
		}
	}
	return nil
}

// autoRollSummary lists every item found, most frequent first
func autoRollSummary(p event.AutoRollFinishedPayloadV1) string {
	if len(p.ResultsLog) == 0 {
		return fmt.Sprintf("Your auto-roll ended (**%s**). Sadly nothing was found. Total rolls: **%s**",
			p.Reason, formatCount(p.TotalRolls))
	}

	items := make([]string, 0, len(p.ResultsLog))
	for item := range p.ResultsLog {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if p.ResultsLog[items[i]] != p.ResultsLog[items[j]] {
			return p.ResultsLog[items[i]] > p.ResultsLog[items[j]]
		}
		return items[i] < items[j]
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "Your auto-roll ended (**%s**)!\n\n**Items found this session:**\n", p.Reason)
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s: %s\n", item, formatCount(p.ResultsLog[item]))
	}
	fmt.Fprintf(&sb, "\n**Total rolls:** %s", formatCount(p.TotalRolls))
	return sb.String()
}
