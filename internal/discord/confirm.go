package discord

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/LuckBot_Go/internal/logger"
)

// pendingConfirm is a destructive admin action waiting for its button press
type pendingConfirm struct {
	actorID string
	action  string
	run     func(ctx context.Context) (string, error)

	session     *discordgo.Session
	interaction *discordgo.Interaction
	settled     atomic.Bool
}

// confirmations holds prompts until they are answered or their timeout passes.
// An expired prompt is edited to say nothing happened.
type confirmations struct {
	pending *expirable.LRU[string, *pendingConfirm]
}

func newConfirmations(timeout time.Duration) *confirmations {
	return &confirmations{
		pending: expirable.NewLRU[string, *pendingConfirm](MaxPendingConfirmations, onConfirmEvicted, timeout),
	}
}

// onConfirmEvicted runs under the cache lock, so the Discord edit happens on its own goroutine
func onConfirmEvicted(token string, p *pendingConfirm) {
	if !p.settled.CompareAndSwap(false, true) {
		return
	}
	slog.Info(LogMsgConfirmExpired, "token", token, "action", p.action, "user_id", p.actorID)
	if p.session == nil || p.interaction == nil {
		return
	}
	go func() {
		content := MsgConfirmTimedOut
		empty := []discordgo.MessageComponent{}
		if _, err := p.session.InteractionResponseEdit(p.interaction, &discordgo.WebhookEdit{
			Content:    &content,
			Components: &empty,
		}); err != nil {
			slog.Warn(LogMsgEditFailed, "error", err)
		}
	}()
}

// prompt asks the actor to confirm an action with two buttons
func (c *confirmations) prompt(s *discordgo.Session, i *discordgo.InteractionCreate, action, question string, run func(ctx context.Context) (string, error)) {
	token := uuid.NewString()
	c.pending.Add(token, &pendingConfirm{
		actorID:     getInteractionUser(i).ID,
		action:      action,
		run:         run,
		session:     s,
		interaction: i.Interaction,
	})

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    question,
			Components: confirmButtons(token),
		},
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
		c.pending.Remove(token)
	}
}

// take claims a prompt for the presser. ok is false when it expired or was already answered.
func (c *confirmations) take(token, userID string) (p *pendingConfirm, ok, wrongUser bool) {
	p, found := c.pending.Get(token)
	if !found {
		return nil, false, false
	}
	if p.actorID != userID {
		return nil, false, true
	}
	if !p.settled.CompareAndSwap(false, true) {
		return nil, false, false
	}
	c.pending.Remove(token)
	return p, true, false
}

func (c *confirmations) purge() {
	if c == nil {
		return
	}
	for _, p := range c.pending.Values() {
		p.settled.Store(true)
	}
	c.pending.Purge()
}

func confirmButtons(token string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Yes, do it",
					Style:    discordgo.DangerButton,
					CustomID: customID(CustomIDConfirm, token),
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: customID(CustomIDCancel, token),
				},
			},
		},
	}
}

// updatePrompt replaces the prompt message and removes its buttons
func updatePrompt(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
	}
}

func handleConfirm(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps, args []string) {
	if len(args) != 1 {
		return
	}
	p, ok, wrongUser := d.confirms.take(args[0], getInteractionUser(i).ID)
	switch {
	case wrongUser:
		respondEphemeral(s, i, MsgConfirmWrongUser)
		return
	case !ok:
		updatePrompt(s, i, MsgConfirmTimedOut)
		return
	}

	logger.FromContext(ctx).Info(LogMsgConfirmed, "action", p.action, "user_id", p.actorID)
	msg, err := p.run(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgActionFailed, "command", p.action, "error", err)
		msg = formatFriendlyError(err)
	}
	updatePrompt(s, i, msg)
}

func handleCancel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps, args []string) {
	if len(args) != 1 {
		return
	}
	_, ok, wrongUser := d.confirms.take(args[0], getInteractionUser(i).ID)
	switch {
	case wrongUser:
		respondEphemeral(s, i, MsgConfirmWrongUser)
	case !ok:
		updatePrompt(s, i, MsgConfirmTimedOut)
	default:
		updatePrompt(s, i, MsgConfirmCancelled)
	}
}
