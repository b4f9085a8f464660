package discord

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/logger"
	"github.com/osse101/LuckBot_Go/internal/metrics"
)

// CommandHandler handles a slash command
type CommandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps)

// ComponentHandler handles a button press. args are the custom id segments after the prefix.
type ComponentHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps, args []string)

// CommandRegistry holds the registered commands and component routes
type CommandRegistry struct {
	Commands   map[string]*discordgo.ApplicationCommand
	Handlers   map[string]CommandHandler
	Components map[string]ComponentHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands:   make(map[string]*discordgo.ApplicationCommand),
		Handlers:   make(map[string]CommandHandler),
		Components: make(map[string]ComponentHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// RegisterComponent routes button presses whose custom id starts with prefix
func (r *CommandRegistry) RegisterComponent(prefix string, handler ComponentHandler) {
	r.Components[prefix] = handler
}

// Handle processes an interaction. Every interaction gets its own request id.
// A panicking handler is logged and the interaction dropped.
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	ctx = logger.WithUserID(ctx, getInteractionUser(i).ID)
	log := logger.FromContext(ctx)

	name := ""
	defer func() {
		if rec := recover(); rec != nil {
			log.Error(LogMsgHandlerPanic, "command", name, "interaction_type", int(i.Type),
				"panic", fmt.Sprint(rec), "stack", string(debug.Stack()))
			metrics.DiscordHandlerPanics.WithLabelValues(name).Inc()
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name = i.ApplicationCommandData().Name
		h, ok := r.Handlers[name]
		if !ok {
			log.Warn(LogMsgUnknownCommand, "command", name)
			return
		}
		metrics.DiscordCommandsTotal.WithLabelValues(name).Inc()
		h(ctx, s, i, d)
		log.Debug(LogMsgCommandHandled, "command", name)

	case discordgo.InteractionMessageComponent:
		prefix, args := splitCustomID(i.MessageComponentData().CustomID)
		name = prefix
		h, ok := r.Components[prefix]
		if !ok {
			log.Warn(LogMsgUnknownComponent, "custom_id", i.MessageComponentData().CustomID)
			return
		}
		metrics.DiscordCommandsTotal.WithLabelValues(prefix).Inc()
		h(ctx, s, i, d, args)
	}
}

// RegisterCommands registers/updates commands with Discord.
// Only performs updates if commands have changed to avoid rate limits.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info(LogMsgCheckingCommands, "guild_id", b.GuildID)

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	if !forceUpdate {
		existingCmds, err := b.Session.ApplicationCommands(b.AppID, b.GuildID)
		if err != nil {
			return fmt.Errorf(ErrMsgFetchCommandsFmt, err)
		}
		if commandsEqual(existingCmds, desiredCmds) {
			slog.Info(LogMsgCommandsUnchanged, "count", len(existingCmds))
			return nil
		}
		slog.Info(LogMsgCommandsChanged, "existing", len(existingCmds), "desired", len(desiredCmds))
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, b.GuildID, desiredCmds); err != nil {
		return fmt.Errorf(ErrMsgOverwriteFmt, err)
	}

	slog.Info(LogMsgCommandsUpdated, "count", len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand)
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		have, ok := existingMap[want.Name]
		if !ok || !commandEqual(have, want) {
			return false
		}
	}

	return true
}

// commandEqual checks if two commands are equivalent
func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}

	return true
}

// optionEqual checks if two command options are equivalent
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description || a.Required != b.Required {
		return false
	}

	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || a.Choices[i].Value != b.Choices[i].Value {
			return false
		}
	}

	return true
}

// deferResponse acknowledges an interaction with a deferred message.
// Returns false if deferral failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

// respondEphemeral answers an interaction with a message only the caller can see
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
	}
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

// getOptions indexes command options by name
func getOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		out[o.Name] = o
	}
	return out
}

// stringOption returns a string option or def when it was not supplied
func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name, def string) string {
	if o, ok := opts[name]; ok {
		return o.StringValue()
	}
	return def
}

// respondError sends a plain error message into the deferred response
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

// respondFriendlyError maps engine errors to readable text before responding
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	respondError(s, i, formatFriendlyError(err))
}

// sendEmbed edits the deferred response with a single embed
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

// createEmbed creates a standard embed. An empty footer defaults to FooterLuckBot.
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterLuckBot
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}

// handleEmbedResponse defers, runs action, and reports either a friendly error or the embed
func handleEmbedResponse(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, name string, action func() (*discordgo.MessageEmbed, error)) {
	if !deferResponse(s, i) {
		return
	}

	embed, err := action()
	if err != nil {
		logger.FromContext(ctx).Info(LogMsgActionFailed, "command", name, "error", err)
		respondFriendlyError(s, i, err)
		return
	}
	sendEmbed(s, i, embed)
}

func customID(prefix string, args ...string) string {
	return strings.Join(append([]string{prefix}, args...), CustomIDSeparator)
}

func splitCustomID(id string) (string, []string) {
	parts := strings.Split(id, CustomIDSeparator)
	return parts[0], parts[1:]
}

// parseTarget accepts a user mention, a raw id, or "all"
func parseTarget(raw string) (string, error) {
	t := strings.TrimSpace(raw)
	if strings.EqualFold(t, TargetAll) {
		return TargetAll, nil
	}
	t = strings.TrimPrefix(t, "<@")
	t = strings.TrimPrefix(t, "!")
	t = strings.TrimSuffix(t, ">")
	if t == "" {
		return "", fmt.Errorf(ErrMsgInvalidTargetFmt, domain.ErrInvalidInput, raw)
	}
	for _, r := range t {
		if r < '0' || r > '9' {
			return "", fmt.Errorf(ErrMsgInvalidTargetFmt, domain.ErrInvalidInput, raw)
		}
	}
	return t, nil
}
