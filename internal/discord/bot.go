package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LuckBot_Go/internal/admin"
	"github.com/osse101/LuckBot_Go/internal/crafting"
	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/economy"
)

// Economy is the slice of the economy service the commands use
type Economy interface {
	Roll(ctx context.Context, userID string) (*economy.RollResult, error)
	GetStatus(ctx context.Context, userID string) (*economy.Status, error)
	Login(ctx context.Context, userID string) (*economy.LoginResult, error)
	ItemList(ctx context.Context, userID string) (*economy.ItemCatalog, error)
	Ranking(ctx context.Context) []economy.RankingEntry
}

// AutoRoller controls a user's own auto-roll session
type AutoRoller interface {
	Start(ctx context.Context, userID string) (*domain.SessionInfo, error)
	Stop(ctx context.Context, userID string) (*domain.AutoRollResult, error)
	Remaining(userID string) (time.Duration, error)
}

// Deps are the services slash command handlers call into
type Deps struct {
	Economy  Economy
	Crafting crafting.Service
	AutoRoll AutoRoller
	Admin    admin.Service

	names    *NameCache
	confirms *confirmations
}

// ErrNotConnected is reported by CheckHealth while the gateway is down
var ErrNotConnected = errors.New(ErrMsgNotConnected)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	AppID    string
	GuildID  string
	Registry *CommandRegistry
	Deps     *Deps

	forceUpdate bool
}

// Config holds the bot configuration
type Config struct {
	Token          string
	AppID          string
	GuildID        string
	ConfirmTimeout time.Duration
	// ForceCommandUpdate overwrites registered commands even when unchanged
	ForceCommandUpdate bool
}

// New creates a new Discord bot with every command registered
func New(cfg Config, deps Deps) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateSessionFmt, err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = DefaultConfirmTimeout
	}
	deps.names = NewNameCache(s)
	deps.confirms = newConfirmations(cfg.ConfirmTimeout)

	return &Bot{
		Session:     s,
		AppID:       cfg.AppID,
		GuildID:     cfg.GuildID,
		Registry:    NewDefaultRegistry(),
		Deps:        &deps,
		forceUpdate: cfg.ForceCommandUpdate,
	}, nil
}

// NewDefaultRegistry registers every user and admin command
func NewDefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()
	for _, build := range []func() (*discordgo.ApplicationCommand, CommandHandler){
		PingCommand,
		HelpCommand,
		RollCommand,
		StatusCommand,
		ItemListCommand,
		RankingCommand,
		LoginCommand,
		CraftCommand,
		MakeCommand,
		UseCommand,
		RecipeCommand,
		AutoRollCommand,
		AutoStopCommand,
		AutoTimeCommand,
		SetupCommand,
		BoostLuckCommand,
		ResetAllCommand,
		DeleteCommand,
		GiveAutoRollCommand,
		AutoRollSessionsCommand,
	} {
		r.Register(build())
	}
	r.RegisterComponent(CustomIDItemList, handleItemListPage)
	r.RegisterComponent(CustomIDConfirm, handleConfirm)
	r.RegisterComponent(CustomIDCancel, handleCancel)
	return r
}

// Start opens the gateway and syncs slash commands
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf(ErrMsgOpenConnectionFmt, err)
	}

	if b.AppID == "" && b.Session.State != nil && b.Session.State.User != nil {
		b.AppID = b.Session.State.User.ID
	}
	if err := b.RegisterCommands(b.Registry, b.forceUpdate); err != nil {
		return err
	}

	slog.Info(LogMsgBotRunning, "commands", len(b.Registry.Commands))
	return nil
}

// Stop closes the gateway connection and drops pending prompts
func (b *Bot) Stop() {
	b.Deps.confirms.purge()
	if err := b.Session.Close(); err != nil {
		slog.Warn(LogMsgCloseFailed, "error", err)
		return
	}
	slog.Info(LogMsgBotStopped)
}

// CheckHealth reports whether the gateway session is ready
func (b *Bot) CheckHealth(ctx context.Context) error {
	if !b.Session.DataReady {
		return ErrNotConnected
	}
	return nil
}

// SetPresence shows the server-wide roll total as the bot's activity
func (b *Bot) SetPresence(ctx context.Context, totalRolls int) error {
	if err := b.Session.UpdateGameStatus(0, printer.Sprintf("%d total rolls", totalRolls)); err != nil {
		return fmt.Errorf(ErrMsgPresenceFmt, err)
	}
	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info(LogMsgBotReady, "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.Registry != nil {
		b.Registry.Handle(s, i, b.Deps)
	}
}

func (d *Deps) name(userID string) string {
	if d.names == nil {
		return mention(userID)
	}
	return d.names.Resolve(userID)
}

func (d *Deps) remember(u *discordgo.User) {
	if d.names != nil {
		d.names.Remember(u)
	}
}

func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
