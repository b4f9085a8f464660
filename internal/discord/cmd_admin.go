package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LuckBot_Go/internal/admin"
	"github.com/osse101/LuckBot_Go/internal/domain"
)

// SetupCommand makes a channel the rare drop announcement channel
func SetupCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandSetup,
		Description: "Admin: announce rare drops in this channel",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         OptionChannel,
				Description:  "Channel to use (default: this one)",
				Required:     false,
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		user := getInteractionUser(i)
		channelID := i.ChannelID
		if o, ok := getOptions(i)[OptionChannel]; ok {
			if id, ok := o.Value.(string); ok && id != "" {
				channelID = id
			}
		}
		handleEmbedResponse(ctx, s, i, CommandSetup, func() (*discordgo.MessageEmbed, error) {
			if err := d.Admin.SetNotificationChannel(ctx, user.ID, domain.Snowflake(channelID)); err != nil {
				return nil, err
			}
			desc := fmt.Sprintf("Rare drops will be announced in <#%s>.", channelID)
			return createEmbed("📣 Notifications Set", desc, ColorAdmin, FooterLuckBotAdmin), nil
		})
	}

	return cmd, handler
}

// BoostLuckCommand applies a temporary luck multiplier to every user
func BoostLuckCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minValue := 0.0
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandBoostLuck,
		Description: "Admin: multiply everyone's luck for a while",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        OptionMultiplier,
				Description: "Luck multiplier, e.g. 1.5",
				Required:    true,
				MinValue:    &minValue,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        OptionSeconds,
				Description: "How long the boost lasts in seconds",
				Required:    true,
				MinValue:    &minValue,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		user := getInteractionUser(i)
		opts := getOptions(i)
		handleEmbedResponse(ctx, s, i, CommandBoostLuck, func() (*discordgo.MessageEmbed, error) {
			m, okM := opts[OptionMultiplier]
			sec, okS := opts[OptionSeconds]
			if !okM || !okS {
				return nil, fmt.Errorf(ErrMsgMissingOptionFmt, domain.ErrInvalidInput, OptionMultiplier+"/"+OptionSeconds)
			}
			boost, err := d.Admin.BoostLuck(ctx, user.ID, admin.BoostRequest{
				Multiplier: m.FloatValue(),
				Duration:   time.Duration(sec.IntValue()) * time.Second,
			})
			if boost == nil {
				return nil, err
			}
			desc := fmt.Sprintf("Everyone's luck is multiplied by **%s** for **%s** (%s users).",
				formatMultiplier(boost.Multiplier), formatDuration(boost.Duration), formatCount(boost.Users))
			if err != nil {
				desc += "\n⚠️ The automatic reset could not be scheduled; it will still end on each user's next roll."
			}
			return createEmbed("🍀 Luck Boost Active", desc, ColorAdmin, FooterLuckBotAdmin), nil
		})
	}

	return cmd, handler
}

// ResetAllCommand wipes every user after a confirmation prompt
func ResetAllCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandResetAll,
		Description: "Admin: wipe all user data (asks for confirmation)",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		actor := getInteractionUser(i).ID
		if !d.Admin.IsAdmin(actor) {
			respondEphemeral(s, i, MsgNotAuthorized)
			return
		}
		d.confirms.prompt(s, i, CommandResetAll,
			"⚠️ **This resets rolls, luck and inventory for every user.** Are you sure?",
			func(ctx context.Context) (string, error) {
				res, err := d.Admin.ResetAll(ctx, actor)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("✅ Reset %s users and stopped %s auto-roll sessions.",
					formatCount(res.Users), formatCount(res.Sessions)), nil
			})
	}

	return cmd, handler
}

// DeleteCommand deletes one user's data, or everyone's, after a confirmation prompt
func DeleteCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandDelete,
		Description: "Admin: delete a user's data, or all (asks for confirmation)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionTarget,
				Description: "User mention, user id, or \"all\"",
				Required:    true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		actor := getInteractionUser(i).ID
		if !d.Admin.IsAdmin(actor) {
			respondEphemeral(s, i, MsgNotAuthorized)
			return
		}
		target, err := parseTarget(stringOption(getOptions(i), OptionTarget, ""))
		if err != nil {
			respondEphemeral(s, i, formatFriendlyError(err))
			return
		}

		question := fmt.Sprintf("⚠️ **Delete all data for %s?** This cannot be undone.", mention(target))
		if target == TargetAll {
			question = "⚠️ **Delete all data for every user?** This cannot be undone."
		}
		d.confirms.prompt(s, i, CommandDelete, question, func(ctx context.Context) (string, error) {
			res, err := d.Admin.DeleteUser(ctx, actor, target)
			if err != nil {
				return "", err
			}
			if res.Target == TargetAll {
				return fmt.Sprintf("✅ Deleted %s users and stopped %s auto-roll sessions.",
					formatCount(res.Users), formatCount(res.Sessions)), nil
			}
			return fmt.Sprintf("✅ Deleted data for %s.", mention(res.Target)), nil
		})
	}

	return cmd, handler
}

// GiveAutoRollCommand starts auto-roll sessions on behalf of users
func GiveAutoRollCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandGiveAutoRoll,
		Description: "Admin: start auto-roll for a user, or all",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionTarget,
				Description: "User mention, user id, or \"all\"",
				Required:    true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		actor := getInteractionUser(i).ID
		raw := stringOption(getOptions(i), OptionTarget, "")
		handleEmbedResponse(ctx, s, i, CommandGiveAutoRoll, func() (*discordgo.MessageEmbed, error) {
			target, err := parseTarget(raw)
			if err != nil {
				return nil, err
			}
			res, err := d.Admin.GiveAutoRoll(ctx, actor, target)
			if res == nil {
				return nil, err
			}
			desc := fmt.Sprintf("Started **%s** sessions. Skipped **%s** already running.",
				formatCount(len(res.Started)), formatCount(len(res.Skipped)))
			if err != nil {
				desc += "\n⚠️ Some sessions could not be started."
			}
			return createEmbed("🤖 Auto-Roll Given", desc, ColorAdmin, FooterLuckBotAdmin), nil
		})
	}

	return cmd, handler
}

// AutoRollSessionsCommand lists running sessions
func AutoRollSessionsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandAutoRollSessions,
		Description: "Admin: list running auto-roll sessions",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		actor := getInteractionUser(i).ID
		handleEmbedResponse(ctx, s, i, CommandAutoRollSessions, func() (*discordgo.MessageEmbed, error) {
			sessions, err := d.Admin.ListSessions(ctx, actor)
			if err != nil {
				return nil, err
			}
			if len(sessions) == 0 {
				return createEmbed("Running Auto-Roll Sessions", "No auto-roll sessions are running.", ColorAdmin, FooterLuckBotAdmin), nil
			}
			lines := make([]string, 0, len(sessions))
			for _, si := range sessions {
				lines = append(lines, fmt.Sprintf("%s: %s left, %s rolls", d.name(si.UserID), formatDuration(si.Remaining), formatCount(si.Rolls)))
			}
			desc := fmt.Sprintf("%s running\n\n%s", formatCount(len(sessions)), strings.TrimSpace(listField(lines, "")))
			return createEmbed("Running Auto-Roll Sessions", desc, ColorAdmin, FooterLuckBotAdmin), nil
		})
	}

	return cmd, handler
}
