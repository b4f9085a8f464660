package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LuckBot_Go/internal/domain"
)

// AutoRollCommand starts the caller's auto-roll session
func AutoRollCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandAutoRoll,
		Description: "Roll automatically once per second; results arrive by DM",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		user := getInteractionUser(i)
		handleEmbedResponse(ctx, s, i, CommandAutoRoll, func() (*discordgo.MessageEmbed, error) {
			info, err := d.AutoRoll.Start(ctx, user.ID)
			if err != nil {
				return nil, err
			}
			desc := fmt.Sprintf("Rolling for the next **%s**.\nYou'll get the results by DM when it ends. Stop early with `/autostop`.",
				formatDuration(info.Remaining))
			return createEmbed("🤖 Auto-Roll Started", desc, ColorSuccess, ""), nil
		})
	}

	return cmd, handler
}

// AutoStopCommand stops the caller's session and reports the totals
func AutoStopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandAutoStop,
		Description: "Stop your auto-roll and get the results",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		user := getInteractionUser(i)
		handleEmbedResponse(ctx, s, i, CommandAutoStop, func() (*discordgo.MessageEmbed, error) {
			res, err := d.AutoRoll.Stop(ctx, user.ID)
			if err != nil {
				return nil, err
			}
			if res == nil {
				return nil, domain.ErrSessionNotFound
			}
			desc := fmt.Sprintf("Your auto-roll stopped after **%s** rolls and found **%s** different items.\nThe full list is on its way by DM.",
				formatCount(res.TotalRolls), formatCount(len(res.FoundItems)))
			return createEmbed("🛑 Auto-Roll Stopped", desc, ColorNeutral, ""), nil
		})
	}

	return cmd, handler
}

// AutoTimeCommand reports the time left on the caller's session
func AutoTimeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandAutoTime,
		Description: "Show how long your auto-roll has left",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		user := getInteractionUser(i)
		handleEmbedResponse(ctx, s, i, CommandAutoTime, func() (*discordgo.MessageEmbed, error) {
			left, err := d.AutoRoll.Remaining(user.ID)
			if err != nil {
				return nil, err
			}
			return createEmbed("⏱️ Auto-Roll Time Left", fmt.Sprintf("**%s** remaining.", formatDuration(left)), ColorInfo, ""), nil
		})
	}

	return cmd, handler
}
