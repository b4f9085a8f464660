package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// PingCommand returns the ping command definition and handler
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandPing,
		Description: "Check if the bot is alive",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		content := fmt.Sprintf("Pong! 🏓 Gateway latency: `%dms`", s.HeartbeatLatency().Milliseconds())
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
			},
		}); err != nil {
			slog.Error(LogMsgRespondFailed, "command", CommandPing, "error", err)
		}
	}

	return cmd, handler
}

type helpLine struct {
	usage string
	text  string
}

var userHelp = []helpLine{
	{"/roll", "Roll for a random item."},
	{"/status", "Show your rolls, luck, boosts, inventory and potions."},
	{"/itemlist", "Browse every item with its odds, your count and the server total."},
	{"/ranking", "Show the top rollers."},
	{"/login", "Claim the daily login boost. Consecutive days make it stronger."},
	{"/craft item [quantity|all]", "Turn 10 items into one of the next tier. Example: `/craft golden haka 5`"},
	{"/make potion [quantity|all]", "Brew a luck potion from materials. Example: `/make rtx4070 1`"},
	{"/use potion [quantity|all]", "Queue potions. Each queued potion boosts one roll."},
	{"/recipe [item]", "List potion recipes, or show how to craft an item."},
	{"/autoroll", "Roll once per second in the background. Results arrive by DM."},
	{"/autostop", "Stop your auto-roll and get the results now."},
	{"/autotime", "Show how long your auto-roll has left."},
	{"/ping", "Check the bot's latency."},
}

var adminHelp = []helpLine{
	{"/setup", "Send rare drop announcements to this channel."},
	{"/boostluck multiplier seconds", "Multiply everyone's luck for a while. Example: `/boostluck 1.5 60`"},
	{"/resetall", "**Warning:** wipe every user's data."},
	{"/delete target", "Delete one user's data, or `all`. This cannot be undone."},
	{"/giveautoroll target", "Start auto-roll for a user or `all`."},
	{"/autorollsessions", "List running auto-roll sessions."},
}

// HelpCommand lists the commands the caller can use
func HelpCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandHelp,
		Description: "List the bot's commands",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		embeds := []*discordgo.MessageEmbed{helpEmbed("Commands", "Here's what you can do.", ColorSuccess, FooterLuckBot, userHelp)}
		if d.Admin != nil && d.Admin.IsAdmin(getInteractionUser(i).ID) {
			embeds = append(embeds, helpEmbed("Admin Commands", "Only bot admins can use these.", ColorAdmin, FooterLuckBotAdmin, adminHelp))
		}
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: embeds,
				Flags:  discordgo.MessageFlagsEphemeral,
			},
		}); err != nil {
			slog.Error(LogMsgRespondFailed, "command", CommandHelp, "error", err)
		}
	}

	return cmd, handler
}

func helpEmbed(title, description string, color int, footer string, lines []helpLine) *discordgo.MessageEmbed {
	embed := createEmbed(title, description, color, footer)
	for _, l := range lines {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "**" + l.usage + "**",
			Value: l.text,
		})
	}
	return embed
}
