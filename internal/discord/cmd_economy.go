package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/economy"
)

// embedFieldLimit is the longest value Discord accepts in an embed field
const embedFieldLimit = 1024

// titleCase builds its own Caser; Casers are stateful
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// RollCommand returns the roll command definition and handler
func RollCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandRoll,
		Description: "Roll for a random item",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		user := getInteractionUser(i)
		d.remember(user)
		handleEmbedResponse(ctx, s, i, CommandRoll, func() (*discordgo.MessageEmbed, error) {
			res, err := d.Economy.Roll(ctx, user.ID)
			if err != nil {
				return nil, err
			}
			return rollEmbed(displayName(user), res, time.Now()), nil
		})
	}

	return cmd, handler
}

func rollEmbed(name string, res *economy.RollResult, now time.Time) *discordgo.MessageEmbed {
	color := ColorRoll
	if res.Tier != domain.TierNormal {
		color = ColorRare
	}
	embed := createEmbed(fmt.Sprintf("%s found %s!!!", name, res.Item), "", color, "")
	if res.Rare {
		embed.Description = "🎉 A rare find! It has been announced to the server."
	}

	odds := formatOdds(res.BaseDenominator)
	if res.DisplayDenominator != res.BaseDenominator {
		odds += fmt.Sprintf("\nWith your luck: %s", formatOdds(res.DisplayDenominator))
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Odds", Value: odds},
		{Name: "Found on", Value: now.UTC().Format("January 02, 2006"), Inline: true},
		{Name: "Total rolls", Value: formatCount(res.TotalRolls), Inline: true},
		{Name: "You own", Value: formatCount(res.Owned), Inline: true},
		{Name: "Luck (with potion)", Value: formatLuck(res.Luck)},
	}
	if res.Potion != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Potion used",
			Value: fmt.Sprintf("%s boost, %s queued left", formatMultiplier(res.Potion.Multiplier), formatCount(res.PotionUsesLeft)),
		})
	}
	if len(res.ExpiredBoosts) > 0 {
		kinds := make([]string, 0, len(res.ExpiredBoosts))
		for _, k := range res.ExpiredBoosts {
			kinds = append(kinds, string(k))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Boost ended",
			Value: fmt.Sprintf("Your %s boost ran out before this roll.", strings.Join(kinds, " and ")),
		})
	}
	return embed
}

// StatusCommand returns the status command definition and handler
func StatusCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandStatus,
		Description: "Show your rolls, luck, boosts and inventory",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		user := getInteractionUser(i)
		handleEmbedResponse(ctx, s, i, CommandStatus, func() (*discordgo.MessageEmbed, error) {
			st, err := d.Economy.GetStatus(ctx, user.ID)
			if err != nil {
				return nil, err
			}
			return statusEmbed(displayName(user), st), nil
		})
	}

	return cmd, handler
}

func statusEmbed(name string, st *economy.Status) *discordgo.MessageEmbed {
	embed := createEmbed(fmt.Sprintf("%s's Status", name), "", ColorInfo, "")

	luck := formatLuck(st.Luck)
	if st.Luck != st.BaseLuck {
		luck += fmt.Sprintf(" (base %s)", formatLuck(st.BaseLuck))
	}

	inventory := make([]string, 0, len(st.Inventory))
	for _, l := range st.Inventory {
		odds := "retired item"
		if l.Denominator > 0 {
			odds = formatOdds(l.Denominator)
		}
		inventory = append(inventory, fmt.Sprintf("%s: %s (%s)", l.Item, formatCount(l.Count), odds))
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Rolls", Value: formatCount(st.Rolls), Inline: true},
		{Name: "Luck", Value: luck, Inline: true},
		{Name: "Login streak", Value: fmt.Sprintf("%s days", formatCount(st.Streak)), Inline: true},
		{Name: "Login boost", Value: boostText(st.LoginBoost), Inline: true},
		{Name: "Admin boost", Value: boostText(st.AdminBoost), Inline: true},
		{Name: "Inventory", Value: listField(inventory, "Nothing yet. Try `/roll`!")},
		{Name: "Luck potions", Value: listField(potionLines(st.Potions), "None")},
		{Name: "Queued potions", Value: listField(potionLines(st.QueuedPotions), "None")},
	}
	return embed
}

func boostText(b economy.BoostStatus) string {
	if !b.Active {
		return "Inactive"
	}
	return fmt.Sprintf("%s, %s left", formatMultiplier(b.Multiplier), formatDuration(b.Remaining))
}

func potionLines(lines []economy.PotionLine) []string {
	out := make([]string, 0, len(lines))
	for _, p := range lines {
		out = append(out, fmt.Sprintf("%s: %s", p.Name, formatCount(p.Count)))
	}
	return out
}

// listField joins lines as a bullet list that fits one embed field
func listField(lines []string, empty string) string {
	if len(lines) == 0 {
		return empty
	}
	var sb strings.Builder
	for n, l := range lines {
		line := "- " + l + "\n"
		more := fmt.Sprintf("…and %d more", len(lines)-n)
		if sb.Len()+len(line)+len(more) > embedFieldLimit {
			sb.WriteString(more)
			return sb.String()
		}
		sb.WriteString(line)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// ItemListCommand returns the itemlist command definition and handler
func ItemListCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandItemList,
		Description: "Browse every item with its odds and owned counts",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		user := getInteractionUser(i)
		catalog, err := d.Economy.ItemList(ctx, user.ID)
		if err != nil {
			respondEphemeral(s, i, formatFriendlyError(err))
			return
		}
		embed, components := itemListPage(catalog, user.ID, domain.TierNormal, 0)
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{embed},
				Components: components,
			},
		}); err != nil {
			slog.Error(LogMsgRespondFailed, "command", CommandItemList, "error", err)
		}
	}

	return cmd, handler
}

// handleItemListPage serves the category and page buttons.
// args are owner id, tier, page and the navigation action.
func handleItemListPage(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps, args []string) {
	if len(args) < 3 {
		return
	}
	owner, tier := args[0], domain.Tier(args[1])
	page, err := strconv.Atoi(args[2])
	if err != nil {
		return
	}
	if getInteractionUser(i).ID != owner {
		respondEphemeral(s, i, MsgPagingWrongUser)
		return
	}

	catalog, err := d.Economy.ItemList(ctx, owner)
	if err != nil {
		respondEphemeral(s, i, formatFriendlyError(err))
		return
	}
	embed, components := itemListPage(catalog, owner, tier, page)
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "command", CommandItemList, "error", err)
	}
}

var tierEmoji = map[domain.Tier]string{
	domain.TierNormal:  "🐾",
	domain.TierGolden:  "⭐",
	domain.TierRainbow: "🌈",
}

// itemListPage renders one page of a tier. Out of range pages are clamped.
func itemListPage(catalog *economy.ItemCatalog, ownerID string, tier domain.Tier, page int) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	var entries []economy.CatalogEntry
	for _, sec := range catalog.Sections {
		if sec.Tier == tier {
			entries = sec.Entries
		}
	}

	pages := (len(entries) + ItemsPerPage - 1) / ItemsPerPage
	if pages == 0 {
		pages = 1
	}
	page = max(0, min(page, pages-1))

	title := fmt.Sprintf("%s %s Items (page %d/%d)", tierEmoji[tier], titleCase(string(tier)), page+1, pages)
	embed := createEmbed(title, "Every item's odds, how many you own, and how many the whole server owns.", ColorList,
		fmt.Sprintf("Page %d/%d | Rarest first", page+1, pages))

	start := page * ItemsPerPage
	end := min(start+ItemsPerPage, len(entries))
	if start >= end {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Nothing here",
			Value: "This category has no items.",
		})
	}
	for _, e := range entries[min(start, end):end] {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   e.Item,
			Value:  fmt.Sprintf("Odds: %s\nYou own: %s\nServer total: %s", formatOdds(e.Denominator), formatCount(e.Owned), formatCount(e.ServerTotal)),
			Inline: true,
		})
	}

	return embed, itemListButtons(ownerID, tier, page, pages)
}

func itemListButtons(ownerID string, tier domain.Tier, page, pages int) []discordgo.MessageComponent {
	categories := make([]discordgo.MessageComponent, 0, len(economy.TierOrder))
	for _, t := range economy.TierOrder {
		style := discordgo.SecondaryButton
		if t == tier {
			style = discordgo.PrimaryButton
		}
		categories = append(categories, discordgo.Button{
			Label:    titleCase(string(t)),
			Emoji:    &discordgo.ComponentEmoji{Name: tierEmoji[t]},
			Style:    style,
			CustomID: customID(CustomIDItemList, ownerID, string(t), "0", NavCategory),
		})
	}

	nav := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "◀️",
			Style:    discordgo.SecondaryButton,
			Disabled: page == 0,
			CustomID: customID(CustomIDItemList, ownerID, string(tier), strconv.Itoa(page-1), NavPrev),
		},
		discordgo.Button{
			Label:    "▶️",
			Style:    discordgo.SecondaryButton,
			Disabled: page >= pages-1,
			CustomID: customID(CustomIDItemList, ownerID, string(tier), strconv.Itoa(page+1), NavNext),
		},
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: categories},
		discordgo.ActionsRow{Components: nav},
	}
}

// RankingCommand returns the ranking command definition and handler
func RankingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandRanking,
		Description: "Show the top rollers",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		handleEmbedResponse(ctx, s, i, CommandRanking, func() (*discordgo.MessageEmbed, error) {
			entries := d.Economy.Ranking(ctx)
			if len(entries) == 0 {
				return createEmbed("Roll Ranking", "Nobody has rolled yet.", ColorInfo, ""), nil
			}
			var sb strings.Builder
			for _, e := range entries {
				fmt.Fprintf(&sb, "**%d.** %s: %s rolls\n", e.Rank, d.name(e.UserID), formatCount(e.Rolls))
			}
			return createEmbed("Roll Ranking", sb.String(), ColorInfo, ""), nil
		})
	}

	return cmd, handler
}

// LoginCommand returns the daily login command definition and handler
func LoginCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandLogin,
		Description: "Claim your daily login luck boost",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		user := getInteractionUser(i)
		handleEmbedResponse(ctx, s, i, CommandLogin, func() (*discordgo.MessageEmbed, error) {
			res, err := d.Economy.Login(ctx, user.ID)
			if err != nil {
				return nil, err
			}
			desc := fmt.Sprintf("Streak: **%s days**\nBoost: **%s** for **%s**\nYour luck is now **%s**",
				formatCount(res.Streak), formatMultiplier(res.Multiplier), formatDuration(res.Duration), formatLuck(res.Luck))
			return createEmbed("📅 Daily Login Bonus", desc, ColorSuccess, ""), nil
		})
	}

	return cmd, handler
}
