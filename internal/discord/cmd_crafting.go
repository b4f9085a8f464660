package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LuckBot_Go/internal/crafting"
	"github.com/osse101/LuckBot_Go/internal/domain"
)

// QuantityCommandConfig defines a name + quantity command
type QuantityCommandConfig struct {
	Name        string
	Description string
	OptionName  string
	OptionDesc  string
	ResultTitle string
	ResultColor int
	Action      func(ctx context.Context, d *Deps, userID, name string, qty domain.Quantity) (string, error)
}

// CreateQuantityCommand returns a standardized name + quantity command and handler.
// Quantity is a string so users can type "all".
func CreateQuantityCommand(cfg QuantityCommandConfig) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cfg.Name,
		Description: cfg.Description,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        cfg.OptionName,
				Description: cfg.OptionDesc,
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionQuantity,
				Description: "How many, or \"all\" (default: 1)",
				Required:    false,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		user := getInteractionUser(i)
		opts := getOptions(i)
		handleEmbedResponse(ctx, s, i, cfg.Name, func() (*discordgo.MessageEmbed, error) {
			name := stringOption(opts, cfg.OptionName, "")
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf(ErrMsgMissingOptionFmt, domain.ErrInvalidInput, cfg.OptionName)
			}
			qty, err := domain.ParseQuantity(stringOption(opts, OptionQuantity, "1"))
			if err != nil {
				return nil, err
			}
			msg, err := cfg.Action(ctx, d, user.ID, name, qty)
			if err != nil {
				return nil, err
			}
			return createEmbed(cfg.ResultTitle, msg, cfg.ResultColor, ""), nil
		})
	}

	return cmd, handler
}

// CraftCommand crafts higher tier items
func CraftCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return CreateQuantityCommand(QuantityCommandConfig{
		Name:        CommandCraft,
		Description: "Combine 10 items into one of the next tier",
		OptionName:  OptionItem,
		OptionDesc:  "Item to craft, e.g. golden haka",
		ResultTitle: "🔨 Crafted",
		ResultColor: ColorSuccess,
		Action: func(ctx context.Context, d *Deps, userID, name string, qty domain.Quantity) (string, error) {
			res, err := d.Crafting.Craft(ctx, userID, name, qty)
			if err != nil {
				return "", err
			}
			return craftSummary(res), nil
		},
	})
}

// MakeCommand brews luck potions
func MakeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return CreateQuantityCommand(QuantityCommandConfig{
		Name:        CommandMake,
		Description: "Brew a luck potion from materials",
		OptionName:  OptionPotion,
		OptionDesc:  "Potion to brew (see /recipe)",
		ResultTitle: "🧪 Potion Brewed",
		ResultColor: ColorSuccess,
		Action: func(ctx context.Context, d *Deps, userID, name string, qty domain.Quantity) (string, error) {
			res, err := d.Crafting.MakePotion(ctx, userID, name, qty)
			if err != nil {
				return "", err
			}
			return craftSummary(res), nil
		},
	})
}

// UseCommand queues owned potions for upcoming rolls
func UseCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return CreateQuantityCommand(QuantityCommandConfig{
		Name:        CommandUse,
		Description: "Queue luck potions for your next rolls",
		OptionName:  OptionPotion,
		OptionDesc:  "Potion to use",
		ResultTitle: "✨ Potion Queued",
		ResultColor: ColorRoll,
		Action: func(ctx context.Context, d *Deps, userID, name string, qty domain.Quantity) (string, error) {
			res, err := d.Crafting.UsePotion(ctx, userID, name, qty)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Queued **%s× %s**. Each queued potion boosts one roll.\nQueued now: **%s**\nStill in your bag: **%s**",
				formatCount(res.Queued), res.Recipe, formatCount(res.TotalQueued), formatCount(res.Remaining)), nil
		},
	})
}

func craftSummary(res *crafting.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You made **%s× %s**.\n\nUsed:", formatCount(res.Produced), res.Recipe)
	for _, c := range res.Consumed {
		fmt.Fprintf(&sb, "\n- %s× %s", formatCount(c.Quantity), c.Name)
	}
	return sb.String()
}

// RecipeCommand lists potion recipes or shows how to craft one item
func RecipeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandRecipe,
		Description: "Show potion recipes, or the recipe for an item",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionItem,
				Description: "Item to look up (optional)",
				Required:    false,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, d *Deps) {
		item := stringOption(getOptions(i), OptionItem, "")
		handleEmbedResponse(ctx, s, i, CommandRecipe, func() (*discordgo.MessageEmbed, error) {
			if item == "" {
				return potionRecipesEmbed(d.Crafting.PotionRecipes()), nil
			}
			r, err := d.Crafting.GetRecipe(item)
			if err != nil {
				return nil, err
			}
			desc := fmt.Sprintf("Makes **%s× %s** from:\n%s", formatCount(r.Output.Quantity), r.Output.Name, ingredientList(r.Materials))
			return createEmbed("📜 Recipe: "+r.Name, desc, ColorInfo, ""), nil
		})
	}

	return cmd, handler
}

func potionRecipesEmbed(recipes []domain.PotionRecipe) *discordgo.MessageEmbed {
	embed := createEmbed("📜 Luck Potion Recipes", "Brew with `/make`, then queue with `/use`.", ColorInfo, "")
	for _, r := range recipes {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  r.Name,
			Value: fmt.Sprintf("%s\nMakes: %s\nLuck: %s for one roll",
				ingredientList(r.Materials), formatCount(r.Output.Quantity), formatMultiplier(r.LuckMultiplier)),
		})
	}
	if len(recipes) == 0 {
		embed.Description = "No potion recipes are available."
	}
	return embed
}

func ingredientList(in []domain.Ingredient) string {
	lines := make([]string, 0, len(in))
	for _, m := range in {
		lines = append(lines, fmt.Sprintf("%s× %s", formatCount(m.Quantity), m.Name))
	}
	return listField(lines, "Nothing")
}
