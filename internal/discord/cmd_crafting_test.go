package discord

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckBot_Go/internal/crafting"
	"github.com/osse101/LuckBot_Go/internal/domain"
)

func TestCraftCommand(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		want     domain.Quantity
	}{
		{"default quantity", "", domain.Exactly(1)},
		{"explicit quantity", "5", domain.Exactly(5)},
		{"all", "ALL", domain.AllQuantity()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := SetupTestContext(t)
			td := newTestDeps(tc.Session, time.Minute)
			td.crafting.On("Craft", mock.Anything, "42", "golden haka", tt.want).Return(&crafting.Result{
				Recipe:   "golden haka",
				Output:   "golden haka",
				Produced: 2,
				Crafts:   2,
				Consumed: []domain.Ingredient{{Name: "haka", Quantity: 20}},
			}, nil)
			_, handler := CraftCommand()

			opts := []*discordgo.ApplicationCommandInteractionDataOption{stringOpt(OptionItem, "golden haka")}
			if tt.quantity != "" {
				opts = append(opts, stringOpt(OptionQuantity, tt.quantity))
			}
			handler(context.Background(), tc.Session, commandInteraction(CommandCraft, "42", opts...), td.Deps)

			embed := tc.LastEmbed(t)
			assert.Equal(t, "🔨 Crafted", embed.Title)
			assert.Equal(t, "You made **2× golden haka**.\n\nUsed:\n- 20× haka", embed.Description)
			td.crafting.AssertExpectations(t)
		})
	}
}

func TestCraftCommand_InvalidQuantity(t *testing.T) {
	tc := SetupTestContext(t)
	td := newTestDeps(tc.Session, time.Minute)
	_, handler := CraftCommand()

	handler(context.Background(), tc.Session, commandInteraction(CommandCraft, "42",
		stringOpt(OptionItem, "golden haka"), stringOpt(OptionQuantity, "-3")), td.Deps)

	msg := tc.LastEdit(t)
	require.NotNil(t, msg.Content)
	assert.Equal(t, MsgInvalidQuantity, *msg.Content)
	td.crafting.AssertNotCalled(t, "Craft", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCraftCommand_ShortfallMessage(t *testing.T) {
	tc := SetupTestContext(t)
	td := newTestDeps(tc.Session, time.Minute)
	td.crafting.On("Craft", mock.Anything, "42", "golden haka", domain.Exactly(3)).Return(nil,
		fmt.Errorf("craft golden haka: %w", &domain.InsufficientMaterialsError{
			Recipe:       "golden haka",
			Shortfalls:   []domain.Shortfall{{Material: "haka", Required: 30, Owned: 12, Missing: 18}},
			MaxCraftable: 1,
		}))
	_, handler := CraftCommand()

	handler(context.Background(), tc.Session, commandInteraction(CommandCraft, "42",
		stringOpt(OptionItem, "golden haka"), stringOpt(OptionQuantity, "3")), td.Deps)

	msg := tc.LastEdit(t)
	require.NotNil(t, msg.Content)
	assert.Contains(t, *msg.Content, "haka: need 30, have 12 (short **18**)")
	assert.Contains(t, *msg.Content, "You can make **1** right now.")
}

func TestMakeCommand(t *testing.T) {
	tc := SetupTestContext(t)
	td := newTestDeps(tc.Session, time.Minute)
	td.crafting.On("MakePotion", mock.Anything, "42", "rtx4070", domain.Exactly(1)).Return(&crafting.Result{
		Recipe:   "RTX 4070",
		Output:   "potion_rtx4070",
		Produced: 1,
		Crafts:   1,
		Consumed: []domain.Ingredient{{Name: "golden haka", Quantity: 1}, {Name: "uku", Quantity: 100}},
	}, nil)
	_, handler := MakeCommand()

	handler(context.Background(), tc.Session, commandInteraction(CommandMake, "42", stringOpt(OptionPotion, "rtx4070")), td.Deps)

	embed := tc.LastEmbed(t)
	assert.Equal(t, "🧪 Potion Brewed", embed.Title)
	assert.Contains(t, embed.Description, "**1× RTX 4070**")
	assert.Contains(t, embed.Description, "- 100× uku")
}

func TestUseCommand(t *testing.T) {
	tc := SetupTestContext(t)
	td := newTestDeps(tc.Session, time.Minute)
	td.crafting.On("UsePotion", mock.Anything, "42", "rtx4070", domain.AllQuantity()).Return(&crafting.UsePotionResult{
		Recipe: "RTX 4070", PotionID: "potion_rtx4070", Queued: 3, TotalQueued: 5, Remaining: 0,
	}, nil).Once()
	td.crafting.On("UsePotion", mock.Anything, "42", "rtx4070", domain.AllQuantity()).Return(nil, domain.ErrPotionNotOwned).Once()
	_, handler := UseCommand()

	interaction := commandInteraction(CommandUse, "42", stringOpt(OptionPotion, "rtx4070"), stringOpt(OptionQuantity, "all"))
	handler(context.Background(), tc.Session, interaction, td.Deps)
	embed := tc.LastEmbed(t)
	assert.Contains(t, embed.Description, "Queued **3× RTX 4070**")
	assert.Contains(t, embed.Description, "Queued now: **5**")

	handler(context.Background(), tc.Session, interaction, td.Deps)
	msg := tc.LastEdit(t)
	require.NotNil(t, msg.Content)
	assert.Equal(t, MsgPotionNotOwned, *msg.Content)
}

func TestRecipeCommand(t *testing.T) {
	t.Run("lists potion recipes", func(t *testing.T) {
		tc := SetupTestContext(t)
		td := newTestDeps(tc.Session, time.Minute)
		td.crafting.On("PotionRecipes").Return([]domain.PotionRecipe{{
			Name:           "RTX 4070",
			Materials:      []domain.Ingredient{{Name: "golden haka", Quantity: 1}},
			Output:         domain.Ingredient{Name: "potion_rtx4070", Quantity: 1},
			LuckMultiplier: 4070,
		}})
		_, handler := RecipeCommand()

		handler(context.Background(), tc.Session, commandInteraction(CommandRecipe, "42"), td.Deps)

		embed := tc.LastEmbed(t)
		require.Len(t, embed.Fields, 1)
		assert.Equal(t, "RTX 4070", embed.Fields[0].Name)
		assert.Contains(t, embed.Fields[0].Value, "x4,070.00 for one roll")
	})

	t.Run("shows one crafting recipe", func(t *testing.T) {
		tc := SetupTestContext(t)
		td := newTestDeps(tc.Session, time.Minute)
		td.crafting.On("GetRecipe", "Golden Haka").Return(&domain.CraftingRecipe{
			Name:      "golden haka",
			Materials: []domain.Ingredient{{Name: "haka", Quantity: 10}},
			Output:    domain.Ingredient{Name: "golden haka", Quantity: 1},
		}, nil)
		_, handler := RecipeCommand()

		handler(context.Background(), tc.Session, commandInteraction(CommandRecipe, "42", stringOpt(OptionItem, "Golden Haka")), td.Deps)

		embed := tc.LastEmbed(t)
		assert.Equal(t, "📜 Recipe: golden haka", embed.Title)
		assert.Equal(t, "Makes **1× golden haka** from:\n- 10× haka", embed.Description)
	})

	t.Run("unknown item", func(t *testing.T) {
		tc := SetupTestContext(t)
		td := newTestDeps(tc.Session, time.Minute)
		td.crafting.On("GetRecipe", "haka").Return(nil, fmt.Errorf("%w: haka", domain.ErrRecipeNotFound))
		_, handler := RecipeCommand()

		handler(context.Background(), tc.Session, commandInteraction(CommandRecipe, "42", stringOpt(OptionItem, "haka")), td.Deps)

		msg := tc.LastEdit(t)
		require.NotNil(t, msg.Content)
		assert.Equal(t, MsgRecipeNotFound, *msg.Content)
	})
}
