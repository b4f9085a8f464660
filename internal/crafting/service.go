package crafting

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/logger"
	"github.com/osse101/LuckBot_Go/internal/metrics"
	"github.com/osse101/LuckBot_Go/internal/store"
)

// Repository is the slice of the economy store the crafting service needs
type Repository interface {
	Update(userID string, fn store.MutateFunc) error
}

// Catalog resolves recipes by user-typed name
type Catalog interface {
	FindCraftingRecipe(name string) (domain.CraftingRecipe, bool)
	FindPotionRecipe(name string) (domain.PotionRecipe, bool)
	CraftingRecipes() []domain.CraftingRecipe
	PotionRecipes() []domain.PotionRecipe
}

// Result describes a completed craft or potion brew
type Result struct {
	Recipe   string              `json:"recipe"`
	Output   string              `json:"output"`
	Produced int                 `json:"produced"`
	Crafts   int                 `json:"crafts"`
	Consumed []domain.Ingredient `json:"consumed"`
}

// UsePotionResult describes potions moved into the queued-use pool
type UsePotionResult struct {
	Recipe   string `json:"recipe"`
	PotionID string `json:"potion_id"`
	Queued   int    `json:"queued"`
	// TotalQueued is the queued-use count after this call
	TotalQueued int `json:"total_queued"`
	// Remaining is the owned count left after this call
	Remaining int `json:"remaining"`
}

// Service defines the interface for crafting operations
type Service interface {
	Craft(ctx context.Context, userID, itemName string, qty domain.Quantity) (*Result, error)
	MakePotion(ctx context.Context, userID, potionName string, qty domain.Quantity) (*Result, error)
	UsePotion(ctx context.Context, userID, potionName string, qty domain.Quantity) (*UsePotionResult, error)
	GetRecipe(itemName string) (*domain.CraftingRecipe, error)
	PotionRecipes() []domain.PotionRecipe
}

type service struct {
	repo    Repository
	catalog Catalog
}

// NewService creates a new crafting service
func NewService(repo Repository, catalog Catalog) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
	}
}

// Craft converts lower tier items into a higher tier item
func (s *service) Craft(ctx context.Context, userID, itemName string, qty domain.Quantity) (*Result, error) {
	log := logger.FromContext(ctx)

	recipe, err := s.GetRecipe(itemName)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.repo.Update(userID, func(tx *store.Tx) error {
		crafts, err := resolveCrafts(recipe.Name, tx.User.Inventory, recipe.Materials, qty)
		if err != nil {
			return err
		}
		consumed := convert(tx.User.Inventory, tx.User.Inventory, recipe.Materials, recipe.Output, crafts)
		result = &Result{
			Recipe:   recipe.Name,
			Output:   recipe.Output.Name,
			Produced: recipe.Output.Quantity * crafts,
			Crafts:   crafts,
			Consumed: consumed,
		}
		return nil
	})
	if err != nil {
		log.Info(LogMsgCraftRejected, "user_id", userID, "recipe", recipe.Name, "quantity", qty.String(), "error", err)
		return nil, err
	}

	metrics.CraftsTotal.WithLabelValues(metrics.CraftKindItem).Add(float64(result.Crafts))
	log.Info(LogMsgCraftCompleted, "user_id", userID, "recipe", result.Recipe, "produced", result.Produced)
	return result, nil
}

// MakePotion converts inventory items into owned luck potions
func (s *service) MakePotion(ctx context.Context, userID, potionName string, qty domain.Quantity) (*Result, error) {
	log := logger.FromContext(ctx)

	recipe, err := s.findPotion(potionName)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.repo.Update(userID, func(tx *store.Tx) error {
		crafts, err := resolveCrafts(recipe.Name, tx.User.Inventory, recipe.Materials, qty)
		if err != nil {
			return err
		}
		consumed := convert(tx.User.Inventory, tx.User.LuckPotions, recipe.Materials, recipe.Output, crafts)
		result = &Result{
			Recipe:   recipe.Name,
			Output:   recipe.Output.Name,
			Produced: recipe.Output.Quantity * crafts,
			Crafts:   crafts,
			Consumed: consumed,
		}
		return nil
	})
	if err != nil {
		log.Info(LogMsgCraftRejected, "user_id", userID, "recipe", recipe.Name, "quantity", qty.String(), "error", err)
		return nil, err
	}

	metrics.CraftsTotal.WithLabelValues(metrics.CraftKindPotion).Add(float64(result.Crafts))
	log.Info(LogMsgPotionCrafted, "user_id", userID, "recipe", result.Recipe, "produced", result.Produced)
	return result, nil
}

// UsePotion moves owned potions into the queued-use pool consumed by upcoming rolls
func (s *service) UsePotion(ctx context.Context, userID, potionName string, qty domain.Quantity) (*UsePotionResult, error) {
	log := logger.FromContext(ctx)

	recipe, err := s.findPotion(potionName)
	if err != nil {
		return nil, err
	}
	id := recipe.Output.Name

	var result *UsePotionResult
	err = s.repo.Update(userID, func(tx *store.Tx) error {
		owned := tx.User.LuckPotions[id]

		n := owned
		if !qty.IsAll() {
			n = qty.Count()
			if n <= 0 {
				return fmt.Errorf("%w: "+ErrMsgQuantityFmt, domain.ErrInvalidQuantity, n)
			}
		}
		if n == 0 || n > owned {
			return fmt.Errorf("%w: "+ErrMsgPotionNotOwnedFmt, domain.ErrPotionNotOwned, recipe.Name, n, owned)
		}

		domain.SubtractCount(tx.User.LuckPotions, id, n)
		domain.AddCount(tx.User.ActiveLuckPotionUses, id, n)
		result = &UsePotionResult{
			Recipe:      recipe.Name,
			PotionID:    id,
			Queued:      n,
			TotalQueued: tx.User.ActiveLuckPotionUses[id],
			Remaining:   tx.User.LuckPotions[id],
		}
		return nil
	})
	if err != nil {
		log.Info(LogMsgPotionUseRefused, "user_id", userID, "potion", id, "quantity", qty.String(), "error", err)
		return nil, err
	}

	log.Info(LogMsgPotionQueued, "user_id", userID, "potion", id, "queued", result.Queued, "total_queued", result.TotalQueued)
	return result, nil
}

// GetRecipe resolves a tier crafting recipe by output name, ignoring case
func (s *service) GetRecipe(itemName string) (*domain.CraftingRecipe, error) {
	if strings.TrimSpace(itemName) == "" {
		return nil, fmt.Errorf("%w: "+ErrMsgEmptyNameFmt, domain.ErrInvalidInput)
	}
	recipe, ok := s.catalog.FindCraftingRecipe(itemName)
	if !ok {
		return nil, fmt.Errorf("%w: "+ErrMsgRecipeNotFoundFmt, domain.ErrRecipeNotFound, itemName)
	}
	return &recipe, nil
}

// PotionRecipes lists potion recipes in declaration order
func (s *service) PotionRecipes() []domain.PotionRecipe {
	return s.catalog.PotionRecipes()
}

func (s *service) findPotion(name string) (*domain.PotionRecipe, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: "+ErrMsgEmptyNameFmt, domain.ErrInvalidInput)
	}
	recipe, ok := s.catalog.FindPotionRecipe(name)
	if ok {
		return &recipe, nil
	}
	// Internal potion ids are accepted too
	for _, r := range s.catalog.PotionRecipes() {
		if strings.EqualFold(r.Output.Name, strings.TrimSpace(name)) {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%w: "+ErrMsgRecipeNotFoundFmt, domain.ErrRecipeNotFound, name)
}
