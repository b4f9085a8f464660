package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/economy"
	"github.com/osse101/LuckBot_Go/internal/logger"
)

// URL parameter names
const (
	ParamUserID = "userID"
	ParamItem   = "item"
)

// EconomyReader is the read side of the economy service
type EconomyReader interface {
	GetStatus(ctx context.Context, userID string) (*economy.Status, error)
	ItemList(ctx context.Context, userID string) (*economy.ItemCatalog, error)
	Ranking(ctx context.Context) []economy.RankingEntry
	TotalRolls() int
}

// RecipeReader is the read side of the crafting service
type RecipeReader interface {
	GetRecipe(itemName string) (*domain.CraftingRecipe, error)
	PotionRecipes() []domain.PotionRecipe
}

// SessionLister lists running auto-roll sessions
type SessionLister interface {
	List() []domain.SessionInfo
}

// StatsResponse summarises server-wide activity
type StatsResponse struct {
	TotalRolls     int `json:"total_rolls"`
	ActiveSessions int `json:"active_sessions"`
}

// HandleGetStatus returns a user's status. Unknown users are 404 and no record is created.
// @Summary User status
// @Tags economy
// @Produce json
// @Param userID path string true "Platform user id"
// @Success 200 {object} economy.Status
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{userID}/status [get]
func HandleGetStatus(svc EconomyReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, ParamUserID)
		logger.FromContext(r.Context()).Debug(LogMsgStatusRequested, "user_id", userID)

		status, err := svc.GetStatus(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetStatusFailed, "user_id", userID, "error", err)
			respondServiceError(w, err)
			return
		}
		if !status.Exists {
			respondServiceError(w, domain.ErrUserNotFound)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}

// HandleGetItems returns the item catalog with the user's owned counts
// @Summary Item catalog
// @Tags economy
// @Produce json
// @Param userID path string true "Platform user id"
// @Success 200 {object} economy.ItemCatalog
// @Router /api/v1/users/{userID}/items [get]
func HandleGetItems(svc EconomyReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, ParamUserID)
		catalog, err := svc.ItemList(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetItemsFailed, "user_id", userID, "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, catalog)
	}
}

// HandleGetRanking returns the roll leaderboard
func HandleGetRanking(svc EconomyReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: svc.Ranking(r.Context())})
	}
}

// HandleGetStats returns aggregate counters
func HandleGetStats(svc EconomyReader, sessions SessionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, StatsResponse{
			TotalRolls:     svc.TotalRolls(),
			ActiveSessions: len(sessions.List()),
		})
	}
}

// HandleGetPotionRecipes lists every potion recipe
func HandleGetPotionRecipes(svc RecipeReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: svc.PotionRecipes()})
	}
}

// HandleGetRecipe returns the crafting recipe producing the named item
func HandleGetRecipe(svc RecipeReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipe, err := svc.GetRecipe(chi.URLParam(r, ParamItem))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, recipe)
	}
}

// HandleGetSessions lists running auto-roll sessions
func HandleGetSessions(sessions SessionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: sessions.List()})
	}
}
