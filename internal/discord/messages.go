package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/LuckBot_Go/internal/domain"
)

// Friendly message constants for Discord responses
const (
	// Crafting
	MsgRecipeNotFound        = "❓ **Recipe Not Found**\nMaybe check the spelling? `/recipe` lists every potion."
	MsgInsufficientMaterials = "🎒 **Not Enough Materials**"
	MsgInvalidQuantity       = "🔢 **Invalid Quantity**\nUse a positive number or `all`."
	MsgPotionNotOwned        = "🧪 **No Potions**\nYou don't have any of that potion. Brew one with `/make`."

	// Auto-roll
	MsgSessionAlreadyRunning = "⏳ **Already Rolling**\nYour auto-roll is already running. Check it with `/autotime`."
	MsgSessionNotFound       = "💤 **No Auto-Roll Running**\nStart one with `/autoroll`."

	// Daily login
	MsgAlreadyLoggedIn = "📅 **Already Claimed**\nYou already claimed today's login bonus. Come back tomorrow (UTC)!"

	// User
	MsgUserNotFound = "👤 **User Not Found**\nThey haven't rolled yet."

	// Admin
	MsgNotAuthorized       = "🚫 This command is for bot admins only."
	MsgInvalidInput        = "⚠️ **Invalid Input**"
	MsgConfirmTimedOut     = "⌛ Confirmation timed out. Nothing was changed."
	MsgConfirmCancelled    = "❎ Cancelled. Nothing was changed."
	MsgConfirmWrongUser    = "🚫 Only the admin who ran the command can answer this prompt."
	MsgPagingWrongUser     = "🚫 Only the user who opened this list can page through it."
	MsgNotificationMissing = "No notification channel is set. Ask an admin to run `/setup`."

	MsgGenericError = "❌ Something went wrong."
)

// formatFriendlyError maps engine errors onto readable messages
func formatFriendlyError(err error) string {
	var short *domain.InsufficientMaterialsError
	switch {
	case errors.As(err, &short):
		return formatShortfalls(short)
	case errors.Is(err, domain.ErrRecipeNotFound):
		return MsgRecipeNotFound
	case errors.Is(err, domain.ErrInvalidQuantity):
		return MsgInvalidQuantity
	case errors.Is(err, domain.ErrPotionNotOwned):
		return MsgPotionNotOwned
	case errors.Is(err, domain.ErrSessionAlreadyRunning):
		return MsgSessionAlreadyRunning
	case errors.Is(err, domain.ErrSessionNotFound):
		return MsgSessionNotFound
	case errors.Is(err, domain.ErrAlreadyLoggedIn):
		return MsgAlreadyLoggedIn
	case errors.Is(err, domain.ErrUserNotFound):
		return MsgUserNotFound
	case errors.Is(err, domain.ErrNotAuthorized):
		return MsgNotAuthorized
	case errors.Is(err, domain.ErrConfirmationTimedOut):
		return MsgConfirmTimedOut
	case errors.Is(err, domain.ErrInvalidInput):
		return fmt.Sprintf("%s\n%s", MsgInvalidInput, detailOf(err, domain.ErrInvalidInput))
	default:
		return MsgGenericError
	}
}

func formatShortfalls(e *domain.InsufficientMaterialsError) string {
	var sb strings.Builder
	sb.WriteString(MsgInsufficientMaterials)
	if e.Recipe != "" {
		fmt.Fprintf(&sb, " for **%s**", e.Recipe)
	}
	for _, s := range e.Shortfalls {
		fmt.Fprintf(&sb, "\n- %s: need %s, have %s (short **%s**)",
			s.Material, formatCount(s.Required), formatCount(s.Owned), formatCount(s.Missing))
	}
	if e.MaxCraftable > 0 {
		fmt.Fprintf(&sb, "\nYou can make **%s** right now.", formatCount(e.MaxCraftable))
	}
	return sb.String()
}

// detailOf strips the sentinel prefix from a wrapped error message
func detailOf(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}
