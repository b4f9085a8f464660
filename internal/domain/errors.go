package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgUserNotFound          = "user not found"
	ErrMsgRecipeNotFound        = "recipe not found"
	ErrMsgInsufficientMaterials = "insufficient materials"
	ErrMsgInvalidQuantity       = "invalid quantity"
	ErrMsgPotionNotOwned        = "potion not owned"
	ErrMsgNotAuthorized         = "not authorized"
	ErrMsgSessionAlreadyRunning = "auto-roll session already running"
	ErrMsgSessionNotFound       = "no auto-roll session running"
	ErrMsgDataCorrupt           = "data corrupt"
	ErrMsgPlatformDelivery      = "platform delivery failed"
	ErrMsgAlreadyLoggedIn       = "daily login already claimed today"
	ErrMsgInvalidInput          = "invalid input"
	ErrMsgInvalidDropTable      = "invalid drop table"
	ErrMsgConfirmationTimedOut  = "confirmation timed out"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound          = errors.New(ErrMsgUserNotFound)
	ErrRecipeNotFound        = errors.New(ErrMsgRecipeNotFound)
	ErrInsufficientMaterials = errors.New(ErrMsgInsufficientMaterials)
	ErrInvalidQuantity       = errors.New(ErrMsgInvalidQuantity)
	ErrPotionNotOwned        = errors.New(ErrMsgPotionNotOwned)
	ErrNotAuthorized         = errors.New(ErrMsgNotAuthorized)
	ErrSessionAlreadyRunning = errors.New(ErrMsgSessionAlreadyRunning)
	ErrSessionNotFound       = errors.New(ErrMsgSessionNotFound)
	ErrDataCorrupt           = errors.New(ErrMsgDataCorrupt)
	ErrPlatformDelivery      = errors.New(ErrMsgPlatformDelivery)
	ErrAlreadyLoggedIn       = errors.New(ErrMsgAlreadyLoggedIn)
	ErrInvalidInput          = errors.New(ErrMsgInvalidInput)
	ErrInvalidDropTable      = errors.New(ErrMsgInvalidDropTable)
	ErrConfirmationTimedOut  = errors.New(ErrMsgConfirmationTimedOut)
)

// InsufficientMaterialsError lists every material the user is short of
type InsufficientMaterialsError struct {
	Recipe     string
	Shortfalls []Shortfall
	// MaxCraftable is how many could be made with current materials
	MaxCraftable int
}

func (e *InsufficientMaterialsError) Error() string {
	if len(e.Shortfalls) == 0 {
		return fmt.Sprintf("%s for %s (max craftable: %d)", ErrMsgInsufficientMaterials, e.Recipe, e.MaxCraftable)
	}
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s (short %d)", s.Material, s.Missing))
	}
	return fmt.Sprintf("%s for %s: %s", ErrMsgInsufficientMaterials, e.Recipe, strings.Join(parts, ", "))
}

// Is allows errors.Is(err, ErrInsufficientMaterials)
func (e *InsufficientMaterialsError) Is(target error) bool {
	return target == ErrInsufficientMaterials
}
