package discord

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// UserLookup fetches a user profile from Discord
type UserLookup interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
}

// NameCache resolves user ids to display names for listings.
// Lookups that fail are not cached so a later listing can retry.
type NameCache struct {
	lookup UserLookup
	cache  *expirable.LRU[string, string]
}

// NewNameCache creates a display name cache backed by lookup
func NewNameCache(lookup UserLookup) *NameCache {
	return &NameCache{
		lookup: lookup,
		cache:  expirable.NewLRU[string, string](NameCacheSize, nil, NameCacheTTL),
	}
}

// Resolve returns the user's display name, or a mention when it cannot be fetched
func (c *NameCache) Resolve(userID string) string {
	if name, ok := c.cache.Get(userID); ok {
		return name
	}
	u, err := c.lookup.User(userID)
	if err != nil || u == nil {
		slog.Debug(LogMsgNameLookupFailed, "user_id", userID, "error", err)
		return mention(userID)
	}
	name := u.GlobalName
	if name == "" {
		name = u.Username
	}
	if name == "" {
		return mention(userID)
	}
	c.cache.Add(userID, name)
	return name
}

// Remember stores a name already known from an interaction
func (c *NameCache) Remember(u *discordgo.User) {
	if u == nil || u.ID == "" {
		return
	}
	name := u.GlobalName
	if name == "" {
		name = u.Username
	}
	if name != "" {
		c.cache.Add(u.ID, name)
	}
}

// Len reports how many names are cached
func (c *NameCache) Len() int {
	return c.cache.Len()
}
