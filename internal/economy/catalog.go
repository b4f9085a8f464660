package economy

import (
	"context"

	"github.com/osse101/LuckBot_Go/internal/domain"
)

// TierOrder is the display order of item tiers
var TierOrder = []domain.Tier{domain.TierNormal, domain.TierGolden, domain.TierRainbow}

// CatalogEntry is one item in the catalog listing
type CatalogEntry struct {
	Item        string `json:"item"`
	Denominator int64  `json:"denominator"`
	Owned       int    `json:"owned"`
	ServerTotal int    `json:"server_total"`
}

// TierSection lists a tier's items, rarest first
type TierSection struct {
	Tier    domain.Tier    `json:"tier"`
	Entries []CatalogEntry `json:"entries"`
}

// ItemCatalog is the full item listing from one user's point of view
type ItemCatalog struct {
	Sections []TierSection `json:"sections"`
}

// RankingEntry is one row of the roll leaderboard
type RankingEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Rolls  int    `json:"rolls"`
}

// ItemList returns every droppable item with the caller's and the server's owned counts
func (s *service) ItemList(ctx context.Context, userID string) (*ItemCatalog, error) {
	var owned map[string]int
	if u, ok := s.repo.Get(userID); ok {
		owned = u.Inventory
	}
	totals := s.repo.ItemTotals()
	byTier := s.catalog.ItemsByTier()

	out := &ItemCatalog{Sections: make([]TierSection, 0, len(TierOrder))}
	for _, tier := range TierOrder {
		entries := byTier[tier]
		section := TierSection{Tier: tier, Entries: make([]CatalogEntry, 0, len(entries))}
		for _, e := range entries {
			section.Entries = append(section.Entries, CatalogEntry{
				Item:        e.Name,
				Denominator: e.Denominator,
				Owned:       owned[e.Name],
				ServerTotal: totals[e.Name],
			})
		}
		out.Sections = append(out.Sections, section)
	}
	return out, nil
}

// Ranking returns the top users by roll count
func (s *service) Ranking(ctx context.Context) []RankingEntry {
	top := s.repo.TopRollers(s.cfg.RankingSize)
	out := make([]RankingEntry, 0, len(top))
	for i, r := range top {
		out = append(out, RankingEntry{Rank: i + 1, UserID: r.UserID, Rolls: r.Rolls})
	}
	return out
}
