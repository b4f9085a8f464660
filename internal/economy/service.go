package economy

import (
	"context"
	"time"

	"github.com/osse101/LuckBot_Go/internal/clock"
	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/event"
	"github.com/osse101/LuckBot_Go/internal/roll"
	"github.com/osse101/LuckBot_Go/internal/store"
)

// Repository is the economy store surface used by this package
type Repository interface {
	Update(userID string, fn store.MutateFunc) error
	UpdateBuffered(userID string, fn store.MutateFunc) error
	UpdateAll(fn func(userID string, u *domain.UserRecord) bool) (int, error)
	Get(userID string) (*domain.UserRecord, bool)
	ForEach(fn func(userID string, u *domain.UserRecord))
	UserIDs() []string
	Count() int
	TotalRolls() int
	ItemTotals() map[string]int
	TopRollers(n int) []store.RankEntry
	Delete(userID string) (bool, error)
	ResetAll() (int, error)
	Settings() domain.BotSettings
	UpdateSettings(fn func(*domain.BotSettings)) error
}

// Catalog is the read-only item and potion catalog
type Catalog interface {
	Items() *domain.ItemTable
	ItemsByTier() map[domain.Tier][]domain.DropEntry
	EffectsByStrength() []domain.PotionEffect
	PotionDisplayName(potionID string) string
}

// Roller performs one roll against the drop table
type Roller interface {
	PerformRoll(luck float64) roll.Result
}

// Config holds economy tuning values
type Config struct {
	RareThreshold int64
	RankingSize   int
}

// DefaultConfig returns the shipped economy settings
func DefaultConfig() Config {
	return Config{
		RareThreshold: DefaultRareThreshold,
		RankingSize:   DefaultRankingSize,
	}
}

// Service defines the interface for economy operations
type Service interface {
	Roll(ctx context.Context, userID string) (*RollResult, error)
	// AutoRoll performs a roll whose write is deferred to the auto-roll checkpoint
	AutoRoll(ctx context.Context, userID string) (*RollResult, error)
	GetStatus(ctx context.Context, userID string) (*Status, error)
	Login(ctx context.Context, userID string) (*LoginResult, error)
	ItemList(ctx context.Context, userID string) (*ItemCatalog, error)
	Ranking(ctx context.Context) []RankingEntry
	TotalRolls() int
	KnownUsers() []string

	ApplyAdminBoost(ctx context.Context, multiplier float64, duration time.Duration) (*AdminBoost, error)
	ExpireAdminBoosts(ctx context.Context) (int, error)
	// AdminBoostEnd returns the latest admin boost end time still recorded on any user
	AdminBoostEnd() (time.Time, bool)
	DeleteUser(ctx context.Context, userID string) (bool, error)
	ResetAll(ctx context.Context) (int, error)

	NotificationChannel() domain.Snowflake
	SetNotificationChannel(ctx context.Context, channelID domain.Snowflake) error
}

type service struct {
	repo      Repository
	catalog   Catalog
	roller    Roller
	publisher event.Publisher
	clock     clock.Clock
	cfg       Config
	effects   []domain.PotionEffect
}

// Option configures the economy service
type Option func(*service)

// WithClock overrides the wall clock
func WithClock(c clock.Clock) Option {
	return func(s *service) {
		s.clock = c
	}
}

// NewService creates a new economy service
func NewService(repo Repository, catalog Catalog, roller Roller, publisher event.Publisher, cfg Config, opts ...Option) Service {
	if cfg.RankingSize <= 0 {
		cfg.RankingSize = DefaultRankingSize
	}
	s := &service{
		repo:      repo,
		catalog:   catalog,
		roller:    roller,
		publisher: publisher,
		clock:     clock.NewReal(),
		cfg:       cfg,
		effects:   catalog.EffectsByStrength(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

func (s *service) TotalRolls() int {
	return s.repo.TotalRolls()
}

func (s *service) KnownUsers() []string {
	return s.repo.UserIDs()
}
