package app

import (
	"log/slog"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/gym-buddy/internal/cache"
	"github.com/oggyb/gym-buddy/internal/config"
	"github.com/oggyb/gym-buddy/internal/lifecycle"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
	// Policy decides whether a like creates a match.
	Policy lifecycle.MatchingPolicy
	// Now is the clock used for ids, timestamps and slot searches.
	Now func() time.Time
}

// New creates a new AppContext. The matching policy comes from cfg.Matching.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		Policy:     lifecycle.PolicyByName(cfg.Matching.Policy, cfg.Matching.Probability, rng),
		Now:        time.Now,
	}
}
