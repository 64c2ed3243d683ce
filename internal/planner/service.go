// Package planner wraps the resolver behind a service that applies request
// defaults, builds the override index, and caches finished plans for the API
// surface. The resolver itself stays pure; everything operational lives here.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/myron-alexander/srcalc/internal/domain"
	"github.com/myron-alexander/srcalc/internal/gamedata"
	"github.com/myron-alexander/srcalc/internal/logger"
	"github.com/myron-alexander/srcalc/internal/metrics"
	"github.com/myron-alexander/srcalc/internal/overrides"
	"github.com/myron-alexander/srcalc/internal/plancache"
	"github.com/myron-alexander/srcalc/internal/requestspec"
	"github.com/myron-alexander/srcalc/internal/resolver"
)

// Result is a finished production plan: the tree plus the aggregate rows.
type Result struct {
	Item           string                 `json:"item"`
	ItemsPerMinute float64                `json:"items_per_minute"`
	Summary        []resolver.Row         `json:"summary"`
	Tree           *domain.ProductionNode `json:"tree"`
}

// Service computes production plans from request specs.
type Service interface {
	Plan(ctx context.Context, spec *requestspec.Spec) (*Result, error)
	ItemNames() []string
}

type service struct {
	db    *gamedata.Database
	cache *plancache.Cache[*Result]
}

// NewService creates a planner over the recipe database. cacheSize <= 0
// disables caching.
func NewService(db *gamedata.Database, cacheSize int, cacheTTL time.Duration) Service {
	s := &service{db: db}
	if cacheSize > 0 {
		s.cache = plancache.New[*Result](cacheSize, cacheTTL)
	}
	return s
}

// Plan resolves the production chain for the spec. A rate below 1 defaults to
// the output of a single machine, matching the CLI behavior.
func (s *service) Plan(ctx context.Context, spec *requestspec.Spec) (*Result, error) {
	log := logger.FromContext(ctx)

	rate := spec.Request.ItemsPerMinute
	if rate < 1 {
		oneMachine, err := s.db.OneMachineIPM(spec.Request.Item)
		if err != nil {
			return nil, err
		}
		rate = oneMachine
	}

	key := ""
	if s.cache != nil {
		var err error
		key, err = plancache.Key(cacheRequest{Item: spec.Request.Item, Rate: rate, Inputs: spec.Inputs})
		if err != nil {
			return nil, err
		}
		if cached, ok := s.cache.Get(key); ok {
			metrics.PlanCacheHits.Inc()
			log.Debug("plan served from cache", "item", spec.Request.Item, "ipm", rate)
			return cached, nil
		}
		metrics.PlanCacheMisses.Inc()
	}

	idx, err := overrides.NewIndex(spec.OverrideEntries())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tree, summary, err := resolver.New(s.db, idx).Resolve(spec.Request.Item, rate)
	if err != nil {
		return nil, err
	}
	metrics.PlanDuration.Observe(time.Since(start).Seconds())

	rows, err := summary.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to build summary rows: %w", err)
	}

	result := &Result{
		Item:           spec.Request.Item,
		ItemsPerMinute: rate,
		Summary:        rows,
		Tree:           tree,
	}

	metrics.PlansComputed.WithLabelValues(spec.Request.Item).Inc()
	metrics.PlanSummaryItems.Observe(float64(len(rows)))
	log.Info("plan computed",
		"item", spec.Request.Item,
		"ipm", rate,
		"summary_items", len(rows),
		"overrides", idx.Len())

	if s.cache != nil {
		s.cache.Set(key, result)
	}
	return result, nil
}

// ItemNames lists the craftable items, sorted.
func (s *service) ItemNames() []string {
	return s.db.ItemNames()
}

// cacheRequest is the canonical form hashed into the cache key. The resolved
// rate is part of the key so "default to one machine" and an explicit equal
// rate share an entry.
type cacheRequest struct {
	Item   string                 `json:"item"`
	Rate   float64                `json:"rate"`
	Inputs []requestspec.InputDef `json:"inputs,omitempty"`
}
