// Package recipes lists the recipes a user can make and renders recipe
// ingredients for display.
package recipes

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"demeter/internal/cache"
	"demeter/internal/conversion"
	"demeter/internal/feasibility"
	applog "demeter/internal/log"
	"demeter/internal/set"
	"demeter/internal/substitution"
	"demeter/models"
)

// Strategy picks the feasibility check used for a listing.
type Strategy string

const (
	StrategyReference Strategy = "reference"
	StrategyFast      Strategy = "fast"
)

// ParseStrategy returns the named strategy, or fallback when name is unknown.
func ParseStrategy(name string, fallback Strategy) Strategy {
	switch Strategy(name) {
	case StrategyReference, StrategyFast:
		return Strategy(name)
	default:
		return fallback
	}
}

// Store is the persistence the service needs.
type Store interface {
	feasibility.SetSource
	User(ctx context.Context, userID uint) (*models.User, error)
	Recipes(ctx context.Context) ([]models.Recipe, error)
	Recipe(ctx context.Context, id uint) (*models.Recipe, error)
	RecipeItems(ctx context.Context, recipeID uint) ([]models.RecipeItem, error)
	Inventory(ctx context.Context, userID uint) ([]models.InventoryItem, error)
	CreatePersonalRecipe(ctx context.Context, ownerID uint, recipe *models.Recipe) error
	PersonalRecipes(ctx context.Context, userID uint) ([]models.Recipe, error)
	DeletePersonalRecipe(ctx context.Context, userID, recipeID uint) error
	PublishRecipe(ctx context.Context, userID, recipeID uint) error
}

// Makeable is a recipe the user can cook, with the help it needed if any.
type Makeable struct {
	Recipe       models.Recipe                 `json:"recipe"`
	Substitution *feasibility.SubstitutionHint `json:"substitution,omitempty"`
}

type Options struct {
	Strategy    Strategy
	Concurrency int
	Cache       cache.IDSetCache
}

type Service struct {
	store       Store
	source      feasibility.SetSource
	cache       cache.IDSetCache
	finder      *substitution.Finder
	strategy    Strategy
	concurrency int
}

func NewService(store Store, finder *substitution.Finder, opts Options) *Service {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	var source feasibility.SetSource = store
	if opts.Cache != nil {
		source = cachedSource{SetSource: store, cache: opts.Cache}
	}
	return &Service{
		store:       store,
		source:      source,
		cache:       opts.Cache,
		finder:      finder,
		strategy:    ParseStrategy(string(opts.Strategy), StrategyReference),
		concurrency: opts.Concurrency,
	}
}

// Strategy resolves a requested strategy, falling back to the service default.
func (s *Service) Strategy(requested Strategy) Strategy {
	return ParseStrategy(string(requested), s.strategy)
}

type checkFunc func(ctx context.Context, recipe models.Recipe) (feasibility.Result, error)

// Makeable evaluates every recipe matching query and returns the requested
// page of those the user can make, in recipe order. An empty strategy uses
// the service default.
func (s *Service) Makeable(ctx context.Context, userID uint, query Query, page Page, strategy Strategy) ([]Makeable, error) {
	if page.Size <= 0 || page.Number < 0 {
		return []Makeable{}, nil
	}

	all, err := s.store.Recipes(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]models.Recipe, 0, len(all))
	for _, recipe := range all {
		if query.matches(recipe) {
			candidates = append(candidates, recipe)
		}
	}

	check, err := s.checker(ctx, userID, s.Strategy(strategy))
	if err != nil {
		return nil, err
	}

	results := make([]feasibility.Result, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, recipe := range candidates {
		g.Go(func() error {
			result, err := check(gctx, recipe)
			if err != nil {
				return fmt.Errorf("check recipe %d: %w", recipe.ID, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	makeable := make([]Makeable, 0, len(candidates))
	for i, result := range results {
		if result.Feasible {
			makeable = append(makeable, Makeable{Recipe: candidates[i], Substitution: result.Substitution})
		}
	}

	applog.Debug(ctx, "makeable recipes evaluated",
		"userID", userID,
		"candidates", len(candidates),
		"makeable", len(makeable),
	)
	return paginate(makeable, page), nil
}

// Check evaluates a single recipe for the user.
func (s *Service) Check(ctx context.Context, recipeID, userID uint, strategy Strategy) (feasibility.Result, error) {
	recipe, err := s.store.Recipe(ctx, recipeID)
	if err != nil {
		return feasibility.Result{}, err
	}
	switch s.Strategy(strategy) {
	case StrategyFast:
		return feasibility.NewFastChecker(s.source).Check(ctx, recipe.ID, userID)
	default:
		check, err := s.checker(ctx, userID, StrategyReference)
		if err != nil {
			return feasibility.Result{}, err
		}
		return check(ctx, *recipe)
	}
}

// checker loads the per-user inputs once and returns a check for one recipe.
func (s *Service) checker(ctx context.Context, userID uint, strategy Strategy) (checkFunc, error) {
	if strategy == StrategyFast {
		user, err := feasibility.LoadUserSets(ctx, s.source, userID)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, recipe models.Recipe) (feasibility.Result, error) {
			ids, err := s.source.RecipeFoodIDs(ctx, recipe.ID)
			if err != nil {
				return feasibility.Result{}, err
			}
			sets := user
			sets.Recipe = ids
			return feasibility.CanBeMadeFast(sets), nil
		}, nil
	}

	inventory, err := s.store.Inventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	disliked, err := s.store.DislikedFoodIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	minor, err := s.store.MinorFoodIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	dislikedIDs, minorIDs := set.Sorted(disliked), set.Sorted(minor)
	lookup := s.finder.Lookup(userID)

	return func(ctx context.Context, recipe models.Recipe) (feasibility.Result, error) {
		items, err := s.store.RecipeItems(ctx, recipe.ID)
		if err != nil {
			return feasibility.Result{}, err
		}
		return feasibility.CanBeMade(ctx, inventory, items, dislikedIDs, minorIDs, lookup), nil
	}, nil
}

// Items returns a recipe's ingredients in the user's display units.
func (s *Service) Items(ctx context.Context, recipeID, userID uint) ([]models.RecipeItem, error) {
	if _, err := s.store.Recipe(ctx, recipeID); err != nil {
		return nil, err
	}
	user, err := s.store.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.RecipeItems(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	conversion.ConvertRecipeItems(ctx, items, user.IsMetric)
	return items, nil
}

// cachedSource serves recipe id sets from the cache. Per-user sets always come
// from the store.
type cachedSource struct {
	feasibility.SetSource
	cache cache.IDSetCache
}

func (c cachedSource) RecipeFoodIDs(ctx context.Context, recipeID uint) (set.Set[uint], error) {
	key := cache.RecipeKey(recipeID)
	ids, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		applog.Warn(ctx, "recipe id cache read failed", "key", key, "error", err)
	} else if ok {
		return ids, nil
	}

	ids, err = c.SetSource.RecipeFoodIDs(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, ids); err != nil {
		applog.Warn(ctx, "recipe id cache write failed", "key", key, "error", err)
	}
	return ids, nil
}
