package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrRateNotFound = errors.New("exchange rate not found")

// RateQuery asks for the price of one unit of Base in Quote on Date.
type RateQuery struct {
	UserID uuid.UUID
	Base   string
	Quote  string
	Date   time.Time
}

//go:generate mockgen -source=resolver.go -destination=resolver_mock.go -package=currency
type RateResolver interface {
	ResolveRate(ctx context.Context, q RateQuery) (decimal.Decimal, error)
}

// Chain asks each resolver in order and returns the first rate found.
// A resolver reporting ErrRateNotFound passes the query on; any other
// error stops the chain.
type Chain []RateResolver

func (c Chain) ResolveRate(ctx context.Context, q RateQuery) (decimal.Decimal, error) {
	for _, r := range c {
		rate, err := r.ResolveRate(ctx, q)
		if errors.Is(err, ErrRateNotFound) {
			continue
		}

		if err != nil {
			return decimal.Zero, err
		}

		return rate, nil
	}

	return decimal.Zero, ErrRateNotFound
}

// UserRateResolver reads the user's own rate overrides.
type UserRateResolver struct {
	repo Repository
}

func NewUserRateResolver(repo Repository) *UserRateResolver {
	return &UserRateResolver{repo: repo}
}

func (r *UserRateResolver) ResolveRate(ctx context.Context, q RateQuery) (decimal.Decimal, error) {
	return r.repo.GetUserRate(ctx, q.UserID, q.Base, q.Quote)
}

// DailyRateResolver reads the global daily table. When only the opposite
// direction is stored it answers with the inverse.
type DailyRateResolver struct {
	repo Repository
}

func NewDailyRateResolver(repo Repository) *DailyRateResolver {
	return &DailyRateResolver{repo: repo}
}

func (r *DailyRateResolver) ResolveRate(ctx context.Context, q RateQuery) (decimal.Decimal, error) {
	rate, err := r.repo.GetDailyRate(ctx, q.Base, q.Quote, q.Date)
	if err == nil {
		return rate, nil
	}

	if !errors.Is(err, ErrRateNotFound) {
		return decimal.Zero, err
	}

	inverse, err := r.repo.GetDailyRate(ctx, q.Quote, q.Base, q.Date)
	if err != nil {
		return decimal.Zero, err
	}

	if inverse.IsZero() {
		return decimal.Zero, ErrRateNotFound
	}

	return decimal.NewFromInt(1).Div(inverse), nil
}

// CachedResolver keeps resolved rates in Redis. Only use it in front of
// resolvers whose answers do not depend on the user.
type CachedResolver struct {
	next   RateResolver
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedResolver(next RateResolver, client *redis.Client, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: slog.Default(),
	}
}

func cacheKey(q RateQuery) string {
	return fmt.Sprintf("fx:%s:%s:%s", q.Base, q.Quote, q.Date.UTC().Format(time.DateOnly))
}

func (r *CachedResolver) ResolveRate(ctx context.Context, q RateQuery) (decimal.Decimal, error) {
	key := cacheKey(q)

	cached, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		rate, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			return rate, nil
		}

		r.logger.Warn("discarding malformed cached rate", "key", key, "error", parseErr)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("rate cache unavailable", "key", key, "error", err)
	}

	rate, err := r.next.ResolveRate(ctx, q)
	if err != nil {
		return decimal.Zero, err
	}

	if err := r.client.Set(ctx, key, rate.String(), r.ttl).Err(); err != nil {
		r.logger.Warn("failed to cache rate", "key", key, "error", err)
	}

	return rate, nil
}

// NewResolver builds the lookup order used by the converter: user overrides
// first, then the global daily table, cached in Redis when client is set.
func NewResolver(repo Repository, client *redis.Client, ttl time.Duration) RateResolver {
	var daily RateResolver = NewDailyRateResolver(repo)
	if client != nil {
		daily = NewCachedResolver(daily, client, ttl)
	}

	return Chain{NewUserRateResolver(repo), daily}
}
