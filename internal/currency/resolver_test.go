package currency_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/letehaha/budget-tracker-be-sub001/internal/currency"
)

func TestChain_ResolveRate(t *testing.T) {
	q := currency.RateQuery{UserID: uuid.New(), Base: "USD", Quote: "EUR", Date: time.Now()}

	t.Run("FirstHitWins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		first := currency.NewMockRateResolver(ctrl)
		second := currency.NewMockRateResolver(ctrl)

		first.EXPECT().ResolveRate(gomock.Any(), q).Return(decimal.RequireFromString("0.91"), nil)

		rate, err := currency.Chain{first, second}.ResolveRate(context.Background(), q)
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.91")))
	})

	t.Run("FallsThroughOnNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		first := currency.NewMockRateResolver(ctrl)
		second := currency.NewMockRateResolver(ctrl)

		gomock.InOrder(
			first.EXPECT().ResolveRate(gomock.Any(), q).Return(decimal.Zero, currency.ErrRateNotFound),
			second.EXPECT().ResolveRate(gomock.Any(), q).Return(decimal.RequireFromString("0.92"), nil),
		)

		rate, err := currency.Chain{first, second}.ResolveRate(context.Background(), q)
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.92")))
	})

	t.Run("StopsOnFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		first := currency.NewMockRateResolver(ctrl)
		second := currency.NewMockRateResolver(ctrl)

		first.EXPECT().ResolveRate(gomock.Any(), q).Return(decimal.Zero, errors.New("db down"))

		_, err := currency.Chain{first, second}.ResolveRate(context.Background(), q)
		assert.EqualError(t, err, "db down")
	})

	t.Run("NothingResolves", func(t *testing.T) {
		_, err := currency.Chain{}.ResolveRate(context.Background(), q)
		assert.ErrorIs(t, err, currency.ErrRateNotFound)
	})
}

func TestUserRateResolverTakesPrecedence(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := currency.NewMockRepository(ctrl)

	userID := uuid.New()
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().GetUserRate(gomock.Any(), userID, "USD", "UAH").Return(decimal.RequireFromString("40"), nil)

	rate, err := currency.NewResolver(repo, nil, 0).ResolveRate(context.Background(), currency.RateQuery{
		UserID: userID, Base: "USD", Quote: "UAH", Date: date,
	})
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(40)))
}

func TestDailyRateResolver_Inverse(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := currency.NewMockRepository(ctrl)

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		repo.EXPECT().GetDailyRate(gomock.Any(), "EUR", "USD", date).Return(decimal.Zero, currency.ErrRateNotFound),
		repo.EXPECT().GetDailyRate(gomock.Any(), "USD", "EUR", date).Return(decimal.NewFromInt(2), nil),
	)

	rate, err := currency.NewDailyRateResolver(repo).ResolveRate(context.Background(), currency.RateQuery{
		Base: "EUR", Quote: "USD", Date: date,
	})
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.5")))
}

func TestCachedResolver(t *testing.T) {
	date := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	q := currency.RateQuery{Base: "USD", Quote: "EUR", Date: date}
	key := "fx:USD:EUR:2024-05-01"

	t.Run("MissPopulatesCache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := currency.NewMockRateResolver(ctrl)
		client, mock := redismock.NewClientMock()

		mock.ExpectGet(key).RedisNil()
		next.EXPECT().ResolveRate(gomock.Any(), q).Return(decimal.RequireFromString("0.93"), nil)
		mock.ExpectSet(key, "0.93", time.Hour).SetVal("OK")

		rate, err := currency.NewCachedResolver(next, client, time.Hour).ResolveRate(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, "0.93", rate.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("HitSkipsNext", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := currency.NewMockRateResolver(ctrl)
		client, mock := redismock.NewClientMock()

		mock.ExpectGet(key).SetVal("0.94")

		rate, err := currency.NewCachedResolver(next, client, time.Hour).ResolveRate(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, "0.94", rate.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFoundIsNotCached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := currency.NewMockRateResolver(ctrl)
		client, mock := redismock.NewClientMock()

		mock.ExpectGet(key).RedisNil()
		next.EXPECT().ResolveRate(gomock.Any(), q).Return(decimal.Zero, currency.ErrRateNotFound)

		_, err := currency.NewCachedResolver(next, client, time.Hour).ResolveRate(context.Background(), q)
		assert.ErrorIs(t, err, currency.ErrRateNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
