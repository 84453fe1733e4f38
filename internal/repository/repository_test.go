package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository() *Repository {
	return NewRepository(DefaultStocks(), NewLocalCache(nil, time.Minute))
}

func TestRepository_Stock(t *testing.T) {
	testTable := []struct {
		name   string
		symbol string
		price  string
		err    error
	}{
		{
			name:   "OK acme",
			symbol: "acme",
			price:  "113.75",
		},
		{
			name:   "OK umbr",
			symbol: "umbr",
			price:  "128.64",
		},
		{
			name:   "Failed if symbol is unknown",
			symbol: "bogus",
			err:    ErrStockNotFound,
		},
		{
			name:   "Failed if symbol is empty",
			symbol: "",
			err:    ErrStockNotFound,
		},
	}

	rep := newTestRepository()
	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			stock, err := rep.Stock(context.Background(), testCase.symbol)
			if testCase.err != nil {
				assert.True(t, errors.Is(err, testCase.err))
				assert.Nil(t, stock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.symbol, stock.Symbol)
			assert.True(t, decimal.RequireFromString(testCase.price).Equal(stock.Price))
		})
	}
}

func TestRepository_StockServedFromCache(t *testing.T) {
	rep := newTestRepository()
	ctx := context.Background()

	first, err := rep.Stock(ctx, "glob")
	require.NoError(t, err)

	cached, err := rep.cache.Get(ctx, "glob")
	require.NoError(t, err)
	assert.Equal(t, first.Name, cached.Name)
	assert.True(t, first.Price.Equal(cached.Price))

	second, err := rep.Stock(ctx, "glob")
	require.NoError(t, err)
	assert.Equal(t, "Globex", second.Name)
}

func TestRepository_Stocks(t *testing.T) {
	stocks := newTestRepository().Stocks(context.Background())
	require.Len(t, stocks, 4)
	symbols := make([]string, 0, len(stocks))
	for _, s := range stocks {
		symbols = append(symbols, s.Symbol)
	}
	assert.Equal(t, []string{"acme", "glob", "init", "umbr"}, symbols)
}
