// Package repository keeps the stock catalog
package repository

import (
	"github.com/chucky-1/fdbroker/internal/model"
	"github.com/go-redis/cache/v8"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrStockNotFound is returned for symbols outside the catalog
var ErrStockNotFound = errors.New("stock not found")

// DefaultStocks is the catalog offered by the demo
func DefaultStocks() []*model.Stock {
	return []*model.Stock{
		{Symbol: "acme", Name: "Acme", Price: decimal.RequireFromString("113.75")},
		{Symbol: "glob", Name: "Globex", Price: decimal.RequireFromString("56.81")},
		{Symbol: "init", Name: "Initech", Price: decimal.RequireFromString("780.22")},
		{Symbol: "umbr", Name: "Umbrella", Price: decimal.RequireFromString("128.64")},
	}
}

// Repository serves the read-only stock catalog through the cache
type Repository struct {
	stocks map[string]*model.Stock // map[stock.Symbol]*stock
	cache  *Cache
}

// NewRepository is constructor
func NewRepository(stocks []*model.Stock, cache *Cache) *Repository {
	m := make(map[string]*model.Stock, len(stocks))
	for _, stock := range stocks {
		m[stock.Symbol] = stock
	}
	return &Repository{stocks: m, cache: cache}
}

// Stock returns the stock with the given symbol
func (r *Repository) Stock(ctx context.Context, symbol string) (*model.Stock, error) {
	stock, err := r.cache.Get(ctx, symbol)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Errorf("catalog cache get %s: %v", symbol, err)
	}

	s, ok := r.stocks[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStockNotFound, symbol)
	}
	stock = &model.Stock{Symbol: s.Symbol, Name: s.Name, Price: s.Price}
	if err = r.cache.Set(ctx, stock); err != nil {
		log.Errorf("catalog cache set %s: %v", symbol, err)
	}
	return stock, nil
}

// Stocks returns the whole catalog ordered by symbol
func (r *Repository) Stocks(ctx context.Context) []*model.Stock {
	stocks := make([]*model.Stock, 0, len(r.stocks))
	for _, s := range r.stocks {
		stocks = append(stocks, &model.Stock{Symbol: s.Symbol, Name: s.Name, Price: s.Price})
	}
	sort.Slice(stocks, func(i, j int) bool {
		return stocks[i].Symbol < stocks[j].Symbol
	})
	return stocks
}
