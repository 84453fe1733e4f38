package service

import (
	"github.com/chucky-1/fdbroker/internal/model"
	log "github.com/sirupsen/logrus"

	"context"
	"sync"
	"time"
)

// SimulatedSettler stands in for a real order execution call.
// Every order resolves after a fixed delay and is kept in an in-memory journal.
type SimulatedSettler struct {
	delay  time.Duration
	muFill sync.Mutex
	fills  []model.Fill
}

// NewSimulatedSettler is constructor
func NewSimulatedSettler(delay time.Duration) *SimulatedSettler {
	return &SimulatedSettler{delay: delay}
}

// Settle waits for the settlement delay and records the order
func (s *SimulatedSettler) Settle(ctx context.Context, stock *model.Stock, quantity int64) error {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	fill := model.Fill{
		Symbol:   stock.Symbol,
		Quantity: quantity,
		Amount:   stock.Total(quantity),
	}
	s.muFill.Lock()
	s.fills = append(s.fills, fill)
	s.muFill.Unlock()

	log.Infof("Order placed. %d shares of %s for $%s", quantity, stock.Symbol, fill.Amount.StringFixed(2))
	return nil
}

// Fills returns the settled orders
func (s *SimulatedSettler) Fills() []model.Fill {
	s.muFill.Lock()
	defer s.muFill.Unlock()
	fills := make([]model.Fill, len(s.fills))
	copy(fills, s.fills)
	return fills
}
