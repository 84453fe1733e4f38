// Package buyflow drives the confirmation dialog of a stock purchase
package buyflow

import (
	"github.com/chucky-1/fdbroker/internal/model"
	"github.com/chucky-1/fdbroker/internal/request"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"context"
	"errors"
	"fmt"
)

// State of the buy dialog
type State int

const (
	StateInitial State = iota
	StateInsufficientFunds
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "INITIAL"
	case StateInsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	case StateSuccess:
		return "SUCCESS"
	default:
		return "UNKNOWN"
	}
}

// ErrNotOpen is returned when confirming a dismissed dialog
var ErrNotOpen = errors.New("buy dialog is not open")

// Placer sends orders to the broker
type Placer interface {
	PlaceOrder(ctx context.Context, r *request.PlaceOrder) (model.Status, error)
}

// Flow is the buy dialog of one stock
type Flow struct {
	placer   Placer
	state    State
	stock    *model.Stock
	quantity int64
	open     bool
	message  string
}

// New is constructor
func New(placer Placer) *Flow {
	return &Flow{placer: placer}
}

// Open shows the dialog for the stock and resets it
func (f *Flow) Open(stock *model.Stock) {
	f.stock = stock
	f.state = StateInitial
	f.quantity = 0
	f.message = ""
	f.open = true
}

// SetQuantity updates the quantity field
func (f *Flow) SetQuantity(quantity int64) {
	f.quantity = quantity
}

// Total is the price of the order. Quantities below zero count as zero.
func (f *Flow) Total() decimal.Decimal {
	if f.stock == nil || f.quantity <= 0 {
		return decimal.Zero
	}
	return f.stock.Total(f.quantity)
}

// CanConfirm reports whether the confirm button is enabled
func (f *Flow) CanConfirm() bool {
	return f.open && (f.state == StateSuccess || !f.Total().IsZero())
}

// State returns the current state
func (f *Flow) State() State {
	return f.state
}

// IsOpen reports whether the dialog is shown
func (f *Flow) IsOpen() bool {
	return f.open
}

// Message returns the confirmation message of a successful order
func (f *Flow) Message() string {
	return f.message
}

// Confirm handles the confirm button. The second confirmation after
// INSUFFICIENT_FUNDS overrides the balance check.
func (f *Flow) Confirm(ctx context.Context) error {
	if !f.open {
		return ErrNotOpen
	}
	if f.state == StateSuccess {
		f.open = false
		return nil
	}

	status, err := f.placer.PlaceOrder(ctx, &request.PlaceOrder{
		Stock:    f.stock.Symbol,
		Quantity: f.quantity,
		Override: f.state == StateInsufficientFunds,
	})
	if err != nil {
		log.Error(err)
		f.open = false
		return err
	}

	f.state = next(f.state, status)
	if f.state == StateSuccess {
		f.message = fmt.Sprintf("Your order for %d shares of %s has been successfully placed for $%s.",
			f.quantity, f.stock.Symbol, f.Total().StringFixed(2))
	}
	return nil
}

// next is the transition on an order response
func next(state State, status model.Status) State {
	if state == StateSuccess {
		return state
	}
	if status == model.StatusInsufficientFunds {
		return StateInsufficientFunds
	}
	return StateSuccess
}
