// Package service have business logic
package service

import (
	"github.com/chucky-1/fdbroker/internal/accounts"
	"github.com/chucky-1/fdbroker/internal/model"
	"github.com/chucky-1/fdbroker/internal/repository"
	"github.com/chucky-1/fdbroker/internal/request"
	"github.com/chucky-1/fdbroker/internal/session"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"context"
	"errors"
	"fmt"
)

// ErrNoCheckingAccount is returned when a linked customer has no checking account
var ErrNoCheckingAccount = errors.New("no checking account")

// ValidationError rejects an order before any network call
type ValidationError struct {
	Stock    string
	Quantity int64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order. stock: %s quantity: %d", e.Stock, e.Quantity)
}

// Catalog looks up stocks
type Catalog interface {
	Stock(ctx context.Context, symbol string) (*model.Stock, error)
	Stocks(ctx context.Context) []*model.Stock
}

// Gateway is the remote banking API
type Gateway interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	FetchAccounts(ctx context.Context, token string) ([]byte, error)
}

// Settler completes an order once it is accepted
type Settler interface {
	Settle(ctx context.Context, stock *model.Stock, quantity int64) error
}

// Service implements business logic
type Service struct {
	catalog Catalog
	gateway Gateway
	settler Settler
}

// NewService is constructor
func NewService(catalog Catalog, gateway Gateway, settler Settler) *Service {
	return &Service{catalog: catalog, gateway: gateway, settler: settler}
}

// LinkAccount authenticates the user and stores the access token in the session
func (s *Service) LinkAccount(ctx context.Context, sess *session.Session, username, password string) error {
	token, err := s.gateway.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	sess.Store(token)
	log.Info("financial institution account linked")
	return nil
}

// Reset unlinks the account
func (s *Service) Reset(sess *session.Session) {
	sess.Clear()
}

// Stocks returns the catalog
func (s *Service) Stocks(ctx context.Context) []*model.Stock {
	return s.catalog.Stocks(ctx)
}

// Accounts returns the checking accounts of the linked customer
func (s *Service) Accounts(ctx context.Context, sess *session.Session) ([]*model.Account, error) {
	token, ok := sess.Token()
	if !ok {
		return nil, errors.New("account is not linked")
	}
	raw, err := s.gateway.FetchAccounts(ctx, token)
	if err != nil {
		return nil, err
	}
	return accounts.Parse(raw)
}

// PlaceOrder places an order for stocks. A linked account must have enough funds
// in its first checking account unless the order overrides the check.
func (s *Service) PlaceOrder(ctx context.Context, sess *session.Session, r *request.PlaceOrder) (model.Status, error) {
	stock, err := s.validate(ctx, r)
	if err != nil {
		return "", err
	}

	if sess.IsLinked() && !r.Override {
		accs, err := s.Accounts(ctx, sess)
		if err != nil {
			return "", err
		}
		if len(accs) == 0 {
			return "", ErrNoCheckingAccount
		}
		total := stock.Total(r.Quantity)
		if !checkTransaction(decimal.NewFromFloat(accs[0].AvailableBalance), total) {
			log.WithFields(log.Fields{
				"stock":     stock.Symbol,
				"quantity":  r.Quantity,
				"total":     total.StringFixed(2),
				"available": accs[0].AvailableBalance,
			}).Info("insufficient funds")
			return model.StatusInsufficientFunds, nil
		}
	}

	if err = s.settler.Settle(ctx, stock, r.Quantity); err != nil {
		return "", err
	}
	return model.StatusSuccess, nil
}

func (s *Service) validate(ctx context.Context, r *request.PlaceOrder) (*model.Stock, error) {
	if r.Quantity <= 0 {
		return nil, &ValidationError{Stock: r.Stock, Quantity: r.Quantity}
	}
	stock, err := s.catalog.Stock(ctx, r.Stock)
	if errors.Is(err, repository.ErrStockNotFound) {
		return nil, &ValidationError{Stock: r.Stock, Quantity: r.Quantity}
	}
	if err != nil {
		return nil, err
	}
	return stock, nil
}

// Return true if enough money and false if not enough money
func checkTransaction(balance, sum decimal.Decimal) bool {
	return balance.Sub(sum).GreaterThanOrEqual(decimal.Zero)
}
