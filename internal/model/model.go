package model

import "github.com/shopspring/decimal"

// Status is the outcome of an order placement as seen by the client
type Status string

const (
	StatusSuccess           Status = "SUCCESS"
	StatusInsufficientFunds Status = "INSUFFICIENT_FUNDS"
	StatusUnknownError      Status = "UNKNOWN_ERROR"
)

// AccountTypeChecking is the only account type used for balance checks
const AccountTypeChecking = "CHECKING"

// Stock contains fields that describe the shares of companies
type Stock struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// Total returns the cost of buying quantity shares
func (s *Stock) Total(quantity int64) decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(quantity))
}

// Account is a checking account of a linked financial institution
type Account struct {
	Name             string  `json:"name"`
	AccountNumber    string  `json:"accountNumber"`
	CurrentBalance   float64 `json:"currentBalance"`
	AvailableBalance float64 `json:"availableBalance"`
}

// Fill is a settled order
type Fill struct {
	Symbol   string
	Quantity int64
	Amount   decimal.Decimal
}
