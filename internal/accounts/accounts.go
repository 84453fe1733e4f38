// Package accounts converts the accounts document of the banking API into checking accounts
package accounts

import (
	"github.com/chucky-1/fdbroker/internal/model"

	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedResponse is returned when a banking API document has an unexpected shape
var ErrMalformedResponse = errors.New("malformed response")

// Element names carry no namespace, so prefixed elements match by local name.
type document struct {
	XMLName  xml.Name  `xml:"Accounts"`
	Accounts []account `xml:"account"`
}

type account struct {
	AccountType          string `xml:"accountType"`
	Description          string `xml:"description"`
	DisplayAccountNumber string `xml:"displayAccountNumber"`
	CurrentBalance       string `xml:"balance>currentBalance>amount"`
	AvailableBalance     string `xml:"balance>availableBalance>amount"`
}

// Parse returns the checking accounts of the document in document order
func Parse(raw []byte) ([]*model.Account, error) {
	var doc document
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	result := make([]*model.Account, 0, len(doc.Accounts))
	for _, a := range doc.Accounts {
		if strings.TrimSpace(a.AccountType) != model.AccountTypeChecking {
			continue
		}
		current, err := parseAmount(a.CurrentBalance)
		if err != nil {
			return nil, err
		}
		available, err := parseAmount(a.AvailableBalance)
		if err != nil {
			return nil, err
		}
		result = append(result, &model.Account{
			Name:             strings.TrimSpace(a.Description),
			AccountNumber:    strings.TrimSpace(a.DisplayAccountNumber),
			CurrentBalance:   current,
			AvailableBalance: available,
		})
	}
	return result, nil
}

func parseAmount(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", ErrMalformedResponse, s)
	}
	return f, nil
}
