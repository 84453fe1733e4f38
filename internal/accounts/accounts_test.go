package accounts

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/chucky-1/fdbroker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountXML(accountType, description, number, current, available string) string {
	return fmt.Sprintf(`<ns2:account>
		<ns2:accountType>%s</ns2:accountType>
		<ns2:description>%s</ns2:description>
		<ns2:displayAccountNumber>%s</ns2:displayAccountNumber>
		<ns2:balance>
			<ns2:currentBalance><ns2:amount>%s</ns2:amount></ns2:currentBalance>
			<ns2:availableBalance><ns2:amount>%s</ns2:amount></ns2:availableBalance>
		</ns2:balance>
	</ns2:account>`, accountType, description, number, current, available)
}

func accountsXML(accounts ...string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<ns2:Accounts xmlns:ns2="http://schemas.digitalinsight.com/api/model/account/v2">` +
		strings.Join(accounts, "") + `</ns2:Accounts>`)
}

func TestParse(t *testing.T) {
	testTable := []struct {
		name   string
		raw    []byte
		expect []*model.Account
	}{
		{
			name: "OK keeps checking accounts in document order",
			raw: accountsXML(
				accountXML("CHECKING", "Everyday Checking", "*1234", "250.10", "200.00"),
				accountXML("SAVINGS", "Savings", "*5678", "9000.00", "9000.00"),
				accountXML("CHECKING", "Joint Checking", "*9999", "10", "5.5"),
			),
			expect: []*model.Account{
				{Name: "Everyday Checking", AccountNumber: "*1234", CurrentBalance: 250.10, AvailableBalance: 200},
				{Name: "Joint Checking", AccountNumber: "*9999", CurrentBalance: 10, AvailableBalance: 5.5},
			},
		},
		{
			name: "OK without namespace prefixes",
			raw: []byte(`<Accounts><account><accountType>CHECKING</accountType><description>Plain</description>` +
				`<displayAccountNumber>*1</displayAccountNumber><balance><currentBalance><amount>1.25</amount>` +
				`</currentBalance><availableBalance><amount>1.00</amount></availableBalance></balance></account></Accounts>`),
			expect: []*model.Account{
				{Name: "Plain", AccountNumber: "*1", CurrentBalance: 1.25, AvailableBalance: 1},
			},
		},
		{
			name: "OK empty if only other account types",
			raw: accountsXML(
				accountXML("SAVINGS", "Savings", "*5678", "9000.00", "9000.00"),
				accountXML("CREDIT_CARD", "Card", "*0001", "-10.00", "500.00"),
				accountXML("checking", "Lowercase", "*0002", "1.00", "1.00"),
			),
			expect: []*model.Account{},
		},
		{
			name:   "OK empty if no accounts",
			raw:    accountsXML(),
			expect: []*model.Account{},
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			result, err := Parse(testCase.raw)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, result)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	testTable := []struct {
		name string
		raw  []byte
	}{
		{
			name: "Failed if not xml",
			raw:  []byte(`{"accounts": []}`),
		},
		{
			name: "Failed if truncated",
			raw:  []byte(`<ns2:Accounts xmlns:ns2="urn:x"><ns2:account>`),
		},
		{
			name: "Failed if root is an error status",
			raw:  []byte(`<Status><errorInfo/><statusMessage>expired</statusMessage></Status>`),
		},
		{
			name: "Failed if amount is not a number",
			raw:  accountsXML(accountXML("CHECKING", "Checking", "*1", "abc", "1.00")),
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			result, err := Parse(testCase.raw)
			assert.True(t, errors.Is(err, ErrMalformedResponse))
			assert.Nil(t, result)
		})
	}
}
