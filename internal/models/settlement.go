package models

import "github.com/shopspring/decimal"

// Settlement is a suggested payment that clears (part of) a debt.
type Settlement struct {
	// From is the person who owes money.
	From string `json:"from"`

	// To is the person who is owed money.
	To string `json:"to"`

	// Amount is the payment amount, in the bills' currency.
	Amount decimal.Decimal `json:"amount"`

	// Currency is the currency of the bills the settlement was derived from.
	Currency string `json:"currency"`
}
