package models

import "github.com/shopspring/decimal"

// MemberBalance is one person's position across a set of saved bills.
// People are matched across bills by display name, since participant IDs are per bill.
type MemberBalance struct {
	// Name is the participant's display name.
	Name string `json:"name"`

	// TotalPaid is the sum of grand totals of bills this person hosted.
	TotalPaid decimal.Decimal `json:"totalPaid"`

	// TotalOwed is the sum of this person's shares across all bills.
	TotalOwed decimal.Decimal `json:"totalOwed"`

	// NetBalance is TotalPaid - TotalOwed. Positive = owed money, negative = owes money.
	NetBalance decimal.Decimal `json:"netBalance"`
}
