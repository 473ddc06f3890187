package models

import "github.com/shopspring/decimal"

// BillCalculation is the derived breakdown of a bill.
// It is the output of the calculation engine and is never persisted.
type BillCalculation struct {
	// Currency is copied from the bill.
	Currency string `json:"currency"`

	// Subtotal is the sum of all item costs.
	Subtotal decimal.Decimal `json:"subtotal"`

	// ExtrasTotal is the signed sum of all extras (discounts are negative).
	ExtrasTotal decimal.Decimal `json:"extrasTotal"`

	// GrandTotal is Subtotal + ExtrasTotal, rounded to the currency's minor unit.
	// The participant totals always add up to exactly this amount.
	GrandTotal decimal.Decimal `json:"grandTotal"`

	// Shares holds one entry per participant, in bill order.
	Shares []ParticipantShare `json:"shares"`

	// Extras lists the resolved amount of each extra, in bill order.
	Extras []ExtraAmount `json:"extras"`

	// Warnings describes degenerate inputs that were handled with a default.
	Warnings []string `json:"warnings,omitempty"`
}

// Share returns the share of the given participant.
func (c *BillCalculation) Share(participantID string) (ParticipantShare, bool) {
	for _, s := range c.Shares {
		if s.ParticipantID == participantID {
			return s, true
		}
	}
	return ParticipantShare{}, false
}

// ParticipantShare is one participant's calculated part of a bill.
type ParticipantShare struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`

	// Subtotal is the sum of this participant's item shares.
	Subtotal decimal.Decimal `json:"subtotal"`

	// Extras is this participant's signed share of all extras.
	Extras decimal.Decimal `json:"extras"`

	// Total is what this participant owes (Subtotal + Extras, rounded).
	Total decimal.Decimal `json:"total"`

	// Items are the items assigned to this participant with their share amounts.
	Items []ItemShare `json:"items"`
}

// ItemShare is one participant's portion of a single item.
type ItemShare struct {
	ItemID string          `json:"itemId"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ExtraAmount is the resolved amount of one extra.
type ExtraAmount struct {
	ExtraID   string          `json:"extraId"`
	Name      string          `json:"name"`
	Type      ExtraType       `json:"type"`
	SplitMode ExtraSplitMode  `json:"splitMode"`
	Amount    decimal.Decimal `json:"amount"`
}
