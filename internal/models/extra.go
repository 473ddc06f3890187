package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExtraType classifies an extra. Discounts reduce the bill; everything else adds to it.
type ExtraType string

const (
	ExtraTax      ExtraType = "tax"
	ExtraService  ExtraType = "service"
	ExtraDiscount ExtraType = "discount"
	ExtraOther    ExtraType = "other"
)

// Valid reports whether t is a known extra type.
func (t ExtraType) Valid() bool {
	switch t {
	case ExtraTax, ExtraService, ExtraDiscount, ExtraOther:
		return true
	}
	return false
}

// ExtraValueType tells how Extra.Value is interpreted.
type ExtraValueType string

const (
	// ValuePercentage means Value is a percentage of the item subtotal (11 = 11%).
	ValuePercentage ExtraValueType = "percentage"
	// ValueFixed means Value is an absolute amount in the bill's currency.
	ValueFixed ExtraValueType = "fixed"
)

// Valid reports whether v is a known value type.
func (v ExtraValueType) Valid() bool {
	return v == ValuePercentage || v == ValueFixed
}

// ExtraSplitMode is the policy used to divide an extra among participants.
type ExtraSplitMode string

const (
	// SplitProportional divides by each participant's share of the item subtotal.
	SplitProportional ExtraSplitMode = "proportional"
	// SplitEqual divides evenly across all participants.
	SplitEqual ExtraSplitMode = "equal"
	// SplitHost charges the entire extra to the host.
	SplitHost ExtraSplitMode = "host"
)

// Valid reports whether m is a known split mode.
func (m ExtraSplitMode) Valid() bool {
	switch m {
	case SplitProportional, SplitEqual, SplitHost:
		return true
	}
	return false
}

// Extra is an additional charge or discount applied across participants.
type Extra struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      ExtraType       `json:"type"`
	ValueType ExtraValueType  `json:"valueType"`
	Value     decimal.Decimal `json:"value"`
	SplitMode ExtraSplitMode  `json:"splitMode"`
}

// Validate checks the extra's enums and value.
func (e Extra) Validate() error {
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidExtra, e.Type)
	}
	if !e.ValueType.Valid() {
		return fmt.Errorf("%w: unknown value type %q", ErrInvalidExtra, e.ValueType)
	}
	if !e.SplitMode.Valid() {
		return fmt.Errorf("%w: unknown split mode %q", ErrInvalidExtra, e.SplitMode)
	}
	if e.Value.IsNegative() {
		return fmt.Errorf("%w: value cannot be negative", ErrInvalidExtra)
	}
	return nil
}

// Amount returns the signed amount this extra contributes for the given item subtotal.
// Discounts are negative. Unrecognized value types are read as fixed amounts.
func (e Extra) Amount(subtotal decimal.Decimal) decimal.Decimal {
	amount := e.Value
	if e.ValueType == ValuePercentage {
		amount = subtotal.Mul(e.Value).Div(decimal.NewFromInt(100))
	}
	if e.Type == ExtraDiscount {
		return amount.Neg()
	}
	return amount
}
