package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
)

// CalculateBill computes how much each participant owes.
//
// Algorithm:
//   - Each item cost is rounded to the currency's minor unit and divided evenly among
//     its sharers (everyone when no known sharer is listed).
//   - Each extra is resolved against the item subtotal, rounded, and divided by its
//     split mode: proportional to item subtotals, equally, or entirely to the host.
//   - Every division uses the largest-remainder method, so participant totals add up
//     to exactly subtotal + extras.
//
// Degenerate inputs never fail: they fall back to an equal split and are reported
// in BillCalculation.Warnings.
func CalculateBill(bill models.Bill) models.BillCalculation {
	places := CurrencyPlaces(bill.Currency)
	calc := models.BillCalculation{
		Currency:    bill.Currency,
		Subtotal:    decimal.Zero,
		ExtrasTotal: decimal.Zero,
		GrandTotal:  decimal.Zero,
		Shares:      make([]models.ParticipantShare, len(bill.Participants)),
		Extras:      make([]models.ExtraAmount, 0, len(bill.Extras)),
	}

	index := make(map[string]int, len(bill.Participants))
	for i, p := range bill.Participants {
		index[p.ID] = i
		calc.Shares[i] = models.ParticipantShare{
			ParticipantID: p.ID,
			Name:          p.Name,
			Subtotal:      decimal.Zero,
			Extras:        decimal.Zero,
			Total:         decimal.Zero,
			Items:         []models.ItemShare{},
		}
	}

	if len(bill.Participants) == 0 {
		calc.Warnings = append(calc.Warnings, "bill has no participants; nothing to split")
		return calc
	}

	// Allocate items
	for _, item := range bill.Items {
		cost := item.Cost().Round(places)
		calc.Subtotal = calc.Subtotal.Add(cost)

		sharers := knownSharers(item.ParticipantIDs, index)
		if len(sharers) == 0 {
			if len(item.ParticipantIDs) > 0 {
				calc.Warnings = append(calc.Warnings,
					fmt.Sprintf("item %q has no known participants; split among everyone", item.Name))
			}
			sharers = make([]int, len(bill.Participants))
			for i := range sharers {
				sharers[i] = i
			}
		}

		portions := allocate(cost, equalWeights(len(sharers)), places)
		for k, i := range sharers {
			share := &calc.Shares[i]
			share.Subtotal = share.Subtotal.Add(portions[k])
			share.Items = append(share.Items, models.ItemShare{
				ItemID: item.ID,
				Name:   item.Name,
				Amount: portions[k],
			})
		}
	}

	// Allocate extras
	if len(bill.Items) == 0 {
		if len(bill.Extras) > 0 {
			calc.Warnings = append(calc.Warnings, "bill has no items; extras are not applied")
		}
		for _, extra := range bill.Extras {
			calc.Extras = append(calc.Extras, extraAmount(extra, decimal.Zero))
		}
		return calc
	}

	subtotals := make([]decimal.Decimal, len(calc.Shares))
	for i, s := range calc.Shares {
		subtotals[i] = s.Subtotal
	}

	for _, extra := range bill.Extras {
		calc.Warnings = append(calc.Warnings, extraTypeWarnings(extra)...)
		amount := extra.Amount(calc.Subtotal).Round(places)
		calc.ExtrasTotal = calc.ExtrasTotal.Add(amount)
		calc.Extras = append(calc.Extras, extraAmount(extra, amount))

		weights, warning := extraWeights(bill, extra, subtotals, calc.Subtotal, index)
		if warning != "" {
			calc.Warnings = append(calc.Warnings, warning)
		}
		portions := allocate(amount, weights, places)
		for i := range calc.Shares {
			calc.Shares[i].Extras = calc.Shares[i].Extras.Add(portions[i])
		}
	}

	calc.GrandTotal = calc.Subtotal.Add(calc.ExtrasTotal)
	for i := range calc.Shares {
		calc.Shares[i].Total = calc.Shares[i].Subtotal.Add(calc.Shares[i].Extras)
	}
	if calc.GrandTotal.IsNegative() {
		calc.Warnings = append(calc.Warnings, "discounts exceed the bill total")
	}

	return calc
}

// knownSharers maps participant IDs to indexes, dropping unknown and duplicate IDs.
func knownSharers(ids []string, index map[string]int) []int {
	seen := make(map[int]bool, len(ids))
	var sharers []int
	for _, id := range ids {
		i, ok := index[id]
		if !ok || seen[i] {
			continue
		}
		seen[i] = true
		sharers = append(sharers, i)
	}
	return sharers
}

// extraWeights returns the allocation weights for an extra's split mode.
// It falls back to equal weights, with a warning, when the mode cannot be applied.
func extraWeights(bill models.Bill, extra models.Extra, subtotals []decimal.Decimal, subtotal decimal.Decimal, index map[string]int) ([]decimal.Decimal, string) {
	n := len(subtotals)
	switch extra.SplitMode {
	case models.SplitEqual:
		return equalWeights(n), ""
	case models.SplitProportional:
		if !subtotal.IsPositive() {
			return equalWeights(n), fmt.Sprintf("extra %q: item subtotal is zero; split equally", extra.Name)
		}
		return subtotals, ""
	case models.SplitHost:
		i, ok := index[bill.HostID]
		if !ok {
			return equalWeights(n), fmt.Sprintf("extra %q: host is not a participant; split equally", extra.Name)
		}
		weights := make([]decimal.Decimal, n)
		for k := range weights {
			weights[k] = decimal.Zero
		}
		weights[i] = decimal.NewFromInt(1)
		return weights, ""
	default:
		return equalWeights(n), fmt.Sprintf("extra %q: unknown split mode %q; split equally", extra.Name, extra.SplitMode)
	}
}

// extraTypeWarnings reports unknown types, which Extra.Amount reads as fixed charges.
func extraTypeWarnings(extra models.Extra) []string {
	var warnings []string
	if !extra.Type.Valid() {
		warnings = append(warnings, fmt.Sprintf("extra %q: unknown type %q; applied as a charge", extra.Name, extra.Type))
	}
	if !extra.ValueType.Valid() {
		warnings = append(warnings, fmt.Sprintf("extra %q: unknown value type %q; applied as a fixed amount", extra.Name, extra.ValueType))
	}
	return warnings
}

func extraAmount(extra models.Extra, amount decimal.Decimal) models.ExtraAmount {
	return models.ExtraAmount{
		ExtraID:   extra.ID,
		Name:      extra.Name,
		Type:      extra.Type,
		SplitMode: extra.SplitMode,
		Amount:    amount,
	}
}
