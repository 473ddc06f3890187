package calculator

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// defaultPlaces is the number of minor-unit digits for currencies not listed below.
const defaultPlaces int32 = 2

// zeroDecimalCurrencies have no minor unit in everyday use.
var zeroDecimalCurrencies = map[string]bool{
	"IDR": true,
	"JPY": true,
	"KRW": true,
	"VND": true,
	"CLP": true,
	"ISK": true,
}

// CurrencyPlaces returns the number of decimal places amounts in currency are rounded to.
func CurrencyPlaces(currency string) int32 {
	if zeroDecimalCurrencies[strings.ToUpper(strings.TrimSpace(currency))] {
		return 0
	}
	return defaultPlaces
}

// allocate splits amount (already rounded to places) across weights using the
// largest-remainder method. The result always sums to exactly amount.
// Zero or negative total weight falls back to equal weights.
func allocate(amount decimal.Decimal, weights []decimal.Decimal, places int32) []decimal.Decimal {
	n := len(weights)
	out := make([]decimal.Decimal, n)
	if n == 0 {
		return out
	}

	units := amount.Shift(places).Round(0)
	negative := units.IsNegative()
	units = units.Abs()

	total := decimal.Zero
	for _, w := range weights {
		if w.IsPositive() {
			total = total.Add(w)
		}
	}
	effective := make([]decimal.Decimal, n)
	for i, w := range weights {
		switch {
		case !total.IsPositive():
			effective[i] = decimal.NewFromInt(1)
		case w.IsPositive():
			effective[i] = w
		default:
			effective[i] = decimal.Zero
		}
	}
	if !total.IsPositive() {
		total = decimal.NewFromInt(int64(n))
	}

	type remainder struct {
		index int
		frac  decimal.Decimal
	}
	base := make([]decimal.Decimal, n)
	rems := make([]remainder, 0, n)
	distributed := decimal.Zero
	for i, w := range effective {
		exact := units.Mul(w).Div(total)
		floor := exact.Floor()
		base[i] = floor
		distributed = distributed.Add(floor)
		if w.IsPositive() {
			rems = append(rems, remainder{index: i, frac: exact.Sub(floor)})
		}
	}
	sort.SliceStable(rems, func(a, b int) bool {
		return rems[a].frac.GreaterThan(rems[b].frac)
	})

	leftover := units.Sub(distributed).IntPart()
	for k := int64(0); k < leftover && len(rems) > 0; k++ {
		i := rems[k%int64(len(rems))].index
		base[i] = base[i].Add(decimal.NewFromInt(1))
	}

	for i := range base {
		v := base[i].Shift(-places)
		if negative {
			v = v.Neg()
		}
		out[i] = v
	}
	return out
}

// equalWeights returns n weights of one.
func equalWeights(n int) []decimal.Decimal {
	w := make([]decimal.Decimal, n)
	for i := range w {
		w[i] = decimal.NewFromInt(1)
	}
	return w
}
