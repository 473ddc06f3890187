package calculator

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
)

// CalculateBalances aggregates saved bills in the given currency into member balances
// and a simplified list of settlements.
//
// Algorithm:
//   - For each bill: the host paid the grand total, each participant owes their share
//   - Aggregate: net_balance = total_paid - total_owed
//   - Settlements: greedy matching of the largest debtor with the largest creditor
//
// Bills in other currencies and bills without a known host are skipped.
// People are matched across bills by display name.
func CalculateBalances(bills []models.Bill, currency string) ([]models.MemberBalance, []models.Settlement) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	places := CurrencyPlaces(currency)
	balances := make(map[string]*models.MemberBalance)

	member := func(name string) *models.MemberBalance {
		if _, exists := balances[name]; !exists {
			balances[name] = &models.MemberBalance{
				Name:       name,
				TotalPaid:  decimal.Zero,
				TotalOwed:  decimal.Zero,
				NetBalance: decimal.Zero,
			}
		}
		return balances[name]
	}

	for _, bill := range bills {
		if !strings.EqualFold(bill.Currency, currency) {
			continue
		}
		host, ok := bill.Host()
		if !ok {
			continue
		}

		calc := CalculateBill(bill)
		member(host.Name).TotalPaid = member(host.Name).TotalPaid.Add(calc.GrandTotal)
		for _, share := range calc.Shares {
			m := member(share.Name)
			m.TotalOwed = m.TotalOwed.Add(share.Total)
		}
	}

	names := make([]string, 0, len(balances))
	for name := range balances {
		names = append(names, name)
	}
	sort.Strings(names)

	memberBalances := make([]models.MemberBalance, 0, len(names))
	var creditors, debtors []models.MemberBalance
	for _, name := range names {
		bal := balances[name]
		bal.NetBalance = bal.TotalPaid.Sub(bal.TotalOwed)
		memberBalances = append(memberBalances, *bal)
		if bal.NetBalance.IsPositive() {
			creditors = append(creditors, *bal)
		} else if bal.NetBalance.IsNegative() {
			debtors = append(debtors, *bal)
		}
	}

	// Largest first; names break ties so the result is deterministic.
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].NetBalance.GreaterThan(creditors[j].NetBalance)
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].NetBalance.LessThan(debtors[j].NetBalance)
	})

	debtorLeft := make([]decimal.Decimal, len(debtors))
	for i, d := range debtors {
		debtorLeft[i] = d.NetBalance.Neg()
	}
	creditorLeft := make([]decimal.Decimal, len(creditors))
	for j, c := range creditors {
		creditorLeft[j] = c.NetBalance
	}

	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtorLeft[i], creditorLeft[j])
		if amount.Round(places).IsPositive() {
			settlements = append(settlements, models.Settlement{
				From:     debtors[i].Name,
				To:       creditors[j].Name,
				Amount:   amount,
				Currency: currency,
			})
		}

		debtorLeft[i] = debtorLeft[i].Sub(amount)
		creditorLeft[j] = creditorLeft[j].Sub(amount)

		if !debtorLeft[i].IsPositive() {
			i++
		}
		if !creditorLeft[j].IsPositive() {
			j++
		}
	}

	return memberBalances, settlements
}
