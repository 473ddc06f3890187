package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
)

// CreateBillRequest starts a new bill. The first participant becomes the host.
type CreateBillRequest struct {
	Title        string   `json:"title"`
	Participants []string `json:"participants"`
	Currency     string   `json:"currency,omitempty"`
}

type CreateBillResponse struct {
	Bill        models.Bill            `json:"bill"`
	Calculation models.BillCalculation `json:"calculation"`
}

// CalculateBillRequest carries the client's current, unsaved bill.
type CalculateBillRequest struct {
	Bill models.Bill `json:"bill"`
}

type CalculateBillResponse struct {
	Calculation models.BillCalculation `json:"calculation"`
}

// SaveBillRequest finalizes a bill into history.
type SaveBillRequest struct {
	Bill models.Bill `json:"bill"`
}

type SaveBillResponse struct {
	// Saved is false when the bill had no items or history could not be read or written.
	Saved bool `json:"saved"`
	// HistorySize is the number of bills in history after the save.
	HistorySize int `json:"historySize"`
}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []BillSummary `json:"bills"`
}

// BillSummary is the history list entry for one bill.
type BillSummary struct {
	BillID           string          `json:"billId"`
	Title            string          `json:"title"`
	Date             string          `json:"date"`
	Currency         string          `json:"currency"`
	HostName         string          `json:"hostName"`
	ParticipantCount int             `json:"participantCount"`
	Total            decimal.Decimal `json:"total"`
}

type GetBillRequest struct {
	BillID string `json:"billId"`
}

type GetBillResponse struct {
	Bill        models.Bill            `json:"bill"`
	Calculation models.BillCalculation `json:"calculation"`
}

// GetBalancesRequest selects the currency to aggregate; empty means the default currency.
type GetBalancesRequest struct {
	Currency string `json:"currency,omitempty"`
}

type GetBalancesResponse struct {
	Currency    string                 `json:"currency"`
	Balances    []models.MemberBalance `json:"balances"`
	Settlements []models.Settlement    `json:"settlements"`
}
