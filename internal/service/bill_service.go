package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/history"
	"github.com/mmynk/splitbill/internal/metrics"
	"github.com/mmynk/splitbill/internal/models"
)

// ServiceName is the fully-qualified name of the bill service.
const ServiceName = "splitbill.v1.BillService"

// Procedure paths.
const (
	CreateBillProcedure    = "/" + ServiceName + "/CreateBill"
	CalculateBillProcedure = "/" + ServiceName + "/CalculateBill"
	SaveBillProcedure      = "/" + ServiceName + "/SaveBill"
	ListBillsProcedure     = "/" + ServiceName + "/ListBills"
	GetBillProcedure       = "/" + ServiceName + "/GetBill"
	GetBalancesProcedure   = "/" + ServiceName + "/GetBalances"
)

// History is the subset of history.Store used by the service.
type History interface {
	GetBills(ctx context.Context) []models.Bill
	SaveBill(ctx context.Context, bill models.Bill) bool
	LoadBill(ctx context.Context, id string) (models.Bill, error)
}

// BillService implements the bill RPCs.
// It does not hold the bill being edited: clients send the full bill on every call,
// and only finalized bills reach history.
type BillService struct {
	history         History
	defaultCurrency string
	logger          *slog.Logger
	metrics         *metrics.Metrics
	now             func() time.Time
}

// Option configures a BillService.
type Option func(*BillService)

// WithDefaultCurrency sets the currency for bills created without one.
func WithDefaultCurrency(currency string) Option {
	return func(s *BillService) {
		if currency != "" {
			s.defaultCurrency = currency
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *BillService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records calculations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *BillService) { s.metrics = m }
}

// WithClock sets the time source used for new bills.
func WithClock(now func() time.Time) Option {
	return func(s *BillService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewBillService creates a new BillService backed by the given history.
func NewBillService(h History, opts ...Option) *BillService {
	s := &BillService{
		history:         h,
		defaultCurrency: models.DefaultCurrency,
		logger:          slog.Default(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewBillServiceHandler builds an HTTP handler serving every BillService procedure.
// It returns the path prefix to mount the handler on.
func NewBillServiceHandler(svc *BillService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateBillProcedure, connect.NewUnaryHandler(CreateBillProcedure, svc.CreateBill, opts...))
	mux.Handle(CalculateBillProcedure, connect.NewUnaryHandler(CalculateBillProcedure, svc.CalculateBill, opts...))
	mux.Handle(SaveBillProcedure, connect.NewUnaryHandler(SaveBillProcedure, svc.SaveBill, opts...))
	mux.Handle(ListBillsProcedure, connect.NewUnaryHandler(ListBillsProcedure, svc.ListBills, opts...))
	mux.Handle(GetBillProcedure, connect.NewUnaryHandler(GetBillProcedure, svc.GetBill, opts...))
	mux.Handle(GetBalancesProcedure, connect.NewUnaryHandler(GetBalancesProcedure, svc.GetBalances, opts...))
	return "/" + ServiceName + "/", mux
}

// calculate runs the calculation engine and reports warnings.
func (s *BillService) calculate(bill models.Bill) models.BillCalculation {
	calc := calculator.CalculateBill(bill)
	s.metrics.ObserveCalculation(len(calc.Warnings))
	for _, w := range calc.Warnings {
		s.logger.Warn("Calculation warning", "bill_id", bill.ID, "warning", w)
	}
	s.logger.Debug("Bill calculated",
		"bill_id", bill.ID,
		"subtotal", calc.Subtotal,
		"extras", calc.ExtrasTotal,
		"total", calc.GrandTotal,
	)
	return calc
}

// CreateBill starts a new bill. Nothing is persisted until SaveBill.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[CreateBillRequest]) (*connect.Response[CreateBillResponse], error) {
	currency := req.Msg.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	bill, err := models.NewBill(req.Msg.Title, req.Msg.Participants, currency, s.now())
	if err != nil {
		s.logger.Error("CreateBill failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	s.logger.Info("Bill created", "bill_id", bill.ID, "participants", len(bill.Participants))

	return connect.NewResponse(&CreateBillResponse{
		Bill:        *bill,
		Calculation: s.calculate(*bill),
	}), nil
}

// CalculateBill computes the per-participant breakdown of the given bill.
func (s *BillService) CalculateBill(ctx context.Context, req *connect.Request[CalculateBillRequest]) (*connect.Response[CalculateBillResponse], error) {
	bill := req.Msg.Bill
	s.logger.Debug("CalculateBill request received",
		"bill_id", bill.ID,
		"participants", len(bill.Participants),
		"items", len(bill.Items),
		"extras", len(bill.Extras),
	)
	return connect.NewResponse(&CalculateBillResponse{
		Calculation: s.calculate(bill),
	}), nil
}

// SaveBill stores a finalized bill in history, replacing any earlier version.
func (s *BillService) SaveBill(ctx context.Context, req *connect.Request[SaveBillRequest]) (*connect.Response[SaveBillResponse], error) {
	bill := req.Msg.Bill
	if bill.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("bill id required"))
	}
	if err := bill.Validate(); err != nil {
		s.logger.Error("SaveBill validation failed", "bill_id", bill.ID, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	saved := s.history.SaveBill(ctx, bill)
	return connect.NewResponse(&SaveBillResponse{
		Saved:       saved,
		HistorySize: len(s.history.GetBills(ctx)),
	}), nil
}

// ListBills returns summaries of all saved bills, oldest first.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	bills := s.history.GetBills(ctx)

	summaries := make([]BillSummary, len(bills))
	for i, bill := range bills {
		host, _ := bill.Host()
		summaries[i] = BillSummary{
			BillID:           bill.ID,
			Title:            bill.Title,
			Date:             bill.Date,
			Currency:         bill.Currency,
			HostName:         host.Name,
			ParticipantCount: len(bill.Participants),
			Total:            calculator.CalculateBill(bill).GrandTotal,
		}
	}

	return connect.NewResponse(&ListBillsResponse{Bills: summaries}), nil
}

// GetBill loads a saved bill and recalculates its breakdown.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	if req.Msg.BillID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("bill_id required"))
	}

	bill, err := s.history.LoadBill(ctx, req.Msg.BillID)
	if errors.Is(err, history.ErrBillNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		s.logger.Error("GetBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&GetBillResponse{
		Bill:        bill,
		Calculation: s.calculate(bill),
	}), nil
}

// GetBalances aggregates saved bills into balances and suggested settlements.
func (s *BillService) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Msg.Currency))
	if currency == "" {
		currency = s.defaultCurrency
	}

	balances, settlements := calculator.CalculateBalances(s.history.GetBills(ctx), currency)
	if balances == nil {
		balances = []models.MemberBalance{}
	}
	if settlements == nil {
		settlements = []models.Settlement{}
	}

	return connect.NewResponse(&GetBalancesResponse{
		Currency:    currency,
		Balances:    balances,
		Settlements: settlements,
	}), nil
}
