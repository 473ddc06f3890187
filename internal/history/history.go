// Package history persists finalized bills as a JSON array in a single key-value slot.
//
// The store is best-effort: reads and writes never fail from the caller's point of view.
// Problems are logged, corrupt data is discarded, and an empty history is returned instead.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/splitbill/internal/metrics"
	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
)

// DefaultKey is the storage key holding the history array.
const DefaultKey = "splitbill_pro_history"

var (
	ErrBillNotFound = errors.New("bill not found")
	errNotArray     = errors.New("history is not a JSON array")
)

// Store reads and writes the bill history.
// It is not transactional and does not detect concurrent writers.
type Store struct {
	kv      storage.KeyValue
	key     string
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used to report swallowed failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records load/save outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithClock sets the time source used to date undated bills.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Store on top of kv.
func New(kv storage.KeyValue, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "history", "key", s.key)
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// GetBills returns the saved bills in insertion order.
// A missing key yields an empty history. Unparseable or malformed data is logged,
// removed from storage, and reported as an empty history.
func (s *Store) GetBills(ctx context.Context) []models.Bill {
	bills, err := s.load(ctx)
	if err != nil {
		return []models.Bill{}
	}
	return bills
}

// load reads the history. Only a storage read error is returned: missing and corrupt
// data both yield an empty history, and corrupt data is cleared.
func (s *Store) load(ctx context.Context) ([]models.Bill, error) {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("Failed to read bills from storage", "error", err)
		s.metrics.ObserveHistory("load", metrics.ResultError)
		return nil, err
	}
	if !found || raw == "" {
		s.metrics.ObserveHistory("load", metrics.ResultMissing)
		s.metrics.SetHistorySize(0)
		return []models.Bill{}, nil
	}

	bills, err := decodeBills(raw)
	if err != nil {
		s.logger.Error("Failed to parse bills from storage", "error", err)
		s.metrics.ObserveHistory("load", metrics.ResultCorrupt)
		s.clear(ctx)
		return []models.Bill{}, nil
	}

	s.metrics.ObserveHistory("load", metrics.ResultOK)
	s.metrics.SetHistorySize(len(bills))
	return bills, nil
}

// SaveBills replaces the whole history with bills.
// Failures are logged and swallowed; there is no retry.
func (s *Store) SaveBills(ctx context.Context, bills []models.Bill) {
	s.write(ctx, bills)
}

// write stores bills and reports whether the write succeeded.
func (s *Store) write(ctx context.Context, bills []models.Bill) bool {
	if bills == nil {
		bills = []models.Bill{}
	}
	data, err := json.Marshal(bills)
	if err != nil {
		s.logger.Error("Failed to encode bills", "error", err)
		s.metrics.ObserveHistory("save", metrics.ResultError)
		return false
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("Failed to save bills to storage", "error", err)
		s.metrics.ObserveHistory("save", metrics.ResultError)
		return false
	}
	s.logger.Debug("Saved bills", "count", len(bills))
	s.metrics.ObserveHistory("save", metrics.ResultOK)
	s.metrics.SetHistorySize(len(bills))
	return true
}

// SaveBill adds bill to history, replacing any entry with the same ID.
// Bills without items are not saved; the return value reports whether the bill was stored.
// A missing date is filled with the current time. If the existing history cannot be read,
// nothing is written so stored bills are not overwritten.
func (s *Store) SaveBill(ctx context.Context, bill models.Bill) bool {
	if bill.ID == "" || len(bill.Items) == 0 {
		s.logger.Debug("Skipping save of empty bill", "bill_id", bill.ID, "items", len(bill.Items))
		return false
	}
	if bill.Date == "" {
		bill.Date = s.now().UTC().Format(models.DateLayout)
	}

	existing, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Skipping save: history unreadable", "bill_id", bill.ID, "error", err)
		return false
	}
	updated := make([]models.Bill, 0, len(existing)+1)
	for _, b := range existing {
		if b.ID != bill.ID {
			updated = append(updated, b)
		}
	}
	updated = append(updated, bill)

	if !s.write(ctx, updated) {
		return false
	}
	s.logger.Info("Bill saved to history", "bill_id", bill.ID, "replaced", len(updated) == len(existing))
	return true
}

// LoadBill returns the saved bill with the given ID.
func (s *Store) LoadBill(ctx context.Context, id string) (models.Bill, error) {
	for _, b := range s.GetBills(ctx) {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Bill{}, fmt.Errorf("%w: %s", ErrBillNotFound, id)
}

// clear removes corrupt data so the next read starts fresh.
func (s *Store) clear(ctx context.Context) {
	if err := s.kv.Remove(ctx, s.key); err != nil {
		s.logger.Error("Failed to clear corrupted bills", "error", err)
		s.metrics.ObserveHistory("reset", metrics.ResultError)
		return
	}
	s.logger.Warn("Cleared corrupted bill history")
	s.metrics.ObserveHistory("reset", metrics.ResultOK)
	s.metrics.SetHistorySize(0)
}
