package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestNewBill(t *testing.T) {
	bill, err := NewBill("  Dinner ", []string{"Alice", " ", "Bob"}, "usd", testNow)
	if err != nil {
		t.Fatalf("NewBill failed: %v", err)
	}

	if bill.ID == "" {
		t.Error("expected non-empty bill ID")
	}
	if bill.Title != "Dinner" {
		t.Errorf("title = %q, want Dinner", bill.Title)
	}
	if bill.Currency != "USD" {
		t.Errorf("currency = %q, want USD", bill.Currency)
	}
	if bill.Date != "2024-05-01T12:00:00.000Z" {
		t.Errorf("date = %q", bill.Date)
	}
	if got := strings.Join(bill.ParticipantNames(), ","); got != "Alice,Bob" {
		t.Errorf("participants = %q, want Alice,Bob", got)
	}
	host, ok := bill.Host()
	if !ok || host.Name != "Alice" {
		t.Errorf("host = %+v, want Alice", host)
	}
	if err := bill.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNewBill_Defaults(t *testing.T) {
	bill, err := NewBill("", []string{"Alice", "Bob"}, "", testNow)
	if err != nil {
		t.Fatalf("NewBill failed: %v", err)
	}
	if bill.Currency != DefaultCurrency {
		t.Errorf("currency = %q, want %s", bill.Currency, DefaultCurrency)
	}
	if bill.Title != "Split with Alice, Bob" {
		t.Errorf("title = %q", bill.Title)
	}
}

func TestNewBill_NoParticipants(t *testing.T) {
	for _, names := range [][]string{nil, {}, {"", "  "}} {
		if _, err := NewBill("x", names, "", testNow); !errors.Is(err, ErrNoParticipants) {
			t.Errorf("NewBill(%q) error = %v, want ErrNoParticipants", names, err)
		}
	}
}

func TestAddParticipant(t *testing.T) {
	bill, _ := NewBill("x", []string{"Alice"}, "", testNow)

	p, err := bill.AddParticipant(" Charlie ")
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}
	if p.Name != "Charlie" {
		t.Errorf("name = %q, want Charlie", p.Name)
	}
	if got, ok := bill.Participant(p.ID); !ok || got != p {
		t.Errorf("Participant(%s) = %+v, %v", p.ID, got, ok)
	}
	if _, err := bill.AddParticipant(""); !errors.Is(err, ErrInvalidParticipant) {
		t.Errorf("blank name error = %v, want ErrInvalidParticipant", err)
	}
}

func TestAddItem(t *testing.T) {
	bill, _ := NewBill("x", []string{"Alice", "Bob"}, "", testNow)
	alice := bill.Participants[0].ID

	tests := []struct {
		name     string
		itemName string
		price    decimal.Decimal
		quantity int
		ids      []string
		wantErr  error
	}{
		{"shared by everyone", "Rice", decimal.NewFromInt(10000), 2, nil, nil},
		{"assigned", "Tea", decimal.NewFromInt(5000), 1, []string{alice}, nil},
		{"blank name", " ", decimal.NewFromInt(1), 1, nil, ErrInvalidItem},
		{"negative price", "Refund", decimal.NewFromInt(-1), 1, nil, ErrInvalidItem},
		{"negative quantity", "Rice", decimal.NewFromInt(1), -1, nil, ErrInvalidItem},
		{"unknown participant", "Rice", decimal.NewFromInt(1), 1, []string{"ghost"}, ErrUnknownParticipant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := bill.AddItem(tt.itemName, tt.price, tt.quantity, tt.ids)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddItem() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && item.ID == "" {
				t.Error("expected item ID")
			}
		})
	}

	if len(bill.Items) != 2 {
		t.Errorf("items = %d, want 2", len(bill.Items))
	}
	if !bill.RemoveItem(bill.Items[0].ID) || len(bill.Items) != 1 {
		t.Error("RemoveItem did not remove the item")
	}
	if bill.RemoveItem("missing") {
		t.Error("RemoveItem reported removing a missing item")
	}
}

func TestItemCost(t *testing.T) {
	tests := []struct {
		quantity int
		want     int64
	}{
		{3, 30},
		{1, 10},
		{0, 10},
	}
	for _, tt := range tests {
		item := Item{Price: decimal.NewFromInt(10), Quantity: tt.quantity}
		if got := item.Cost(); !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("Cost() with quantity %d = %s, want %d", tt.quantity, got, tt.want)
		}
	}
}

func TestAddExtra(t *testing.T) {
	bill, _ := NewBill("x", []string{"Alice"}, "", testNow)

	extra, err := bill.AddExtra("", ExtraTax, ValuePercentage, decimal.NewFromInt(11), SplitProportional)
	if err != nil {
		t.Fatalf("AddExtra failed: %v", err)
	}
	if extra.Name != "tax" {
		t.Errorf("name = %q, want tax", extra.Name)
	}

	if _, err := bill.AddExtra("Tip", ExtraOther, ValueFixed, decimal.NewFromInt(1), "random"); !errors.Is(err, ErrInvalidExtra) {
		t.Errorf("unknown split mode error = %v, want ErrInvalidExtra", err)
	}
	if _, err := bill.AddExtra("Tip", ExtraOther, ValueFixed, decimal.NewFromInt(-1), SplitEqual); !errors.Is(err, ErrInvalidExtra) {
		t.Errorf("negative value error = %v, want ErrInvalidExtra", err)
	}

	if !bill.RemoveExtra(extra.ID) || len(bill.Extras) != 0 {
		t.Error("RemoveExtra did not remove the extra")
	}
}

func TestExtraAmount(t *testing.T) {
	subtotal := decimal.NewFromInt(200)
	tests := []struct {
		name  string
		extra Extra
		want  string
	}{
		{"percentage tax", Extra{Type: ExtraTax, ValueType: ValuePercentage, Value: decimal.NewFromInt(10)}, "20"},
		{"fixed service", Extra{Type: ExtraService, ValueType: ValueFixed, Value: decimal.NewFromInt(15)}, "15"},
		{"percentage discount", Extra{Type: ExtraDiscount, ValueType: ValuePercentage, Value: decimal.NewFromInt(5)}, "-10"},
		{"fixed discount", Extra{Type: ExtraDiscount, ValueType: ValueFixed, Value: decimal.NewFromInt(7)}, "-7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.extra.Amount(subtotal); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Amount() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Bill {
		bill, _ := NewBill("x", []string{"Alice", "Bob"}, "", testNow)
		bill.AddItem("Rice", decimal.NewFromInt(1), 1, nil)
		return bill
	}

	tests := []struct {
		name    string
		mutate  func(b *Bill)
		wantErr error
	}{
		{"valid", func(b *Bill) {}, nil},
		{"no participants", func(b *Bill) { b.Participants = nil }, ErrNoParticipants},
		{"host not a participant", func(b *Bill) { b.HostID = "ghost" }, ErrInvalidHost},
		{"duplicate participant", func(b *Bill) { b.Participants[1].ID = b.Participants[0].ID }, ErrDuplicateID},
		{"item reuses participant id", func(b *Bill) { b.Items[0].ID = b.Participants[1].ID }, ErrDuplicateID},
		{"negative price", func(b *Bill) { b.Items[0].Price = decimal.NewFromInt(-5) }, ErrInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := valid()
			tt.mutate(bill)
			if err := bill.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		participants []string
		want         string
	}{
		{[]string{}, "Bill - May 1, 2024"},
		{[]string{"Alice"}, "Split with Alice"},
		{[]string{"Alice", "Bob"}, "Split with Alice, Bob"},
		{[]string{"Alice", "Bob", "Charlie"}, "Split with Alice, Bob, Charlie"},
		{[]string{"Alice", "Bob", "Charlie", "Diana"}, "Split with Alice, Bob and 2 others"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := GenerateTitle(tt.participants, testNow); got != tt.want {
				t.Errorf("GenerateTitle(%v) = %q, want %q", tt.participants, got, tt.want)
			}
		})
	}
}
