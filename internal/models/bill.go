package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a bill is created without a currency code.
const DefaultCurrency = "IDR"

// DateLayout is the ISO-8601 layout used for Bill.Date (millisecond precision, UTC).
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	ErrNoParticipants     = errors.New("bill must have at least one participant")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrInvalidParticipant = errors.New("invalid participant")
	ErrInvalidHost        = errors.New("host must be one of the participants")
	ErrDuplicateID        = errors.New("duplicate id")
	ErrInvalidItem        = errors.New("invalid item")
	ErrInvalidExtra       = errors.New("invalid extra")
)

// Bill represents one shared-expense event.
// It is the aggregate root: participants, items and extras only exist inside a bill.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	// History entries are keyed by this value.
	ID string `json:"id"`

	// Title is the human-readable name for the bill.
	// Auto-generated from participant names when left empty.
	Title string `json:"title"`

	// Date is the ISO-8601 creation timestamp (see DateLayout).
	Date string `json:"date"`

	// HostID is the participant who paid the bill. Defaults to the first participant.
	HostID string `json:"hostId"`

	// Participants is the ordered list of people splitting the bill.
	Participants []Participant `json:"participants"`

	// Items are the individual cost entries on the bill.
	Items []Item `json:"items"`

	// Extras are taxes, service charges and discounts applied on top of the items.
	Extras []Extra `json:"extras"`

	// Currency is a display label only (e.g. "IDR", "USD"). No conversion is performed.
	Currency string `json:"currency"`
}

// Participant is a person splitting a bill.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item represents a single cost entry on a bill.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the description of the item (e.g., "Nasi Goreng", "Beer").
	Name string `json:"name"`

	// Price is the unit price.
	Price decimal.Decimal `json:"price"`

	// Quantity multiplies Price. Zero is treated as one.
	Quantity int `json:"quantity"`

	// ParticipantIDs lists who shares this item; the cost is split equally among them.
	// An empty list means the item is shared by every participant.
	ParticipantIDs []string `json:"participantIds"`
}

// Cost returns Price x Quantity.
func (i Item) Cost() decimal.Decimal {
	qty := i.Quantity
	if qty <= 0 {
		qty = 1
	}
	return i.Price.Mul(decimal.NewFromInt(int64(qty)))
}

// NewBill creates a bill for the given participant names.
// Blank names are skipped; the first remaining participant becomes the host.
func NewBill(title string, participantNames []string, currency string, now time.Time) (*Bill, error) {
	bill := &Bill{
		ID:           uuid.New().String(),
		Date:         now.UTC().Format(DateLayout),
		Participants: []Participant{},
		Items:        []Item{},
		Extras:       []Extra{},
		Currency:     strings.ToUpper(strings.TrimSpace(currency)),
	}
	for _, name := range participantNames {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, err := bill.AddParticipant(name); err != nil {
			return nil, err
		}
	}
	if len(bill.Participants) == 0 {
		return nil, ErrNoParticipants
	}
	bill.HostID = bill.Participants[0].ID

	if bill.Currency == "" {
		bill.Currency = DefaultCurrency
	}
	bill.Title = strings.TrimSpace(title)
	if bill.Title == "" {
		bill.Title = GenerateTitle(bill.ParticipantNames(), now)
	}
	return bill, nil
}

// AddParticipant appends a participant with a fresh ID.
// A blank name returns ErrInvalidParticipant.
func (b *Bill) AddParticipant(name string) (Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Participant{}, fmt.Errorf("%w: blank name", ErrInvalidParticipant)
	}
	p := Participant{ID: uuid.New().String(), Name: name}
	b.Participants = append(b.Participants, p)
	return p, nil
}

// Participant looks up a participant by ID.
func (b *Bill) Participant(id string) (Participant, bool) {
	for _, p := range b.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// ParticipantNames returns the display names in bill order.
func (b *Bill) ParticipantNames() []string {
	names := make([]string, len(b.Participants))
	for i, p := range b.Participants {
		names[i] = p.Name
	}
	return names
}

// Host returns the hosting participant, if it exists.
func (b *Bill) Host() (Participant, bool) {
	return b.Participant(b.HostID)
}

// AddItem appends an item shared by participantIDs (empty = everyone).
func (b *Bill) AddItem(name string, price decimal.Decimal, quantity int, participantIDs []string) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if price.IsNegative() {
		return Item{}, fmt.Errorf("%w: price cannot be negative", ErrInvalidItem)
	}
	if quantity < 0 {
		return Item{}, fmt.Errorf("%w: quantity cannot be negative", ErrInvalidItem)
	}
	for _, id := range participantIDs {
		if _, ok := b.Participant(id); !ok {
			return Item{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
		}
	}

	item := Item{
		ID:             uuid.New().String(),
		Name:           name,
		Price:          price,
		Quantity:       quantity,
		ParticipantIDs: append([]string{}, participantIDs...),
	}
	b.Items = append(b.Items, item)
	return item, nil
}

// RemoveItem deletes the item with the given ID. It reports whether an item was removed.
func (b *Bill) RemoveItem(id string) bool {
	for i, item := range b.Items {
		if item.ID == id {
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			return true
		}
	}
	return false
}

// AddExtra appends a tax, service charge, discount or other adjustment.
func (b *Bill) AddExtra(name string, typ ExtraType, valueType ExtraValueType, value decimal.Decimal, mode ExtraSplitMode) (Extra, error) {
	extra := Extra{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Type:      typ,
		ValueType: valueType,
		Value:     value,
		SplitMode: mode,
	}
	if extra.Name == "" {
		extra.Name = string(typ)
	}
	if err := extra.Validate(); err != nil {
		return Extra{}, err
	}
	b.Extras = append(b.Extras, extra)
	return extra, nil
}

// RemoveExtra deletes the extra with the given ID. It reports whether an extra was removed.
func (b *Bill) RemoveExtra(id string) bool {
	for i, extra := range b.Extras {
		if extra.ID == id {
			b.Extras = append(b.Extras[:i], b.Extras[i+1:]...)
			return true
		}
	}
	return false
}

// Validate checks the bill's structural invariants.
func (b *Bill) Validate() error {
	if len(b.Participants) == 0 {
		return ErrNoParticipants
	}
	if _, ok := b.Host(); !ok {
		return ErrInvalidHost
	}

	seen := make(map[string]bool)
	for _, p := range b.Participants {
		if p.ID == "" || seen[p.ID] {
			return fmt.Errorf("%w: participant %q", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
	}
	for _, item := range b.Items {
		if item.ID == "" || seen[item.ID] {
			return fmt.Errorf("%w: item %q", ErrDuplicateID, item.ID)
		}
		seen[item.ID] = true
		if item.Price.IsNegative() || item.Quantity < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidItem, item.Name)
		}
	}
	for _, extra := range b.Extras {
		if extra.ID == "" || seen[extra.ID] {
			return fmt.Errorf("%w: extra %q", ErrDuplicateID, extra.ID)
		}
		seen[extra.ID] = true
	}
	return nil
}

// GenerateTitle creates an auto-generated title from participant names.
func GenerateTitle(participants []string, now time.Time) string {
	if len(participants) == 0 {
		return fmt.Sprintf("Bill - %s", now.Format("Jan 2, 2006"))
	}
	if len(participants) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(participants, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(participants[:2], ", "),
		len(participants)-2,
	)
}
