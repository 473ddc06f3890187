package history

import (
	"encoding/json"
	"fmt"

	"github.com/mmynk/splitbill/internal/models"
)

// decodeBills parses the stored history. Every element must be a JSON object with a
// non-empty string "id"; a single bad element invalidates the whole history.
func decodeBills(raw string) ([]models.Bill, error) {
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("invalid JSON")
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil || entries == nil {
		return nil, errNotArray
	}

	bills := make([]models.Bill, 0, len(entries))
	for i, entry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("entry %d is not an object", i)
		}

		var id string
		if err := json.Unmarshal(fields["id"], &id); err != nil || id == "" {
			return nil, fmt.Errorf("entry %d has no id", i)
		}

		var bill models.Bill
		if err := json.Unmarshal(entry, &bill); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, id, err)
		}
		bills = append(bills, bill)
	}
	return bills, nil
}
