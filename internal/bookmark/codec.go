package bookmark

import (
	"encoding/json"
	"fmt"

	"github.com/tLat87/SpiritLands/pkg/core"
)

// Marshal serializes a bookmark list into its persisted form, a JSON array
// of full item snapshots.
func Marshal[C core.Category](items []core.Item[C]) (string, error) {
	if items == nil {
		items = []core.Item[C]{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal bookmarks: %w", err)
	}
	return string(data), nil
}

// Unmarshal parses a persisted bookmark list. Entries without an id are
// dropped and later duplicates of an id are ignored.
func Unmarshal[C core.Category](data string) ([]core.Item[C], error) {
	var raw []core.Item[C]
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal bookmarks: %w", err)
	}

	seen := make(map[string]struct{}, len(raw))
	items := make([]core.Item[C], 0, len(raw))
	for _, it := range raw {
		if it.ID == "" {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		items = append(items, it)
	}
	return items, nil
}
