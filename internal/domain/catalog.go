package domain

import (
	"encoding/json"
	"fmt"
)

// Item is one selectable tag: a human-readable name and the value that
// ends up in the UTM parameter. Persisted as a two-element JSON array
// to match the catalog file format.
type Item struct {
	Name  string
	Value string
}

// MarshalJSON encodes the item as ["name", "value"]
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{i.Name, i.Value})
}

// UnmarshalJSON decodes ["name", "value"] into the item
func (i *Item) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("catalog item must be a [name, value] pair, got %d elements", len(pair))
	}
	i.Name = pair[0]
	i.Value = pair[1]
	return nil
}
