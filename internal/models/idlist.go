package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IDList is an ordered list of entity ids stored as a JSON text column.
// The stored order is the authoritative display order.
type IDList []string

// Value implements driver.Valuer.
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode id list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = IDList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported id list column type %T", value)
	}

	if len(data) == 0 {
		*l = IDList{}
		return nil
	}

	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("failed to decode id list: %w", err)
	}
	return nil
}

// Remove returns a copy of the list with every occurrence of id removed,
// and whether anything was removed.
func (l IDList) Remove(id string) (IDList, bool) {
	result := make(IDList, 0, len(l))
	removed := false
	for _, v := range l {
		if v == id {
			removed = true
			continue
		}
		result = append(result, v)
	}
	return result, removed
}

// Insert returns a copy of the list with id spliced in at index. Indexes
// outside [0, len] are clamped, so an oversized index appends.
func (l IDList) Insert(id string, index int) IDList {
	if index < 0 {
		index = 0
	}
	if index > len(l) {
		index = len(l)
	}
	result := make(IDList, 0, len(l)+1)
	result = append(result, l[:index]...)
	result = append(result, id)
	result = append(result, l[index:]...)
	return result
}

// Contains reports whether id is present in the list.
func (l IDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}
