package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ProjectList is a set of client IDs stored as a jsonb array. Order is
// irrelevant and duplicates are dropped on normalization.
type ProjectList []uuid.UUID

// Normalize removes duplicate entries while keeping first-seen order.
func (p ProjectList) Normalize() ProjectList {
	seen := make(map[uuid.UUID]bool, len(p))
	out := make(ProjectList, 0, len(p))
	for _, id := range p {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Contains reports whether clientID is in the list.
func (p ProjectList) Contains(clientID uuid.UUID) bool {
	for _, id := range p {
		if id == clientID {
			return true
		}
	}
	return false
}

func (p ProjectList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *ProjectList) Scan(value interface{}) error {
	if value == nil {
		*p = ProjectList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for ProjectList: %T", value)
	}
	return json.Unmarshal(raw, p)
}
