package domain

import (
	"fmt"
	"strings"
)

// Ref points at a record either by id or by its human-readable name.
// It is resolved to a canonical id before reaching business rules.
type Ref struct {
	id   int64
	name string
}

func RefByID(id int64) Ref { return Ref{id: id} }

func RefByName(name string) Ref { return Ref{name: strings.TrimSpace(name)} }

// NewRef builds a Ref from optional id/name inputs; id wins when both are set.
func NewRef(id *int64, name string) (Ref, bool) {
	if id != nil && *id > 0 {
		return RefByID(*id), true
	}
	if strings.TrimSpace(name) != "" {
		return RefByName(name), true
	}
	return Ref{}, false
}

func (r Ref) ID() (int64, bool) { return r.id, r.id > 0 }

func (r Ref) Name() (string, bool) { return r.name, r.id == 0 && r.name != "" }

func (r Ref) IsZero() bool { return r.id == 0 && r.name == "" }

func (r Ref) String() string {
	if r.id > 0 {
		return fmt.Sprintf("#%d", r.id)
	}
	return r.name
}
