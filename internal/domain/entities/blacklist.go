package entities

import "time"

// BlacklistType represents what kind of value a blacklist entry matches
type BlacklistType string

const (
	BlacklistTypeEmail BlacklistType = "email"
	BlacklistTypePhone BlacklistType = "phone"
)

// Valid reports whether the type is one of the supported values.
func (t BlacklistType) Valid() bool {
	return t == BlacklistTypeEmail || t == BlacklistTypePhone
}

// BlacklistEntry is one deny-list row, used only for membership testing
type BlacklistEntry struct {
	Type    BlacklistType `json:"type"`
	Value   string        `json:"value"`
	Reason  string        `json:"reason"`
	AddedAt time.Time     `json:"addedAt"`
}

// BlacklistAddInput carries an admin blacklist append request
type BlacklistAddInput struct {
	Type   BlacklistType `json:"type" binding:"required"`
	Value  string        `json:"value" binding:"required"`
	Reason string        `json:"reason" binding:"required"`
}
