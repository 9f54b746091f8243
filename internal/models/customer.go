package models

import (
	"encoding/json"
	"time"
)

type EventGoer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerPreference is the engagement profile behind RFM scoring and
// recommendation content matching. FavoriteEventTypes is the
// platform's JSON-encoded string array, stored verbatim.
type CustomerPreference struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	EventGoerID         uint       `gorm:"not null;uniqueIndex" json:"event_goer_id"`
	FavoriteEventTypes  string     `gorm:"type:text" json:"favorite_event_types"`
	TotalSpentCents     int64      `gorm:"not null;default:0" json:"total_spent_cents"`
	TotalEventsAttended int        `gorm:"not null;default:0" json:"total_events_attended"`
	LastInteractionAt   *time.Time `json:"last_interaction_at,omitempty"`
	IsVIP               bool       `gorm:"not null;default:false" json:"is_vip"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	EventGoer *EventGoer `gorm:"foreignKey:EventGoerID" json:"event_goer,omitempty"`
}

// FavoriteTypes decodes FavoriteEventTypes, tolerating malformed or
// empty payloads the same way the platform does: no favorites.
func (p *CustomerPreference) FavoriteTypes() []string {
	if p == nil || p.FavoriteEventTypes == "" {
		return nil
	}
	var types []string
	if err := json.Unmarshal([]byte(p.FavoriteEventTypes), &types); err != nil {
		return nil
	}
	return types
}
