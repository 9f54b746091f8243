package models

import "time"

type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

// Event is the analytics read model of a platform event. EventDate and
// EventTime are kept as the platform's wire strings ("2006-01-02" and
// "15:04"); an unparseable pair falls back to default horizons rather
// than failing an operation.
type Event struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"not null" json:"name"`
	EventDate string      `gorm:"type:varchar(10);not null;index" json:"event_date"`
	EventTime string      `gorm:"type:varchar(5)" json:"event_time"`
	Status    EventStatus `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	VenueID   *uint       `json:"venue_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Venue      *Venue       `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	Categories []Category   `gorm:"many2many:event_categories" json:"categories,omitempty"`
	Tiers      []TicketTier `gorm:"foreignKey:EventID" json:"tiers,omitempty"`
}

type Venue struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	City string `json:"city"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

// StartsAt parses the event's date and time into a UTC instant. The
// time defaults to 23:59 when absent, matching the platform's rule
// that an event "occurs" at end of day if no start time is set.
func (e *Event) StartsAt() (time.Time, bool) {
	t := e.EventTime
	if t == "" {
		t = "23:59"
	}
	dt, err := time.Parse("2006-01-02 15:04", e.EventDate+" "+t)
	if err != nil {
		return time.Time{}, false
	}
	return dt.UTC(), true
}

func (e *Event) CategoryIDs() []uint {
	ids := make([]uint, 0, len(e.Categories))
	for _, c := range e.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

func (e *Event) CategoryNames() []string {
	names := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		names = append(names, c.Name)
	}
	return names
}
