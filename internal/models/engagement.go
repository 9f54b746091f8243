package models

import "time"

// PageKindDetail is the page kind counted for demand view trends.
const PageKindDetail = "detail"

type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   *uint     `gorm:"index" json:"event_id,omitempty"`
	Page      string    `gorm:"type:varchar(50);not null" json:"page"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

type WaitlistStatus string

const (
	WaitlistWaiting  WaitlistStatus = "waiting"
	WaitlistNotified WaitlistStatus = "notified"
	WaitlistExpired  WaitlistStatus = "expired"
)

type WaitlistEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	EventID   uint           `gorm:"not null;index" json:"event_id"`
	Status    WaitlistStatus `gorm:"type:varchar(20);not null;default:'waiting'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
