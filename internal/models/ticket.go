package models

import "time"

type TicketStatus string

const (
	TicketPending   TicketStatus = "pending"
	TicketPaid      TicketStatus = "paid"
	TicketCheckedIn TicketStatus = "checked_in"
	TicketCancelled TicketStatus = "cancelled"
	TicketRefunded  TicketStatus = "refunded"
)

// SoldStatuses are the ticket states that count as a completed sale
// for every revenue and demand computation.
var SoldStatuses = []TicketStatus{TicketPaid, TicketCheckedIn}

// TicketTier holds price in minor currency units (cents). QuantitySold
// is maintained by the platform core and synced into the read model.
type TicketTier struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	EventID           uint      `gorm:"not null;index" json:"event_id"`
	Name              string    `gorm:"not null" json:"name"`
	PriceCents        int64     `gorm:"not null" json:"price_cents"`
	QuantityAvailable int       `gorm:"not null" json:"quantity_available"`
	QuantitySold      int       `gorm:"not null;default:0" json:"quantity_sold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (t *TicketTier) Remaining() int {
	if r := t.QuantityAvailable - t.QuantitySold; r > 0 {
		return r
	}
	return 0
}

type Ticket struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	TicketTierID        uint         `gorm:"not null;index" json:"ticket_tier_id"`
	EventGoerID         uint         `gorm:"not null;index" json:"event_goer_id"`
	Status              TicketStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PurchasedAt         *time.Time   `json:"purchased_at,omitempty"`
	DiscountAmountCents int64        `gorm:"not null;default:0" json:"discount_amount_cents"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`

	Tier *TicketTier `gorm:"foreignKey:TicketTierID" json:"tier,omitempty"`
}
