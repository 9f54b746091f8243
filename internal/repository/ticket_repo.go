package repository

import (
	"context"
	"time"

	"github.com/Thedurancode/aitickets-sub000/internal/models"
	"gorm.io/gorm"
)

// TicketRepository reads ticket aggregates. Throughout, "sold" means a
// ticket in paid or checked_in status.
type TicketRepository interface {
	// EarliestPurchase returns the first sold-ticket purchase time for
	// an event, or nil if nothing has sold.
	EarliestPurchase(ctx context.Context, eventID uint) (*time.Time, error)
	CountSold(ctx context.Context, eventID uint) (int64, error)
	CountSoldWithDiscount(ctx context.Context, eventID uint) (int64, error)
	CountSoldByTier(ctx context.Context, tierID uint) (int64, error)
	// SoldRevenueCents sums tier price minus per-ticket discount over
	// all sold tickets of an event.
	SoldRevenueCents(ctx context.Context, eventID uint) (int64, error)
	// EventIDsForGoer lists distinct events the customer holds a sold
	// ticket for.
	EventIDsForGoer(ctx context.Context, goerID uint) ([]uint, error)
	// CoAttendeeIDs lists distinct other customers holding sold tickets
	// to any of the given events.
	CoAttendeeIDs(ctx context.Context, eventIDs []uint, excludeGoerID uint) ([]uint, error)
	// BuyerCountsForUpcoming counts, per upcoming event, distinct
	// buyers among the given customers.
	BuyerCountsForUpcoming(ctx context.Context, goerIDs []uint, today string) (map[uint]int64, error)
	// SalesCountsSince counts sold tickets purchased on or after the
	// cutoff, per event.
	SalesCountsSince(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) soldForEvent(ctx context.Context, eventID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Joins("JOIN ticket_tiers ON ticket_tiers.id = tickets.ticket_tier_id").
		Where("ticket_tiers.event_id = ? AND tickets.status IN ?", eventID, models.SoldStatuses)
}

func (r *ticketRepository) EarliestPurchase(ctx context.Context, eventID uint) (*time.Time, error) {
	var earliest *time.Time
	err := r.soldForEvent(ctx, eventID).
		Select("MIN(tickets.purchased_at)").
		Scan(&earliest).Error
	if err != nil {
		return nil, err
	}
	return earliest, nil
}

func (r *ticketRepository) CountSold(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.soldForEvent(ctx, eventID).Count(&count).Error
	return count, err
}

func (r *ticketRepository) CountSoldWithDiscount(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.soldForEvent(ctx, eventID).
		Where("tickets.discount_amount_cents > 0").
		Count(&count).Error
	return count, err
}

func (r *ticketRepository) CountSoldByTier(ctx context.Context, tierID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("ticket_tier_id = ? AND status IN ?", tierID, models.SoldStatuses).
		Count(&count).Error
	return count, err
}

func (r *ticketRepository) SoldRevenueCents(ctx context.Context, eventID uint) (int64, error) {
	var total *int64
	err := r.soldForEvent(ctx, eventID).
		Select("SUM(ticket_tiers.price_cents - COALESCE(tickets.discount_amount_cents, 0))").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *ticketRepository) EventIDsForGoer(ctx context.Context, goerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Joins("JOIN ticket_tiers ON ticket_tiers.id = tickets.ticket_tier_id").
		Where("tickets.event_goer_id = ? AND tickets.status IN ?", goerID, models.SoldStatuses).
		Distinct().
		Pluck("ticket_tiers.event_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ticketRepository) CoAttendeeIDs(ctx context.Context, eventIDs []uint, excludeGoerID uint) ([]uint, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Joins("JOIN ticket_tiers ON ticket_tiers.id = tickets.ticket_tier_id").
		Where("ticket_tiers.event_id IN ? AND tickets.event_goer_id <> ? AND tickets.status IN ?",
			eventIDs, excludeGoerID, models.SoldStatuses).
		Distinct().
		Pluck("tickets.event_goer_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ticketRepository) BuyerCountsForUpcoming(ctx context.Context, goerIDs []uint, today string) (map[uint]int64, error) {
	if len(goerIDs) == 0 {
		return map[uint]int64{}, nil
	}
	var rows []struct {
		EventID uint
		Buyers  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Joins("JOIN ticket_tiers ON ticket_tiers.id = tickets.ticket_tier_id").
		Joins("JOIN events ON events.id = ticket_tiers.event_id").
		Where("tickets.event_goer_id IN ? AND tickets.status IN ? AND events.event_date >= ?",
			goerIDs, models.SoldStatuses, today).
		Select("ticket_tiers.event_id AS event_id, COUNT(DISTINCT tickets.event_goer_id) AS buyers").
		Group("ticket_tiers.event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row.Buyers
	}
	return counts, nil
}

func (r *ticketRepository) SalesCountsSince(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error) {
	if len(eventIDs) == 0 {
		return map[uint]int64{}, nil
	}
	var rows []struct {
		EventID uint
		Sales   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Joins("JOIN ticket_tiers ON ticket_tiers.id = tickets.ticket_tier_id").
		Where("ticket_tiers.event_id IN ? AND tickets.status IN ? AND tickets.purchased_at >= ?",
			eventIDs, models.SoldStatuses, since).
		Select("ticket_tiers.event_id AS event_id, COUNT(tickets.id) AS sales").
		Group("ticket_tiers.event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row.Sales
	}
	return counts, nil
}
