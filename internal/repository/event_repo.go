package repository

import (
	"context"

	"github.com/Thedurancode/aitickets-sub000/internal/models"
	"gorm.io/gorm"
)

// EventRepository reads events, tiers and historical inventory
// aggregates. All methods are read-only; the analytics service never
// writes through this layer.
type EventRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindUpcoming(ctx context.Context, today string) ([]models.Event, error)
	FindUpcomingWithin(ctx context.Context, from, to string) ([]models.Event, error)
	FindTiers(ctx context.Context, eventID uint) ([]models.TicketTier, error)
	// HistoricalSellThrough aggregates sold/available over past events
	// (date before the given day, excluding excludeEventID) that share
	// a category with categoryIDs, or failing that the given venue.
	HistoricalSellThrough(ctx context.Context, excludeEventID uint, categoryIDs []uint, venueID *uint, before string) (sold, available, events int64, err error)
	HistoricalInventory(ctx context.Context, before string) (sold, available int64, err error)
	HistoricalAvgPriceCents(ctx context.Context, categoryIDs []uint, before string) (*int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Venue").
		Preload("Tiers").
		First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindUpcoming(ctx context.Context, today string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Venue").
		Preload("Tiers").
		Where("event_date >= ? AND status = ?", today, models.EventScheduled).
		Order("event_date ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindUpcomingWithin(ctx context.Context, from, to string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Preload("Tiers").
		Where("event_date >= ? AND event_date <= ? AND status = ?", from, to, models.EventScheduled).
		Order("event_date ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindTiers(ctx context.Context, eventID uint) ([]models.TicketTier, error) {
	var tiers []models.TicketTier
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *eventRepository) HistoricalSellThrough(ctx context.Context, excludeEventID uint, categoryIDs []uint, venueID *uint, before string) (int64, int64, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.TicketTier{}).
		Joins("JOIN events ON events.id = ticket_tiers.event_id").
		Where("events.id <> ? AND events.event_date < ?", excludeEventID, before)

	if len(categoryIDs) > 0 {
		q = q.Where(
			"events.id IN (SELECT DISTINCT event_id FROM event_categories WHERE category_id IN ?)",
			categoryIDs,
		)
	} else if venueID != nil {
		q = q.Where("events.venue_id = ?", *venueID)
	}

	var agg struct {
		Sold      int64
		Available int64
		Events    int64
	}
	err := q.Select(
		"COALESCE(SUM(ticket_tiers.quantity_sold), 0) AS sold, " +
			"COALESCE(SUM(ticket_tiers.quantity_available), 0) AS available, " +
			"COUNT(DISTINCT events.id) AS events",
	).Scan(&agg).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return agg.Sold, agg.Available, agg.Events, nil
}

func (r *eventRepository) HistoricalInventory(ctx context.Context, before string) (int64, int64, error) {
	var agg struct {
		Sold      int64
		Available int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.TicketTier{}).
		Joins("JOIN events ON events.id = ticket_tiers.event_id").
		Where("events.event_date < ?", before).
		Select("COALESCE(SUM(ticket_tiers.quantity_sold), 0) AS sold, COALESCE(SUM(ticket_tiers.quantity_available), 0) AS available").
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Sold, agg.Available, nil
}

func (r *eventRepository) HistoricalAvgPriceCents(ctx context.Context, categoryIDs []uint, before string) (*int64, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.TicketTier{}).
		Joins("JOIN events ON events.id = ticket_tiers.event_id").
		Joins("JOIN event_categories ON event_categories.event_id = events.id").
		Where("event_categories.category_id IN ? AND events.event_date < ?", categoryIDs, before).
		Select("AVG(ticket_tiers.price_cents)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if avg == nil {
		return nil, nil
	}
	cents := int64(*avg)
	return &cents, nil
}
