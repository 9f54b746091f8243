package service

import (
	"context"
	"time"

	"github.com/Thedurancode/aitickets-sub000/internal/models"
)

// Mock repositories with function fields, defaulting to empty data so
// tests only wire the signals they care about.

type mockEventRepo struct {
	findByIDFn           func(ctx context.Context, id uint) (*models.Event, error)
	findUpcomingFn       func(ctx context.Context, today string) ([]models.Event, error)
	findUpcomingWithinFn func(ctx context.Context, from, to string) ([]models.Event, error)
	findTiersFn          func(ctx context.Context, eventID uint) ([]models.TicketTier, error)
	histSellThroughFn    func(ctx context.Context, excludeEventID uint, categoryIDs []uint, venueID *uint, before string) (int64, int64, int64, error)
	histInventoryFn      func(ctx context.Context, before string) (int64, int64, error)
	histAvgPriceFn       func(ctx context.Context, categoryIDs []uint, before string) (*int64, error)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindUpcoming(ctx context.Context, today string) ([]models.Event, error) {
	if m.findUpcomingFn == nil {
		return nil, nil
	}
	return m.findUpcomingFn(ctx, today)
}
func (m *mockEventRepo) FindUpcomingWithin(ctx context.Context, from, to string) ([]models.Event, error) {
	if m.findUpcomingWithinFn == nil {
		return nil, nil
	}
	return m.findUpcomingWithinFn(ctx, from, to)
}
func (m *mockEventRepo) FindTiers(ctx context.Context, eventID uint) ([]models.TicketTier, error) {
	if m.findTiersFn == nil {
		return nil, nil
	}
	return m.findTiersFn(ctx, eventID)
}
func (m *mockEventRepo) HistoricalSellThrough(ctx context.Context, excludeEventID uint, categoryIDs []uint, venueID *uint, before string) (int64, int64, int64, error) {
	if m.histSellThroughFn == nil {
		return 0, 0, 0, nil
	}
	return m.histSellThroughFn(ctx, excludeEventID, categoryIDs, venueID, before)
}
func (m *mockEventRepo) HistoricalInventory(ctx context.Context, before string) (int64, int64, error) {
	if m.histInventoryFn == nil {
		return 0, 0, nil
	}
	return m.histInventoryFn(ctx, before)
}
func (m *mockEventRepo) HistoricalAvgPriceCents(ctx context.Context, categoryIDs []uint, before string) (*int64, error) {
	if m.histAvgPriceFn == nil {
		return nil, nil
	}
	return m.histAvgPriceFn(ctx, categoryIDs, before)
}

type mockTicketRepo struct {
	earliestPurchaseFn  func(ctx context.Context, eventID uint) (*time.Time, error)
	countSoldFn         func(ctx context.Context, eventID uint) (int64, error)
	countSoldDiscountFn func(ctx context.Context, eventID uint) (int64, error)
	countSoldByTierFn   func(ctx context.Context, tierID uint) (int64, error)
	soldRevenueFn       func(ctx context.Context, eventID uint) (int64, error)
	eventIDsForGoerFn   func(ctx context.Context, goerID uint) ([]uint, error)
	coAttendeeIDsFn     func(ctx context.Context, eventIDs []uint, excludeGoerID uint) ([]uint, error)
	buyerCountsFn       func(ctx context.Context, goerIDs []uint, today string) (map[uint]int64, error)
	salesCountsSinceFn  func(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error)
}

func (m *mockTicketRepo) EarliestPurchase(ctx context.Context, eventID uint) (*time.Time, error) {
	if m.earliestPurchaseFn == nil {
		return nil, nil
	}
	return m.earliestPurchaseFn(ctx, eventID)
}
func (m *mockTicketRepo) CountSold(ctx context.Context, eventID uint) (int64, error) {
	if m.countSoldFn == nil {
		return 0, nil
	}
	return m.countSoldFn(ctx, eventID)
}
func (m *mockTicketRepo) CountSoldWithDiscount(ctx context.Context, eventID uint) (int64, error) {
	if m.countSoldDiscountFn == nil {
		return 0, nil
	}
	return m.countSoldDiscountFn(ctx, eventID)
}
func (m *mockTicketRepo) CountSoldByTier(ctx context.Context, tierID uint) (int64, error) {
	if m.countSoldByTierFn == nil {
		return 0, nil
	}
	return m.countSoldByTierFn(ctx, tierID)
}
func (m *mockTicketRepo) SoldRevenueCents(ctx context.Context, eventID uint) (int64, error) {
	if m.soldRevenueFn == nil {
		return 0, nil
	}
	return m.soldRevenueFn(ctx, eventID)
}
func (m *mockTicketRepo) EventIDsForGoer(ctx context.Context, goerID uint) ([]uint, error) {
	if m.eventIDsForGoerFn == nil {
		return nil, nil
	}
	return m.eventIDsForGoerFn(ctx, goerID)
}
func (m *mockTicketRepo) CoAttendeeIDs(ctx context.Context, eventIDs []uint, excludeGoerID uint) ([]uint, error) {
	if m.coAttendeeIDsFn == nil {
		return nil, nil
	}
	return m.coAttendeeIDsFn(ctx, eventIDs, excludeGoerID)
}
func (m *mockTicketRepo) BuyerCountsForUpcoming(ctx context.Context, goerIDs []uint, today string) (map[uint]int64, error) {
	if m.buyerCountsFn == nil {
		return map[uint]int64{}, nil
	}
	return m.buyerCountsFn(ctx, goerIDs, today)
}
func (m *mockTicketRepo) SalesCountsSince(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error) {
	if m.salesCountsSinceFn == nil {
		return map[uint]int64{}, nil
	}
	return m.salesCountsSinceFn(ctx, eventIDs, since)
}

type mockCustomerRepo struct {
	findByIDFn             func(ctx context.Context, id uint) (*models.EventGoer, error)
	findByEmailFn          func(ctx context.Context, email string) (*models.EventGoer, error)
	findPreferenceFn       func(ctx context.Context, goerID uint) (*models.CustomerPreference, error)
	findInactiveProfilesFn func(ctx context.Context, cutoff time.Time, limit int) ([]models.CustomerPreference, error)
	findAllProfilesFn      func(ctx context.Context) ([]models.CustomerPreference, error)
	countGoersFn           func(ctx context.Context) (int64, error)
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uint) (*models.EventGoer, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCustomerRepo) FindByEmail(ctx context.Context, email string) (*models.EventGoer, error) {
	return m.findByEmailFn(ctx, email)
}
func (m *mockCustomerRepo) FindPreference(ctx context.Context, goerID uint) (*models.CustomerPreference, error) {
	if m.findPreferenceFn == nil {
		return nil, nil
	}
	return m.findPreferenceFn(ctx, goerID)
}
func (m *mockCustomerRepo) FindInactiveProfiles(ctx context.Context, cutoff time.Time, limit int) ([]models.CustomerPreference, error) {
	if m.findInactiveProfilesFn == nil {
		return nil, nil
	}
	return m.findInactiveProfilesFn(ctx, cutoff, limit)
}
func (m *mockCustomerRepo) FindAllProfiles(ctx context.Context) ([]models.CustomerPreference, error) {
	if m.findAllProfilesFn == nil {
		return nil, nil
	}
	return m.findAllProfilesFn(ctx)
}
func (m *mockCustomerRepo) CountGoers(ctx context.Context) (int64, error) {
	if m.countGoersFn == nil {
		return 0, nil
	}
	return m.countGoersFn(ctx)
}

type mockEngagementRepo struct {
	countEventPageViewsFn func(ctx context.Context, eventID uint, page string, from, to time.Time) (int64, error)
	pageViewCountsFn      func(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error)
	countWaitingFn        func(ctx context.Context, eventID uint) (int64, error)
	waitlistCountsFn      func(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error)
}

func (m *mockEngagementRepo) CountEventPageViews(ctx context.Context, eventID uint, page string, from, to time.Time) (int64, error) {
	if m.countEventPageViewsFn == nil {
		return 0, nil
	}
	return m.countEventPageViewsFn(ctx, eventID, page, from, to)
}
func (m *mockEngagementRepo) PageViewCounts(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error) {
	if m.pageViewCountsFn == nil {
		return map[uint]int64{}, nil
	}
	return m.pageViewCountsFn(ctx, eventIDs, since)
}
func (m *mockEngagementRepo) CountWaiting(ctx context.Context, eventID uint) (int64, error) {
	if m.countWaitingFn == nil {
		return 0, nil
	}
	return m.countWaitingFn(ctx, eventID)
}
func (m *mockEngagementRepo) WaitlistCountsSince(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error) {
	if m.waitlistCountsFn == nil {
		return map[uint]int64{}, nil
	}
	return m.waitlistCountsFn(ctx, eventIDs, since)
}

// --- shared fixtures ---

func futureDate(daysAhead int) string {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Format(dayLayout)
}

func upcomingEvent(id uint, daysAhead int, tiers ...models.TicketTier) *models.Event {
	return &models.Event{
		ID:        id,
		Name:      "Jazz Night",
		EventDate: futureDate(daysAhead),
		EventTime: "23:59",
		Status:    models.EventScheduled,
		Tiers:     tiers,
	}
}

func tier(id uint, priceCents int64, available, sold int) models.TicketTier {
	return models.TicketTier{
		ID:                id,
		Name:              "General",
		PriceCents:        priceCents,
		QuantityAvailable: available,
		QuantitySold:      sold,
	}
}

func timePtr(t time.Time) *time.Time { return &t }
