package service

import (
	"context"
	"testing"

	"github.com/Thedurancode/aitickets-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newPricingService(events *mockEventRepo, tickets *mockTicketRepo) PricingService {
	return NewPricingService(events, tickets, DefaultSettings())
}

func TestGetPricingSuggestions_StrongDemandIncrease(t *testing.T) {
	event := upcomingEvent(1, 10, tier(1, 10000, 100, 95))
	tickets := &mockTicketRepo{
		countSoldFn: func(ctx context.Context, eventID uint) (int64, error) {
			return 95, nil
		},
	}
	svc := newPricingService(eventRepoReturning(event), tickets)

	result, err := svc.GetPricingSuggestions(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "low", result.PriceElasticity.Level)
	assert.Len(t, result.Tiers, 1)

	s := result.Tiers[0]
	assert.Equal(t, "increase", s.Direction)
	assert.Equal(t, "high", s.Confidence)
	assert.Equal(t, 20.0, s.AdjustmentPercent)
	assert.Equal(t, int64(12000), s.SuggestedPriceCents)
	assert.Equal(t, "$120.00", s.SuggestedPriceDisplay)
	assert.Equal(t, "$100.00", s.CurrentPriceDisplay)
}

func TestGetPricingSuggestions_SlowSalesLastDays(t *testing.T) {
	event := upcomingEvent(2, 1, tier(1, 10000, 100, 5))
	tickets := &mockTicketRepo{
		countSoldFn: func(ctx context.Context, eventID uint) (int64, error) {
			return 5, nil
		},
	}
	svc := newPricingService(eventRepoReturning(event), tickets)

	result, err := svc.GetPricingSuggestions(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.DaysUntilEvent)

	s := result.Tiers[0]
	assert.Equal(t, "decrease", s.Direction)
	assert.Equal(t, "high", s.Confidence)
	assert.Equal(t, -25.0, s.AdjustmentPercent)
	assert.Equal(t, int64(7500), s.SuggestedPriceCents)
	assert.Contains(t, s.Reasoning, "Aggressive discount")
}

// Heavy promo usage marks the audience price-sensitive: increases are
// capped at 10% and decreases get 20% deeper.
func TestGetPricingSuggestions_HighElasticity(t *testing.T) {
	event := upcomingEvent(3, 1,
		tier(1, 10000, 100, 95),
		tier(2, 8000, 100, 5),
	)
	tickets := &mockTicketRepo{
		countSoldFn: func(ctx context.Context, eventID uint) (int64, error) {
			return 100, nil
		},
		countSoldDiscountFn: func(ctx context.Context, eventID uint) (int64, error) {
			return 50, nil
		},
	}
	svc := newPricingService(eventRepoReturning(event), tickets)

	result, err := svc.GetPricingSuggestions(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, "high", result.PriceElasticity.Level)
	assert.Equal(t, 0.5, result.PriceElasticity.PromoUsageRatio)

	capped := result.Tiers[0]
	assert.Equal(t, "increase", capped.Direction)
	assert.Equal(t, 10.0, capped.AdjustmentPercent)
	assert.Equal(t, int64(11000), capped.SuggestedPriceCents)
	assert.Contains(t, capped.Reasoning, "Capped due to high price sensitivity")

	deepened := result.Tiers[1]
	assert.Equal(t, "decrease", deepened.Direction)
	assert.Equal(t, -30.0, deepened.AdjustmentPercent)
	assert.Equal(t, int64(5600), deepened.SuggestedPriceCents)
}

func TestGetPricingSuggestions_Hold(t *testing.T) {
	event := upcomingEvent(4, 2, tier(1, 10000, 100, 50))
	tickets := &mockTicketRepo{
		countSoldFn: func(ctx context.Context, eventID uint) (int64, error) {
			return 50, nil
		},
	}
	svc := newPricingService(eventRepoReturning(event), tickets)

	result, err := svc.GetPricingSuggestions(context.Background(), 4)

	assert.NoError(t, err)
	s := result.Tiers[0]
	assert.Equal(t, "hold", s.Direction)
	assert.Equal(t, 0.0, s.AdjustmentPercent)
	assert.Equal(t, int64(10000), s.SuggestedPriceCents)
	assert.Contains(t, s.Reasoning, "Current pricing is appropriate")
	assert.Equal(t, "These are suggestions only. No prices have been changed.", result.Note)
}

func TestGetPricingSuggestions_NoTiers(t *testing.T) {
	event := upcomingEvent(5, 10)
	svc := newPricingService(eventRepoReturning(event), &mockTicketRepo{})

	result, err := svc.GetPricingSuggestions(context.Background(), 5)

	assert.ErrorIs(t, err, ErrNoTiers)
	assert.Nil(t, result)
}

func TestGetPricingSuggestions_NotFound(t *testing.T) {
	events := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newPricingService(events, &mockTicketRepo{})

	result, err := svc.GetPricingSuggestions(context.Background(), 999)

	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Nil(t, result)
}
