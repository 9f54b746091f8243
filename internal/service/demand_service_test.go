package service

import (
	"context"
	"testing"
	"time"

	"github.com/Thedurancode/aitickets-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newDemandService(events *mockEventRepo, tickets *mockTicketRepo, engagement *mockEngagementRepo) DemandService {
	return NewDemandService(events, tickets, engagement, DefaultSettings())
}

func eventRepoReturning(event *models.Event) *mockEventRepo {
	return &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return event, nil
		},
	}
}

// Event 10 days out, 90 of 100 sold, but no recorded purchases, views
// or waitlist: only sell-through (27) and time scarcity (15) score.
func TestPredictDemand_HighSellThroughNoVelocity(t *testing.T) {
	event := upcomingEvent(1, 10, tier(1, 5000, 100, 90))
	svc := newDemandService(eventRepoReturning(event), &mockTicketRepo{}, &mockEngagementRepo{})

	forecast, err := svc.PredictDemand(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 42, forecast.DemandScore)
	assert.Equal(t, 31.0, forecast.SelloutProbabilityPercent)
	assert.Nil(t, forecast.ProjectedSelloutDate)
	assert.False(t, forecast.InsufficientData)

	assert.Equal(t, 100, forecast.Inventory.TotalAvailable)
	assert.Equal(t, 90, forecast.Inventory.TotalSold)
	assert.Equal(t, 10, forecast.Inventory.TotalRemaining)
	assert.Equal(t, 90.0, forecast.Inventory.SellThroughPercent)

	assert.Equal(t, 0.0, forecast.Velocity.TicketsPerDay)
	assert.False(t, forecast.SelloutPace.OnTrack)
	assert.Greater(t, forecast.SelloutPace.RequiredPerDay, 0.0)
}

// A score of exactly 50 must map to exactly a 50% sell-out probability.
func TestPredictDemand_LogisticMidpoint(t *testing.T) {
	event := upcomingEvent(2, 40, tier(1, 5000, 100, 100))
	engagement := &mockEngagementRepo{
		countWaitingFn: func(ctx context.Context, eventID uint) (int64, error) {
			return 100, nil
		},
		countEventPageViewsFn: func(ctx context.Context, eventID uint, page string, from, to time.Time) (int64, error) {
			// Recent window ends at now; prior window ends 3 days back.
			if to.After(time.Now().UTC().AddDate(0, 0, -1)) {
				return 1, nil
			}
			return 2, nil
		},
	}
	svc := newDemandService(eventRepoReturning(event), &mockTicketRepo{}, engagement)

	forecast, err := svc.PredictDemand(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, 50, forecast.DemandScore)
	assert.Equal(t, 50.0, forecast.SelloutProbabilityPercent)
}

func TestPredictDemand_ScoreWithinBounds(t *testing.T) {
	// Everything maxed: sold out, huge waitlist, surging views, event
	// tomorrow. The score must still clamp to 100.
	event := upcomingEvent(3, 1, tier(1, 5000, 100, 100))
	tickets := &mockTicketRepo{
		earliestPurchaseFn: func(ctx context.Context, eventID uint) (*time.Time, error) {
			return timePtr(time.Now().UTC().AddDate(0, 0, -5)), nil
		},
	}
	engagement := &mockEngagementRepo{
		countWaitingFn: func(ctx context.Context, eventID uint) (int64, error) {
			return 500, nil
		},
		countEventPageViewsFn: func(ctx context.Context, eventID uint, page string, from, to time.Time) (int64, error) {
			if to.After(time.Now().UTC().AddDate(0, 0, -1)) {
				return 1000, nil
			}
			return 0, nil
		},
	}
	svc := newDemandService(eventRepoReturning(event), tickets, engagement)

	forecast, err := svc.PredictDemand(context.Background(), 3)

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, forecast.DemandScore, 0)
	assert.LessOrEqual(t, forecast.DemandScore, 100)
	assert.Equal(t, 100, forecast.DemandScore)
}

func TestPredictDemand_ProjectedSelloutDate(t *testing.T) {
	// 50 remaining at 5/day sells out in 10 days, before the event in
	// 20 days, so a projected date is reported.
	event := upcomingEvent(4, 20, tier(1, 5000, 100, 50))
	tickets := &mockTicketRepo{
		earliestPurchaseFn: func(ctx context.Context, eventID uint) (*time.Time, error) {
			return timePtr(time.Now().UTC().AddDate(0, 0, -10)), nil
		},
	}
	svc := newDemandService(eventRepoReturning(event), tickets, &mockEngagementRepo{})

	forecast, err := svc.PredictDemand(context.Background(), 4)

	assert.NoError(t, err)
	assert.NotNil(t, forecast.ProjectedSelloutDate)
	assert.Equal(t, 5.0, forecast.Velocity.TicketsPerDay)
	assert.Equal(t, 10, forecast.Velocity.DaysOnSale)
}

func TestPredictDemand_NotFound(t *testing.T) {
	events := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newDemandService(events, &mockTicketRepo{}, &mockEngagementRepo{})

	forecast, err := svc.PredictDemand(context.Background(), 999)

	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Nil(t, forecast)
}

func TestPredictDemand_PastEvent(t *testing.T) {
	event := upcomingEvent(5, -1, tier(1, 5000, 100, 50))
	svc := newDemandService(eventRepoReturning(event), &mockTicketRepo{}, &mockEngagementRepo{})

	forecast, err := svc.PredictDemand(context.Background(), 5)

	assert.ErrorIs(t, err, ErrEventInPast)
	assert.Nil(t, forecast)
}

func TestPredictDemand_NoTiers(t *testing.T) {
	event := upcomingEvent(6, 10)
	svc := newDemandService(eventRepoReturning(event), &mockTicketRepo{}, &mockEngagementRepo{})

	forecast, err := svc.PredictDemand(context.Background(), 6)

	assert.NoError(t, err)
	assert.True(t, forecast.InsufficientData)
	assert.Equal(t, "No ticket tiers configured for this event.", forecast.Message)
	assert.Equal(t, 0, forecast.DemandScore)
	assert.Equal(t, 10, forecast.SelloutPace.DaysUntilEvent)
}

func TestPredictDemand_PerTierPace(t *testing.T) {
	event := upcomingEvent(7, 10,
		tier(1, 5000, 100, 100),
		tier(2, 10000, 50, 10),
	)
	tickets := &mockTicketRepo{
		earliestPurchaseFn: func(ctx context.Context, eventID uint) (*time.Time, error) {
			return timePtr(time.Now().UTC().AddDate(0, 0, -10)), nil
		},
		countSoldByTierFn: func(ctx context.Context, tierID uint) (int64, error) {
			if tierID == 1 {
				return 100, nil
			}
			return 10, nil
		},
	}
	svc := newDemandService(eventRepoReturning(event), tickets, &mockEngagementRepo{})

	forecast, err := svc.PredictDemand(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, forecast.SelloutPace.Tiers, 2)

	soldOut := forecast.SelloutPace.Tiers[0]
	assert.Equal(t, 0, soldOut.Remaining)
	assert.True(t, soldOut.OnTrack)

	slow := forecast.SelloutPace.Tiers[1]
	assert.Equal(t, 40, slow.Remaining)
	assert.Equal(t, 4.0, slow.RequiredPerDay)
	assert.Equal(t, 1.0, slow.CurrentPerDay)
	assert.False(t, slow.OnTrack)
}
