package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetTrendingEvents_Ranking(t *testing.T) {
	hot := upcomingEvent(1, 5, tier(1, 5000, 100, 40))
	warm := upcomingEvent(2, 6)
	cold := upcomingEvent(3, 7)

	engagement := &mockEngagementRepo{
		pageViewCountsFn: func(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error) {
			return map[uint]int64{1: 100, 2: 10}, nil
		},
		waitlistCountsFn: func(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error) {
			return map[uint]int64{1: 3}, nil
		},
	}
	tickets := &mockTicketRepo{
		salesCountsSinceFn: func(ctx context.Context, eventIDs []uint, since time.Time) (map[uint]int64, error) {
			return map[uint]int64{1: 5, 2: 1}, nil
		},
	}
	svc := NewTrendingService(upcomingRepo(*hot, *warm, *cold), tickets, engagement, DefaultSettings())

	report, err := svc.GetTrendingEvents(context.Background(), 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, 7, report.PeriodDays)
	assert.Len(t, report.TrendingEvents, 3)

	first := report.TrendingEvents[0]
	assert.Equal(t, uint(1), first.EventID)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, 1.0, first.TrendingScore)
	assert.Equal(t, int64(100), first.Signals.PageViews)
	assert.Equal(t, int64(5), first.Signals.RecentSales)
	assert.Equal(t, int64(3), first.Signals.WaitlistEntries)
	assert.Equal(t, 40.0, first.SellThroughPercent)
	assert.Equal(t, 60, first.TicketsRemaining)

	second := report.TrendingEvents[1]
	assert.Equal(t, uint(2), second.EventID)
	assert.Equal(t, 0.11, second.TrendingScore)

	third := report.TrendingEvents[2]
	assert.Equal(t, uint(3), third.EventID)
	assert.Equal(t, 0.0, third.TrendingScore)
}

func TestGetTrendingEvents_LimitApplied(t *testing.T) {
	svc := NewTrendingService(
		upcomingRepo(*upcomingEvent(1, 5), *upcomingEvent(2, 6), *upcomingEvent(3, 7)),
		&mockTicketRepo{}, &mockEngagementRepo{}, DefaultSettings(),
	)

	report, err := svc.GetTrendingEvents(context.Background(), 14, 2)

	assert.NoError(t, err)
	assert.Equal(t, 14, report.PeriodDays)
	assert.Len(t, report.TrendingEvents, 2)
}

func TestGetTrendingEvents_NoUpcoming(t *testing.T) {
	svc := NewTrendingService(upcomingRepo(), &mockTicketRepo{}, &mockEngagementRepo{}, DefaultSettings())

	report, err := svc.GetTrendingEvents(context.Background(), 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, 7, report.PeriodDays)
	assert.NotNil(t, report.TrendingEvents)
	assert.Empty(t, report.TrendingEvents)
}
