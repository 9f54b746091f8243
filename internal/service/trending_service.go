package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Thedurancode/aitickets-sub000/internal/dto"
	"github.com/Thedurancode/aitickets-sub000/internal/repository"
	"github.com/Thedurancode/aitickets-sub000/internal/stats"
)

// TrendingService ranks upcoming events by windowed page views,
// recent sales and fresh waitlist entries.
type TrendingService interface {
	GetTrendingEvents(ctx context.Context, days, limit int) (*dto.TrendingReport, error)
}

type trendingService struct {
	events     repository.EventRepository
	tickets    repository.TicketRepository
	engagement repository.EngagementRepository
	settings   Settings
}

func NewTrendingService(events repository.EventRepository, tickets repository.TicketRepository, engagement repository.EngagementRepository, settings Settings) TrendingService {
	return &trendingService{events: events, tickets: tickets, engagement: engagement, settings: settings}
}

const (
	trendViewWeight     = 0.40
	trendSalesWeight    = 0.35
	trendWaitlistWeight = 0.25
)

func (s *trendingService) GetTrendingEvents(ctx context.Context, days, limit int) (*dto.TrendingReport, error) {
	now := time.Now().UTC()
	if days <= 0 {
		days = s.settings.TrendingDays
	}
	if limit <= 0 {
		limit = s.settings.TrendingLimit
	}
	cutoff := now.AddDate(0, 0, -days)

	events, err := s.events.FindUpcoming(ctx, now.Format(dayLayout))
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	if len(events) == 0 {
		return &dto.TrendingReport{PeriodDays: days, TrendingEvents: []dto.TrendingEvent{}}, nil
	}

	ids := make([]uint, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	viewCounts, err := s.engagement.PageViewCounts(ctx, ids, cutoff)
	if err != nil {
		return nil, fmt.Errorf("page views: %w", err)
	}
	saleCounts, err := s.tickets.SalesCountsSince(ctx, ids, cutoff)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	waitlistCounts, err := s.engagement.WaitlistCountsSince(ctx, ids, cutoff)
	if err != nil {
		return nil, fmt.Errorf("waitlist entries: %w", err)
	}

	views := make([]float64, len(events))
	sales := make([]float64, len(events))
	waitlist := make([]float64, len(events))
	for i, e := range events {
		views[i] = float64(viewCounts[e.ID])
		sales[i] = float64(saleCounts[e.ID])
		waitlist[i] = float64(waitlistCounts[e.ID])
	}

	viewNorm := stats.MinMaxNormalize(views)
	saleNorm := stats.MinMaxNormalize(sales)
	waitlistNorm := stats.MinMaxNormalize(waitlist)

	order := make([]int, len(events))
	scores := make([]float64, len(events))
	for i := range events {
		order[i] = i
		scores[i] = viewNorm[i]*trendViewWeight + saleNorm[i]*trendSalesWeight + waitlistNorm[i]*trendWaitlistWeight
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if limit > len(order) {
		limit = len(order)
	}

	results := make([]dto.TrendingEvent, 0, limit)
	for rank, idx := range order[:limit] {
		e := events[idx]
		avail, sold := 0, 0
		for _, t := range e.Tiers {
			avail += t.QuantityAvailable
			sold += t.QuantitySold
		}

		var venueName *string
		if e.Venue != nil {
			venueName = &e.Venue.Name
		}

		results = append(results, dto.TrendingEvent{
			Rank:          rank + 1,
			EventID:       e.ID,
			EventName:     e.Name,
			EventDate:     e.EventDate,
			VenueName:     venueName,
			TrendingScore: round2(scores[idx]),
			Signals: dto.TrendingSignals{
				PageViews:       viewCounts[e.ID],
				RecentSales:     saleCounts[e.ID],
				WaitlistEntries: waitlistCounts[e.ID],
			},
			SellThroughPercent: round1(float64(sold) / float64(max(avail, 1)) * 100),
			TicketsRemaining:   max(avail-sold, 0),
		})
	}

	return &dto.TrendingReport{PeriodDays: days, TrendingEvents: results}, nil
}
