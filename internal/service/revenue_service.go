package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Thedurancode/aitickets-sub000/internal/dto"
	"github.com/Thedurancode/aitickets-sub000/internal/repository"
)

// RevenueService projects revenue for all events inside a time
// horizon, with a heuristic low/mid/high band derived from a single
// confidence scalar.
type RevenueService interface {
	ForecastRevenue(ctx context.Context, timeHorizonDays int) (*dto.RevenueForecast, error)
}

type revenueService struct {
	events   repository.EventRepository
	tickets  repository.TicketRepository
	settings Settings
}

func NewRevenueService(events repository.EventRepository, tickets repository.TicketRepository, settings Settings) RevenueService {
	return &revenueService{events: events, tickets: tickets, settings: settings}
}

func (s *revenueService) ForecastRevenue(ctx context.Context, timeHorizonDays int) (*dto.RevenueForecast, error) {
	now := time.Now().UTC()
	if timeHorizonDays <= 0 {
		timeHorizonDays = s.settings.RevenueHorizonDays
	}
	today := now.Format(dayLayout)
	horizon := now.AddDate(0, 0, timeHorizonDays).Format(dayLayout)

	upcoming, err := s.events.FindUpcomingWithin(ctx, today, horizon)
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	if len(upcoming) == 0 {
		return &dto.RevenueForecast{
			TimeHorizonDays: timeHorizonDays,
			Events:          []dto.EventRevenueForecast{},
			Message:         fmt.Sprintf("No upcoming events in the next %d days.", timeHorizonDays),
		}, nil
	}

	histSold, histAvail, err := s.events.HistoricalInventory(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("historical inventory: %w", err)
	}
	histCompletionRate := min(float64(histSold)/float64(max(histAvail, 1)), 1.0)

	var totalCurrent, totalLow, totalMid, totalHigh float64
	forecasts := make([]dto.EventRevenueForecast, 0, len(upcoming))

	for _, event := range upcoming {
		if len(event.Tiers) == 0 {
			continue
		}

		currentRev, err := s.tickets.SoldRevenueCents(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("current revenue: %w", err)
		}

		totalAvailable, totalSold := 0, 0
		for _, t := range event.Tiers {
			totalAvailable += t.QuantityAvailable
			totalSold += t.QuantitySold
		}
		totalRemaining := max(totalAvailable-totalSold, 0)

		var weightedPrice float64
		if totalRemaining > 0 {
			var sum float64
			for _, t := range event.Tiers {
				sum += float64(t.PriceCents) * float64(t.Remaining())
			}
			weightedPrice = sum / float64(totalRemaining)
		} else {
			var sum float64
			for _, t := range event.Tiers {
				sum += float64(t.PriceCents)
			}
			weightedPrice = sum / float64(max(len(event.Tiers), 1))
		}

		earliest, err := s.tickets.EarliestPurchase(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("earliest purchase: %w", err)
		}
		velocity := 0.0
		if earliest != nil && totalSold > 0 {
			daysOnSale := max(wholeDays(now.Sub(earliest.UTC())), 1)
			velocity = float64(totalSold) / float64(daysOnSale)
		}

		startsAt, parsed := event.StartsAt()
		daysUntil := daysUntilEvent(now, startsAt, parsed, s.settings.FallbackDaysUntil)

		var projectedAdditional float64
		if velocity > 0 && daysUntil > 0 {
			projectedAdditional = min(velocity*float64(daysUntil), float64(totalRemaining))
		} else {
			projectedAdditional = float64(totalRemaining) * histCompletionRate
		}
		projectedRev := projectedAdditional * weightedPrice

		// More sales mean a tighter band: full data quality once 10%
		// of capacity has sold.
		dataQuality := min(float64(totalSold)/math.Max(float64(totalAvailable)*0.1, 1), 1.0)
		confidence := 0.3 + dataQuality*0.4 + min(histCompletionRate, 0.5)*0.3

		cur := float64(currentRev)
		mid := cur + projectedRev
		spread := math.Max(1.0-confidence, 0.2)
		low := cur + projectedRev*math.Max(1.0-spread, 0.1)
		high := cur + projectedRev*min(1.0+spread, 2.0)

		totalCurrent += cur
		totalLow += low
		totalMid += mid
		totalHigh += high

		var venueName *string
		if event.Venue != nil {
			venueName = &event.Venue.Name
		}

		forecasts = append(forecasts, dto.EventRevenueForecast{
			EventID:             event.ID,
			EventName:           event.Name,
			EventDate:           event.EventDate,
			VenueName:           venueName,
			CurrentRevenueCents: currentRev,
			ProjectedRevenue: dto.RevenueBand{
				LowCents:  int64(math.Round(low)),
				MidCents:  int64(math.Round(mid)),
				HighCents: int64(math.Round(high)),
			},
			Tickets: dto.ForecastTickets{
				Sold:                totalSold,
				Remaining:           totalRemaining,
				Capacity:            totalAvailable,
				ProjectedAdditional: int(math.Round(projectedAdditional)),
			},
			VelocityPerDay: round2(velocity),
			DaysUntilEvent: daysUntil,
			Confidence:     round2(confidence),
		})
	}

	sort.SliceStable(forecasts, func(a, b int) bool {
		return forecasts[a].ProjectedRevenue.MidCents > forecasts[b].ProjectedRevenue.MidCents
	})

	return &dto.RevenueForecast{
		TimeHorizonDays:     timeHorizonDays,
		TotalEvents:         len(forecasts),
		CurrentRevenueCents: int64(math.Round(totalCurrent)),
		ProjectedRevenue: dto.RevenueBand{
			LowCents:  int64(math.Round(totalLow)),
			MidCents:  int64(math.Round(totalMid)),
			HighCents: int64(math.Round(totalHigh)),
		},
		HistoricalCompletionRatePercent: round1(histCompletionRate * 100),
		Events:                          forecasts,
	}, nil
}
