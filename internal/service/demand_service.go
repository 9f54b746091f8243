package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Thedurancode/aitickets-sub000/internal/dto"
	"github.com/Thedurancode/aitickets-sub000/internal/models"
	"github.com/Thedurancode/aitickets-sub000/internal/repository"
	"gorm.io/gorm"
)

// DemandService predicts sell-out likelihood and sales pacing for a
// single upcoming event from five independent signals: sell-through,
// velocity vs. comparable past events, waitlist pressure, page-view
// trend and time scarcity.
type DemandService interface {
	PredictDemand(ctx context.Context, eventID uint) (*dto.DemandForecast, error)
}

type demandService struct {
	events     repository.EventRepository
	tickets    repository.TicketRepository
	engagement repository.EngagementRepository
	settings   Settings
}

func NewDemandService(events repository.EventRepository, tickets repository.TicketRepository, engagement repository.EngagementRepository, settings Settings) DemandService {
	return &demandService{events: events, tickets: tickets, engagement: engagement, settings: settings}
}

func (s *demandService) PredictDemand(ctx context.Context, eventID uint) (*dto.DemandForecast, error) {
	now := time.Now().UTC()

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("load event: %w", err)
	}

	startsAt, parsed := event.StartsAt()
	if parsed && startsAt.Before(now) {
		return nil, ErrEventInPast
	}
	daysUntil := daysUntilEvent(now, startsAt, parsed, s.settings.FallbackDaysUntil)

	totalAvailable, totalSold := 0, 0
	for _, t := range event.Tiers {
		totalAvailable += t.QuantityAvailable
		totalSold += t.QuantitySold
	}
	totalRemaining := max(totalAvailable-totalSold, 0)

	if totalAvailable == 0 {
		return &dto.DemandForecast{
			EventID:          event.ID,
			EventName:        event.Name,
			EventDate:        event.EventDate,
			InsufficientData: true,
			Message:          "No ticket tiers configured for this event.",
			SelloutPace:      dto.SelloutPace{DaysUntilEvent: daysUntil, OnTrack: true, Message: "No remaining inventory.", Tiers: []dto.TierPace{}},
			Signals:          dto.DemandSignals{DaysUntilEvent: daysUntil},
		}, nil
	}

	earliest, err := s.tickets.EarliestPurchase(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("earliest purchase: %w", err)
	}

	waitlistCount, err := s.engagement.CountWaiting(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("waitlist count: %w", err)
	}

	viewsRecent, err := s.engagement.CountEventPageViews(ctx, eventID, models.PageKindDetail, now.AddDate(0, 0, -3), now)
	if err != nil {
		return nil, fmt.Errorf("recent page views: %w", err)
	}
	viewsPrior, err := s.engagement.CountEventPageViews(ctx, eventID, models.PageKindDetail, now.AddDate(0, 0, -7), now.AddDate(0, 0, -3))
	if err != nil {
		return nil, fmt.Errorf("prior page views: %w", err)
	}

	histSold, histAvail, histCount, err := s.events.HistoricalSellThrough(ctx, eventID, event.CategoryIDs(), event.VenueID, now.Format(dayLayout))
	if err != nil {
		return nil, fmt.Errorf("historical sell-through: %w", err)
	}
	histSellThrough := float64(histSold) / float64(max(histAvail, 1))

	sellThrough := float64(totalSold) / float64(max(totalAvailable, 1))

	daysOnSale := 1
	velocity := 0.0
	if earliest != nil {
		daysOnSale = max(wholeDays(now.Sub(earliest.UTC())), 1)
		velocity = float64(totalSold) / float64(daysOnSale)
	}

	// Pace and traffic terms only contribute once they have data:
	// an event with no recorded purchases has no velocity to compare,
	// and one nobody has viewed has no trend.
	velocityRatio := 0.0
	if velocity > 0 {
		velocityRatio = min(sellThrough/math.Max(histSellThrough, 0.01), 2.0)
	}
	waitlistPressure := min(float64(waitlistCount)/float64(max(totalAvailable, 1)), 1.0)
	viewTrend := float64(viewsRecent+1) / float64(max(viewsPrior+1, 1))
	viewTrendNorm := 0.0
	if viewsRecent+viewsPrior > 0 {
		viewTrendNorm = min(viewTrend/2.0, 1.0)
	}
	timeScarcity := 0.0
	if daysUntil <= 30 {
		timeScarcity = 1.0 / float64(max(daysUntil, 1))
	}
	timeScarcityNorm := min(timeScarcity*10, 1.0)

	raw := sellThrough*30 +
		min(velocityRatio/2.0, 1.0)*25 +
		waitlistPressure*15 +
		viewTrendNorm*15 +
		timeScarcityNorm*15
	demandScore := max(0, min(100, int(math.Round(raw))))

	// Logistic curve centered at score 50, so a score of 50 maps to
	// exactly a 50% sell-out probability.
	const k = 0.1
	selloutProbability := round1(100 / (1 + math.Exp(-k*(float64(demandScore)-50))))

	var projectedSelloutDate *string
	if velocity > 0 && totalRemaining > 0 {
		daysToSellout := float64(totalRemaining) / velocity
		projected := now.Add(time.Duration(daysToSellout * float64(24*time.Hour)))
		if daysUntil == 0 || (parsed && !projected.After(startsAt)) {
			d := projected.Format(dayLayout)
			projectedSelloutDate = &d
		}
	}

	requiredPerDay := 0.0
	if totalRemaining > 0 {
		requiredPerDay = round2(float64(totalRemaining) / float64(max(daysUntil, 1)))
	}
	onTrack := true
	if requiredPerDay > 0 {
		onTrack = velocity >= requiredPerDay
	}
	paceRatio := 0.0
	if requiredPerDay > 0 && velocity > 0 {
		paceRatio = round2(velocity / requiredPerDay)
	}

	var paceMessage string
	switch {
	case requiredPerDay > 0 && !onTrack:
		paceMessage = fmt.Sprintf("Selling %.1f/day — need %v/day to sell out by %s.", round1(velocity), requiredPerDay, event.EventDate)
	case requiredPerDay > 0:
		paceMessage = fmt.Sprintf("On track at %.1f/day (need %v/day).", round1(velocity), requiredPerDay)
	default:
		paceMessage = "No remaining inventory."
	}

	tierPace := make([]dto.TierPace, 0, len(event.Tiers))
	for _, t := range event.Tiers {
		tierRemaining := t.Remaining()
		tierRequired := 0.0
		if tierRemaining > 0 {
			tierRequired = round2(float64(tierRemaining) / float64(max(daysUntil, 1)))
		}
		tierSoldCount, err := s.tickets.CountSoldByTier(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("tier sold count: %w", err)
		}
		tierVelocity := round2(float64(tierSoldCount) / float64(max(daysOnSale, 1)))
		tierOnTrack := true
		if tierRequired > 0 {
			tierOnTrack = tierVelocity >= tierRequired
		}
		tierPace = append(tierPace, dto.TierPace{
			TierID:         t.ID,
			TierName:       t.Name,
			Sold:           t.QuantitySold,
			Remaining:      tierRemaining,
			Capacity:       t.QuantityAvailable,
			RequiredPerDay: tierRequired,
			CurrentPerDay:  tierVelocity,
			OnTrack:        tierOnTrack,
		})
	}

	return &dto.DemandForecast{
		EventID:                   event.ID,
		EventName:                 event.Name,
		EventDate:                 event.EventDate,
		DemandScore:               demandScore,
		SelloutProbabilityPercent: selloutProbability,
		ProjectedSelloutDate:      projectedSelloutDate,
		Inventory: dto.InventorySummary{
			TotalAvailable:     totalAvailable,
			TotalSold:          totalSold,
			TotalRemaining:     totalRemaining,
			SellThroughPercent: round1(sellThrough * 100),
		},
		Velocity: dto.VelocitySummary{
			TicketsPerDay: round2(velocity),
			DaysOnSale:    daysOnSale,
		},
		SelloutPace: dto.SelloutPace{
			DaysUntilEvent: daysUntil,
			RequiredPerDay: requiredPerDay,
			CurrentPerDay:  round2(velocity),
			PaceRatio:      paceRatio,
			OnTrack:        onTrack,
			Message:        paceMessage,
			Tiers:          tierPace,
		},
		Signals: dto.DemandSignals{
			WaitlistSize:        waitlistCount,
			PageViewsLast3Days:  viewsRecent,
			PageViewsPrior4Days: viewsPrior,
			ViewTrendRatio:      round2(viewTrend),
			DaysUntilEvent:      daysUntil,
		},
		HistoricalComparison: dto.HistoricalComparison{
			SimilarEventsCount:    histCount,
			AvgSellThroughPercent: round1(histSellThrough * 100),
		},
	}, nil
}
