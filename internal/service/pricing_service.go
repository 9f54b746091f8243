package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Thedurancode/aitickets-sub000/internal/dto"
	"github.com/Thedurancode/aitickets-sub000/internal/repository"
	"gorm.io/gorm"
)

// PricingService suggests per-tier price adjustments from sell-through
// pace and promo-derived price elasticity. Suggestions are advisory;
// nothing here writes prices back.
type PricingService interface {
	GetPricingSuggestions(ctx context.Context, eventID uint) (*dto.PricingSuggestions, error)
}

type pricingService struct {
	events   repository.EventRepository
	tickets  repository.TicketRepository
	settings Settings
}

func NewPricingService(events repository.EventRepository, tickets repository.TicketRepository, settings Settings) PricingService {
	return &pricingService{events: events, tickets: tickets, settings: settings}
}

func (s *pricingService) GetPricingSuggestions(ctx context.Context, eventID uint) (*dto.PricingSuggestions, error) {
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

	if len(event.Tiers) == 0 {
		return nil, ErrNoTiers
	}

	promoCount, err := s.tickets.CountSoldWithDiscount(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("promo ticket count: %w", err)
	}
	soldCount, err := s.tickets.CountSold(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("sold ticket count: %w", err)
	}
	promoRatio := float64(promoCount) / float64(max(soldCount, 1))

	var level, interpretation string
	switch {
	case promoRatio > 0.4:
		level = "high"
		interpretation = "Customers are price-sensitive — many used promo codes."
	case promoRatio > 0.15:
		level = "medium"
		interpretation = "Moderate price sensitivity — some promo code usage."
	default:
		level = "low"
		interpretation = "Customers show low price sensitivity — room for increases."
	}

	histAvgPrice, err := s.events.HistoricalAvgPriceCents(ctx, event.CategoryIDs(), now.Format(dayLayout))
	if err != nil {
		return nil, fmt.Errorf("historical avg price: %w", err)
	}

	suggestions := make([]dto.TierSuggestion, 0, len(event.Tiers))
	for _, tier := range event.Tiers {
		st := float64(tier.QuantitySold) / float64(max(tier.QuantityAvailable, 1))
		stPct := int(math.Round(st * 100))

		adjustment := 0.0
		direction := "hold"
		confidence := "medium"
		var reasoning string

		// Ordered decision table; first match wins.
		switch {
		case st >= 0.90:
			adjustment, direction, confidence = 0.20, "increase", "high"
			reasoning = fmt.Sprintf("Tier is %d%% sold. Very strong demand supports a 20%% increase.", stPct)
		case st >= 0.80 && daysUntil > 3:
			adjustment, direction, confidence = 0.15, "increase", "high"
			reasoning = fmt.Sprintf("Tier is %d%% sold with %d days remaining. Strong demand supports a 15%% increase.", stPct, daysUntil)
		case st >= 0.60 && daysUntil > 7:
			adjustment, direction, confidence = 0.10, "increase", "medium"
			reasoning = fmt.Sprintf("Tier is %d%% sold with %d days to go. Moderate demand — consider a 10%% increase.", stPct, daysUntil)
		case st < 0.15 && daysUntil < 3:
			adjustment, direction, confidence = -0.25, "decrease", "high"
			reasoning = fmt.Sprintf("Only %d%% sold with %d days left. Aggressive discount recommended.", stPct, daysUntil)
		case st < 0.30 && daysUntil < 7:
			adjustment, direction, confidence = -0.15, "decrease", "medium"
			reasoning = fmt.Sprintf("Only %d%% sold with %d days remaining. Consider a 15%% discount to drive sales.", stPct, daysUntil)
		case st < 0.40 && daysUntil < 14:
			adjustment, direction, confidence = -0.10, "decrease", "low"
			reasoning = fmt.Sprintf("%d%% sold with %d days to go. A modest discount may help.", stPct, daysUntil)
		default:
			reasoning = fmt.Sprintf("Tier is %d%% sold with %d days remaining. Current pricing is appropriate.", stPct, daysUntil)
		}

		if level == "high" && direction == "increase" {
			adjustment = min(adjustment, 0.10)
			reasoning += " (Capped due to high price sensitivity.)"
		} else if level == "high" && direction == "decrease" {
			adjustment *= 1.2
		}

		suggested := int64(math.Round(float64(tier.PriceCents) * (1 + adjustment)))
		suggested = max(suggested, 0)

		suggestions = append(suggestions, dto.TierSuggestion{
			TierID:                tier.ID,
			TierName:              tier.Name,
			CurrentPriceCents:     tier.PriceCents,
			CurrentPriceDisplay:   dto.FormatCents(s.settings.CurrencySymbol, tier.PriceCents),
			SellThroughPercent:    round1(st * 100),
			Remaining:             tier.Remaining(),
			SuggestedPriceCents:   suggested,
			SuggestedPriceDisplay: dto.FormatCents(s.settings.CurrencySymbol, suggested),
			AdjustmentPercent:     round1(adjustment * 100),
			Direction:             direction,
			Confidence:            confidence,
			Reasoning:             reasoning,
		})
	}

	return &dto.PricingSuggestions{
		EventID:        event.ID,
		EventName:      event.Name,
		EventDate:      event.EventDate,
		DaysUntilEvent: daysUntil,
		PriceElasticity: dto.PriceElasticity{
			PromoUsageRatio: round3(promoRatio),
			Level:           level,
			Interpretation:  interpretation,
		},
		Tiers:                   suggestions,
		HistoricalAvgPriceCents: histAvgPrice,
		Note:                    "These are suggestions only. No prices have been changed.",
	}, nil
}
