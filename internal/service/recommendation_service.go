package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Thedurancode/aitickets-sub000/internal/dto"
	"github.com/Thedurancode/aitickets-sub000/internal/models"
	"github.com/Thedurancode/aitickets-sub000/internal/repository"
	"github.com/Thedurancode/aitickets-sub000/internal/stats"
	"gorm.io/gorm"
)

// RecommendationService ranks upcoming events for one customer by
// blending content match (favorite types vs categories), collaborative
// filtering (what co-attendees are buying) and recent popularity.
type RecommendationService interface {
	RecommendEvents(ctx context.Context, customerID uint, customerEmail string, limit int) (*dto.Recommendations, error)
}

type recommendationService struct {
	events     repository.EventRepository
	tickets    repository.TicketRepository
	customers  repository.CustomerRepository
	engagement repository.EngagementRepository
	settings   Settings
}

func NewRecommendationService(events repository.EventRepository, tickets repository.TicketRepository, customers repository.CustomerRepository, engagement repository.EngagementRepository, settings Settings) RecommendationService {
	return &recommendationService{events: events, tickets: tickets, customers: customers, engagement: engagement, settings: settings}
}

const (
	contentWeight       = 0.40
	collaborativeWeight = 0.35
	popularityWeight    = 0.25
)

func (s *recommendationService) RecommendEvents(ctx context.Context, customerID uint, customerEmail string, limit int) (*dto.Recommendations, error) {
	now := time.Now().UTC()
	today := now.Format(dayLayout)

	var goer *models.EventGoer
	var err error
	switch {
	case customerID != 0:
		goer, err = s.customers.FindByID(ctx, customerID)
	case customerEmail != "":
		goer, err = s.customers.FindByEmail(ctx, customerEmail)
	default:
		return nil, ErrNoCustomerRef
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("load customer: %w", err)
	}

	pref, err := s.customers.FindPreference(ctx, goer.ID)
	if err != nil {
		return nil, fmt.Errorf("load preference: %w", err)
	}

	upcoming, err := s.events.FindUpcoming(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	if len(upcoming) == 0 {
		return &dto.Recommendations{
			CustomerID:      goer.ID,
			CustomerName:    goer.Name,
			Recommendations: []dto.Recommendation{},
			Message:         "No upcoming events to recommend.",
		}, nil
	}

	attendedIDs, err := s.tickets.EventIDsForGoer(ctx, goer.ID)
	if err != nil {
		return nil, fmt.Errorf("attended events: %w", err)
	}
	attended := make(map[uint]struct{}, len(attendedIDs))
	for _, id := range attendedIDs {
		attended[id] = struct{}{}
	}

	candidates := make([]models.Event, 0, len(upcoming))
	for _, e := range upcoming {
		if _, held := attended[e.ID]; !held {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		// Customer holds tickets to everything upcoming; recommend
		// from the full set instead of nothing.
		candidates = upcoming
	}

	contentRaw := s.contentScores(pref, candidates)

	collabRaw := make([]float64, len(candidates))
	if len(attendedIDs) > 0 {
		coIDs, err := s.tickets.CoAttendeeIDs(ctx, attendedIDs, goer.ID)
		if err != nil {
			return nil, fmt.Errorf("co-attendees: %w", err)
		}
		buyerCounts, err := s.tickets.BuyerCountsForUpcoming(ctx, coIDs, today)
		if err != nil {
			return nil, fmt.Errorf("co-attendee purchases: %w", err)
		}
		for i, e := range candidates {
			collabRaw[i] = float64(buyerCounts[e.ID])
		}
	}

	viewCounts, err := s.engagement.PageViewCounts(ctx, nil, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("page views: %w", err)
	}
	popularityRaw := make([]float64, len(candidates))
	for i, e := range candidates {
		avail, sold := 0, 0
		for _, t := range e.Tiers {
			avail += t.QuantityAvailable
			sold += t.QuantitySold
		}
		sellRate := float64(sold) / float64(max(avail, 1))
		popularityRaw[i] = float64(viewCounts[e.ID]) + sellRate*100
	}

	contentNorm := stats.MinMaxNormalize(contentRaw)
	collabNorm := stats.MinMaxNormalize(collabRaw)
	popNorm := stats.MinMaxNormalize(popularityRaw)

	order := make([]int, len(candidates))
	combined := make([]float64, len(candidates))
	for i := range candidates {
		order[i] = i
		combined[i] = contentNorm[i]*contentWeight + collabNorm[i]*collaborativeWeight + popNorm[i]*popularityWeight
	}
	sort.SliceStable(order, func(a, b int) bool {
		return combined[order[a]] > combined[order[b]]
	})

	if limit <= 0 {
		limit = s.settings.RecommendationLimit
	}
	if limit > len(order) {
		limit = len(order)
	}

	recs := make([]dto.Recommendation, 0, limit)
	for rank, idx := range order[:limit] {
		e := candidates[idx]

		remaining := 0
		var lowestPrice *int64
		for _, t := range e.Tiers {
			remaining += t.Remaining()
			if t.QuantitySold < t.QuantityAvailable {
				if lowestPrice == nil || t.PriceCents < *lowestPrice {
					p := t.PriceCents
					lowestPrice = &p
				}
			}
		}

		var venueName *string
		if e.Venue != nil {
			venueName = &e.Venue.Name
		}

		recs = append(recs, dto.Recommendation{
			Rank:       rank + 1,
			EventID:    e.ID,
			EventName:  e.Name,
			EventDate:  e.EventDate,
			EventTime:  e.EventTime,
			VenueName:  venueName,
			Categories: e.CategoryNames(),
			Score:      round3(combined[idx]),
			Signals: dto.RecommendationSignals{
				ContentMatch:  round3(contentNorm[idx]),
				Collaborative: round3(collabNorm[idx]),
				Popularity:    round3(popNorm[idx]),
			},
			Reason:           recommendationReason(contentNorm[idx], collabNorm[idx], popNorm[idx], &e),
			TicketsRemaining: remaining,
			LowestPriceCents: lowestPrice,
		})
	}

	return &dto.Recommendations{
		CustomerID:      goer.ID,
		CustomerName:    goer.Name,
		Recommendations: recs,
	}, nil
}

// contentScores counts, per candidate, how many of the customer's
// favorite event types match a category name. The match is a
// case-insensitive substring test in either direction, so "pop" also
// matches "k-pop".
func (s *recommendationService) contentScores(pref *models.CustomerPreference, candidates []models.Event) []float64 {
	favorites := pref.FavoriteTypes()
	favLower := make([]string, len(favorites))
	for i, f := range favorites {
		favLower[i] = strings.ToLower(f)
	}

	scores := make([]float64, len(candidates))
	if len(favLower) == 0 {
		return scores
	}
	for i, e := range candidates {
		for _, fav := range favLower {
			for _, c := range e.Categories {
				cat := strings.ToLower(c.Name)
				if strings.Contains(cat, fav) || strings.Contains(fav, cat) {
					scores[i]++
					break
				}
			}
		}
	}
	return scores
}

func recommendationReason(content, collab, popularity float64, event *models.Event) string {
	var parts []string
	if content > 0.5 {
		if cats := event.CategoryNames(); len(cats) > 0 {
			if len(cats) > 2 {
				cats = cats[:2]
			}
			parts = append(parts, "Matches interest in "+strings.Join(cats, ", "))
		}
	}
	if collab > 0.3 {
		parts = append(parts, "Similar attendees are buying tickets")
	}
	if popularity > 0.5 {
		parts = append(parts, "Trending with high demand")
	}
	if len(parts) == 0 {
		parts = append(parts, "Upcoming event worth considering")
	}
	return strings.Join(parts, ". ") + "."
}
