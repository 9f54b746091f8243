package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Thedurancode/aitickets-sub000/internal/dto"
	"github.com/Thedurancode/aitickets-sub000/internal/models"
	"github.com/Thedurancode/aitickets-sub000/internal/repository"
	"github.com/Thedurancode/aitickets-sub000/internal/stats"
)

// ChurnService scores customers on Recency/Frequency/Monetary
// quartiles and groups them into retention segments.
type ChurnService interface {
	PredictChurn(ctx context.Context, minDaysInactive, limit int) (*dto.ChurnPrediction, error)
	GetCustomerSegments(ctx context.Context) (*dto.CustomerSegments, error)
}

type churnService struct {
	customers repository.CustomerRepository
	settings  Settings
}

func NewChurnService(customers repository.CustomerRepository, settings Settings) ChurnService {
	return &churnService{customers: customers, settings: settings}
}

// missingRecencyDays stands in for "never interacted" so those
// customers land in the worst recency quartile.
const missingRecencyDays = 999

type rfmInput struct {
	recency   []float64
	frequency []float64
	monetary  []float64
}

func buildRFMInput(now time.Time, prefs []models.CustomerPreference) rfmInput {
	in := rfmInput{
		recency:   make([]float64, 0, len(prefs)),
		frequency: make([]float64, 0, len(prefs)),
		monetary:  make([]float64, 0, len(prefs)),
	}
	for _, p := range prefs {
		days := missingRecencyDays
		if p.LastInteractionAt != nil {
			days = wholeDays(now.Sub(p.LastInteractionAt.UTC()))
		}
		in.recency = append(in.recency, float64(days))
		in.frequency = append(in.frequency, float64(p.TotalEventsAttended))
		in.monetary = append(in.monetary, float64(p.TotalSpentCents))
	}
	return in
}

// churnSegment applies the at-risk/lapsed/lost rules shared by both
// entry points. The "active" short-circuit exists only in
// GetCustomerSegments; PredictChurn deliberately has no such bucket.
func churnSegment(r, f, m int) string {
	switch {
	case r <= 2 && (f >= 3 || m >= 3):
		return "at_risk"
	case r <= 2 && f <= 2 && m >= 2:
		return "lapsed"
	default:
		return "lost"
	}
}

func reengagementSuggestion(segment string, pref *models.CustomerPreference) string {
	typeStr := ""
	if favs := pref.FavoriteTypes(); len(favs) > 0 {
		typeStr = fmt.Sprintf(" for %s events", favs[0])
	}
	switch segment {
	case "at_risk":
		return fmt.Sprintf("Send a personalized discount code%s. This customer has high lifetime value.", typeStr)
	case "lapsed":
		return fmt.Sprintf("Send a 'we miss you' campaign%s with a special offer to re-engage.", typeStr)
	default:
		return fmt.Sprintf("Consider a win-back campaign with a significant discount%s.", typeStr)
	}
}

func (s *churnService) PredictChurn(ctx context.Context, minDaysInactive, limit int) (*dto.ChurnPrediction, error) {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -minDaysInactive)

	prefs, err := s.customers.FindInactiveProfiles(ctx, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("inactive profiles: %w", err)
	}

	if len(prefs) == 0 {
		return &dto.ChurnPrediction{
			MinDaysInactive: minDaysInactive,
			Customers:       []dto.ChurnCustomer{},
			Message:         "No at-risk customers found for the given criteria.",
		}, nil
	}

	in := buildRFMInput(now, prefs)
	rScores := stats.AssignQuartiles(in.recency, true)
	fScores := stats.AssignQuartiles(in.frequency, false)
	mScores := stats.AssignQuartiles(in.monetary, false)

	customers := make([]dto.ChurnCustomer, 0, len(prefs))
	for i, p := range prefs {
		r, f, m := rScores[i], fScores[i], mScores[i]
		segment := churnSegment(r, f, m)

		var name, email string
		if p.EventGoer != nil {
			name, email = p.EventGoer.Name, p.EventGoer.Email
		}
		var lastInteraction *string
		if p.LastInteractionAt != nil {
			ts := p.LastInteractionAt.UTC().Format(time.RFC3339)
			lastInteraction = &ts
		}

		customers = append(customers, dto.ChurnCustomer{
			CustomerID:             p.EventGoerID,
			Name:                   name,
			Email:                  email,
			Segment:                segment,
			RFMScores:              dto.RFMScores{Recency: r, Frequency: f, Monetary: m, Total: r + f + m},
			DaysInactive:           int(in.recency[i]),
			TotalSpentCents:        p.TotalSpentCents,
			TotalSpentDisplay:      dto.FormatCents(s.settings.CurrencySymbol, p.TotalSpentCents),
			TotalEvents:            p.TotalEventsAttended,
			LastInteraction:        lastInteraction,
			ReengagementSuggestion: reengagementSuggestion(segment, &p),
		})
	}

	return &dto.ChurnPrediction{
		TotalAtRisk:     len(customers),
		MinDaysInactive: minDaysInactive,
		Customers:       customers,
	}, nil
}

var segmentDescriptions = map[string]string{
	"active":  "Champions — highly engaged, recent, high-value customers",
	"at_risk": "Previously valuable customers showing signs of disengagement",
	"lapsed":  "Customers who have not interacted recently with moderate prior engagement",
	"lost":    "Low engagement customers who have been inactive for a long time",
}

func (s *churnService) GetCustomerSegments(ctx context.Context) (*dto.CustomerSegments, error) {
	now := time.Now().UTC()

	prefs, err := s.customers.FindAllProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("customer profiles: %w", err)
	}

	total := len(prefs)
	if total == 0 {
		goers, err := s.customers.CountGoers(ctx)
		if err != nil {
			return nil, fmt.Errorf("count customers: %w", err)
		}
		return &dto.CustomerSegments{
			TotalCustomersWithoutProfile: goers,
			Segments:                     map[string]dto.SegmentSummary{},
			Message:                      "No customers have preference profiles yet.",
		}, nil
	}

	in := buildRFMInput(now, prefs)
	rScores := stats.AssignQuartiles(in.recency, true)
	fScores := stats.AssignQuartiles(in.frequency, false)
	mScores := stats.AssignQuartiles(in.monetary, false)

	spentBySegment := map[string][]int64{
		"active": {}, "at_risk": {}, "lapsed": {}, "lost": {},
	}
	for i, p := range prefs {
		r, f, m := rScores[i], fScores[i], mScores[i]
		segment := churnSegment(r, f, m)
		if r+f+m >= 10 {
			segment = "active"
		}
		spentBySegment[segment] = append(spentBySegment[segment], p.TotalSpentCents)
	}

	segments := make(map[string]dto.SegmentSummary, len(spentBySegment))
	for name, spent := range spentBySegment {
		count := len(spent)
		var sum int64
		for _, v := range spent {
			sum += v
		}
		avg := int64(math.Round(float64(sum) / float64(max(count, 1))))
		segments[name] = dto.SegmentSummary{
			Count:           count,
			Percent:         round1(float64(count) / float64(max(total, 1)) * 100),
			AvgSpentCents:   avg,
			AvgSpentDisplay: dto.FormatCents(s.settings.CurrencySymbol, avg),
			Description:     segmentDescriptions[name],
		}
	}

	var sumR, sumF, sumM float64
	for i := range prefs {
		sumR += in.recency[i]
		sumF += in.frequency[i]
		sumM += in.monetary[i]
	}

	return &dto.CustomerSegments{
		TotalCustomersAnalyzed: total,
		Segments:               segments,
		RFMDistribution: dto.RFMDistribution{
			RecencyAvgDays:     round1(sumR / float64(max(total, 1))),
			FrequencyAvgEvents: round1(sumF / float64(max(total, 1))),
			MonetaryAvgCents:   round1(sumM / float64(max(total, 1))),
		},
	}, nil
}
