package service

import (
	"math"
	"time"
)

// Settings carries the analytics tunables. Operations take it as an
// explicit value so nothing reads process-wide state.
type Settings struct {
	CurrencySymbol      string
	ChurnInactiveDays   int
	ChurnLimit          int
	RecommendationLimit int
	TrendingDays        int
	TrendingLimit       int
	RevenueHorizonDays  int
	FallbackDaysUntil   int
}

func DefaultSettings() Settings {
	return Settings{
		CurrencySymbol:      "$",
		ChurnInactiveDays:   30,
		ChurnLimit:          50,
		RecommendationLimit: 5,
		TrendingDays:        7,
		TrendingLimit:       10,
		RevenueHorizonDays:  90,
		FallbackDaysUntil:   30,
	}
}

const dayLayout = "2006-01-02"

// wholeDays truncates a duration to whole days, matching how the
// platform counts "days until" and "days since".
func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// daysUntilEvent resolves the whole days from now to the event start.
// When the stored date/time cannot be parsed it falls back to the
// configured default instead of failing, and reports ok=false.
func daysUntilEvent(now time.Time, startsAt time.Time, ok bool, fallback int) int {
	if !ok {
		return fallback
	}
	if d := wholeDays(startsAt.Sub(now)); d > 0 {
		return d
	}
	return 0
}
