package dto

import "fmt"

type ErrorResponse struct {
	Message string `json:"message"`
}

// FormatCents renders an integer minor-currency amount for display,
// e.g. 2550 -> "$25.50".
func FormatCents(symbol string, cents int64) string {
	return fmt.Sprintf("%s%.2f", symbol, float64(cents)/100)
}

// --- Demand forecasting ---

type InventorySummary struct {
	TotalAvailable     int     `json:"total_available"`
	TotalSold          int     `json:"total_sold"`
	TotalRemaining     int     `json:"total_remaining"`
	SellThroughPercent float64 `json:"sell_through_percent"`
}

type VelocitySummary struct {
	TicketsPerDay float64 `json:"tickets_per_day"`
	DaysOnSale    int     `json:"days_on_sale"`
}

type TierPace struct {
	TierID         uint    `json:"tier_id"`
	TierName       string  `json:"tier_name"`
	Sold           int     `json:"sold"`
	Remaining      int     `json:"remaining"`
	Capacity       int     `json:"capacity"`
	RequiredPerDay float64 `json:"required_per_day"`
	CurrentPerDay  float64 `json:"current_per_day"`
	OnTrack        bool    `json:"on_track"`
}

type SelloutPace struct {
	DaysUntilEvent int        `json:"days_until_event"`
	RequiredPerDay float64    `json:"required_per_day"`
	CurrentPerDay  float64    `json:"current_per_day"`
	PaceRatio      float64    `json:"pace_ratio"`
	OnTrack        bool       `json:"on_track"`
	Message        string     `json:"message"`
	Tiers          []TierPace `json:"tiers"`
}

type DemandSignals struct {
	WaitlistSize        int64   `json:"waitlist_size"`
	PageViewsLast3Days  int64   `json:"page_views_last_3_days"`
	PageViewsPrior4Days int64   `json:"page_views_prior_4_days"`
	ViewTrendRatio      float64 `json:"view_trend_ratio"`
	DaysUntilEvent      int     `json:"days_until_event"`
}

type HistoricalComparison struct {
	SimilarEventsCount    int64   `json:"similar_events_count"`
	AvgSellThroughPercent float64 `json:"avg_sell_through_percent"`
}

type DemandForecast struct {
	EventID                   uint                 `json:"event_id"`
	EventName                 string               `json:"event_name"`
	EventDate                 string               `json:"event_date"`
	DemandScore               int                  `json:"demand_score"`
	SelloutProbabilityPercent float64              `json:"sellout_probability_percent"`
	ProjectedSelloutDate      *string              `json:"projected_sellout_date"`
	InsufficientData          bool                 `json:"insufficient_data,omitempty"`
	Message                   string               `json:"message,omitempty"`
	Inventory                 InventorySummary     `json:"inventory"`
	Velocity                  VelocitySummary      `json:"velocity"`
	SelloutPace               SelloutPace          `json:"sellout_pace"`
	Signals                   DemandSignals        `json:"signals"`
	HistoricalComparison      HistoricalComparison `json:"historical_comparison"`
}

// --- Pricing suggestions ---

type PriceElasticity struct {
	PromoUsageRatio float64 `json:"promo_usage_ratio"`
	Level           string  `json:"elasticity_level"`
	Interpretation  string  `json:"interpretation"`
}

type TierSuggestion struct {
	TierID                uint    `json:"tier_id"`
	TierName              string  `json:"tier_name"`
	CurrentPriceCents     int64   `json:"current_price_cents"`
	CurrentPriceDisplay   string  `json:"current_price_display"`
	SellThroughPercent    float64 `json:"sell_through_percent"`
	Remaining             int     `json:"remaining"`
	SuggestedPriceCents   int64   `json:"suggested_price_cents"`
	SuggestedPriceDisplay string  `json:"suggested_price_display"`
	AdjustmentPercent     float64 `json:"adjustment_percent"`
	Direction             string  `json:"direction"`
	Confidence            string  `json:"confidence"`
	Reasoning             string  `json:"reasoning"`
}

type PricingSuggestions struct {
	EventID                 uint             `json:"event_id"`
	EventName               string           `json:"event_name"`
	EventDate               string           `json:"event_date"`
	DaysUntilEvent          int              `json:"days_until_event"`
	PriceElasticity         PriceElasticity  `json:"price_elasticity"`
	Tiers                   []TierSuggestion `json:"tiers"`
	HistoricalAvgPriceCents *int64           `json:"historical_avg_price_cents"`
	Note                    string           `json:"note"`
}

// --- Churn / segmentation ---

type RFMScores struct {
	Recency   int `json:"recency"`
	Frequency int `json:"frequency"`
	Monetary  int `json:"monetary"`
	Total     int `json:"total"`
}

type ChurnCustomer struct {
	CustomerID             uint      `json:"customer_id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	Segment                string    `json:"segment"`
	RFMScores              RFMScores `json:"rfm_scores"`
	DaysInactive           int       `json:"days_inactive"`
	TotalSpentCents        int64     `json:"total_spent_cents"`
	TotalSpentDisplay      string    `json:"total_spent_display"`
	TotalEvents            int       `json:"total_events"`
	LastInteraction        *string   `json:"last_interaction"`
	ReengagementSuggestion string    `json:"re_engagement_suggestion"`
}

type ChurnPrediction struct {
	TotalAtRisk     int             `json:"total_at_risk"`
	MinDaysInactive int             `json:"min_days_inactive"`
	Customers       []ChurnCustomer `json:"customers"`
	Message         string          `json:"message,omitempty"`
}

type SegmentSummary struct {
	Count           int     `json:"count"`
	Percent         float64 `json:"percent"`
	AvgSpentCents   int64   `json:"avg_spent_cents"`
	AvgSpentDisplay string  `json:"avg_spent_display"`
	Description     string  `json:"description"`
}

type RFMDistribution struct {
	RecencyAvgDays     float64 `json:"recency_avg_days"`
	FrequencyAvgEvents float64 `json:"frequency_avg_events"`
	MonetaryAvgCents   float64 `json:"monetary_avg_cents"`
}

type CustomerSegments struct {
	TotalCustomersAnalyzed       int                       `json:"total_customers_analyzed"`
	TotalCustomersWithoutProfile int64                     `json:"total_customers_without_profile,omitempty"`
	Segments                     map[string]SegmentSummary `json:"segments"`
	RFMDistribution              RFMDistribution           `json:"rfm_distribution"`
	Message                      string                    `json:"message,omitempty"`
}

// --- Recommendations ---

type RecommendationSignals struct {
	ContentMatch  float64 `json:"content_match"`
	Collaborative float64 `json:"collaborative"`
	Popularity    float64 `json:"popularity"`
}

type Recommendation struct {
	Rank             int                   `json:"rank"`
	EventID          uint                  `json:"event_id"`
	EventName        string                `json:"event_name"`
	EventDate        string                `json:"event_date"`
	EventTime        string                `json:"event_time,omitempty"`
	VenueName        *string               `json:"venue_name"`
	Categories       []string              `json:"categories"`
	Score            float64               `json:"score"`
	Signals          RecommendationSignals `json:"signals"`
	Reason           string                `json:"reason"`
	TicketsRemaining int                   `json:"tickets_remaining"`
	LowestPriceCents *int64                `json:"lowest_price_cents"`
}

type Recommendations struct {
	CustomerID      uint             `json:"customer_id"`
	CustomerName    string           `json:"customer_name"`
	Recommendations []Recommendation `json:"recommendations"`
	Message         string           `json:"message,omitempty"`
}

// --- Trending ---

type TrendingSignals struct {
	PageViews       int64 `json:"page_views"`
	RecentSales     int64 `json:"recent_sales"`
	WaitlistEntries int64 `json:"waitlist_entries"`
}

type TrendingEvent struct {
	Rank               int             `json:"rank"`
	EventID            uint            `json:"event_id"`
	EventName          string          `json:"event_name"`
	EventDate          string          `json:"event_date"`
	VenueName          *string         `json:"venue_name"`
	TrendingScore      float64         `json:"trending_score"`
	Signals            TrendingSignals `json:"signals"`
	SellThroughPercent float64         `json:"sell_through_percent"`
	TicketsRemaining   int             `json:"tickets_remaining"`
}

type TrendingReport struct {
	PeriodDays     int             `json:"period_days"`
	TrendingEvents []TrendingEvent `json:"trending_events"`
}

// --- Revenue forecasting ---

type RevenueBand struct {
	LowCents  int64 `json:"low_cents"`
	MidCents  int64 `json:"mid_cents"`
	HighCents int64 `json:"high_cents"`
}

type ForecastTickets struct {
	Sold                int `json:"sold"`
	Remaining           int `json:"remaining"`
	Capacity            int `json:"capacity"`
	ProjectedAdditional int `json:"projected_additional"`
}

type EventRevenueForecast struct {
	EventID             uint            `json:"event_id"`
	EventName           string          `json:"event_name"`
	EventDate           string          `json:"event_date"`
	VenueName           *string         `json:"venue_name"`
	CurrentRevenueCents int64           `json:"current_revenue_cents"`
	ProjectedRevenue    RevenueBand     `json:"projected_revenue"`
	Tickets             ForecastTickets `json:"tickets"`
	VelocityPerDay      float64         `json:"velocity_per_day"`
	DaysUntilEvent      int             `json:"days_until_event"`
	Confidence          float64         `json:"confidence"`
}

type RevenueForecast struct {
	TimeHorizonDays                 int                    `json:"time_horizon_days"`
	TotalEvents                     int                    `json:"total_events"`
	CurrentRevenueCents             int64                  `json:"current_revenue_cents"`
	ProjectedRevenue                RevenueBand            `json:"projected_revenue"`
	HistoricalCompletionRatePercent float64                `json:"historical_completion_rate_percent"`
	Events                          []EventRevenueForecast `json:"events"`
	Message                         string                 `json:"message,omitempty"`
}
