package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Thedurancode/aitickets-sub000/internal/service"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandler exposes the seven analytics operations. Every route
// is a GET: the engine is read-only and advisory.
type AnalyticsHandler struct {
	demand    service.DemandService
	pricing   service.PricingService
	churn     service.ChurnService
	recommend service.RecommendationService
	trending  service.TrendingService
	revenue   service.RevenueService
	settings  service.Settings
}

func NewAnalyticsHandler(
	demand service.DemandService,
	pricing service.PricingService,
	churn service.ChurnService,
	recommend service.RecommendationService,
	trending service.TrendingService,
	revenue service.RevenueService,
	settings service.Settings,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		demand:    demand,
		pricing:   pricing,
		churn:     churn,
		recommend: recommend,
		trending:  trending,
		revenue:   revenue,
		settings:  settings,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/events/:id/demand", h.PredictDemand)
	g.GET("/events/:id/pricing", h.GetPricingSuggestions)
	g.GET("/churn", h.PredictChurn)
	g.GET("/segments", h.GetCustomerSegments)
	g.GET("/recommendations", h.RecommendEvents)
	g.GET("/trending", h.GetTrendingEvents)
	g.GET("/revenue", h.ForecastRevenue)
}

func (h *AnalyticsHandler) PredictDemand(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	forecast, err := h.demand.PredictDemand(c.Request().Context(), uint(eventID))
	if err != nil {
		return analyticsError(err)
	}
	return c.JSON(http.StatusOK, forecast)
}

func (h *AnalyticsHandler) GetPricingSuggestions(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	suggestions, err := h.pricing.GetPricingSuggestions(c.Request().Context(), uint(eventID))
	if err != nil {
		return analyticsError(err)
	}
	return c.JSON(http.StatusOK, suggestions)
}

func (h *AnalyticsHandler) PredictChurn(c echo.Context) error {
	minDays := queryInt(c, "min_days_inactive", h.settings.ChurnInactiveDays)
	limit := queryInt(c, "limit", h.settings.ChurnLimit)
	if minDays < 0 || limit <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "min_days_inactive must be >= 0 and limit > 0")
	}

	prediction, err := h.churn.PredictChurn(c.Request().Context(), minDays, limit)
	if err != nil {
		return analyticsError(err)
	}
	return c.JSON(http.StatusOK, prediction)
}

func (h *AnalyticsHandler) GetCustomerSegments(c echo.Context) error {
	segments, err := h.churn.GetCustomerSegments(c.Request().Context())
	if err != nil {
		return analyticsError(err)
	}
	return c.JSON(http.StatusOK, segments)
}

func (h *AnalyticsHandler) RecommendEvents(c echo.Context) error {
	var customerID uint
	if raw := c.QueryParam("customer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid customer_id")
		}
		customerID = uint(id)
	}
	customerEmail := c.QueryParam("customer_email")
	limit := queryInt(c, "limit", h.settings.RecommendationLimit)

	recs, err := h.recommend.RecommendEvents(c.Request().Context(), customerID, customerEmail, limit)
	if err != nil {
		return analyticsError(err)
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *AnalyticsHandler) GetTrendingEvents(c echo.Context) error {
	days := queryInt(c, "days", h.settings.TrendingDays)
	limit := queryInt(c, "limit", h.settings.TrendingLimit)

	report, err := h.trending.GetTrendingEvents(c.Request().Context(), days, limit)
	if err != nil {
		return analyticsError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) ForecastRevenue(c echo.Context) error {
	horizon := queryInt(c, "horizon_days", h.settings.RevenueHorizonDays)

	forecast, err := h.revenue.ForecastRevenue(c.Request().Context(), horizon)
	if err != nil {
		return analyticsError(err)
	}
	return c.JSON(http.StatusOK, forecast)
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func analyticsError(err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrCustomerNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEventInPast), errors.Is(err, service.ErrNoTiers):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoCustomerRef):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
