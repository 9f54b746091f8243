package main

import (
	"log"

	"github.com/Thedurancode/aitickets-sub000/config"
	"github.com/Thedurancode/aitickets-sub000/internal/consumer"
	"github.com/Thedurancode/aitickets-sub000/internal/handler"
	"github.com/Thedurancode/aitickets-sub000/internal/middleware"
	"github.com/Thedurancode/aitickets-sub000/internal/repository"
	"github.com/Thedurancode/aitickets-sub000/internal/service"
	"github.com/Thedurancode/aitickets-sub000/pkg/database"
	"github.com/Thedurancode/aitickets-sub000/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ consumer: keep the analytics read model in sync with
	// the ticketing core.
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	syncConsumer := consumer.NewSyncConsumer(db)
	syncConsumer.Start(msgs)

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)

	// Services
	settings := service.Settings{
		CurrencySymbol:      cfg.CurrencySymbol,
		ChurnInactiveDays:   cfg.ChurnInactiveDays,
		ChurnLimit:          cfg.ChurnLimit,
		RecommendationLimit: cfg.RecommendationLimit,
		TrendingDays:        cfg.TrendingDays,
		TrendingLimit:       cfg.TrendingLimit,
		RevenueHorizonDays:  cfg.RevenueHorizonDays,
		FallbackDaysUntil:   service.DefaultSettings().FallbackDaysUntil,
	}
	demandSvc := service.NewDemandService(eventRepo, ticketRepo, engagementRepo, settings)
	pricingSvc := service.NewPricingService(eventRepo, ticketRepo, settings)
	churnSvc := service.NewChurnService(customerRepo, settings)
	recommendSvc := service.NewRecommendationService(eventRepo, ticketRepo, customerRepo, engagementRepo, settings)
	trendingSvc := service.NewTrendingService(eventRepo, ticketRepo, engagementRepo, settings)
	revenueSvc := service.NewRevenueService(eventRepo, ticketRepo, settings)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "analytics-service"})
	})

	api := e.Group("/api/v1/analytics")
	handler.NewAnalyticsHandler(demandSvc, pricingSvc, churnSvc, recommendSvc, trendingSvc, revenueSvc, settings).RegisterRoutes(api)

	log.Printf("Analytics Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
