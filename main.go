package main

import (
	"log"

	"github.com/jeddaiwtf/EventRS/config"
	"github.com/jeddaiwtf/EventRS/internal/clock"
	"github.com/jeddaiwtf/EventRS/internal/handler"
	"github.com/jeddaiwtf/EventRS/internal/middleware"
	"github.com/jeddaiwtf/EventRS/internal/repository"
	"github.com/jeddaiwtf/EventRS/internal/service"
	"github.com/jeddaiwtf/EventRS/internal/signature"
	"github.com/jeddaiwtf/EventRS/pkg/database"
	"github.com/jeddaiwtf/EventRS/pkg/qrcode"
	"github.com/jeddaiwtf/EventRS/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	eventRepo := repository.NewEventRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	signer := signature.NewSigner(cfg.TicketHMACKey)
	renderer := qrcode.NewClient(cfg.QRAPIBase)

	eventSvc := service.NewEventService(eventRepo, publisher)
	ticketSvc := service.NewTicketService(ticketRepo, eventRepo, signer, renderer, publisher, clock.NewSystem())

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
		return c.JSON(200, map[string]string{"status": "ok", "service": "ticketing"})
	})

	api := e.Group("/api/v1/events")
	handler.NewEventHandler(eventSvc).RegisterRoutes(api)
	handler.NewTicketHandler(ticketSvc).RegisterRoutes(e)

	log.Printf("Ticketing service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
