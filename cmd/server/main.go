package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/vllynnyk/airport-service/internal/config"
	"github.com/vllynnyk/airport-service/internal/database"
	"github.com/vllynnyk/airport-service/internal/handler"
	"github.com/vllynnyk/airport-service/internal/queue"
	"github.com/vllynnyk/airport-service/internal/repository"
	"github.com/vllynnyk/airport-service/internal/router"
)

func main() {
	// .env is optional; deployments set real environment variables.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	airports := repository.NewAirportRepo(db)
	routes := repository.NewRouteRepo(db)
	types := repository.NewAirplaneTypeRepo(db)
	airplanes := repository.NewAirplaneRepo(db)
	crew := repository.NewCrewRepo(db)
	flights := repository.NewFlightRepo(db)
	orders := repository.NewOrderRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, tokens),
		Airport:  handler.NewAirportHandler(airports, routes),
		Route:    handler.NewRouteHandler(routes, flights),
		Airplane: handler.NewAirplaneHandler(types, airplanes, flights),
		Crew:     handler.NewCrewHandler(crew, flights),
		Flight:   handler.NewFlightHandler(flights),
		Order:    handler.NewOrderHandler(orders),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, cfg.JWTSecret, rdb)

	// Order events are consumed in-process and appended to logs/orders.log.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
