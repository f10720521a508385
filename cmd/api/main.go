package main

import (
	"log"
	"time"

	"github.com/voyago/voyago-backend/internal/config"
	"github.com/voyago/voyago-backend/internal/repository/amadeus"
	"github.com/voyago/voyago-backend/internal/repository/descope"
	"github.com/voyago/voyago-backend/internal/repository/exchangerate"
	"github.com/voyago/voyago-backend/internal/repository/gemini"
	"github.com/voyago/voyago-backend/internal/repository/googlecal"
	"github.com/voyago/voyago-backend/internal/repository/nominatim"
	"github.com/voyago/voyago-backend/internal/repository/postgres"
	"github.com/voyago/voyago-backend/internal/service"
	transport "github.com/voyago/voyago-backend/internal/transport/http"
	"github.com/voyago/voyago-backend/internal/util"
)

func main() {
	cfg := config.Load()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	tripRepo := postgres.NewTripRepo(db)

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("parse SESSION_TTL: %v", err)
	}
	jwtManager := util.NewJWTManager(cfg.JWTSecret, sessionTTL)

	amadeusClient := amadeus.NewClient(cfg.AmadeusClientID, cfg.AmadeusClientSecret, cfg.AmadeusEnv)
	geocoder := nominatim.New(cfg.NominatimBaseURL)
	rateSource := exchangerate.New(cfg.ExchangeRatesURL)
	itineraryModel := gemini.NewItineraryModel(cfg.GeminiAPIKey, cfg.GeminiModel)
	tokenBroker := descope.NewTokenBroker(cfg.DescopeProjectID, cfg.DescopeManagementKey, cfg.DescopeBaseURL)
	calendarAPI := googlecal.NewAdapter()

	authSvc := service.NewAuthService(userRepo, sessionRepo, jwtManager, cfg.GoogleAudience)
	currencySvc := service.NewCurrencyService(rateSource)
	destinationSvc := service.NewDestinationService(amadeusClient, geocoder)
	travelDataSvc := service.NewTravelDataService(amadeusClient, amadeusClient, amadeusClient, amadeusClient, geocoder)
	itinerarySvc := service.NewItineraryService(itineraryModel)
	planSvc := service.NewPlanService(destinationSvc, travelDataSvc, itinerarySvc)
	tripSvc := service.NewTripService(tripRepo)
	calendarSvc := service.NewCalendarService(tokenBroker, calendarAPI, tripSvc, cfg.CalendarAppID, cfg.TravelCalendarName)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterSwagger(e)
	transport.RegisterAuth(e, authSvc)
	transport.RegisterPlan(e, authSvc, planSvc)
	transport.RegisterTrips(e, authSvc, tripSvc)
	transport.RegisterCalendar(e, authSvc, calendarSvc)
	transport.RegisterCurrency(e, authSvc, currencySvc)
	transport.RegisterFlights(e, authSvc, amadeusClient, amadeusClient)
	transport.RegisterHotels(e, authSvc, amadeusClient)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
