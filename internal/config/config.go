package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	JWTSecret            string
	GoogleAudience       string
	AllowOrigins         []string
	SessionTTL           string
	AmadeusClientID      string
	AmadeusClientSecret  string
	AmadeusEnv           string
	NominatimBaseURL     string
	ExchangeRatesURL     string
	GeminiAPIKey         string
	GeminiModel          string
	DescopeProjectID     string
	DescopeManagementKey string
	DescopeBaseURL       string
	CalendarAppID        string
	TravelCalendarName   string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	return Config{
		Port:                 getenv("PORT", "8080"),
		DatabaseURL:          must("DATABASE_URL"),
		JWTSecret:            must("JWT_SECRET"),
		GoogleAudience:       getenv("GOOGLE_AUDIENCE", ""),
		AllowOrigins:         splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		SessionTTL:           getenv("SESSION_TTL", "24h"),
		AmadeusClientID:      getenv("AMADEUS_CLIENT_ID", ""),
		AmadeusClientSecret:  getenv("AMADEUS_CLIENT_SECRET", ""),
		AmadeusEnv:           getenv("AMADEUS_ENV", "test"),
		NominatimBaseURL:     getenv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		ExchangeRatesURL:     getenv("EXCHANGE_RATES_URL", "https://api.exchangerate-api.com/v4/latest/USD"),
		GeminiAPIKey:         getenv("GEMINI_API_KEY", ""),
		GeminiModel:          getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		DescopeProjectID:     getenv("DESCOPE_PROJECT_ID", ""),
		DescopeManagementKey: getenv("DESCOPE_MANAGEMENT_KEY", ""),
		DescopeBaseURL:       getenv("DESCOPE_BASE_URL", "https://api.descope.com"),
		CalendarAppID:        getenv("CALENDAR_APP_ID", "google-calendar"),
		TravelCalendarName:   getenv("TRAVEL_CALENDAR_NAME", "Travel Plans"),
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
