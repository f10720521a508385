package service

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/ports"
)

// airportNames maps well-known IATA codes to a geocodable airport name, for
// codes whose reference-data lookup is unreliable or missing coordinates.
var airportNames = map[string]string{
	"DXB": "Dubai International Airport",
	"AUH": "Abu Dhabi International Airport",
	"DOH": "Hamad International Airport Doha",
	"LHR": "London Heathrow Airport",
	"LGW": "London Gatwick Airport",
	"CDG": "Paris Charles de Gaulle Airport",
	"ORY": "Paris Orly Airport",
	"AMS": "Amsterdam Schiphol Airport",
	"FRA": "Frankfurt Airport",
	"MUC": "Munich Airport",
	"ZRH": "Zurich Airport",
	"VIE": "Vienna International Airport",
	"IST": "Istanbul Airport",
	"MAD": "Madrid Barajas Airport",
	"BCN": "Barcelona El Prat Airport",
	"FCO": "Rome Fiumicino Airport",
	"MXP": "Milan Malpensa Airport",
	"LIS": "Lisbon Airport",
	"DUB": "Dublin Airport",
	"CPH": "Copenhagen Airport",
	"ARN": "Stockholm Arlanda Airport",
	"OSL": "Oslo Gardermoen Airport",
	"HEL": "Helsinki Vantaa Airport",
	"JFK": "John F Kennedy International Airport New York",
	"EWR": "Newark Liberty International Airport",
	"LAX": "Los Angeles International Airport",
	"SFO": "San Francisco International Airport",
	"ORD": "Chicago O'Hare International Airport",
	"MIA": "Miami International Airport",
	"ATL": "Atlanta Hartsfield Jackson Airport",
	"SEA": "Seattle Tacoma International Airport",
	"BOS": "Boston Logan International Airport",
	"YYZ": "Toronto Pearson International Airport",
	"YVR": "Vancouver International Airport",
	"MEX": "Mexico City International Airport",
	"GRU": "Sao Paulo Guarulhos Airport",
	"EZE": "Buenos Aires Ezeiza Airport",
	"BOG": "Bogota El Dorado Airport",
	"LIM": "Lima Jorge Chavez Airport",
	"SCL": "Santiago Arturo Merino Benitez Airport",
	"JNB": "Johannesburg OR Tambo Airport",
	"CPT": "Cape Town International Airport",
	"CAI": "Cairo International Airport",
	"NBO": "Nairobi Jomo Kenyatta Airport",
	"LOS": "Lagos Murtala Muhammed Airport",
	"ADD": "Addis Ababa Bole Airport",
	"CMN": "Casablanca Mohammed V Airport",
	"DEL": "Delhi Indira Gandhi International Airport",
	"BOM": "Mumbai Chhatrapati Shivaji Airport",
	"BLR": "Bangalore Kempegowda Airport",
	"MAA": "Chennai International Airport",
	"HYD": "Hyderabad Rajiv Gandhi Airport",
	"CCU": "Kolkata Netaji Subhas Chandra Bose Airport",
	"COK": "Cochin International Airport",
	"NRT": "Tokyo Narita Airport",
	"HND": "Tokyo Haneda Airport",
	"ICN": "Seoul Incheon Airport",
	"PEK": "Beijing Capital Airport",
	"PVG": "Shanghai Pudong Airport",
	"CAN": "Guangzhou Baiyun Airport",
	"HKG": "Hong Kong International Airport",
	"TPE": "Taipei Taoyuan Airport",
	"SIN": "Singapore Changi Airport",
	"KUL": "Kuala Lumpur International Airport",
	"BKK": "Bangkok Suvarnabhumi Airport",
	"CGK": "Jakarta Soekarno Hatta Airport",
	"DPS": "Bali Ngurah Rai Airport",
	"MNL": "Manila Ninoy Aquino Airport",
	"SYD": "Sydney Kingsford Smith Airport",
	"MEL": "Melbourne Tullamarine Airport",
	"AKL": "Auckland Airport",
}

var (
	airportSubstringPattern = regexp.MustCompile(`[A-Za-z\s]+(?:Airport|International)[A-Za-z\s]*`)
	nonLatinPattern         = regexp.MustCompile(`[^\x00-\x7F]`)
)

// DestinationService turns a raw destination token (IATA code, city name, or
// free text) into coordinates plus display names. Resolution never fails:
// when every strategy comes up empty the token itself is returned with zero
// coordinates as a sentinel.
type DestinationService struct {
	directory ports.LocationDirectory
	geocoder  ports.Geocoder
}

func NewDestinationService(directory ports.LocationDirectory, geocoder ports.Geocoder) *DestinationService {
	return &DestinationService{directory: directory, geocoder: geocoder}
}

func (s *DestinationService) Resolve(ctx context.Context, token string) domain.ResolvedDestination {
	token = strings.TrimSpace(token)

	type strategy struct {
		name string
		run  func() (*domain.ResolvedDestination, error)
	}

	strategies := []strategy{
		{"airport-code", func() (*domain.ResolvedDestination, error) {
			if len(token) != 3 {
				return nil, errSkipStrategy
			}
			return s.directory.AirportByCode(ctx, strings.ToUpper(token))
		}},
		{"curated-airport", func() (*domain.ResolvedDestination, error) {
			name, ok := airportNames[strings.ToUpper(token)]
			if !ok {
				return nil, errSkipStrategy
			}
			dest, err := s.geocoder.Geocode(ctx, name)
			if err != nil {
				return nil, err
			}
			dest.Name = name
			return dest, nil
		}},
		{"airport-suffix-geocode", func() (*domain.ResolvedDestination, error) {
			return s.geocoder.Geocode(ctx, token+" airport")
		}},
		{"city-directory", func() (*domain.ResolvedDestination, error) {
			return s.directory.CityByKeyword(ctx, token)
		}},
		{"raw-geocode", func() (*domain.ResolvedDestination, error) {
			return s.geocoder.Geocode(ctx, token)
		}},
		{"location-directory", func() (*domain.ResolvedDestination, error) {
			return s.directory.LocationByKeyword(ctx, token)
		}},
	}

	for _, st := range strategies {
		dest, err := st.run()
		if err != nil || dest == nil || dest.Coordinates.IsZero() {
			continue
		}
		dest.Name = cleanDestinationName(dest.Name, dest.City)
		if dest.City == "" {
			dest.City = dest.Name
		}
		log.Printf("destination %q resolved via %s: %s (%f, %f)",
			token, st.name, dest.Name, dest.Coordinates.Latitude, dest.Coordinates.Longitude)
		return *dest
	}

	log.Printf("destination %q could not be resolved, using sentinel", token)
	return domain.ResolvedDestination{Name: token, City: token}
}

var errSkipStrategy = strategyError("strategy not applicable")

type strategyError string

func (e strategyError) Error() string { return string(e) }

// cleanDestinationName trims geocoder display names, which are often long
// comma-separated address chains with mixed scripts, down to something fit
// for titles and prompts.
func cleanDestinationName(name, city string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return city
	}
	if len(name) <= 50 && !nonLatinPattern.MatchString(name) {
		return name
	}

	if m := airportSubstringPattern.FindString(name); m != "" {
		return strings.TrimSpace(m)
	}

	for _, part := range strings.Split(name, ",") {
		part = strings.TrimSpace(part)
		lower := strings.ToLower(part)
		if strings.Contains(lower, "airport") || strings.Contains(lower, "international") {
			return part
		}
	}

	if city != "" && len(city) < 30 {
		return city
	}

	for _, part := range strings.Split(name, ",") {
		part = strings.TrimSpace(part)
		if part != "" && len(part) < 30 && !nonLatinPattern.MatchString(part) {
			return part
		}
	}

	if city != "" {
		return city
	}
	return name
}

// DestinationDisplayName prefers the short city over a cleaned airport name.
// Trip titles and calendar entries use it.
func DestinationDisplayName(dest domain.ResolvedDestination) string {
	if dest.City != "" && len(dest.City) < 30 && !nonLatinPattern.MatchString(dest.City) {
		return dest.City
	}
	return cleanDestinationName(dest.Name, dest.City)
}
