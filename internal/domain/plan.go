package domain

// BudgetTier and TravelStyle are the fixed preference enums accepted by the
// trip-planning surface.
type BudgetTier string

const (
	BudgetTierBudget   BudgetTier = "budget"
	BudgetTierMidRange BudgetTier = "mid-range"
	BudgetTierLuxury   BudgetTier = "luxury"
)

func (b BudgetTier) IsValid() bool {
	switch b {
	case BudgetTierBudget, BudgetTierMidRange, BudgetTierLuxury:
		return true
	}
	return false
}

type TravelStyle string

const (
	TravelStyleAdventure  TravelStyle = "adventure"
	TravelStyleRelaxation TravelStyle = "relaxation"
	TravelStyleCultural   TravelStyle = "cultural"
	TravelStyleBusiness   TravelStyle = "business"
	TravelStyleFamily     TravelStyle = "family"
	TravelStyleRomantic   TravelStyle = "romantic"
)

func (s TravelStyle) IsValid() bool {
	switch s {
	case TravelStyleAdventure, TravelStyleRelaxation, TravelStyleCultural,
		TravelStyleBusiness, TravelStyleFamily, TravelStyleRomantic:
		return true
	}
	return false
}

// TripRequest carries one planning request end to end. It is never persisted.
type TripRequest struct {
	Origin            string      `json:"origin"`
	Destination       string      `json:"destination"`
	DepartureDate     string      `json:"departure_date"`
	ReturnDate        string      `json:"return_date,omitempty"`
	Travelers         int         `json:"travelers"`
	Budget            BudgetTier  `json:"budget"`
	TravelStyle       TravelStyle `json:"travel_style"`
	Interests         string      `json:"interests,omitempty"`
	AccommodationType string      `json:"accommodation_type,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsZero reports the resolution-failure sentinel, not a valid point at 0,0.
func (c Coordinates) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// ResolvedDestination is derived once per planning request and immutable
// afterward. Name and City fall back to the raw destination token when every
// lookup strategy failed.
type ResolvedDestination struct {
	Name        string      `json:"name"`
	City        string      `json:"city"`
	Coordinates Coordinates `json:"coordinates"`
}

type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type FlightEndpoint struct {
	IATACode string `json:"iata_code"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type FlightSegment struct {
	Departure   FlightEndpoint `json:"departure"`
	Arrival     FlightEndpoint `json:"arrival"`
	CarrierCode string         `json:"carrier_code"`
	Number      string         `json:"number,omitempty"`
	Duration    string         `json:"duration,omitempty"`
}

// FlightOffer is one itinerary option as returned by the search provider.
// Offers keep the provider's order; the list is never re-sorted.
type FlightOffer struct {
	ID        string          `json:"id"`
	Price     Price           `json:"price"`
	Duration  string          `json:"duration,omitempty"`
	Departure FlightEndpoint  `json:"departure"`
	Arrival   FlightEndpoint  `json:"arrival"`
	Carrier   string          `json:"carrier"`
	Stops     int             `json:"stops"`
	Segments  []FlightSegment `json:"segments,omitempty"`
}

type HotelOffer struct {
	HotelID      string   `json:"hotel_id"`
	Name         string   `json:"name"`
	Rating       string   `json:"rating,omitempty"`
	Address      string   `json:"address,omitempty"`
	Price        Price    `json:"price"`
	Description  string   `json:"description,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	CheckInDate  string   `json:"check_in_date,omitempty"`
	CheckOutDate string   `json:"check_out_date,omitempty"`
	Cancellation string   `json:"cancellation,omitempty"`
	Category     string   `json:"category,omitempty"`
}

type Activity struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       *Price       `json:"price,omitempty"`
	Rating      string       `json:"rating,omitempty"`
	Duration    string       `json:"duration,omitempty"`
	Category    string       `json:"category,omitempty"`
	Location    *Coordinates `json:"location,omitempty"`
	BookingLink string       `json:"booking_link,omitempty"`
}

// ItineraryDay entries are 1-based, contiguous, and dated with ISO dates
// starting at the departure date.
type ItineraryDay struct {
	Day         int      `json:"day"`
	Date        string   `json:"date"`
	Activities  []string `json:"activities"`
	Suggestions string   `json:"suggestions"`
}

// Insight payloads are advisory display data passed through from the
// providers; they carry no invariants.
type Airline struct {
	IATACode   string `json:"iata_code"`
	CommonName string `json:"common_name,omitempty"`
}

type FlightInsights struct {
	Airlines      []Airline      `json:"airlines,omitempty"`
	PriceAnalysis map[string]any `json:"price_analysis,omitempty"`
}

type HotelInsights struct {
	Sentiments        []map[string]any `json:"sentiments,omitempty"`
	NearbyHotels      []map[string]any `json:"nearby_hotels,omitempty"`
	AlternativeHotels []map[string]any `json:"alternative_hotels,omitempty"`
}

type TravelInsights struct {
	TripPurpose     map[string]any   `json:"trip_purpose,omitempty"`
	NearbyAirports  []map[string]any `json:"nearby_airports,omitempty"`
	AvailableRoutes []map[string]any `json:"available_routes,omitempty"`
}

type TripPlan struct {
	Destination    ResolvedDestination `json:"destination"`
	Flights        []FlightOffer       `json:"flights"`
	FlightInsights FlightInsights      `json:"flight_insights"`
	Hotels         []HotelOffer        `json:"hotels"`
	HotelInsights  HotelInsights       `json:"hotel_insights"`
	Activities     []Activity          `json:"activities"`
	TravelInsights TravelInsights      `json:"travel_insights"`
	Itinerary      []ItineraryDay      `json:"itinerary"`
	DepartureDate  string              `json:"departure_date"`
	ReturnDate     string              `json:"return_date,omitempty"`
}
