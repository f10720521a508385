package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyago/voyago-backend/internal/repository/ports"
	"github.com/voyago/voyago-backend/internal/service"
	"github.com/voyago/voyago-backend/internal/util"
)

type FlightHandler struct {
	flights   ports.FlightSearch
	directory ports.LocationDirectory
}

func RegisterFlights(e *echo.Echo, auth *service.AuthService, flights ports.FlightSearch, directory ports.LocationDirectory) {
	handler := &FlightHandler{flights: flights, directory: directory}

	group := e.Group("/api/v1/flights", RequireAuth(auth))
	group.GET("/search", handler.search)
	group.GET("/destinations", handler.destinations)
}

func (h *FlightHandler) search(c echo.Context) error {
	origin := strings.ToUpper(strings.TrimSpace(c.QueryParam("origin")))
	destination := strings.ToUpper(strings.TrimSpace(c.QueryParam("destination")))
	departureDate := strings.TrimSpace(c.QueryParam("departure_date"))
	returnDate := strings.TrimSpace(c.QueryParam("return_date"))

	if origin == "" || destination == "" || departureDate == "" {
		return c.JSON(http.StatusBadRequest, util.Error("origin, destination and departure_date are required"))
	}

	adults := 1
	if raw := c.QueryParam("adults"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, util.Error("adults must be a positive integer"))
		}
		adults = parsed
	}

	offers, err := h.flights.SearchFlightOffers(c.Request().Context(), ports.FlightQuery{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		Adults:        adults,
		Max:           10,
	})
	if err != nil {
		return c.JSON(http.StatusBadGateway, util.Error("flight search is temporarily unavailable"))
	}
	return c.JSON(http.StatusOK, echo.Map{"flights": offers})
}

func (h *FlightHandler) destinations(c echo.Context) error {
	origin := strings.ToUpper(strings.TrimSpace(c.QueryParam("origin")))
	if len(origin) != 3 {
		return c.JSON(http.StatusBadRequest, util.Error("origin must be a 3-letter airport code"))
	}

	routes, err := h.directory.DirectDestinations(c.Request().Context(), origin, 10)
	if err != nil {
		return c.JSON(http.StatusBadGateway, util.Error("route lookup is temporarily unavailable"))
	}
	return c.JSON(http.StatusOK, echo.Map{"origin": origin, "destinations": routes})
}
