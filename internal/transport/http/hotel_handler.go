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

type HotelHandler struct {
	hotels ports.HotelSearch
}

func RegisterHotels(e *echo.Echo, auth *service.AuthService, hotels ports.HotelSearch) {
	handler := &HotelHandler{hotels: hotels}

	group := e.Group("/api/v1/hotels", RequireAuth(auth))
	group.GET("/search", handler.search)
}

func (h *HotelHandler) search(c echo.Context) error {
	cityCode := strings.ToUpper(strings.TrimSpace(c.QueryParam("city_code")))
	checkIn := strings.TrimSpace(c.QueryParam("check_in"))
	checkOut := strings.TrimSpace(c.QueryParam("check_out"))

	if len(cityCode) != 3 {
		return c.JSON(http.StatusBadRequest, util.Error("city_code must be a 3-letter city code"))
	}
	if checkIn == "" || checkOut == "" {
		return c.JSON(http.StatusBadRequest, util.Error("check_in and check_out are required"))
	}

	adults := 1
	if raw := c.QueryParam("adults"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, util.Error("adults must be a positive integer"))
		}
		adults = parsed
	}

	ctx := c.Request().Context()
	hotelIDs, err := h.hotels.HotelIDsByCity(ctx, cityCode, 15)
	if err != nil {
		return c.JSON(http.StatusBadGateway, util.Error("hotel search is temporarily unavailable"))
	}
	if len(hotelIDs) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"hotels": []any{}})
	}

	offers, err := h.hotels.HotelOffers(ctx, hotelIDs, ports.HotelStay{
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Adults:       adults,
	})
	if err != nil {
		return c.JSON(http.StatusBadGateway, util.Error("hotel search is temporarily unavailable"))
	}
	if len(offers) > 6 {
		offers = offers[:6]
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": offers})
}
