package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/ports"
	"github.com/voyago/voyago-backend/internal/service"
	"github.com/voyago/voyago-backend/internal/util"
)

type TripHandler struct {
	trips *service.TripService
}

func RegisterTrips(e *echo.Echo, auth *service.AuthService, trips *service.TripService) {
	handler := &TripHandler{trips: trips}

	group := e.Group("/api/v1/trips", RequireAuth(auth))
	group.POST("", handler.createTrip)
	group.GET("", handler.listTrips)
	group.PUT("/:trip_id", handler.updateTrip)
	group.DELETE("/:trip_id", handler.deleteTrip)
}

func (h *TripHandler) createTrip(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req service.SaveTripInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	trip, err := h.trips.SaveTrip(c.Request().Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, service.ErrMissingTripField) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to save trip"))
	}
	return c.JSON(http.StatusCreated, trip)
}

func (h *TripHandler) listTrips(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	trips, err := h.trips.List(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list trips"))
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return c.JSON(http.StatusOK, echo.Map{"trips": trips})
}

func (h *TripHandler) updateTrip(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	tripID, err := uuid.Parse(c.Param("trip_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("trip_id must be a valid UUID"))
	}

	var req struct {
		Title     *string `json:"title"`
		StartDate *string `json:"start_date"`
		EndDate   *string `json:"end_date"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.Title == nil && req.StartDate == nil && req.EndDate == nil {
		return c.JSON(http.StatusBadRequest, util.Error("nothing to update"))
	}

	trip, err := h.trips.Update(c.Request().Context(), tripID, user.ID, ports.TripUpdate{
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("trip not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update trip"))
	}
	return c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) deleteTrip(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	tripID, err := uuid.Parse(c.Param("trip_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("trip_id must be a valid UUID"))
	}

	if err := h.trips.Delete(c.Request().Context(), tripID, user.ID); err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("trip not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to delete trip"))
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
