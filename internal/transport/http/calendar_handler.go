package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/service"
	"github.com/voyago/voyago-backend/internal/util"
)

type CalendarHandler struct {
	calendars *service.CalendarService
}

func RegisterCalendar(e *echo.Echo, auth *service.AuthService, calendars *service.CalendarService) {
	handler := &CalendarHandler{calendars: calendars}

	group := e.Group("/api/v1/calendar", RequireAuth(auth))
	group.GET("/status", handler.status)
	group.POST("/events", handler.exportOverview)
	group.POST("/itinerary", handler.exportItinerary)
}

func (h *CalendarHandler) status(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, h.calendars.Status(c.Request().Context(), user.ID))
}

func (h *CalendarHandler) exportOverview(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req service.ExportOverviewInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.Destination.Name == "" || req.DepartureDate == "" {
		return c.JSON(http.StatusBadRequest, util.Error("destination and departure_date are required"))
	}

	created, err := h.calendars.ExportOverview(c.Request().Context(), user.ID, req)
	if err != nil {
		return h.calendarError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"event": created})
}

func (h *CalendarHandler) exportItinerary(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		Plan *domain.TripPlan `json:"plan"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.Plan == nil || len(req.Plan.Itinerary) == 0 {
		return c.JSON(http.StatusBadRequest, util.Error("plan with a non-empty itinerary is required"))
	}

	result, err := h.calendars.ExportItinerary(c.Request().Context(), user.ID, req.Plan)
	if err != nil {
		return h.calendarError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *CalendarHandler) calendarError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrCalendarNotConnected):
		return c.JSON(http.StatusPreconditionFailed, echo.Map{
			"error":  "google calendar is not connected",
			"action": "connect Google Calendar in your account settings, then retry",
		})
	case errors.Is(err, service.ErrCalendarAuth):
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error":  "google calendar authorization expired",
			"action": "reconnect Google Calendar to refresh access, then retry",
		})
	case errors.Is(err, service.ErrCalendarAccess):
		return c.JSON(http.StatusBadGateway, util.Error("could not reach google calendar"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
	}
}
