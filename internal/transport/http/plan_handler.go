package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/service"
	"github.com/voyago/voyago-backend/internal/util"
)

type PlanHandler struct {
	plans *service.PlanService
}

func RegisterPlan(e *echo.Echo, auth *service.AuthService, plans *service.PlanService) {
	handler := &PlanHandler{plans: plans}
	e.POST("/api/v1/plan", handler.plan, RequireAuth(auth))
}

func (h *PlanHandler) plan(c echo.Context) error {
	var req domain.TripRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if msg := validateTripRequest(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, util.Error(msg))
	}

	plan := h.plans.Plan(c.Request().Context(), req)
	return c.JSON(http.StatusOK, plan)
}

func validateTripRequest(req *domain.TripRequest) string {
	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)
	req.DepartureDate = strings.TrimSpace(req.DepartureDate)
	req.ReturnDate = strings.TrimSpace(req.ReturnDate)

	switch {
	case req.Origin == "":
		return "origin is required"
	case req.Destination == "":
		return "destination is required"
	case req.DepartureDate == "":
		return "departure_date is required"
	}
	if req.Travelers <= 0 {
		req.Travelers = 1
	}
	if req.Budget == "" {
		req.Budget = domain.BudgetTierMidRange
	} else if !req.Budget.IsValid() {
		return "budget must be one of budget, mid-range, luxury"
	}
	if req.TravelStyle == "" {
		req.TravelStyle = domain.TravelStyleCultural
	} else if !req.TravelStyle.IsValid() {
		return "travel_style must be one of adventure, relaxation, cultural, business, family, romantic"
	}
	return ""
}
