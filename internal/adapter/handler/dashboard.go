package handler

import (
	"net/http"

	"interview-hub/internal/domain"
	"interview-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// DashboardHandler handles GET /api/interviews.
type DashboardHandler struct {
	uc *usecase.ListDashboard
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(uc *usecase.ListDashboard) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Handle returns the interview cards for the signed-in user. Must run behind RequirePrincipal.
func (h *DashboardHandler) Handle(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return mapDomainError(domain.ErrSessionInvalid)
	}

	dashboard, err := h.uc.Execute(c.Request().Context(), p)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
