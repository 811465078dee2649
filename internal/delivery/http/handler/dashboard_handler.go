package handler

import (
	"net/http"

	"hospitron/internal/delivery/http/middleware"
	"hospitron/internal/usecase"
	"hospitron/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	overview := h.dashboardUsecase.Overview(r.Context(), session.User)
	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", overview)
}
