package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/teamtasks/pkg/httpcontext"
	dashboardUC "github.com/fastygo/teamtasks/usecase/dashboard"
)

type DashboardHandler struct {
	baseHandler
	uc *dashboardUC.UseCase
}

func NewDashboardHandler(uc *dashboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Open work per active developer
// @Tags dashboard
// @Router /api/dashboard/developer-workload [get]
func (h *DashboardHandler) DeveloperWorkload(ctx *fasthttp.RequestCtx) {
	serve(h.baseHandler, ctx, h.uc.DeveloperWorkload)
}

// @Summary Task counts per project
// @Tags dashboard
// @Router /api/dashboard/project-health [get]
func (h *DashboardHandler) ProjectHealth(ctx *fasthttp.RequestCtx) {
	serve(h.baseHandler, ctx, h.uc.ProjectHealth)
}

// @Summary Delay risk per developer with open tasks
// @Tags dashboard
// @Router /api/dashboard/developer-delay-risk [get]
func (h *DashboardHandler) DelayRisk(ctx *fasthttp.RequestCtx) {
	serve(h.baseHandler, ctx, h.uc.DelayRisk)
}

func serve[T any](h baseHandler, ctx *fasthttp.RequestCtx, load func(context.Context) ([]T, error)) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	items, err := load(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	h.respondJSON(ctx, http.StatusOK, items)
}
