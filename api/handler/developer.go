package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/teamtasks/api/transport"
	"github.com/fastygo/teamtasks/pkg/httpcontext"
	developerUC "github.com/fastygo/teamtasks/usecase/developer"
)

type DeveloperHandler struct {
	baseHandler
	uc *developerUC.UseCase
}

func NewDeveloperHandler(uc *developerUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DeveloperHandler {
	return &DeveloperHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Active developers for the assignee picker
// @Tags developers
// @Router /api/developers [get]
func (h *DeveloperHandler) ListDevelopers(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	developers, err := h.uc.ListActive(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewDeveloperResponses(developers))
}
