package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/pkg/httpcontext"
	projectUC "github.com/fastygo/teamtasks/usecase/project"
)

type ProjectHandler struct {
	baseHandler
	uc *projectUC.UseCase
}

func NewProjectHandler(uc *projectUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List projects with task counts
// @Tags projects
// @Router /api/projects [get]
func (h *ProjectHandler) ListProjects(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	projects, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, projects)
}

// @Summary Paged task list of a project
// @Tags projects
// @Param status query string false "ToDo, InProgress, Blocked or Completed"
// @Param assigneeId query int false "developer id"
// @Param page query int false "1-based page, default 1"
// @Param pageSize query int false "default 10, max 100"
// @Router /api/projects/{id}/tasks [get]
func (h *ProjectHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	projectID, ok := pathID(ctx, "id")
	if !ok {
		h.respondInvalid(ctx, "project id must be a positive integer")
		return
	}

	page, ok := queryInt(ctx, "page", 1)
	if !ok {
		h.respondInvalid(ctx, domain.ErrInvalidPage.Message)
		return
	}
	pageSize, ok := queryInt(ctx, "pageSize", domain.DefaultPageSize)
	if !ok {
		h.respondInvalid(ctx, domain.ErrInvalidPageSize.Message)
		return
	}

	query := projectUC.TaskQuery{
		ProjectID: projectID,
		Status:    string(ctx.QueryArgs().Peek("status")),
		Page:      page,
		PageSize:  pageSize,
	}
	if raw := ctx.QueryArgs().Peek("assigneeId"); len(raw) > 0 {
		assignee, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			h.respondInvalid(ctx, "assigneeId must be an integer")
			return
		}
		query.AssigneeID = &assignee
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Tasks(stdCtx, query)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, result)
}
