package httpadapter

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"clawcolony/internal/app/inspect"
	"clawcolony/internal/app/ports"
)

const colonyParam = "colony"

var ErrInvalidLimit = errors.New("limit must be a non-negative integer")

type Handler struct {
	InspectUC inspect.UseCase
	KPI       kpiSnapshotProvider
	// AllowOrigin is sent as Access-Control-Allow-Origin; empty means "*".
	AllowOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowOrigin))
	s.GET("/healthz", h.healthz)
	s.GET("/ops/kpi", h.kpi)

	colonies := s.Group("/ops/colonies/:" + colonyParam)
	colonies.GET("/queue", h.queue)
	colonies.GET("/workers", h.workers)
	colonies.GET("/production", h.production)
	colonies.GET("/scores", h.scores)
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func colonyFrom(ctx *app.RequestContext) inspect.Request {
	return inspect.Request{Colony: strings.TrimSpace(ctx.Param(colonyParam))}
}

func (h Handler) queue(c context.Context, ctx *app.RequestContext) {
	resp, err := h.InspectUC.Queue(c, colonyFrom(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) workers(c context.Context, ctx *app.RequestContext) {
	resp, err := h.InspectUC.Workers(c, colonyFrom(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) production(c context.Context, ctx *app.RequestContext) {
	req := colonyFrom(ctx)
	if raw := string(ctx.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(ctx, ErrInvalidLimit)
			return
		}
		req.Limit = limit
	}
	resp, err := h.InspectUC.Production(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) scores(c context.Context, ctx *app.RequestContext) {
	resp, err := h.InspectUC.Scores(c, colonyFrom(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrInvalidLimit):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_limit", err.Error())
	case errors.Is(err, inspect.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
