package httpadapter

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// The ops surface is read-only.
const (
	corsAllowMethods = "GET,OPTIONS"
	corsAllowHeaders = "Content-Type"
	corsMaxAge       = "600"
)

func corsMiddleware(origin string) app.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c context.Context, ctx *app.RequestContext) {
		h := &ctx.Response.Header
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Max-Age", corsMaxAge)
		if origin != "*" {
			h.Set("Vary", "Origin")
		}
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
