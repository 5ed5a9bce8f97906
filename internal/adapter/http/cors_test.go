package httpadapter

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	ctx := app.NewContext(0)
	ctx.Request.Header.SetMethod(consts.MethodOptions)
	reached := false
	ctx.SetHandlers(app.HandlersChain{
		corsMiddleware(""),
		func(context.Context, *app.RequestContext) { reached = true },
	})
	ctx.Next(context.Background())

	if reached {
		t.Fatalf("preflight reached the route handler")
	}
	if got := ctx.Response.StatusCode(); got != consts.StatusNoContent {
		t.Fatalf("status = %d, want %d", got, consts.StatusNoContent)
	}
	if got := string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")); got != "GET,OPTIONS" {
		t.Fatalf("allow-methods = %q", got)
	}
}

func TestCORSMiddleware_GetPassesThrough(t *testing.T) {
	ctx := app.NewContext(0)
	ctx.Request.Header.SetMethod(consts.MethodGet)
	reached := false
	ctx.SetHandlers(app.HandlersChain{
		corsMiddleware("https://ops.example"),
		func(context.Context, *app.RequestContext) { reached = true },
	})
	ctx.Next(context.Background())

	if !reached {
		t.Fatalf("GET did not reach the route handler")
	}
	if got := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")); got != "https://ops.example" {
		t.Fatalf("allow-origin = %q", got)
	}
	if got := string(ctx.Response.Header.Peek("Vary")); got != "Origin" {
		t.Fatalf("vary = %q", got)
	}
}
