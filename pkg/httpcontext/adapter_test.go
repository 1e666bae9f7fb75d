package httpcontext

import (
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/teamtasks/pkg/logger"
)

func TestAttachKeepsClientRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	rc.Request.Header.Set(HeaderRequestID, "abc-123")

	ctx, cancel := NewAdapter(time.Second).Attach(&rc)
	defer cancel()

	if got := appLogger.RequestIDFromContext(ctx); got != "abc-123" {
		t.Fatalf("request id in context = %q", got)
	}
	if got := string(rc.Response.Header.Peek(HeaderRequestID)); got != "abc-123" {
		t.Fatalf("request id not echoed, got %q", got)
	}
	if _, ok := ctx.Deadline(); !ok {
		t.Fatalf("expected a deadline")
	}
}

func TestRequestIDIsStablePerRequest(t *testing.T) {
	var rc fasthttp.RequestCtx
	first := RequestID(&rc)
	if first == "" || RequestID(&rc) != first {
		t.Fatalf("generated id should be reused within a request")
	}
}
