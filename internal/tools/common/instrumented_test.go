package common

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gmsa-cli/gmsa/internal/server"
)

func newTestRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestInstrumentedToolHandlerPassthrough(t *testing.T) {
	// Without metrics or audit logger the wrapper must not get in the way
	sc, err := server.NewServerContext(t.Context(), false)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	called := false
	handler := InstrumentedToolHandler("test_tool", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), newTestRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !called {
		t.Error("wrapped handler was not called")
	}
	if result == nil || result.IsError {
		t.Error("expected a successful result")
	}
}

func TestInstrumentedToolHandlerPropagatesError(t *testing.T) {
	sc, err := server.NewServerContext(t.Context(), false)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	wantErr := errors.New("handler failed")
	handler := InstrumentedToolHandler("test_tool", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, wantErr
	})

	_, err = handler(context.Background(), newTestRequest(map[string]interface{}{"account": "work"}))
	if !errors.Is(err, wantErr) {
		t.Errorf("handler error = %v, want %v", err, wantErr)
	}
}
