package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/madness-mcp-server/internal/config"
	"github.com/sam-maryland/madness-mcp-server/internal/handlers"
	"github.com/sam-maryland/madness-mcp-server/internal/roster"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestHandler() *handlers.BracketHandler {
	logger, _ := test.NewNullLogger()
	return handlers.NewBracketHandler(
		roster.NewStaticSource(),
		config.DefaultSimulatorConfig(),
		clockwork.NewFakeClockAt(time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC)),
		logger,
	)
}

func TestTools(t *testing.T) {
	tools := Tools(newTestHandler())

	want := []string{"list_entrants", "get_upset_probability", "simulate_game", "simulate_region", "simulate_tournament"}
	if len(tools) != len(want) {
		t.Fatalf("Expected %d tools, got %d", len(want), len(tools))
	}
	for i, name := range want {
		if tools[i].Name != name {
			t.Errorf("Expected tool %d to be %s, got %s", i, name, tools[i].Name)
		}
	}
}

func TestCallTool_Routes(t *testing.T) {
	handler := newTestHandler()
	logger, hook := test.NewNullLogger()

	result, err := CallTool(context.Background(), handler, logger, "simulate_region", map[string]interface{}{
		"region": "West",
		"seed":   float64(8),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Errorf("Expected success, got %v", result.Content)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Data["tool"] != "simulate_region" {
		t.Error("Expected tool call to be logged")
	}
}

func TestCallTool_NilArguments(t *testing.T) {
	result, err := CallTool(context.Background(), newTestHandler(), logrus.New(), "list_entrants", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Errorf("Expected success, got %v", result.Content)
	}
}

func TestCallTool_UnknownTool(t *testing.T) {
	logger, hook := test.NewNullLogger()

	result, err := CallTool(context.Background(), newTestHandler(), logger, "pick_my_bracket", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected error result for unknown tool")
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if text != "Unknown tool: pick_my_bracket" {
		t.Errorf("Unexpected message: %s", text)
	}
	if hook.LastEntry().Level != logrus.WarnLevel {
		t.Error("Expected a warning for the unknown tool")
	}
}

func TestNewBracketMCPServer(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewBracketMCPServer(roster.NewStaticSource(), config.DefaultSimulatorConfig(), clockwork.NewRealClock(), logger)
	if s == nil {
		t.Fatal("Expected server to be created")
	}
}
