package mcp

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sam-maryland/madness-mcp-server/internal/config"
	"github.com/sam-maryland/madness-mcp-server/internal/handlers"
	"github.com/sam-maryland/madness-mcp-server/internal/roster"
	"github.com/sirupsen/logrus"
)

const (
	ServerName    = "Tournament Bracket Simulator"
	ServerVersion = "1.0.0"
)

// Tools returns every tool the server exposes
func Tools(bracketHandler *handlers.BracketHandler) []mcp.Tool {
	return []mcp.Tool{
		bracketHandler.ListEntrantsTool(),
		bracketHandler.GetUpsetProbabilityTool(),
		bracketHandler.SimulateGameTool(),
		bracketHandler.SimulateRegionTool(),
		bracketHandler.SimulateTournamentTool(),
	}
}

// CallTool routes a tool call to its handler
func CallTool(ctx context.Context, bracketHandler *handlers.BracketHandler, logger *logrus.Logger, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	logger.WithFields(logrus.Fields{
		"tool": name,
		"args": arguments,
	}).Info("Tool called")

	if arguments == nil {
		arguments = map[string]interface{}{}
	}

	switch name {
	case "list_entrants":
		return bracketHandler.HandleListEntrants(ctx, arguments)
	case "get_upset_probability":
		return bracketHandler.HandleGetUpsetProbability(ctx, arguments)
	case "simulate_game":
		return bracketHandler.HandleSimulateGame(ctx, arguments)
	case "simulate_region":
		return bracketHandler.HandleSimulateRegion(ctx, arguments)
	case "simulate_tournament":
		return bracketHandler.HandleSimulateTournament(ctx, arguments)
	default:
		logger.WithField("tool", name).Warn("Unknown tool called")
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Type: "text",
					Text: "Unknown tool: " + name,
				},
			},
			IsError: true,
		}, nil
	}
}

func NewBracketMCPServer(source roster.Source, settings *config.SimulatorConfig, clock clockwork.Clock, logger *logrus.Logger) *server.DefaultServer {
	bracketHandler := handlers.NewBracketHandler(source, settings, clock, logger)

	s := server.NewDefaultServer(ServerName, ServerVersion)
	if s == nil {
		logger.Error("Failed to create MCP server instance")
		return nil
	}

	logger.Info("MCP server instance created successfully")

	s.HandleListTools(func(ctx context.Context, cursor *string) (*mcp.ListToolsResult, error) {
		tools := Tools(bracketHandler)

		logger.WithField("tools_count", len(tools)).Info("Listing available tools")

		return &mcp.ListToolsResult{
			Tools: tools,
		}, nil
	})

	s.HandleCallTool(func(ctx context.Context, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
		return CallTool(ctx, bracketHandler, logger, name, arguments)
	})

	logger.Info("All tools registered successfully")
	return s
}
