package handlers

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
)

// formatJSONResponse converts a response struct to a formatted JSON string
func formatJSONResponse(response interface{}) (string, error) {
	jsonBytes, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}

	return string(jsonBytes), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}

func errorResult(format string, a ...interface{}) *mcp.CallToolResult {
	result := textResult(fmt.Sprintf(format, a...))
	result.IsError = true
	return result
}

// stringArg returns a trimmed string argument; ok is false when the key is
// present with a non-string value.
func stringArg(args map[string]interface{}, key string) (string, bool) {
	v, exists := args[key]
	if !exists || v == nil {
		return "", true
	}
	s, ok := v.(string)
	return s, ok
}

// intArg reads a JSON number that must hold an integer value
func intArg(args map[string]interface{}, key string) (int64, bool, error) {
	v, exists := args[key]
	if !exists || v == nil {
		return 0, false, nil
	}
	f, ok := v.(float64)
	if !ok {
		return 0, true, fmt.Errorf("%s must be an integer", key)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, true, fmt.Errorf("%s must be an integer", key)
	}
	return int64(f), true, nil
}
