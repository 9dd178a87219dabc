// Package handlers registers the MCP tools that forward to the insurance API.
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Sideko-Inc/insurance-api-demo/client"
)

// jsonResult renders an API reply as indented JSON text.
func jsonResult(raw json.RawMessage) *mcp.CallToolResult {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return mcp.NewToolResultText(string(raw))
	}
	return mcp.NewToolResultText(buf.String())
}

// errorResult reports a failed call as an isError result carrying the
// server's message when there is one.
func errorResult(err error) *mcp.CallToolResult {
	msg := err.Error()
	if apiErr, ok := client.AsAPIError(err); ok {
		switch {
		case apiErr.Message != "":
			msg = apiErr.Message
		case apiErr.Status != "":
			msg = apiErr.Status
		default:
			msg = fmt.Sprintf("API request failed: %d", apiErr.StatusCode)
		}
	}
	return mcp.NewToolResultError("Error: " + msg)
}

// objectArg returns args[key] when it is a JSON object.
func objectArg(req mcp.CallToolRequest, key string) (map[string]any, error) {
	v, ok := req.GetArguments()[key]
	if !ok {
		return nil, fmt.Errorf("required argument %q not found", key)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be an object", key)
	}
	return obj, nil
}
