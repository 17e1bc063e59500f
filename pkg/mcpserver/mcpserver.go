// Package mcpserver exposes the reviewer as a Model Context Protocol tool so
// editors and agents can check ABAP code over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/nsxbet/abap-reviewer/pkg/advisor"
	"github.com/nsxbet/abap-reviewer/pkg/reviewer"
	"github.com/nsxbet/abap-reviewer/pkg/types"
)

// ToolCheckDraftFilter is the name of the single tool served.
const ToolCheckDraftFilter = "check_draft_filter"

// Server serves the check tool.
type Server struct {
	reviewer *reviewer.Reviewer
	mcp      *server.MCPServer
}

// New creates a server named abap-reviewer at version.
func New(r *reviewer.Reviewer, version string) *Server {
	s := &Server{
		reviewer: r,
		mcp:      server.NewMCPServer("abap-reviewer", version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(checkTool(), s.handleCheck)
	return s
}

func checkTool() mcp.Tool {
	return mcp.NewTool(ToolCheckDraftFilter,
		mcp.WithDescription(fmt.Sprintf(
			"Find SELECT statements on VBRK/VBRP that do not exclude draft billing documents (SAP Note %d). "+
				"Returns the unit as JSON with one finding per offending statement.",
			advisor.SAPNoteDraftFilter)),
		mcp.WithString("code", mcp.Required(), mcp.Description("ABAP source code")),
		mcp.WithString("program", mcp.Description("program name (pgm_name)")),
		mcp.WithString("include", mcp.Description("include name (inc_name), defaults to the program")),
		mcp.WithString("type", mcp.Description("object type, e.g. PROG or CLAS")),
		mcp.WithString("name", mcp.Description("block name, e.g. the method")),
		mcp.WithNumber("start_line", mcp.Description("offset added to in-unit line numbers (0 when the code starts the include)")),
	)
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves requests on stdin/stdout until stdin closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	unit, err := unitFromArguments(request.Params.Arguments)
	if err != nil {
		return toolError(err.Error()), nil
	}

	scanned, err := s.reviewer.Scan(ctx, unit)
	if err != nil {
		return nil, err
	}
	slog.Debug("mcp check done", "program", unit.ProgramName, "findings", len(scanned.Findings))

	data, err := json.MarshalIndent(scanned, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func unitFromArguments(args map[string]interface{}) (*types.SourceUnit, error) {
	code, ok := args["code"].(string)
	if !ok {
		return nil, errors.New("argument code is required and must be a string")
	}

	unit := &types.SourceUnit{
		ProgramName: stringArg(args, "program"),
		IncludeName: stringArg(args, "include"),
		Kind:        stringArg(args, "type"),
		BlockName:   stringArg(args, "name"),
		Code:        code,
	}
	if unit.IncludeName == "" {
		unit.IncludeName = unit.ProgramName
	}
	if unit.Kind == "" {
		unit.Kind = "PROG"
	}
	if v, ok := args["start_line"].(float64); ok {
		unit.StartLine = int(v)
	}
	return unit, nil
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(msg)},
		IsError: true,
	}
}
