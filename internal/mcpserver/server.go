// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes plantdesk pages as tools for LLM integration via stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/plantdesk/internal/crud"
	"github.com/starford/plantdesk/internal/pageservice"
)

// Server wraps the MCP server with plantdesk tools.
type Server struct {
	mcp *server.MCPServer
	svc *pageservice.Service
}

// New creates a new MCP server with all plantdesk tools registered.
func New(svc *pageservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"plantdesk",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_routes",
		mcp.WithDescription("List the dashboard pages that can be opened."),
	), s.listRoutes)

	s.mcp.AddTool(mcp.NewTool("open_page",
		mcp.WithDescription("Open a page with fresh sample data. Returns a session id "+
			"that every other tool needs, plus the rendered page."),
		mcp.WithString("route", mcp.Required(), mcp.Description("Route name, e.g. batching or menu-items")),
	), s.openPage)

	s.mcp.AddTool(mcp.NewTool("close_page",
		mcp.WithDescription("Close a page session, discarding every change made in it."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id from open_page")),
	), s.closePage)

	s.mcp.AddTool(mcp.NewTool("list_records",
		mcp.WithDescription("Render the page with the given search text and filter applied. "+
			"Search is a case-insensitive substring match; filter is an exact status or "+
			"category value, or \"all\"."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id from open_page")),
		mcp.WithString("search", mcp.Description("Free-text search")),
		mcp.WithString("filter", mcp.Description("Categorical filter, default all")),
	), s.listRecords)

	s.mcp.AddTool(mcp.NewTool("show_record",
		mcp.WithDescription("Show one record in the page's detail view."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id from open_page")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
	), s.showRecord)

	s.mcp.AddTool(mcp.NewTool("save_record",
		mcp.WithDescription("Create a record, or update record id, from a set of named fields. "+
			"Field names are those of the page's form; read plantdesk://guide first."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id from open_page")),
		mcp.WithString("id", mcp.Description("Record to update; omit to create")),
		mcp.WithObject("fields", mcp.Required(), mcp.Description("Form field name to string value")),
	), s.saveRecord)

	s.mcp.AddTool(mcp.NewTool("delete_record",
		mcp.WithDescription("Delete a record."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id from open_page")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
	), s.deleteRecord)

	s.mcp.AddTool(mcp.NewTool("toggle_status",
		mcp.WithDescription("Flip a menu item between active and inactive, or take a production line on or off line."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id from open_page")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
	), s.toggleStatus)

	s.mcp.AddTool(mcp.NewTool("start_batch",
		mcp.WithDescription("Start a pending batch. Fails for batches that are not pending."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id of a batching page")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Batch id, e.g. B-2403")),
	), s.startBatch)

	s.mcp.AddTool(mcp.NewTool("complete_batch",
		mcp.WithDescription("Complete an in-progress batch. Fails for batches that are not in progress."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session id of a batching page")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Batch id")),
	), s.completeBatch)

	s.mcp.AddResource(
		mcp.NewResource("plantdesk://routes", "Routes",
			mcp.WithResourceDescription("Navigable dashboard pages."),
			mcp.WithMIMEType("application/json"),
		),
		s.readRoutesResource,
	)

	s.mcp.AddResource(
		mcp.NewResource("plantdesk://guide", "Page Guide",
			mcp.WithResourceDescription("Form fields, statuses and filters of every page."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readGuideResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func pageResult(res *pageservice.Result, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res), nil
}

// sessionAndID reads the two arguments most tools share.
func sessionAndID(req mcp.CallToolRequest) (string, string, error) {
	sid, err := req.RequireString("session")
	if err != nil {
		return "", "", err
	}
	id, err := req.RequireString("id")
	if err != nil {
		return "", "", err
	}
	return sid, id, nil
}

func (s *Server) listRoutes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Routes()), nil
}

func (s *Server) openPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	route, err := req.RequireString("route")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, found := s.svc.Open(ctx, route)
	if !found {
		_ = s.svc.Close(ctx, res.Session)
		return mcp.NewToolResultError(fmt.Sprintf("unknown route: %s", route)), nil
	}
	return jsonResult(res), nil
}

func (s *Server) closePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sid, err := req.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.Close(ctx, sid); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("closed " + sid), nil
}

func (s *Server) listRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sid, err := req.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	q := crud.Query{Search: req.GetString("search", ""), Filter: req.GetString("filter", crud.All)}
	return pageResult(s.svc.SetQuery(ctx, sid, q))
}

func (s *Server) showRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sid, id, err := sessionAndID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.ShowOverlay(ctx, sid, id)
	if err == nil && !res.Changed {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return pageResult(res, err)
}

func (s *Server) saveRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sid, err := req.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fields, ok := req.GetArguments()["fields"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("fields must be an object"), nil
	}
	id := req.GetString("id", "")

	mode := crud.ModeAdd
	if id != "" {
		mode = crud.ModeEdit
	}
	res, err := s.svc.OpenForm(ctx, sid, mode, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !res.Changed {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := s.svc.SetField(ctx, sid, name, fmt.Sprint(fields[name])); err != nil {
			_, _ = s.svc.CancelForm(ctx, sid)
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return pageResult(s.svc.SaveForm(ctx, sid))
}

func (s *Server) deleteRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sid, id, err := sessionAndID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return pageResult(s.svc.Remove(ctx, sid, id))
}

func (s *Server) toggleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sid, id, err := sessionAndID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return pageResult(s.svc.Toggle(ctx, sid, id))
}

func (s *Server) startBatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sid, id, err := sessionAndID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return pageResult(s.svc.Start(ctx, sid, id))
}

func (s *Server) completeBatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sid, id, err := sessionAndID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return pageResult(s.svc.Complete(ctx, sid, id))
}

func (s *Server) readRoutesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	out, err := json.Marshal(s.svc.Routes())
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "plantdesk://routes",
			MIMEType: "application/json",
			Text:     string(out),
		},
	}, nil
}

func (s *Server) readGuideResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "plantdesk://guide",
			MIMEType: "text/markdown",
			Text:     PageGuide,
		},
	}, nil
}
