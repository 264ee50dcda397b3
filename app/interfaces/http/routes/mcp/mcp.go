package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"duckdata.io/duckdb-data-api/app/domain/catalog"
	"duckdata.io/duckdb-data-api/app/domain/sqlexec"
	"duckdata.io/duckdb-data-api/config"
)

func MCPMethodGuard(allowedMethods map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		var req struct {
			Method string `json:"method"`
		}

		if err := json.Unmarshal(bodyBytes, &req); err != nil {
			c.Abort()
			return
		}

		if !allowedMethods[req.Method] {
			c.Abort()
			return
		}
		c.Next()
	}
}

// MCPAPI exposes read-only querying to agent clients.
type MCPAPI struct {
	MCPServer      *mcpserver.MCPServer
	sqlExecService *sqlexec.SQLExecService
	catalogService *catalog.CatalogService
}

func NewMCPAPI(sqlExecService *sqlexec.SQLExecService, catalogService *catalog.CatalogService) *MCPAPI {
	mcpSrv := mcpserver.NewMCPServer("duckdb-data-api", config.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)
	return &MCPAPI{
		MCPServer:      mcpSrv,
		sqlExecService: sqlExecService,
		catalogService: catalogService,
	}
}

// MCPStream
// @Summary MCP streamable endpoint
// @Description Handles Model Context Protocol (MCP) requests over an HTTP stream, exposing the query and list_tables tools.
// @Tags mcp
// @Accept json
// @Produce text/event-stream
// @Param request body any true "MCP request payload"
// @Success 200 {string} string "Streamed response (SSE or chunked transfer)"
// @Router /mcp [post]
func (mcpAPI *MCPAPI) RegisterRouter(router gin.IRouter) {
	mcpAPI.registerTools()

	mcpHttpHandler := mcpserver.NewStreamableHTTPServer(mcpAPI.MCPServer)
	router.Any(
		"/mcp",
		MCPMethodGuard(map[string]bool{
			// Initialization / handshake
			"initialize":                true,
			"notifications/initialized": true,
			"ping":                      true,

			// Tools
			"tools/list": true,
			"tools/call": true,
		}),
		gin.WrapH(mcpHttpHandler))
}

func (mcpAPI *MCPAPI) registerTools() {
	queryTool := mcp.NewTool("query",
		mcp.WithDescription("Run a read-only SQL query against the proxied database"),
		mcp.WithString("sql",
			mcp.Required(),
			mcp.Description("SELECT statement to execute"),
		),
	)
	mcpAPI.MCPServer.AddTool(queryTool, mcpAPI.handleQuery)

	listTablesTool := mcp.NewTool("list_tables",
		mcp.WithDescription("List the tables available in the configured schema"),
	)
	mcpAPI.MCPServer.AddTool(listTablesTool, mcpAPI.handleListTables)
}

func (mcpAPI *MCPAPI) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sql, err := request.RequireString("sql")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !sqlexec.IsSelect(sql) {
		return mcp.NewToolResultError("only SELECT statements are allowed"), nil
	}

	result, err := mcpAPI.sqlExecService.Execute(ctx, sql)
	if err != nil {
		if errors.Is(err, sqlexec.ErrBlacklisted) {
			return mcp.NewToolResultError("the query contains prohibited keywords"), nil
		}
		return nil, err
	}

	payload, err := json.Marshal(result.Data)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (mcpAPI *MCPAPI) handleListTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tables, err := mcpAPI.catalogService.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(tables)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(payload)), nil
}
