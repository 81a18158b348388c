package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jsonbrowse/internal/adapters/textout"
	"jsonbrowse/internal/application"
	"jsonbrowse/internal/domain"
)

// RegisterReadTools adds the read-only browsing tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, renderer *application.Renderer) {
	s.AddTool(pingTool(), pingHandler())
	s.AddTool(renderTool(), renderHandler(renderer))
	s.AddTool(breadcrumbsTool(), breadcrumbsHandler())
}

// --- ping ---

func pingTool() mcp.Tool {
	return mcp.NewTool("ping",
		mcp.WithDescription("Health check, returns pong"),
	)
}

func pingHandler() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong"), nil
	}
}

// --- render ---

func renderTool() mcp.Tool {
	return mcp.NewTool("render",
		mcp.WithDescription("Render the page a location fragment points at, merging remote and local users. Unknown fragments render the users listing."),
		mcp.WithString("fragment",
			mcp.Description("Location fragment, e.g. #users, #users#todos?userId=1, #users#posts#comments?postId=3. Defaults to #users."),
		),
		mcp.WithString("query",
			mcp.Description("Case-insensitive substring filter applied to the listing"),
		),
	)
}

func renderHandler(renderer *application.Renderer) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fragment := req.GetString("fragment", domain.DefaultFragment)
		query := req.GetString("query", "")

		state := application.NewAppState(fragment, query)
		if state.Fragment == "" {
			state.Fragment = domain.DefaultFragment
		}
		page := renderer.RenderNow(ctx, state)
		return mcp.NewToolResultText(textout.Format(page)), nil
	}
}

// --- breadcrumbs ---

func breadcrumbsTool() mcp.Tool {
	return mcp.NewTool("breadcrumbs",
		mcp.WithDescription("List the breadcrumb trail of a fragment with the fragment each crumb navigates to."),
		mcp.WithString("fragment",
			mcp.Description("Location fragment"),
			mcp.Required(),
		),
	)
}

func breadcrumbsHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fragment, err := req.RequireString("fragment")
		if err != nil {
			return toolError(err)
		}
		crumbs := domain.Breadcrumbs(domain.NormalizeFragment(fragment))
		return formatEntities(crumbs, func(c domain.Crumb) string {
			return domain.Sanitize(c.Label) + "  " + domain.Sanitize(c.Fragment)
		})
	}
}
