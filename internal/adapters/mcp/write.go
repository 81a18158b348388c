package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jsonbrowse/internal/application/commands"
	"jsonbrowse/internal/ports"
)

// RegisterWriteTools adds the local store mutations to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store ports.LocalStore) {
	s.AddTool(createUserTool(), createUserHandler(store))
	s.AddTool(createTodoTool(), createTodoHandler(store))
	s.AddTool(deleteUserTool(), deleteUserHandler(store))
}

// --- create_user ---

func createUserTool() mcp.Tool {
	return mcp.NewTool("create_user",
		mcp.WithDescription("Create a local user. Local users show up before remote ones and can own editable todos."),
		mcp.WithString("name",
			mcp.Description("Display name"),
			mcp.Required(),
		),
		mcp.WithString("email",
			mcp.Description("Email address"),
			mcp.Required(),
		),
	)
}

func createUserHandler(store ports.LocalStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		email := req.GetString("email", "")

		result, err := commands.NewCreateUserCommand(store, name, email).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- create_todo ---

func createTodoTool() mcp.Tool {
	return mcp.NewTool("create_todo",
		mcp.WithDescription("Append an open todo to a local user. Remote users are read-only."),
		mcp.WithNumber("user_id",
			mcp.Description("ID of a local user"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("Todo title"),
			mcp.Required(),
		),
	)
}

func createTodoHandler(store ports.LocalStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := req.RequireInt("user_id")
		if err != nil {
			return toolError(err)
		}
		title := req.GetString("title", "")

		result, err := commands.NewCreateTodoCommand(store, int64(userID), title).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_user ---

func deleteUserTool() mcp.Tool {
	return mcp.NewTool("delete_user",
		mcp.WithDescription("Delete a local user and its todos. This cannot be undone."),
		mcp.WithNumber("user_id",
			mcp.Description("ID of a local user"),
			mcp.Required(),
		),
	)
}

func deleteUserHandler(store ports.LocalStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := req.RequireInt("user_id")
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewDeleteUserCommand(store, int64(userID)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}
