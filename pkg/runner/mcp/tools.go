package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/todo/pkg/task"
	"tableflip.dev/todo/pkg/view"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddTaskTool(srv, svc)
	registerListTasksTool(srv, svc)
	registerGetTaskTool(srv, svc)
	registerToggleCompletedTool(srv, svc)
	registerToggleImportantTool(srv, svc)
	registerUpdateTaskTool(srv, svc)
	registerDeleteTasksTool(srv, svc)
	registerStatsTool(srv, svc)
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a task to the end of the list."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title. Must not be blank."),
		),
		mcp.WithString("description",
			mcp.Description("Optional longer description."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.AddTask(ctx, title, request.GetString("description", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks, optionally filtered by a keyword and sorted."),
		mcp.WithString("keyword",
			mcp.Description("Case-insensitive text to find in titles or descriptions."),
		),
		mcp.WithString("sort",
			mcp.Description("Field to sort by."),
			mcp.Enum(string(view.SortCreatedAt), string(view.SortImportant), string(view.SortTitle)),
		),
		mcp.WithBoolean("ascending",
			mcp.Description("Sort ascending (default true)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, stats, err := svc.ListTasks(ctx,
			request.GetString("keyword", ""),
			request.GetString("sort", string(view.SortCreatedAt)),
			request.GetBool("ascending", true),
		)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
			"stats": stats,
		})
	})
}

func registerGetTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_task",
		mcp.WithDescription("Fetch one task with its steps."),
		idParam(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.TaskByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleCompletedTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_completed",
		mcp.WithDescription("Flip the completed flag of a task."),
		idParam(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ToggleCompleted(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleImportantTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_important",
		mcp.WithDescription("Flip the important flag of a task."),
		idParam(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ToggleImportant(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_task",
		mcp.WithDescription("Change fields of a task. Omitted fields keep their value; steps, when given, replace the whole step list."),
		idParam(),
		mcp.WithString("title", mcp.Description("New title. Must not be blank.")),
		mcp.WithString("description", mcp.Description("New description.")),
		mcp.WithBoolean("completed", mcp.Description("New completed flag.")),
		mcp.WithBoolean("important", mcp.Description("New important flag.")),
		mcp.WithArray("steps",
			mcp.Description("Replacement steps, each {id, title, completed}."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":        map[string]any{"type": "integer"},
					"title":     map[string]any{"type": "string"},
					"completed": map[string]any{"type": "boolean"},
				},
				"required": []string{"id", "title"},
			}),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID          any          `json:"id"`
			Title       *string      `json:"title"`
			Description *string      `json:"description"`
			Completed   *bool        `json:"completed"`
			Important   *bool        `json:"important"`
			Steps       *[]task.Step `json:"steps"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		id, err := parseID(args.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.UpdateTask(ctx, UpdateTaskOptions{
			ID:          id,
			Title:       args.Title,
			Description: args.Description,
			Completed:   args.Completed,
			Important:   args.Important,
			Steps:       args.Steps,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_tasks",
		mcp.WithDescription("Delete one or more tasks in a single batch."),
		mcp.WithArray("ids",
			mcp.Required(),
			mcp.Description("Task ids to delete."),
			mcp.Items(map[string]any{"type": "integer"}),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			IDs []any `json:"ids"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		ids, err := ParseIDs(args.IDs)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		deleted, err := svc.DeleteTasks(ctx, ids)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"deleted": deleted,
			"count":   len(deleted),
		})
	})
}

func registerStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"task_stats",
		mcp.WithDescription("Count total, completed and important tasks."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := svc.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(stats)
	})
}

func idParam() mcp.ToolOption {
	return mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Task identifier."),
	)
}

func requireID(request mcp.CallToolRequest) (int64, error) {
	args := request.GetArguments()
	raw, ok := args["id"]
	if !ok {
		return 0, fmt.Errorf("required argument \"id\" not found")
	}
	return parseID(raw)
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
