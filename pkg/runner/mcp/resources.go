package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/todo/pkg/view"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerTasksResource(srv, svc)
	registerTaskTemplate(srv, svc)
}

func registerTasksResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"todo://tasks",
		"Tasks",
		mcp.WithResourceDescription("Every task, oldest first, with progress counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tasks, stats, err := svc.ListTasks(ctx, "", string(view.SortCreatedAt), true)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"tasks": tasks,
			"count": len(tasks),
			"stats": stats,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerTaskTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"todo://tasks/{id}",
		"Task Details",
		mcp.WithTemplateDescription("Detailed information about a single task."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		raw := request.Params.Arguments["id"]
		if list, ok := raw.([]string); ok && len(list) > 0 {
			raw = list[0]
		}
		if raw == nil || raw == "" {
			return nil, fmt.Errorf("task id is required")
		}
		id, err := parseID(raw)
		if err != nil {
			return nil, err
		}

		dto, err := svc.TaskByID(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"task": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
