package mcp

import (
	"context"
	"sort"

	"github.com/conneroisu/reelsmith/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

type componentSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Variants    []string `json:"variants,omitempty"`
}

func summarize(schemas []*registry.Schema) []componentSummary {
	out := make([]componentSummary, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, componentSummary{
			Name:        s.Name,
			Description: s.Description,
			Category:    s.Category,
			Variants:    sortedKeys(s.Variants),
		})
	}
	return out
}

type listComponentsTool struct {
	registry *registry.Registry
}

func (t *listComponentsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_components",
		mcp.WithDescription("List available video components, optionally filtered by category."),
		mcp.WithString("category",
			mcp.Description("Only list components in this category (e.g. text, overlay, layout)"),
		),
	)
}

func (t *listComponentsTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	schemas := t.registry.List(category)
	return jsonResult(map[string]any{
		"category":   category,
		"count":      len(schemas),
		"components": summarize(schemas),
		"categories": t.registry.Categories(),
	})
}

type searchComponentsTool struct {
	registry *registry.Registry
}

func (t *searchComponentsTool) Definition() mcp.Tool {
	return mcp.NewTool("search_components",
		mcp.WithDescription("Search components by name, description or category."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text"),
		),
	)
}

func (t *searchComponentsTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	schemas := t.registry.Search(query)
	return jsonResult(map[string]any{
		"query":   query,
		"count":   len(schemas),
		"results": summarize(schemas),
	})
}

type componentSchemaTool struct {
	registry *registry.Registry
}

func (t *componentSchemaTool) Definition() mcp.Tool {
	return mcp.NewTool("get_component_schema",
		mcp.WithDescription("Get the full configuration schema of a component, including variants and an example."),
		mcp.WithString("component_name",
			mcp.Required(),
			mcp.Description("Component type, e.g. TitleScene"),
		),
	)
}

func (t *componentSchemaTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("component_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	schema, err := t.registry.Lookup(name)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(schema)
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
