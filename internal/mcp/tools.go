package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocumentsTool defines the search_documents MCP tool.
var searchDocumentsTool = mcp.NewTool("search_documents",
	mcp.WithDescription("Search ingested documents semantically. Returns the most similar documents with their type and summary."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// getDocumentTool defines the get_document MCP tool.
var getDocumentTool = mcp.NewTool("get_document",
	mcp.WithDescription("Get a single document by ID, including its extracted metadata, summary, and a text preview."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Numeric document ID"),
	),
)

// listDocumentsTool defines the list_documents MCP tool.
var listDocumentsTool = mcp.NewTool("list_documents",
	mcp.WithDescription("List all ingested documents in upload order with their ID, filename, and type."),
)

// relatedDocumentsTool defines the related_documents MCP tool.
var relatedDocumentsTool = mcp.NewTool("related_documents",
	mcp.WithDescription("Find documents similar to an existing document, excluding the document itself."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Numeric document ID to find neighbours for"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 5)"),
	),
)
