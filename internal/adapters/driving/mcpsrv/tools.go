package mcpsrv

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search_knowledge tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the question or phrase to search the knowledge base for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to return (default 3)"`
}

// SearchOutput is the output schema for the search_knowledge tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieved chunk.
type SearchResultOutput struct {
	DocumentID    string  `json:"document_id"`
	DocumentTitle string  `json:"document_title"`
	Category      string  `json:"category,omitempty"`
	Text          string  `json:"text"`
	Score         float64 `json:"score"`
	Rank          int     `json:"rank"`
}

// ListDocumentsInput is the (empty) input schema for list_documents.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for list_documents.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput is a document summary.
type DocumentOutput struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Preview  string   `json:"preview"`
}

// ActiveCallsInput is the (empty) input schema for active_calls.
type ActiveCallsInput struct{}

// ActiveCallsOutput is the output schema for active_calls.
type ActiveCallsOutput struct {
	Calls []CallOutput `json:"calls"`
	Count int          `json:"count"`
}

// CallOutput is a live call summary.
type CallOutput struct {
	CallID       string `json:"call_id"`
	UserName     string `json:"user_name"`
	Topic        string `json:"topic,omitempty"`
	State        string `json:"state"`
	MessageCount int    `json:"message_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search the support knowledge base by semantic similarity",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List all documents in the support knowledge base",
	}, s.handleListDocuments)

	if s.ports.Calls != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "active_calls",
			Description: "List currently active support calls",
		}, s.handleActiveCalls)
	}
}

// handleSearch handles the search_knowledge tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Knowledge.Search(ctx, input.Query, input.TopK)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID:    results[i].DocumentID,
			DocumentTitle: results[i].DocumentTitle,
			Category:      results[i].Category,
			Text:          results[i].Text,
			Score:         results[i].Score,
			Rank:          results[i].Rank,
		}
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Knowledge.ListDocuments(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = DocumentOutput{
			ID:       docs[i].ID,
			Title:    docs[i].Title,
			Category: docs[i].Category,
			Tags:     docs[i].Tags,
			Preview:  docs[i].Preview(200),
		}
	}

	return nil, output, nil
}

// handleActiveCalls handles the active_calls tool invocation.
func (s *Server) handleActiveCalls(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ActiveCallsInput,
) (*mcp.CallToolResult, ActiveCallsOutput, error) {
	calls, err := s.ports.Calls.ActiveCalls(ctx)
	if err != nil {
		return nil, ActiveCallsOutput{}, err
	}

	output := ActiveCallsOutput{
		Calls: make([]CallOutput, len(calls)),
		Count: len(calls),
	}
	for i := range calls {
		output.Calls[i] = CallOutput{
			CallID:       calls[i].ID,
			UserName:     calls[i].UserName,
			Topic:        calls[i].Topic,
			State:        string(calls[i].State),
			MessageCount: calls[i].MessageCount,
		}
	}

	return nil, output, nil
}
