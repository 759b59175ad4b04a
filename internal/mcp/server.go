package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/semsearch/internal/storage"
)

// Searcher runs a top-K similarity search for a query.
type Searcher interface {
	Search(ctx context.Context, query string, topK int, includeEmbedding bool) ([]*storage.SearchResult, error)
}

// Answerer produces a grounded answer for a question.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Inspector reports vector store health and collection statistics.
type Inspector interface {
	Health(ctx context.Context) error
	GetCollectionInfo(ctx context.Context) (*storage.CollectionInfo, error)
}

// Server wraps the MCP server with dependencies.
type Server struct {
	server *mcp.Server
}

// Config holds server dependencies. Hyde may equal Search when query
// expansion is disabled.
type Config struct {
	Search     Searcher
	Hyde       Searcher
	Answer     Answerer
	Inspector  Inspector
	Collection string
	Dimensions int
}

// NewServer creates a configured MCP server with tools registered.
func NewServer(cfg *Config) *Server {
	impl := &mcp.Implementation{
		Name:    "semsearch-server",
		Version: "v0.1.0",
	}

	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search indexed documents semantically. Returns the most similar chunks with their source metadata. Set use_hyde to expand the query with a hypothetical answer first.",
	}, makeSearchHandler(cfg.Search, cfg.Hyde))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the indexed documents. Retrieves the most relevant chunks and generates a grounded answer.",
	}, makeAskHandler(cfg.Answer))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_index_status",
		Description: "Get the current status of the document index including collection name, stored vector count, and vector store connectivity.",
	}, makeStatusHandler(cfg.Inspector, cfg.Collection, cfg.Dimensions))

	return &Server{server: server}
}

// Run starts the server with stdio transport (blocks until client disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance.
// Used by transport handlers that need to wrap the server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
