package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/semsearch/internal/retrieval"
)

// makeSearchHandler creates the search_documents tool handler.
// The handler picks the plain or HyDE searcher depending on the input,
// runs the vector search, and maps results to the wire shape.
func makeSearchHandler(plain, hyde Searcher) func(
	context.Context, *mcp.CallToolRequest, SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (
		*mcp.CallToolResult, SearchOutput, error,
	) {
		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = retrieval.DefaultTopK
		}

		searcher := plain
		if input.UseHyde && hyde != nil {
			searcher = hyde
		}

		results, err := searcher.Search(ctx, input.Query, maxResults, false)
		if err != nil {
			return nil, SearchOutput{}, fmt.Errorf("search failed: %w", err)
		}

		hits := make([]SearchHit, 0, len(results))
		for _, result := range results {
			if result.Document == nil {
				continue
			}
			hits = append(hits, SearchHit{
				DocumentName: result.Document.DocumentName,
				Author:       result.Document.Author,
				Page:         result.Document.Page,
				Content:      result.Document.Content,
				Score:        result.Score,
			})
		}

		if len(hits) == 0 {
			return nil, SearchOutput{
				Results: []SearchHit{},
				Message: "No matching chunks found. Try broader search terms.",
			}, nil
		}

		return nil, SearchOutput{Results: hits}, nil
	}
}

// makeAskHandler creates the ask tool handler.
func makeAskHandler(answerer Answerer) func(
	context.Context, *mcp.CallToolRequest, AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (
		*mcp.CallToolResult, AskOutput, error,
	) {
		if strings.TrimSpace(input.Question) == "" {
			return nil, AskOutput{}, fmt.Errorf("question must not be empty")
		}

		answer, err := answerer.Answer(ctx, input.Question)
		if err != nil {
			return nil, AskOutput{}, fmt.Errorf("answer failed: %w", err)
		}

		return nil, AskOutput{Answer: answer}, nil
	}
}

// makeStatusHandler creates the get_index_status tool handler.
// Connectivity failures are reported in the output rather than as tool
// errors so clients can always read the status.
func makeStatusHandler(inspector Inspector, collection string, dimensions int) func(
	context.Context, *mcp.CallToolRequest, StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (
		*mcp.CallToolResult, StatusOutput, error,
	) {
		output := StatusOutput{
			Collection: collection,
			Dimensions: dimensions,
		}

		if err := inspector.Health(ctx); err != nil {
			output.Status = "disconnected"
			return nil, output, nil
		}
		output.Status = "connected"

		info, err := inspector.GetCollectionInfo(ctx)
		if err != nil {
			return nil, output, fmt.Errorf("failed to get collection info: %w", err)
		}
		output.PointsCount = info.PointsCount

		return nil, output, nil
	}
}
