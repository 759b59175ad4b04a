// Package mcp exposes the retrieval pipeline over the Model Context Protocol.
package mcp

// SearchInput defines the input parameters for the search_documents tool.
type SearchInput struct {
	// Query is the semantic search query.
	Query string `json:"query" jsonschema:"required,description=The semantic search query for finding relevant document chunks"`
	// MaxResults is the maximum number of chunks to return.
	MaxResults int `json:"max_results,omitempty" jsonschema:"minimum=1,maximum=20,default=5,description=Maximum number of chunks to return"`
	// UseHyde expands the query into a hypothetical answer before searching.
	UseHyde bool `json:"use_hyde,omitempty" jsonschema:"description=Expand the query with a hypothetical answer before the vector search"`
}

// SearchOutput contains the search results.
type SearchOutput struct {
	// Results is the list of matching chunks, best match first.
	Results []SearchHit `json:"results"`
	// Message provides informational context (e.g., "No matching chunks found").
	Message string `json:"message,omitempty"`
}

// SearchHit represents a single chunk match from semantic search.
type SearchHit struct {
	// DocumentName is the title of the source document.
	DocumentName string `json:"document_name"`
	// Author is the document author.
	Author string `json:"author"`
	// Page is the 1-based source page, 0 when the source has no pages.
	Page int `json:"page,omitempty"`
	// Content is the chunk text.
	Content string `json:"content"`
	// Score is the cosine similarity score.
	Score float64 `json:"score"`
}

// AskInput defines the input parameters for the ask tool.
type AskInput struct {
	// Question is the natural-language question to answer from the index.
	Question string `json:"question" jsonschema:"required,description=The question to answer using the indexed documents"`
}

// AskOutput contains the generated answer.
type AskOutput struct {
	// Answer is the model-generated answer grounded in retrieved chunks.
	Answer string `json:"answer"`
}

// StatusInput defines the input parameters for the get_index_status tool.
// This tool takes no parameters.
type StatusInput struct{}

// StatusOutput contains index statistics.
type StatusOutput struct {
	// Collection is the vector store collection name.
	Collection string `json:"collection"`
	// PointsCount is the number of stored chunk vectors.
	PointsCount uint64 `json:"points_count"`
	// Dimensions is the embedding dimensionality of the collection.
	Dimensions int `json:"dimensions"`
	// Status reports vector store reachability, "connected" or "disconnected".
	Status string `json:"status"`
}
