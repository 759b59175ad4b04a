package storage

// DocumentVector is the persisted unit: one chunk of document text with its
// embedding and source metadata. Records are immutable after creation and
// never updated; re-indexing a document mints fresh ids rather than
// overwriting old ones.
type DocumentVector struct {
	ID           string // time-ordered UUID, generated at indexing time
	DocumentName string
	Author       string
	Page         int // 1-based source page; 0 when the source has no pages
	Content      string
	Embedding    []float32 // length must equal the collection dimension
}

// SearchResult pairs a retrieved DocumentVector with its similarity score.
// Higher is more similar; score semantics follow the collection's distance
// function (cosine by default).
type SearchResult struct {
	Document *DocumentVector
	Score    float64
}

// DefaultCollection is the Qdrant collection holding DocumentVector records.
const DefaultCollection = "document_vectors"

// DefaultDimension matches embedding.DefaultDimensions; the collection must
// be provisioned with the same size before the first upsert.
const DefaultDimension = 768
