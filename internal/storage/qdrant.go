// Package storage persists document vectors in Qdrant and serves
// nearest-neighbor queries over them.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/qdrant/go-client/qdrant"

	"github.com/bull/semsearch/internal/embedding"
)

// Store wraps the Qdrant client with connection management, health checks,
// and record validation. The configured dimension is enforced at this
// boundary for every upsert and search, independent of the orchestrator's
// own validation.
type Store struct {
	client     *qdrant.Client
	collection string
	dimension  int
	host       string
	port       int
}

// NewStore creates a Qdrant-backed store with health validation.
// It performs a health check with retry on startup and fails fast if Qdrant
// is unreachable. Zero collection/dimension fall back to the defaults.
func NewStore(host string, port int, collection string, dimension int) (*Store, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	if dimension <= 0 {
		dimension = DefaultDimension
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	store := &Store{
		client:     client,
		collection: collection,
		dimension:  dimension,
		host:       host,
		port:       port,
	}

	ctx := context.Background()
	if err := store.healthCheckWithRetry(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrQdrantUnreachable, err)
	}

	return store, nil
}

// Dimension returns the collection dimensionality this store enforces.
func (s *Store) Dimension() int {
	return s.dimension
}

// healthCheckWithRetry performs health check with exponential backoff.
// Initial interval 500ms, max interval 10s, max elapsed 30s.
func (s *Store) healthCheckWithRetry(ctx context.Context) error {
	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = 500 * time.Millisecond
	exponentialBackoff.MaxInterval = 10 * time.Second
	exponentialBackoff.MaxElapsedTime = 30 * time.Second

	operation := func() error {
		return s.Health(ctx)
	}

	return backoff.Retry(operation, exponentialBackoff)
}

// Health performs a single health check against Qdrant.
// Returns nil if Qdrant is healthy, error otherwise.
func (s *Store) Health(ctx context.Context) error {
	result, err := s.client.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if result == nil || result.Title == "" {
		return fmt.Errorf("health check returned invalid response")
	}

	return nil
}

// EnsureCollection creates the document vector collection with the configured
// dimensionality and cosine distance if it does not exist yet.
// Idempotent - safe to call multiple times.
func (s *Store) EnsureCollection(ctx context.Context) error {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, name := range collections {
		if name == s.collection {
			return nil
		}
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(s.dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// ClearCollection deletes all points by dropping and recreating the
// collection. Useful for full re-index runs.
func (s *Store) ClearCollection(ctx context.Context) error {
	err := s.client.DeleteCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	return s.EnsureCollection(ctx)
}

// Close closes the Qdrant client connection.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// upsertWithRetry performs upsert operation with exponential backoff retry.
func (s *Store) upsertWithRetry(ctx context.Context, points []*qdrant.PointStruct) error {
	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = 500 * time.Millisecond
	exponentialBackoff.MaxInterval = 10 * time.Second
	exponentialBackoff.MaxElapsedTime = 30 * time.Second

	operation := func() error {
		_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: s.collection,
			Points:         points,
		})
		return err
	}

	return backoff.Retry(operation, exponentialBackoff)
}

// Upsert writes one DocumentVector by id, overwriting any existing point
// with the same id. The record's embedding is validated against the
// collection dimensionality before anything is sent; an invalid record fails
// the call and never reaches the collection.
func (s *Store) Upsert(ctx context.Context, record *DocumentVector) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if err := embedding.Validate(record.Embedding, s.dimension); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(record.ID),
		Vectors: qdrant.NewVectors(record.Embedding...),
		Payload: qdrant.NewValueMap(recordPayload(record)),
	}

	if err := s.upsertWithRetry(ctx, []*qdrant.PointStruct{point}); err != nil {
		return fmt.Errorf("failed to upsert record %s: %w", record.ID, err)
	}
	return nil
}

// recordPayload builds the metadata payload stored alongside the vector.
// The page number is only written when the source actually has pages.
func recordPayload(record *DocumentVector) map[string]any {
	payload := map[string]any{
		"document_name": record.DocumentName,
		"author":        record.Author,
		"content":       record.Content,
	}
	if record.Page > 0 {
		payload["page"] = int64(record.Page)
	}
	return payload
}

// SearchNearest performs vector similarity search against the collection.
// Results come back highest score first, ordering and tie-breaks delegated
// to Qdrant's distance function. Stored embeddings are omitted from the
// results unless includeEmbedding is set.
func (s *Store) SearchNearest(ctx context.Context, vector []float32, topK int, includeEmbedding bool) ([]*SearchResult, error) {
	if err := embedding.Validate(vector, s.dimension); err != nil {
		return nil, fmt.Errorf("query vector: %w", err)
	}
	if topK <= 0 {
		topK = 5
	}

	results, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(includeEmbedding),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search collection: %w", err)
	}

	mapped := make([]*SearchResult, 0, len(results))
	for _, result := range results {
		payload := result.Payload

		record := &DocumentVector{
			ID:           result.Id.GetUuid(),
			DocumentName: payload["document_name"].GetStringValue(),
			Author:       payload["author"].GetStringValue(),
			Page:         int(payload["page"].GetIntegerValue()),
			Content:      payload["content"].GetStringValue(),
		}
		if includeEmbedding {
			record.Embedding = result.Vectors.GetVector().GetData()
		}

		mapped = append(mapped, &SearchResult{
			Document: record,
			Score:    float64(result.Score),
		})
	}

	return mapped, nil
}

// CollectionInfo contains collection statistics.
type CollectionInfo struct {
	PointsCount uint64
}

// GetCollectionInfo retrieves collection statistics including total points
// count. Used for index status reporting.
func (s *Store) GetCollectionInfo(ctx context.Context) (*CollectionInfo, error) {
	collection, err := s.client.GetCollectionInfo(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return &CollectionInfo{
		PointsCount: collection.GetPointsCount(),
	}, nil
}
