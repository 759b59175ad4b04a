package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/bull/semsearch/internal/embedding"
)

// invalidStore builds a Store without a client; validation rejects bad
// records before any network call would happen.
func invalidStore(dimension int) *Store {
	return &Store{collection: DefaultCollection, dimension: dimension}
}

func TestUpsert_RejectsNilRecord(t *testing.T) {
	s := invalidStore(4)

	err := s.Upsert(context.Background(), nil)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Upsert(nil) = %v, want ErrInvalidRecord", err)
	}
}

func TestUpsert_RejectsEmptyEmbedding(t *testing.T) {
	s := invalidStore(4)

	err := s.Upsert(context.Background(), &DocumentVector{ID: "id", Content: "text"})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Upsert(empty embedding) = %v, want ErrInvalidRecord", err)
	}
}

func TestUpsert_RejectsDimensionMismatch(t *testing.T) {
	s := invalidStore(4)

	record := &DocumentVector{
		ID:        "id",
		Content:   "text",
		Embedding: []float32{1, 2, 3}, // 3 dims against a 4-dim collection
	}
	err := s.Upsert(context.Background(), record)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Upsert(dim mismatch) = %v, want ErrInvalidRecord", err)
	}
}

func TestSearchNearest_RejectsBadQueryVector(t *testing.T) {
	s := invalidStore(4)

	if _, err := s.SearchNearest(context.Background(), nil, 5, false); !errors.Is(err, embedding.ErrEmptyEmbedding) {
		t.Errorf("SearchNearest(nil vector) = %v, want ErrEmptyEmbedding", err)
	}
	if _, err := s.SearchNearest(context.Background(), []float32{1, 2}, 5, false); !errors.Is(err, embedding.ErrDimensionMismatch) {
		t.Errorf("SearchNearest(short vector) = %v, want ErrDimensionMismatch", err)
	}
}

func TestRecordPayload_OmitsZeroPage(t *testing.T) {
	payload := recordPayload(&DocumentVector{
		DocumentName: "The Great Gatsby",
		Author:       "F. Scott Fitzgerald",
		Content:      "In my younger and more vulnerable years...",
	})

	if _, ok := payload["page"]; ok {
		t.Error("payload should omit page when the source has no pages")
	}
	if payload["document_name"] != "The Great Gatsby" {
		t.Errorf("document_name = %v", payload["document_name"])
	}
}

func TestRecordPayload_IncludesPage(t *testing.T) {
	payload := recordPayload(&DocumentVector{Page: 12, Content: "page text"})

	page, ok := payload["page"]
	if !ok {
		t.Fatal("payload missing page")
	}
	if page != int64(12) {
		t.Errorf("page = %v, want 12", page)
	}
}
