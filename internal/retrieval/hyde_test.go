package retrieval

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedChat returns a fixed response or error and records prompts.
type scriptedChat struct {
	response string
	err      error
	systems  []string
	users    []string
}

func (c *scriptedChat) Complete(_ context.Context, system, user string) (string, error) {
	c.systems = append(c.systems, system)
	c.users = append(c.users, user)
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func newHyde(embedder Embedder, store VectorSearcher, chat ChatCompleter) *HydeService {
	return NewHydeService(embedder, store, chat, DefaultPrompts(), 0, slog.New(slog.DiscardHandler))
}

func TestHydeSearch_EmbedsHypothesis(t *testing.T) {
	embedder := &recordingEmbedder{vector: []float32{1, 0}}
	store := &recordingStore{results: cannedResults()}
	chat := &scriptedChat{response: "  Gatsby is a novel by F. Scott Fitzgerald set in 1922.  "}
	hyde := newHyde(embedder, store, chat)

	results, err := hyde.Search(context.Background(), "who wrote gatsby?", 5, false)

	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Len(t, embedder.texts, 1)
	assert.Equal(t, "Gatsby is a novel by F. Scott Fitzgerald set in 1922.", embedder.texts[0],
		"the trimmed hypothesis is embedded, not the query")

	require.Len(t, chat.users, 1)
	assert.Contains(t, chat.users[0], "who wrote gatsby?", "query is templated into the prompt")
	assert.NotContains(t, chat.users[0], "{{question}}")
}

// TestHydeSearch_ChatFailureFallsBackToQuery covers the degraded path: with
// a failing chat model, HyDE search behaves exactly like plain search.
func TestHydeSearch_ChatFailureFallsBackToQuery(t *testing.T) {
	query := "who wrote gatsby?"

	hydeEmbedder := &recordingEmbedder{vector: []float32{1, 0}}
	hydeStore := &recordingStore{results: cannedResults()}
	hyde := newHyde(hydeEmbedder, hydeStore, &scriptedChat{err: errors.New("chat model down")})

	hydeResults, err := hyde.Search(context.Background(), query, 5, false)
	require.NoError(t, err)

	plainEmbedder := &recordingEmbedder{vector: []float32{1, 0}}
	plainStore := &recordingStore{results: cannedResults()}
	plain := NewService(plainEmbedder, plainStore)

	plainResults, err := plain.Search(context.Background(), query, 5, false)
	require.NoError(t, err)

	assert.Equal(t, plainEmbedder.texts, hydeEmbedder.texts, "raw query is embedded on fallback")
	require.Len(t, hydeResults, len(plainResults))
	for i := range hydeResults {
		assert.Equal(t, plainResults[i].Document.ID, hydeResults[i].Document.ID)
		assert.Equal(t, plainResults[i].Score, hydeResults[i].Score)
	}
}

func TestHydeSearch_EmptyHypothesisFallsBack(t *testing.T) {
	embedder := &recordingEmbedder{vector: []float32{1, 0}}
	store := &recordingStore{}
	hyde := newHyde(embedder, store, &scriptedChat{response: "   \n "})

	_, err := hyde.Search(context.Background(), "the query", 5, false)

	require.NoError(t, err)
	assert.Equal(t, []string{"the query"}, embedder.texts)
}

func TestHydeSearch_CapsHypothesisLength(t *testing.T) {
	embedder := &recordingEmbedder{vector: []float32{1, 0}}
	store := &recordingStore{}
	chat := &scriptedChat{response: strings.Repeat("a", 5000)}
	hyde := newHyde(embedder, store, chat)

	_, err := hyde.Search(context.Background(), "query", 5, false)

	require.NoError(t, err)
	require.Len(t, embedder.texts, 1)
	assert.Len(t, embedder.texts[0], MaxHypothesisChars)
}

func TestHydeSearch_EmptyQueryShortCircuits(t *testing.T) {
	embedder := &recordingEmbedder{vector: []float32{1, 0}}
	store := &recordingStore{}
	chat := &scriptedChat{response: "hypothesis"}
	hyde := newHyde(embedder, store, chat)

	results, err := hyde.Search(context.Background(), "  ", 5, false)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, chat.users, "no chat call for empty query")
	assert.Empty(t, embedder.texts)
	assert.Zero(t, store.calls)
}
