package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectDocuments_UnreadableFileDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	readable := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(readable, []byte("# Notes\n\nSome content."), 0o644))
	missing := filepath.Join(dir, "missing.md")

	docs, failures, err := collectDocuments(context.Background(), []string{missing, readable})
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "Notes", docs[0].Title)

	require.Len(t, failures, 1)
	assert.Equal(t, missing, failures[0].Title)
	assert.NotEmpty(t, failures[0].Reason)
}

func TestCollectDocuments_AuthorFlagApplied(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guide.md")
	require.NoError(t, os.WriteFile(path, []byte("# Guide\n\nBody."), 0o644))

	author = "ops"
	t.Cleanup(func() { author = "" })

	docs, failures, err := collectDocuments(context.Background(), []string{path})
	require.NoError(t, err)
	require.Empty(t, failures)
	require.Len(t, docs, 1)
	assert.Equal(t, "ops", docs[0].Author)
}

func TestSplitRepo(t *testing.T) {
	owner, repo, ok := splitRepo("cloudwego/eino")
	require.True(t, ok)
	assert.Equal(t, "cloudwego", owner)
	assert.Equal(t, "eino", repo)

	for _, bad := range []string{"", "cloudwego", "cloudwego/", "/eino", "a/b/c"} {
		_, _, ok := splitRepo(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}
