// Package main provides the semsearch CLI for indexing and querying documents.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bull/semsearch/internal/chat"
	"github.com/bull/semsearch/internal/chunking"
	"github.com/bull/semsearch/internal/config"
	"github.com/bull/semsearch/internal/embedding"
	"github.com/bull/semsearch/internal/indexer"
	"github.com/bull/semsearch/internal/retrieval"
	"github.com/bull/semsearch/internal/source"
	"github.com/bull/semsearch/internal/storage"
)

var (
	configPath string
	author     string
	githubRepo string
	githubPath string
	topK       int
	useHyde    bool
	clearFirst bool
)

var rootCmd = &cobra.Command{
	Use:   "semsearch",
	Short: "Document indexing and semantic search tool",
	Long: `CLI tool for chunking documents, embedding them, and querying the
resulting vector index in Qdrant.

Environment variables:
  QDRANT_HOST    Qdrant hostname (default: localhost)
  QDRANT_PORT    Qdrant gRPC port (default: 6334)
  OPENAI_API_KEY OpenAI API key for embeddings and chat (required)
  GITHUB_TOKEN   GitHub token for higher rate limits (optional)`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the vector collection",
	Long:  "Connects to Qdrant and creates the collection if it does not exist. Use --clear to drop existing vectors first.",
	RunE:  runInit,
}

var indexCmd = &cobra.Command{
	Use:   "index [files...]",
	Short: "Index local documents or a GitHub repository",
	Long: `Chunks each document, embeds the chunks, and upserts them into Qdrant.

Local files may be markdown, PDF, or plain text. With --github owner/repo,
all markdown files under --github-path are fetched and indexed instead.`,
	RunE: runIndex,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from the indexed documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")

	initCmd.Flags().BoolVar(&clearFirst, "clear", false, "drop existing vectors before creating the collection")

	indexCmd.Flags().StringVar(&author, "author", "", "author recorded on every chunk")
	indexCmd.Flags().StringVar(&githubRepo, "github", "", "GitHub repository to index, as owner/repo")
	indexCmd.Flags().StringVar(&githubPath, "github-path", "", "path inside the repository to index")

	searchCmd.Flags().IntVar(&topK, "top-k", retrieval.DefaultTopK, "number of chunks to return")
	searchCmd.Flags().BoolVar(&useHyde, "hyde", false, "expand the query with a hypothetical answer before searching")

	rootCmd.AddCommand(initCmd, indexCmd, searchCmd, askCmd)
}

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := connectStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if clearFirst {
		fmt.Println("Clearing existing collection...")
		if err := store.ClearCollection(ctx); err != nil {
			return fmt.Errorf("failed to clear collection: %w", err)
		}
	}

	if err := store.EnsureCollection(ctx); err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}
	fmt.Printf("Collection %q ready (%d dimensions)\n", cfg.Qdrant.Collection, cfg.Qdrant.Dimensions)

	return nil
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	start := time.Now()

	if githubRepo == "" && len(args) == 0 {
		return fmt.Errorf("nothing to index: pass file paths or --github owner/repo")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := connectStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureCollection(ctx); err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}

	embeddingClient, err := embedding.NewClient()
	if err != nil {
		return fmt.Errorf("failed to create embedding client: %w", err)
	}
	embedder := embedding.NewEmbedder(embeddingClient, cfg.Embedding.Model, cfg.Qdrant.Dimensions)

	logger := slog.Default()
	chunker := chunking.NewChunker(embedder.EmbedText, cfg.ChunkingOptions(), logger)
	pipeline := indexer.NewPipeline(chunker, embedder, store, cfg.Indexing.MaxContentChars, logger)

	docs, loadFailures, err := collectDocuments(ctx, args)
	if err != nil {
		return err
	}

	fmt.Printf("Indexing %d document(s)...\n", len(docs))
	result, err := pipeline.IndexAll(ctx, docs)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	result.TotalDocs += len(loadFailures)
	result.FailedDocs = append(loadFailures, result.FailedDocs...)

	fmt.Println()
	fmt.Println("Indexing complete!")
	fmt.Printf("  Documents: %d/%d\n", result.SuccessfulDocs, result.TotalDocs)
	fmt.Printf("  Chunks: %d\n", result.TotalChunks)
	fmt.Printf("  Duration: %s\n", result.Duration.Round(time.Second))

	if len(result.FailedDocs) > 0 {
		fmt.Println()
		fmt.Println("Failed documents:")
		for _, failed := range result.FailedDocs {
			fmt.Printf("  - %s: %s\n", failed.Title, failed.Reason)
		}
	}

	fmt.Println()
	fmt.Printf("Total time: %s\n", time.Since(start).Round(time.Second))

	return nil
}

// collectDocuments loads local files, or lists and fetches markdown documents
// from GitHub when --github is set. A document that cannot be loaded is
// skipped and reported, it never aborts the batch.
func collectDocuments(ctx context.Context, paths []string) ([]*source.Document, []indexer.FailedDoc, error) {
	if githubRepo != "" {
		owner, repo, ok := splitRepo(githubRepo)
		if !ok {
			return nil, nil, fmt.Errorf("invalid --github value %q, expected owner/repo", githubRepo)
		}

		fetcher, err := source.NewGitHubFetcher(owner, repo, githubPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create GitHub client: %w", err)
		}

		relPaths, err := fetcher.ListDocs(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list repository docs: %w", err)
		}

		var failures []indexer.FailedDoc
		docs := make([]*source.Document, 0, len(relPaths))
		for _, relPath := range relPaths {
			doc, err := fetcher.FetchDoc(ctx, relPath)
			if err != nil {
				fmt.Printf("  skipping %s: %v\n", relPath, err)
				failures = append(failures, indexer.FailedDoc{Title: relPath, Reason: err.Error()})
				continue
			}
			docs = append(docs, doc)
		}
		return docs, failures, nil
	}

	var failures []indexer.FailedDoc
	docs := make([]*source.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := source.LoadFile(path)
		if err != nil {
			fmt.Printf("  skipping %s: %v\n", path, err)
			failures = append(failures, indexer.FailedDoc{Title: path, Reason: err.Error()})
			continue
		}
		if author != "" {
			doc.Author = author
		}
		docs = append(docs, doc)
	}
	return docs, failures, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := connectStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	embeddingClient, err := embedding.NewClient()
	if err != nil {
		return fmt.Errorf("failed to create embedding client: %w", err)
	}
	embedder := embedding.NewEmbedder(embeddingClient, cfg.Embedding.Model, cfg.Qdrant.Dimensions)

	var results []*storage.SearchResult
	if useHyde {
		completer := chat.NewCompleter(embeddingClient.Client(), cfg.Chat.Model)
		service := retrieval.NewHydeService(
			embedder, store, completer,
			retrieval.DefaultPrompts(), cfg.Hyde.MaxHypothesisChars, slog.Default(),
		)
		results, err = service.Search(ctx, query, topK, false)
	} else {
		results, err = retrieval.NewService(embedder, store).Search(ctx, query, topK, false)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matching chunks found.")
		return nil
	}

	for i, result := range results {
		doc := result.Document
		fmt.Printf("%d. %s", i+1, doc.DocumentName)
		if doc.Page > 0 {
			fmt.Printf(" (page %d)", doc.Page)
		}
		fmt.Printf(" [%.3f]\n", result.Score)
		fmt.Printf("   %s\n\n", doc.Content)
	}

	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := connectStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	embeddingClient, err := embedding.NewClient()
	if err != nil {
		return fmt.Errorf("failed to create embedding client: %w", err)
	}
	embedder := embedding.NewEmbedder(embeddingClient, cfg.Embedding.Model, cfg.Qdrant.Dimensions)
	completer := chat.NewCompleter(embeddingClient.Client(), cfg.Chat.Model)

	answerer := retrieval.NewAnswerer(
		retrieval.NewService(embedder, store),
		completer,
		retrieval.DefaultPrompts(),
	)

	answer, err := answerer.Answer(ctx, question)
	if err != nil {
		return fmt.Errorf("failed to answer: %w", err)
	}

	fmt.Println(answer)
	return nil
}

// connectStore builds the Qdrant store from config, with environment
// variables taking precedence over the file.
func connectStore(cfg *config.Config) (*storage.Store, error) {
	host := getEnv("QDRANT_HOST", cfg.Qdrant.Host)
	port := getEnvInt("QDRANT_PORT", cfg.Qdrant.Port)

	store, err := storage.NewStore(host, port, cfg.Qdrant.Collection, cfg.Qdrant.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
	}
	return store, nil
}

func splitRepo(s string) (owner, repo string, ok bool) {
	owner, repo, found := strings.Cut(s, "/")
	if !found || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", false
	}
	return owner, repo, true
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}
