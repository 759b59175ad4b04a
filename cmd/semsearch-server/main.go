// Package main provides the MCP server entry point for semantic document search.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bull/semsearch/internal/chat"
	"github.com/bull/semsearch/internal/config"
	"github.com/bull/semsearch/internal/embedding"
	mcpserver "github.com/bull/semsearch/internal/mcp"
	"github.com/bull/semsearch/internal/retrieval"
	"github.com/bull/semsearch/internal/storage"
)

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	qdrantHost := getEnv("QDRANT_HOST", cfg.Qdrant.Host)
	qdrantPort := getEnvInt("QDRANT_PORT", cfg.Qdrant.Port)
	port := getEnv("PORT", "8080")

	store, err := storage.NewStore(qdrantHost, qdrantPort, cfg.Qdrant.Collection, cfg.Qdrant.Dimensions)
	if err != nil {
		log.Fatalf("failed to connect to Qdrant: %v", err)
	}
	defer store.Close()

	if err := store.EnsureCollection(ctx); err != nil {
		log.Fatalf("failed to ensure collection: %v", err)
	}

	embeddingClient, err := embedding.NewClient()
	if err != nil {
		log.Fatalf("failed to create embedding client: %v", err)
	}
	embedder := embedding.NewEmbedder(embeddingClient, cfg.Embedding.Model, cfg.Qdrant.Dimensions)
	completer := chat.NewCompleter(embeddingClient.Client(), cfg.Chat.Model)

	prompts := retrieval.DefaultPrompts()
	searchService := retrieval.NewService(embedder, store)
	hydeService := retrieval.NewHydeService(
		embedder, store, completer, prompts, cfg.Hyde.MaxHypothesisChars, slog.Default(),
	)
	answerer := retrieval.NewAnswerer(searchService, completer, prompts)

	server := mcpserver.NewServer(&mcpserver.Config{
		Search:     searchService,
		Hyde:       hydeService,
		Answer:     answerer,
		Inspector:  store,
		Collection: cfg.Qdrant.Collection,
		Dimensions: cfg.Qdrant.Dimensions,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/", mcpserver.NewLandingHandler())
	mux.HandleFunc("/health", mcpserver.NewHealthHandler(store))
	mux.Handle("/mcp", mcpserver.NewHTTPHandler(server, nil))

	// SERVER_MODE=true serves MCP over HTTP, otherwise stdio with a
	// background health endpoint.
	serverMode := getEnv("SERVER_MODE", "false") == "true"

	if serverMode {
		addr := "0.0.0.0:" + port
		log.Printf("Starting HTTP server on %s (MCP at /mcp, health at /health)", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	} else {
		go func() {
			addr := "0.0.0.0:" + port
			log.Printf("Starting health server on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("Health server error: %v", err)
			}
		}()

		log.Println("Starting semantic search MCP server (stdio mode)...")
		if err := server.Run(ctx); err != nil {
			log.Printf("server error: %v", err)
			os.Exit(1)
		}
	}
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
