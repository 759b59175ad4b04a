package source

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v81/github"
)

// GitHubFetcher lists and fetches markdown documents under a repository
// path, for indexing documentation straight from a repo.
type GitHubFetcher struct {
	client   *github.Client
	owner    string
	repo     string
	basePath string
}

// NewGitHubFetcher creates a fetcher with rate limiting. If the GITHUB_TOKEN
// environment variable is set the client is authenticated for higher rate
// limits.
func NewGitHubFetcher(owner, repo, basePath string) (*GitHubFetcher, error) {
	rateLimiter, err := github_ratelimit.NewRateLimitWaiterClient(nil)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(rateLimiter)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}

	return &GitHubFetcher{
		client:   client,
		owner:    owner,
		repo:     repo,
		basePath: basePath,
	}, nil
}

// ListDocs recursively lists all markdown files under the base path.
func (f *GitHubFetcher) ListDocs(ctx context.Context) ([]string, error) {
	return f.listDocsRecursive(ctx, f.basePath, "")
}

func (f *GitHubFetcher) listDocsRecursive(ctx context.Context, fullPath, relativePath string) ([]string, error) {
	var docs []string

	_, dirContents, _, err := f.client.Repositories.GetContents(
		ctx,
		f.owner,
		f.repo,
		fullPath,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get contents of %s: %w", fullPath, err)
	}

	for _, item := range dirContents {
		if item.Type == nil || item.Name == nil {
			continue
		}

		itemRelPath := path.Join(relativePath, *item.Name)

		switch *item.Type {
		case "file":
			if strings.HasSuffix(*item.Name, ".md") {
				docs = append(docs, itemRelPath)
			}

		case "dir":
			itemFullPath := path.Join(fullPath, *item.Name)
			subDocs, err := f.listDocsRecursive(ctx, itemFullPath, itemRelPath)
			if err != nil {
				return nil, err
			}
			docs = append(docs, subDocs...)
		}
	}

	return docs, nil
}

// FetchDoc downloads one markdown file and extracts it. The document title
// falls back to the relative path when the markdown has no top-level
// heading; the repository owner stands in as the author.
func (f *GitHubFetcher) FetchDoc(ctx context.Context, relativePath string) (*Document, error) {
	fullPath := path.Join(f.basePath, relativePath)

	fileContent, _, _, err := f.client.Repositories.GetContents(
		ctx,
		f.owner,
		f.repo,
		fullPath,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", fullPath, err)
	}
	if fileContent == nil {
		return nil, fmt.Errorf("%s is not a file", fullPath)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", fullPath, err)
	}

	doc, err := ExtractMarkdown([]byte(content))
	if err != nil {
		return nil, err
	}
	if doc.Title == "" {
		doc.Title = relativePath
	}
	doc.Author = f.owner
	return doc, nil
}
