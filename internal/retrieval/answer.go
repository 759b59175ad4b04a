package retrieval

import (
	"context"
	"fmt"
	"strings"
)

// answerTopK is the retrieval depth for grounded answering.
const answerTopK = 10

// Answerer composes retrieved chunks into a context prompt and asks the chat
// model for a grounded answer.
type Answerer struct {
	search  *Service
	chat    ChatCompleter
	prompts Prompts
}

// NewAnswerer creates an answering service over the plain retrieval path.
func NewAnswerer(search *Service, chat ChatCompleter, prompts Prompts) *Answerer {
	return &Answerer{
		search:  search,
		chat:    chat,
		prompts: prompts,
	}
}

// Answer retrieves the documents most similar to question and asks the chat
// model to answer from them.
func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	results, err := a.search.Search(ctx, question, answerTopK, false)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	var docs strings.Builder
	for _, r := range results {
		fmt.Fprintf(&docs, "Document: %s\nAuthor: %s\nContent: %s\n\n",
			r.Document.DocumentName, r.Document.Author, r.Document.Content)
	}

	user := fmt.Sprintf("User question: %s\n\nRetrieved documents:\n%s", question, docs.String())

	answer, err := a.chat.Complete(ctx, a.prompts.RagSystem, user)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}
