// Package rag implements the retrieval-augmented-generation façade.
//
// It is a thin orchestration over the vector store: populate it with a
// document list, and retrieve the top-k most similar passages for a query.
// Both operations are deliberately forgiving — population is best-effort and
// retrieval treats every failure as "no context" — so the chat path never
// breaks because grounding is unavailable.
package rag

import (
	"context"
	"fmt"

	"github.com/koopa0/studybot/internal/knowledge"
	"github.com/koopa0/studybot/internal/log"
)

// Facade exposes the two RAG operations over a knowledge.Store.
type Facade struct {
	store  knowledge.Store
	topK   int
	logger log.Logger
}

// New creates a Facade. topK is the number of passages Retrieve returns;
// non-positive values fall back to knowledge.DefaultTopK.
func New(store knowledge.Store, topK int, logger log.Logger) *Facade {
	if topK <= 0 {
		topK = knowledge.DefaultTopK
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Facade{store: store, topK: topK, logger: logger}
}

// Populate adds each document to the store with a generated id doc_<index>.
// Embeddings are computed at add time. Errors are logged and swallowed:
// population is best-effort and may be silently partial.
func (f *Facade) Populate(ctx context.Context, documents []string) {
	if len(documents) == 0 {
		f.logger.Info("no documents to populate")
		return
	}

	docs := make([]knowledge.Document, len(documents))
	for i, content := range documents {
		docs[i] = knowledge.Document{
			ID:      fmt.Sprintf("doc_%d", i),
			Content: content,
		}
	}

	if err := f.store.Add(ctx, docs); err != nil {
		f.logger.Error("populating vector store failed", "error", err)
		return
	}
	f.logger.Info("populated vector store", "documents", len(docs))
}

// Retrieve returns up to topK document texts ranked by descending similarity
// to the query. Absence of context is always a valid outcome: a missing
// collection, a provider failure, or an empty store all yield an empty
// slice, never an error.
func (f *Facade) Retrieve(ctx context.Context, query string) []string {
	results, err := f.store.Search(ctx, query, knowledge.WithTopK(f.topK))
	if err != nil {
		f.logger.Warn("context retrieval failed", "error", err)
		return []string{}
	}

	passages := make([]string, 0, len(results))
	for _, r := range results {
		passages = append(passages, r.Document.Content)
	}

	f.logger.Debug("retrieved context", "query", query, "count", len(passages))
	return passages
}
