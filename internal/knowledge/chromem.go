package knowledge

import (
	"context"
	"fmt"
	"runtime"

	chromem "github.com/philippgille/chromem-go"

	"github.com/koopa0/studybot/internal/ai"
	"github.com/koopa0/studybot/internal/log"
)

// ChromemStore is a Store backed by an embedded chromem-go database that
// persists to a local directory, surviving process restarts.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	logger     log.Logger
}

// NewChromem opens (or creates) the persistent database under dir and
// gets-or-creates the named collection. Documents added through the returned
// store are embedded with embed.
func NewChromem(dir, collection string, embed ai.EmbedFunc, logger log.Logger) (*ChromemStore, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector db at %s: %w", dir, err)
	}

	col, err := db.GetOrCreateCollection(collection, nil, chromem.EmbeddingFunc(embed))
	if err != nil {
		return nil, fmt.Errorf("get/create collection %q: %w", collection, err)
	}

	logger.Info("vector store loaded", "dir", dir, "collection", collection, "count", col.Count())
	return &ChromemStore{db: db, collection: col, logger: logger}, nil
}

// Add embeds and stores the given documents. Re-adding an existing ID
// replaces the stored document, so population is idempotent.
func (s *ChromemStore) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	converted := make([]chromem.Document, 0, len(docs))
	for _, d := range docs {
		converted = append(converted, chromem.Document{
			ID:       d.ID,
			Content:  d.Content,
			Metadata: d.Metadata,
		})
	}

	if err := s.collection.AddDocuments(ctx, converted, runtime.NumCPU()); err != nil {
		return fmt.Errorf("adding %d documents: %w", len(docs), err)
	}

	s.logger.Debug("added documents", "count", len(docs), "total", s.collection.Count())
	return nil
}

// Search returns up to top-k documents ranked by descending similarity.
// k is clamped to the collection size; an empty collection yields no results.
func (s *ChromemStore) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)

	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	k := cfg.topK
	if k > count {
		k = count
	}

	docs, err := s.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	results := make([]Result, 0, len(docs))
	for _, d := range docs {
		results = append(results, Result{
			Document: Document{
				ID:       d.ID,
				Content:  d.Content,
				Metadata: d.Metadata,
			},
			Similarity: d.Similarity,
		})
	}
	return results, nil
}

// Count returns the number of stored documents.
func (s *ChromemStore) Count(context.Context) int {
	return s.collection.Count()
}

// Close is a no-op; chromem persists synchronously on write.
func (*ChromemStore) Close() error {
	return nil
}
