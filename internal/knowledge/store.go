// Package knowledge manages the document vector store.
//
// The store persists documents and their embeddings and supports
// nearest-neighbor search by embedding similarity. Persistence, indexing and
// similarity computation are entirely delegated to the backend library; this
// package only adapts two backends to one interface:
//
//   - chromem: philippgille/chromem-go, embedded, persists to a local
//     directory keyed by collection name (default)
//   - qdrant: a remote Qdrant server via qdrant/go-client
//
// Embeddings are computed via the injected EmbedFunc at add time, not at
// query time (queries embed only the query text).
package knowledge

import "context"

// Store is the consumed vector store interface.
//
// Implementations must be idempotent on Add: re-adding a document whose ID
// already exists replaces it rather than duplicating it.
type Store interface {
	// Add embeds and stores the given documents.
	Add(ctx context.Context, docs []Document) error

	// Search returns up to top-k documents ranked by descending similarity
	// to the query text.
	Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error)

	// Count returns the number of stored documents, or 0 if unknown.
	Count(ctx context.Context) int

	// Close releases backend resources.
	Close() error
}
