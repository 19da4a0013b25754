package knowledge

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/koopa0/studybot/internal/ai"
	"github.com/koopa0/studybot/internal/log"
)

// payloadTextKey is the payload field holding the passage text.
const payloadTextKey = "text"

// payloadDocIDKey preserves the caller-visible document ID, since qdrant
// point IDs must be UUIDs.
const payloadDocIDKey = "doc_id"

// QdrantStore is a Store backed by a Qdrant server.
//
// Point IDs are deterministic UUIDv5 values derived from document IDs, so
// re-adding a document upserts instead of duplicating it.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
	embed      ai.EmbedFunc
	logger     log.Logger
}

// NewQdrant connects to a Qdrant server. The collection is created lazily on
// first Add, once the embedding dimension is known.
func NewQdrant(host string, port int, collection string, embed ai.EmbedFunc, logger log.Logger) (*QdrantStore, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant at %s:%d: %w", host, port, err)
	}

	return &QdrantStore{
		client:     client,
		collection: collection,
		embed:      embed,
		logger:     logger,
	}, nil
}

// ensureCollection creates the collection with cosine distance if it does not
// exist yet.
func (s *QdrantStore) ensureCollection(ctx context.Context, vectorSize int) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("checking collection %q: %w", s.collection, err)
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     uint64(vectorSize), // #nosec G115 -- embedding dimensions are small
					Distance: qdrant.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection %q: %w", s.collection, err)
	}

	s.logger.Info("created qdrant collection", "collection", s.collection, "dimension", vectorSize)
	return nil
}

// pointID derives a stable UUID from a document ID.
func pointID(docID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(docID)).String()
}

// Add embeds and upserts the given documents.
func (s *QdrantStore) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(docs))
	for _, d := range docs {
		vec, err := s.embed(ctx, d.Content)
		if err != nil {
			return fmt.Errorf("embedding document %q: %w", d.ID, err)
		}

		if len(points) == 0 {
			if err := s.ensureCollection(ctx, len(vec)); err != nil {
				return err
			}
		}

		payload := map[string]any{
			payloadTextKey:  d.Content,
			payloadDocIDKey: d.ID,
		}
		for k, v := range d.Metadata {
			payload[k] = v
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(pointID(d.ID)),
			Vectors: qdrant.NewVectors(vec...),
			Payload: qdrant.NewValueMap(payload),
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("upserting %d points: %w", len(points), err)
	}

	s.logger.Debug("upserted documents", "count", len(points))
	return nil
}

// Search embeds the query and returns up to top-k documents ranked by
// descending similarity.
func (s *QdrantStore) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)

	vec, err := s.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	limit := uint64(cfg.topK) // #nosec G115 -- topK is validated positive
	scored, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vec...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("querying collection %q: %w", s.collection, err)
	}

	results := make([]Result, 0, len(scored))
	for _, p := range scored {
		results = append(results, Result{
			Document:   documentFromPayload(p.Payload),
			Similarity: p.Score,
		})
	}
	return results, nil
}

// documentFromPayload rebuilds a Document from a point payload, inverting the
// mapping written by Add: the reserved text and doc_id fields become Content
// and ID, everything else is metadata.
func documentFromPayload(payload map[string]*qdrant.Value) Document {
	doc := Document{Metadata: make(map[string]string)}
	for k, v := range payload {
		switch k {
		case payloadTextKey:
			doc.Content = v.GetStringValue()
		case payloadDocIDKey:
			doc.ID = v.GetStringValue()
		default:
			doc.Metadata[k] = v.GetStringValue()
		}
	}
	return doc
}

// Count returns the number of stored points, or 0 when the collection is
// missing or unreachable.
func (s *QdrantStore) Count(ctx context.Context) int {
	n, err := s.client.Count(ctx, &qdrant.CountPoints{CollectionName: s.collection})
	if err != nil {
		s.logger.Debug("count failed", "collection", s.collection, "error", err)
		return 0
	}
	return int(n) // #nosec G115 -- demo corpora are far below MaxInt
}

// Close closes the underlying gRPC connection.
func (s *QdrantStore) Close() error {
	return s.client.Close()
}
