package knowledge

import (
	"testing"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointID_Deterministic(t *testing.T) {
	// Re-populating with the same document IDs must produce the same point
	// IDs, so upserts replace instead of duplicating.
	assert.Equal(t, pointID("doc_0"), pointID("doc_0"))
	assert.Equal(t, pointID("doc_42"), pointID("doc_42"))
}

func TestPointID_DistinctPerDocument(t *testing.T) {
	seen := make(map[string]string)
	for _, docID := range []string{"doc_0", "doc_1", "doc_2", "doc_10", "doc_01"} {
		id := pointID(docID)
		prev, dup := seen[id]
		require.False(t, dup, "point ID %s collides for %s and %s", id, prev, docID)
		seen[id] = docID
	}
}

func TestPointID_IsValidUUID(t *testing.T) {
	// Qdrant rejects point IDs that are neither integers nor UUIDs.
	id, err := uuid.Parse(pointID("doc_0"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
}

func TestDocumentFromPayload(t *testing.T) {
	payload := qdrant.NewValueMap(map[string]any{
		"text":   "A stack is a linear data structure.",
		"doc_id": "doc_3",
		"source": "builtin",
	})

	doc := documentFromPayload(payload)

	assert.Equal(t, "doc_3", doc.ID)
	assert.Equal(t, "A stack is a linear data structure.", doc.Content)
	assert.Equal(t, map[string]string{"source": "builtin"}, doc.Metadata)
}

func TestDocumentFromPayload_ReservedKeysOnly(t *testing.T) {
	payload := qdrant.NewValueMap(map[string]any{
		"text":   "A queue is FIFO.",
		"doc_id": "doc_4",
	})

	doc := documentFromPayload(payload)

	assert.Equal(t, "doc_4", doc.ID)
	assert.Equal(t, "A queue is FIFO.", doc.Content)
	assert.Empty(t, doc.Metadata)
}

func TestDocumentFromPayload_RoundTripsAddPayload(t *testing.T) {
	// Mirror of the payload map built in Add.
	in := Document{
		ID:       "doc_7",
		Content:  "Bubble sort repeatedly swaps adjacent elements.",
		Metadata: map[string]string{"source": "docs_dir", "format": "md"},
	}
	payload := map[string]any{
		payloadTextKey:  in.Content,
		payloadDocIDKey: in.ID,
	}
	for k, v := range in.Metadata {
		payload[k] = v
	}

	out := documentFromPayload(qdrant.NewValueMap(payload))

	assert.Equal(t, in, out)
}
