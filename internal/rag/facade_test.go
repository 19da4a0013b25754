package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koopa0/studybot/internal/knowledge"
	"github.com/koopa0/studybot/internal/log"
	"github.com/koopa0/studybot/internal/testutil"
)

var sampleDocuments = []string{
	"Quicksort is an efficient sorting algorithm.",
	"Python code for Quicksort is often used in interviews.",
	"A stack is a linear data structure.",
	"A queue is another linear data structure.",
}

func newFacade(t *testing.T, topK int) *Facade {
	t.Helper()
	store, err := knowledge.NewChromem(t.TempDir(), "test_cs_learning_docs",
		testutil.HashEmbedder(), log.NewNop())
	require.NoError(t, err)
	return New(store, topK, log.NewNop())
}

func TestRetrieve_AlwaysReturnsSlice(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, 3)
	f.Populate(ctx, sampleDocuments)

	for _, query := range []string{"What is quicksort?", "", "unrelated gibberish zzz"} {
		passages := f.Retrieve(ctx, query)
		assert.NotNil(t, passages, "query %q must yield a slice", query)
	}
}

func TestRetrieve_FindsRelevantDocs(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, 3)
	f.Populate(ctx, sampleDocuments)

	passages := f.Retrieve(ctx, "How does quicksort work?")
	require.NotEmpty(t, passages)
	assert.True(t, containsSubstring(passages, "Quicksort"),
		"expected a quicksort passage in %v", passages)
}

func TestRetrieve_VerbatimTermRanksFirst(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, 1)
	f.Populate(ctx, sampleDocuments)

	// "queue" appears verbatim in exactly one stored document.
	passages := f.Retrieve(ctx, "queue")
	require.Len(t, passages, 1)
	assert.Contains(t, passages[0], "queue")
}

func TestPopulate_EmptyList(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, 3)

	f.Populate(ctx, nil)

	passages := f.Retrieve(ctx, "anything at all")
	assert.Empty(t, passages)
	assert.NotNil(t, passages)
}

func TestPopulate_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, 10)

	f.Populate(ctx, sampleDocuments)
	f.Populate(ctx, sampleDocuments)

	// Re-population replaces doc_<i> entries instead of duplicating them, so
	// even a generous top-k returns each document at most once.
	passages := f.Retrieve(ctx, "data structure")
	assert.LessOrEqual(t, len(passages), len(sampleDocuments))
}

func TestRetrieve_StoreFailureYieldsEmpty(t *testing.T) {
	f := New(failingStore{}, 3, log.NewNop())

	passages := f.Retrieve(context.Background(), "anything")
	assert.NotNil(t, passages)
	assert.Empty(t, passages)
}

func TestPopulate_StoreFailureIsSwallowed(t *testing.T) {
	f := New(failingStore{}, 3, log.NewNop())

	// Must not panic and must not surface the error.
	f.Populate(context.Background(), sampleDocuments)
}

// failingStore simulates a store whose collection cannot be reached.
type failingStore struct{}

func (failingStore) Add(context.Context, []knowledge.Document) error {
	return errors.New("disk error")
}

func (failingStore) Search(context.Context, string, ...knowledge.SearchOption) ([]knowledge.Result, error) {
	return nil, errors.New("collection not found")
}

func (failingStore) Count(context.Context) int { return 0 }
func (failingStore) Close() error              { return nil }

func containsSubstring(passages []string, substr string) bool {
	for _, p := range passages {
		if strings.Contains(p, substr) {
			return true
		}
	}
	return false
}
