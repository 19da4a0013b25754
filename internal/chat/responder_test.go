package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koopa0/studybot/internal/corpus"
	"github.com/koopa0/studybot/internal/knowledge"
	"github.com/koopa0/studybot/internal/log"
	"github.com/koopa0/studybot/internal/rag"
	"github.com/koopa0/studybot/internal/testutil"
)

func newPopulatedFacade(t *testing.T) *rag.Facade {
	t.Helper()
	store, err := knowledge.NewChromem(t.TempDir(), "test_cs_learning_docs",
		testutil.HashEmbedder(), log.NewNop())
	require.NoError(t, err)
	f := rag.New(store, 2, log.NewNop())
	f.Populate(context.Background(), corpus.BuiltIn())
	return f
}

func TestRespond_NoHistory(t *testing.T) {
	gen := &testutil.StubGenerator{Reply: "Bot: A stack is a LIFO structure."}
	r := NewResponder(newPopulatedFacade(t), gen, log.NewNop())

	reply, err := r.Respond(context.Background(), "Tell me about a stack data structure.", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
	assert.Equal(t, "A stack is a LIFO structure.", reply)

	// The assembled prompt ends with the generation cue.
	prompt := gen.LastPrompt()
	assert.True(t, strings.HasSuffix(prompt, "User: Tell me about a stack data structure.\nBot: "),
		"prompt was: %q", prompt)
	// Retrieval grounded the prompt with a Context section.
	assert.Contains(t, prompt, "Context:\n")
}

func TestRespond_WithHistory(t *testing.T) {
	gen := &testutil.StubGenerator{Reply: "A queue is FIFO."}
	r := NewResponder(newPopulatedFacade(t), gen, log.NewNop())

	history := []Turn{{User: "Hello", Bot: "Hi there!"}}
	reply, err := r.Respond(context.Background(), "What about a queue?", history)
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	prompt := gen.LastPrompt()
	assert.Contains(t, prompt, "User: Hello\nBot: Hi there!\n")
	assert.True(t, strings.HasSuffix(prompt, "User: What about a queue?\nBot: "))
}

func TestRespond_NoMarkerInOutput(t *testing.T) {
	gen := &testutil.StubGenerator{Reply: "  a bare continuation  "}
	r := NewResponder(newPopulatedFacade(t), gen, log.NewNop())

	reply, err := r.Respond(context.Background(), "Hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "a bare continuation", reply)
}

func TestRespond_GenerationFailurePropagates(t *testing.T) {
	genErr := errors.New("model unavailable")
	gen := &testutil.StubGenerator{ReplyFunc: func(string) (string, error) { return "", genErr }}
	r := NewResponder(newPopulatedFacade(t), gen, log.NewNop())

	_, err := r.Respond(context.Background(), "Hello", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, genErr))
}

func TestRespond_EmptyStoreMeansNoContext(t *testing.T) {
	store, err := knowledge.NewChromem(t.TempDir(), "empty_docs",
		testutil.HashEmbedder(), log.NewNop())
	require.NoError(t, err)
	f := rag.New(store, 3, log.NewNop())

	gen := &testutil.StubGenerator{Reply: "ok"}
	r := NewResponder(f, gen, log.NewNop())

	_, err = r.Respond(context.Background(), "Hello", nil)
	require.NoError(t, err)
	assert.NotContains(t, gen.LastPrompt(), "Context:")
}
