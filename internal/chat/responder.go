// Package chat turns a user message plus conversation history into a bot
// reply: retrieve grounding passages, assemble the prompt, run the
// generation provider, extract the reply.
package chat

import (
	"context"
	"fmt"

	"github.com/koopa0/studybot/internal/ai"
	"github.com/koopa0/studybot/internal/log"
	"github.com/koopa0/studybot/internal/rag"
)

// Responder produces one bot reply per call. It is stateless across calls.
type Responder struct {
	rag    *rag.Facade
	gen    ai.Generator
	logger log.Logger
}

// NewResponder creates a Responder.
func NewResponder(facade *rag.Facade, gen ai.Generator, logger log.Logger) *Responder {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Responder{rag: facade, gen: gen, logger: logger}
}

// Respond generates a reply for message given the prior history.
//
// Retrieval failure or an empty store simply means no Context section.
// Generation failure propagates to the caller, which is expected to render a
// generic error.
func (r *Responder) Respond(ctx context.Context, message string, history []Turn) (string, error) {
	passages := r.rag.Retrieve(ctx, message)

	prompt := BuildPrompt(passages, history, message)
	r.logger.Debug("assembled prompt",
		"passages", len(passages), "turns", len(history), "prompt_len", len(prompt))

	out, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating reply: %w", err)
	}

	return ExtractReply(out), nil
}
