package testutil

import (
	"context"
	"sync"
)

// StubGenerator is an ai.Generator returning canned output and recording the
// prompts it was given.
type StubGenerator struct {
	// Reply is returned verbatim by Generate. If ReplyFunc is set it takes
	// precedence.
	Reply     string
	ReplyFunc func(prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

// Generate implements ai.Generator.
func (s *StubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	if s.ReplyFunc != nil {
		return s.ReplyFunc(prompt)
	}
	return s.Reply, nil
}

// Prompts returns a copy of all prompts passed to Generate.
func (s *StubGenerator) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// LastPrompt returns the most recent prompt, or "" if none.
func (s *StubGenerator) LastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}
