// Package ai wraps the external generation and embedding providers.
//
// Both the causal language model and the sentence-embedding model are consumed
// as black boxes: this package encodes a prompt, runs bounded sampling
// generation, and returns the continuation text, or maps a text to a
// fixed-length vector. No tokenizer, decoding strategy, or embedding model is
// implemented here.
//
// Two providers are supported:
//   - Gemini via google.golang.org/genai (default)
//   - A local Ollama server via its JSON HTTP API
package ai

import "context"

// Generator maps a prompt string to a continuation string.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmbedFunc maps a text to a fixed-length numeric vector.
// The signature is compatible with chromem-go's EmbeddingFunc.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// Sampling holds the fixed generation sampling configuration.
type Sampling struct {
	Temperature  float32
	TopP         float32
	TopK         int32
	MaxNewTokens int32 // ceiling on newly generated tokens
	RepeatLastN  int32 // repetition-avoidance window
}
