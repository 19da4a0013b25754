package ai

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/koopa0/studybot/internal/log"
)

// Gemini is a Generator and embedding provider backed by the Gemini API.
//
// Generation carries one hardcoded secondary model choice: when the primary
// model fails, the same request is retried once against the fallback model
// before the error is surfaced.
type Gemini struct {
	client     *genai.Client
	chatModel  string
	fallback   string
	embedModel string
	sampling   Sampling
	logger     log.Logger
}

// GeminiConfig contains configuration for creating a Gemini provider.
type GeminiConfig struct {
	ChatModel  string
	Fallback   string
	EmbedModel string
	Sampling   Sampling
	Logger     log.Logger
}

// NewGemini creates a Gemini provider.
// The API key is read from the GEMINI_API_KEY environment variable.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	return &Gemini{
		client:     client,
		chatModel:  cfg.ChatModel,
		fallback:   cfg.Fallback,
		embedModel: cfg.EmbedModel,
		sampling:   cfg.Sampling,
		logger:     logger,
	}, nil
}

// Generate runs bounded sampling generation for the given prompt and returns
// the continuation text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.sampling.Temperature),
		TopP:            genai.Ptr(g.sampling.TopP),
		TopK:            genai.Ptr(float32(g.sampling.TopK)),
		MaxOutputTokens: g.sampling.MaxNewTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.chatModel, contents, cfg)
	if err == nil {
		return resp.Text(), nil
	}

	if g.fallback == "" || g.fallback == g.chatModel {
		return "", fmt.Errorf("generate with %s: %w", g.chatModel, err)
	}

	g.logger.Warn("primary model failed, trying fallback",
		"model", g.chatModel, "fallback", g.fallback, "error", err)

	resp, ferr := g.client.Models.GenerateContent(ctx, g.fallback, contents, cfg)
	if ferr != nil {
		return "", fmt.Errorf("generate with %s (fallback %s also failed: %v): %w",
			g.chatModel, g.fallback, ferr, err)
	}
	return resp.Text(), nil
}

// Embed maps a text to a fixed-length numeric vector.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.client.Models.EmbedContent(ctx, g.embedModel,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return resp.Embeddings[0].Values, nil
}

// EmbedFunc returns the embedding function for use by the vector store.
func (g *Gemini) EmbedFunc() EmbedFunc {
	return g.Embed
}
