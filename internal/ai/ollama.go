package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/koopa0/studybot/internal/log"
)

const (
	ollamaGenerateTimeout = 300 * time.Second // generation on CPU can be slow
	ollamaEmbedTimeout    = 60 * time.Second
)

// Ollama is a Generator and embedding provider backed by a local Ollama
// server's JSON HTTP API.
type Ollama struct {
	baseURL    string
	chatModel  string
	embedModel string
	sampling   Sampling
	client     *http.Client
	logger     log.Logger
}

// OllamaConfig contains configuration for creating an Ollama provider.
type OllamaConfig struct {
	BaseURL    string
	ChatModel  string
	EmbedModel string
	Sampling   Sampling
	Logger     log.Logger
}

// NewOllama creates an Ollama provider.
func NewOllama(cfg OllamaConfig) *Ollama {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	return &Ollama{
		baseURL:    baseURL,
		chatModel:  cfg.ChatModel,
		embedModel: cfg.EmbedModel,
		sampling:   cfg.Sampling,
		client:     &http.Client{Timeout: ollamaGenerateTimeout},
		logger:     logger,
	}
}

// ollamaOptions carries the sampling configuration in Ollama's wire format.
type ollamaOptions struct {
	NumPredict  int32   `json:"num_predict"`
	Temperature float32 `json:"temperature"`
	TopK        int32   `json:"top_k"`
	TopP        float32 `json:"top_p"`
	RepeatLastN int32   `json:"repeat_last_n"`
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate produces a continuation for the given prompt.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaGenerateRequest{
		Model:  o.chatModel,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			NumPredict:  o.sampling.MaxNewTokens,
			Temperature: o.sampling.Temperature,
			TopK:        o.sampling.TopK,
			TopP:        o.sampling.TopP,
			RepeatLastN: o.sampling.RepeatLastN,
		},
	}

	var resp ollamaGenerateResponse
	if err := o.postJSON(ctx, "/api/generate", reqBody, &resp); err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return resp.Response, nil
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed maps a text to a fixed-length numeric vector.
// Embedding a single text is much cheaper than generation, so it runs under
// its own shorter deadline.
func (o *Ollama) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, ollamaEmbedTimeout)
	defer cancel()

	reqBody := ollamaEmbedRequest{Model: o.embedModel, Prompt: text}

	var resp ollamaEmbedResponse
	if err := o.postJSON(ctx, "/api/embeddings", reqBody, &resp); err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("ollama embed: empty embedding for model %q", o.embedModel)
	}
	return resp.Embedding, nil
}

// EmbedFunc returns the embedding function for use by the vector store.
func (o *Ollama) EmbedFunc() EmbedFunc {
	return o.Embed
}

// postJSON sends a JSON request and decodes the JSON response.
func (o *Ollama) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
