package cmd

import (
	"context"
	"fmt"

	"github.com/koopa0/studybot/internal/ai"
	"github.com/koopa0/studybot/internal/chat"
	"github.com/koopa0/studybot/internal/config"
	"github.com/koopa0/studybot/internal/corpus"
	"github.com/koopa0/studybot/internal/knowledge"
	"github.com/koopa0/studybot/internal/log"
	"github.com/koopa0/studybot/internal/rag"
)

// application is the composition root shared by all commands: provider,
// vector store, retrieval facade and responder, wired from configuration.
type application struct {
	cfg       *config.Config
	store     knowledge.Store
	facade    *rag.Facade
	responder *chat.Responder
	logger    log.Logger
}

// setup builds the application from configuration.
// The store is created but not populated; call seed for that.
func setup(ctx context.Context, cfg *config.Config, logger log.Logger) (*application, error) {
	sampling := ai.Sampling{
		Temperature:  cfg.Temperature,
		TopP:         cfg.TopP,
		TopK:         cfg.TopK,
		MaxNewTokens: cfg.MaxNewTokens,
		RepeatLastN:  cfg.RepeatLastN,
	}

	var (
		gen   ai.Generator
		embed ai.EmbedFunc
	)
	switch cfg.Provider {
	case config.ProviderGemini:
		gemini, err := ai.NewGemini(ctx, ai.GeminiConfig{
			ChatModel:  cfg.ChatModel,
			Fallback:   cfg.FallbackModel,
			EmbedModel: cfg.EmbedModel,
			Sampling:   sampling,
			Logger:     logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating gemini provider: %w", err)
		}
		gen, embed = gemini, gemini.EmbedFunc()
	case config.ProviderOllama:
		ollama := ai.NewOllama(ai.OllamaConfig{
			BaseURL:    cfg.OllamaHost,
			ChatModel:  cfg.ChatModel,
			EmbedModel: cfg.EmbedModel,
			Sampling:   sampling,
			Logger:     logger,
		})
		gen, embed = ollama, ollama.EmbedFunc()
	default:
		// Load validates the provider, so this is unreachable via Load.
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidProvider, cfg.Provider)
	}

	var (
		store knowledge.Store
		err   error
	)
	switch cfg.StoreBackend {
	case config.StoreChromem:
		store, err = knowledge.NewChromem(cfg.VectorsDir, cfg.Collection, embed, logger)
	case config.StoreQdrant:
		store, err = knowledge.NewQdrant(cfg.QdrantHost, cfg.QdrantPort, cfg.Collection, embed, logger)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidStoreBackend, cfg.StoreBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s store: %w", cfg.StoreBackend, err)
	}

	facade := rag.New(store, cfg.RetrieveTopK, logger)

	return &application{
		cfg:       cfg,
		store:     store,
		facade:    facade,
		responder: chat.NewResponder(facade, gen, logger),
		logger:    logger,
	}, nil
}

// seed populates the vector store with the built-in corpus plus any
// passages found under the configured docs directory. Passage indexing
// failures are logged and skipped so a bad document never blocks startup.
func (a *application) seed(ctx context.Context) {
	passages := corpus.BuiltIn()

	if a.cfg.DocsDir != "" {
		extra, err := corpus.LoadDir(a.cfg.DocsDir)
		if err != nil {
			a.logger.Warn("loading docs directory failed, continuing with built-in corpus",
				"dir", a.cfg.DocsDir, "error", err)
		} else {
			a.logger.Info("loaded supplemental passages", "dir", a.cfg.DocsDir, "count", len(extra))
			passages = append(passages, extra...)
		}
	}

	a.facade.Populate(ctx, passages)
	a.logger.Info("vector store seeded",
		"passages", len(passages), "stored", a.store.Count(ctx))
}

// close releases the store connection.
func (a *application) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing store", "error", err)
	}
}
