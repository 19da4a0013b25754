// Package cmd provides CLI commands for StudyBot.
//
// Commands:
//   - serve: HTTP server hosting the chat page and API
//   - ask: one-shot question on the command line
//   - index: (re)build the vector store from the study corpus
//
// Signal handling and graceful shutdown are implemented
// for all commands via context cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/koopa0/studybot/internal/log"
)

// Execute is the main entry point for the StudyBot CLI application.
func Execute() error {
	// Initialize logger once at entry point
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{Level: level})
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "serve":
		return runServe(logger)
	case "ask":
		return runAsk(logger)
	case "index":
		return runIndex(logger)
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("StudyBot - A retrieval-grounded study chatbot")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  studybot serve [addr]    Start the chat web server (default: 127.0.0.1:7860)")
	fmt.Println("  studybot ask <question>  Ask a single question on the command line")
	fmt.Println("  studybot index [dir]     (Re)build the vector store from the study corpus")
	fmt.Println("  studybot --version       Show version information")
	fmt.Println("  studybot --help          Show this help")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY           Required when provider is gemini (the default)")
	fmt.Println("  STUDYBOT_PROVIDER        Generation provider: gemini or ollama")
	fmt.Println("  STUDYBOT_STORE_BACKEND   Vector store backend: chromem or qdrant")
	fmt.Println("  STUDYBOT_DOCS_DIR        Optional directory of extra study passages")
	fmt.Println("  DEBUG                    Optional: Enable debug logging")
	fmt.Println()
	fmt.Println("Learn more: https://github.com/koopa0/studybot")
}
