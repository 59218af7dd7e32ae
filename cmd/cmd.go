// Package cmd provides CLI commands for frontdesk.
//
// Commands:
//   - serve: HTTP API server (chat, voice, session reset)
//   - ask: one-shot question from the command line
//
// Signal handling and graceful shutdown are implemented
// for all commands via context cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
)

// Execute is the main entry point for the frontdesk CLI application.
func Execute() error {
	// Initialize logger once at entry point
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "serve":
		return runServe()
	case "ask":
		return runAsk(os.Args[2:])
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
	fmt.Println("frontdesk - AI receptionist for a multi-brand group")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  frontdesk serve [addr]     Start HTTP API server (default: 127.0.0.1:3400)")
	fmt.Println("  frontdesk ask <question>   Ask one question and print the reply")
	fmt.Println("  frontdesk --version        Show version information")
	fmt.Println("  frontdesk --help           Show this help")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  ~/.frontdesk/config.yaml or ./config.yaml, overridden by")
	fmt.Println("  FRONTDESK_* environment variables, e.g.:")
	fmt.Println("  FRONTDESK_KNOWLEDGE_PATH   Path to the knowledge document")
	fmt.Println("  FRONTDESK_LLM_BASE_URL     OpenAI-compatible endpoint (LM Studio)")
	fmt.Println("  FRONTDESK_MODEL_NAME       Model loaded on the backend")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DEBUG                      Optional: Enable debug logging")
}
