package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmcneil/frontdesk/internal/config"
)

// runAsk answers a single question from the command line and exits.
// It runs the same path a chat request does: resolve the brand, seed a
// one-off session, generate, print.
func runAsk(args []string) error {
	askFlags := flag.NewFlagSet("ask", flag.ContinueOnError)
	askFlags.SetOutput(os.Stderr)
	if err := askFlags.Parse(args); err != nil {
		return fmt.Errorf("parsing ask flags: %w", err)
	}

	question := strings.TrimSpace(strings.Join(askFlags.Args(), " "))
	if question == "" {
		return fmt.Errorf("usage: frontdesk ask <question>")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := buildLogger(cfg)
	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	reply, err := engine.Handle(ctx, "", question)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	fmt.Println(reply.Text)
	return nil
}
