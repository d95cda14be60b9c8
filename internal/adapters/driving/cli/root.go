// Package cli wires the Switchboard engine behind a cobra command tree.
// Commands build the engine lazily from configuration unless services were
// injected up front (tests, embedding callers).
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/switchboard-labs/switchboard/internal/core/ports/driven"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
	"github.com/switchboard-labs/switchboard/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "0.1.0"

var (
	flagVerbose    bool
	flagConfigPath string
)

// Services wired into the command tree, either by Wire or by ensureServices.
var (
	callService      driving.CallService
	knowledgeService driving.KnowledgeService
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService

	engineClose func() error
)

var rootCmd = &cobra.Command{
	Use:   "switchboard",
	Short: "Conversational retrieval engine for simulated support calls",
	Long: `Switchboard is a conversational retrieval engine that simulates phone
support calls. It answers user messages from a knowledge base using vector
retrieval, classifies caller intent, and manages the call lifecycle.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to config.toml (default ~/.switchboard/config.toml)")
}

// Wire injects pre-built services, bypassing config-driven assembly. Used by
// tests and by callers that embed the CLI.
func Wire(calls driving.CallService, knowledge driving.KnowledgeService,
	embedder driven.EmbeddingService, llm driven.LLMService,
) {
	callService = calls
	knowledgeService = knowledge
	embeddingService = embedder
	llmService = llm
	engineClose = nil
}

// Execute runs the root command and releases engine resources afterwards.
func Execute(ctx context.Context) error {
	defer func() {
		if engineClose != nil {
			if err := engineClose(); err != nil {
				logger.Warn("shutdown: %v", err)
			}
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}
