package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/folioflow/internal/config"
	"github.com/jonathan/folioflow/internal/llm"
	"github.com/jonathan/folioflow/internal/observability"
	"github.com/jonathan/folioflow/internal/prompts"
	"github.com/jonathan/folioflow/internal/server"
)

var (
	serveConfigPath string
	serveAddr       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the extraction, parsing, and export endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by environment variables)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	}

	logger, err := observability.NewLogger(cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck
	log := logger.Sugar()

	// The server starts without a client when no key is configured; the
	// model endpoints then report the missing credential per request.
	var client llm.Client
	llmCfg := llm.FromEnv()
	if llmCfg.APIKey != "" {
		client, err = llm.NewClient(context.Background(), llmCfg, prompts.ResumeParserSystem())
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
	} else {
		log.Warn("no LLM API key configured; /api/parse-resume and /api/import will fail")
	}

	return server.New(cfg, log, client).Start()
}

// loadConfig resolves the effective configuration: file (optional), then
// defaults for unset values, then environment overrides.
func loadConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
