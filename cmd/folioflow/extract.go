package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/folioflow/internal/config"
	"github.com/jonathan/folioflow/internal/extraction"
	"github.com/jonathan/folioflow/internal/observability"
)

var (
	extractConfigPath string
	extractOut        string
	extractVerbose    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <resume.pdf>",
	Short: "Extract structured text from a PDF resume",
	Long: `Read a PDF resume and print its layout-aware text: per-page reading-order
text with column markers, plus hyperlinks attributed to their nearest visible text.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractConfigPath, "config", "", "Path to config.json file")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Write text to a file instead of stdout")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print an extraction summary")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(extractConfigPath)
	if err != nil {
		return err
	}

	extractor := newExtractor(cfg, nil)
	text, err := extractor.ExtractFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	if extractVerbose {
		observability.NewPrinter(os.Stderr).PrintExtraction(text)
	}

	if extractOut != "" {
		if err := os.WriteFile(extractOut, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

// newExtractor builds an extractor from the effective configuration.
func newExtractor(cfg config.Config, log *zap.SugaredLogger) *extraction.Extractor {
	return extraction.New(extraction.Options{
		ColumnMarginRatio:  cfg.Extraction.ColumnMarginRatio,
		MinColumnFragments: cfg.Extraction.MinColumnFragments,
		RowTolerance:       cfg.Extraction.RowTolerance,
		LinkYTolerance:     cfg.Extraction.LinkYTolerance,
		LinkContextSize:    cfg.Extraction.LinkContextSize,
	}, log)
}
