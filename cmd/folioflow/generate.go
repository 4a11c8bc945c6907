package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/folioflow/internal/export"
	"github.com/jonathan/folioflow/internal/llm"
	"github.com/jonathan/folioflow/internal/observability"
	"github.com/jonathan/folioflow/internal/prompts"
	"github.com/jonathan/folioflow/internal/reconcile"
	"github.com/jonathan/folioflow/internal/rendering"
	"github.com/jonathan/folioflow/internal/schemas"
	"github.com/jonathan/folioflow/internal/types"
)

var (
	generateConfigPath string
	generateOut        string
	generateTemplate   string
	generateAccent     string
	generateOffline    bool
	generatePDF        bool
	generateAPIKey     string
	generateVerbose    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <resume.pdf>",
	Short: "Generate a portfolio website from a PDF resume",
	Long: `Run the full pipeline end-to-end: extraction -> LLM parsing -> reconciliation -> themed HTML export.

The output filename defaults to the candidate's name (e.g. jane-doe-portfolio.html).`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.json file")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output path (defaults to <name>-portfolio.html)")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "modern", "Layout: modern, minimal, or bold")
	generateCmd.Flags().StringVarP(&generateAccent, "accent", "a", "violet", "Accent palette: violet, blue, emerald, or rose")
	generateCmd.Flags().BoolVar(&generateOffline, "offline", false, "Inline all styles so the file renders without network")
	generateCmd.Flags().BoolVar(&generatePDF, "pdf", false, "Print the portfolio to PDF via headless Chrome")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Model API key (optional, defaults to GROQ_API_KEY or GEMINI_API_KEY env var)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print extraction and parsing summaries")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(generateConfigPath)
	if err != nil {
		return err
	}

	llmCfg := llm.FromEnv()
	if generateAPIKey != "" {
		llmCfg.APIKey = generateAPIKey
	}
	if llmCfg.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY (or GEMINI_API_KEY) environment variable or --api-key flag is required")
	}

	client, err := llm.NewClient(ctx, llmCfg, prompts.ResumeParserSystem())
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	printer := observability.NewPrinter(os.Stderr)

	text, err := newExtractor(cfg, nil).ExtractFile(ctx, args[0])
	if err != nil {
		return err
	}
	if generateVerbose {
		printer.PrintExtraction(text)
	}

	raw, err := client.ParseResume(ctx, text)
	if err != nil {
		return err
	}
	if findings, checkErr := schemas.CheckResumeResponse(raw); checkErr == nil && len(findings) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: model response deviates from schema: %s\n", schemas.Summarize(findings))
	}

	var doc types.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse model response as JSON: %w", err)
	}

	resume := reconcile.New().Reconcile(doc)
	if generateVerbose {
		printer.PrintResume(resume)
		printer.PrintContact(resume.Contact)
	}

	body, err := rendering.Render(resume, rendering.Options{
		Template: rendering.Template(generateTemplate),
		Accent:   rendering.Accent(generateAccent),
	})
	if err != nil {
		return err
	}

	html, err := export.Standalone(body, export.Meta{
		FullName: resume.FullName,
		Title:    resume.Title,
	})
	if err != nil {
		return err
	}
	if generateOffline {
		if html, err = export.Offline(html); err != nil {
			return err
		}
	}

	if generatePDF {
		data, err := export.PDF(ctx, html)
		if err != nil {
			return err
		}
		return writeArtifact(outputPath(generateOut, resume.FullName, generateOffline, true), data)
	}

	return writeArtifact(outputPath(generateOut, resume.FullName, generateOffline, false), []byte(html))
}

// outputPath resolves the artifact path: an explicit --out wins, otherwise
// the name-derived portfolio filename.
func outputPath(out, fullName string, offline, pdf bool) string {
	if out != "" {
		return out
	}
	name := export.Filename(fullName, offline)
	if pdf {
		name = name[:len(name)-len(".html")] + ".pdf"
	}
	return name
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}
