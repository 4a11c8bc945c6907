// Package main provides the entry point for the FolioFlow portfolio generator.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "folioflow",
	Short: "FolioFlow portfolio generator",
	Long:  "FolioFlow turns a PDF resume into a personal portfolio website: layout-aware text extraction, LLM structuring, and themed HTML export, served over a REST API or run as a one-shot CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
