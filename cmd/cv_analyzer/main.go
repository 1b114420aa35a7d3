// Package main provides the entry point for the CV analyzer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cv_analyzer",
	Short: "CV analysis and candidate ranking",
	Long: "cv_analyzer extracts text from uploaded CVs (PDF or DOCX), scores each candidate " +
		"with a pretrained classifier, and ranks candidates by skills and experience.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
