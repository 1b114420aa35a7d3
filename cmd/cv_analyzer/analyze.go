package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-analyzer/internal/classify"
	"github.com/jonathan/cv-analyzer/internal/config"
	"github.com/jonathan/cv-analyzer/internal/logger"
	"github.com/jonathan/cv-analyzer/internal/observability"
	"github.com/jonathan/cv-analyzer/internal/pipeline"
	"github.com/jonathan/cv-analyzer/internal/present"
	"github.com/jonathan/cv-analyzer/internal/scoring"
	"github.com/jonathan/cv-analyzer/internal/types"
)

var (
	analyzeClassifierURL string
	analyzeJSON          bool
	analyzeDebug         bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE...",
	Short: "Analyze CV files and print the candidate comparison",
	Long: `Extract text from the given CV files (PDF or DOCX), score each candidate
through the classifier, and print the ranked comparison view.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeClassifierURL, "classifier-url", "", "Classifier inference endpoint (defaults to CLASSIFIER_URL)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Emit the presentation payload as JSON")
	analyzeCmd.Flags().BoolVarP(&analyzeDebug, "debug", "d", false, "Verbose/debug output")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if analyzeClassifierURL != "" {
		cfg.ClassifierURL = analyzeClassifierURL
	}
	if cfg.ClassifierURL == "" {
		return fmt.Errorf("classifier endpoint is required (--classifier-url or CLASSIFIER_URL)")
	}

	log, err := logger.New(false, analyzeDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	docs := make([]types.Document, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, types.Document{
			Name:      filepath.Base(path),
			MediaType: mediaTypeForPath(path),
			Data:      data,
		})
	}

	classifier, err := classify.NewHTTPClient(classify.DefaultConfig().WithEndpoint(cfg.ClassifierURL))
	if err != nil {
		return fmt.Errorf("failed to create classifier client: %w", err)
	}
	defer func() { _ = classifier.Close() }()

	result, err := pipeline.Run(context.Background(), docs, pipeline.Options{
		Classifier: classifier,
		Weights:    scoring.Weights{Skills: cfg.SkillsWeight, Experience: cfg.ExperienceWeight},
		MaxTokens:  cfg.MaxTokens,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	view := present.BuildView(uuid.New(), result)
	if analyzeJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(view)
	}

	observability.NewPrinter(os.Stdout).PrintAnalysis(view)
	return nil
}

// mediaTypeForPath maps a file extension to the declared media type. Unknown
// extensions pass through empty so the pipeline reports them as skipped.
func mediaTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return types.MediaTypePDF
	case ".docx":
		return types.MediaTypeDOCX
	default:
		return ""
	}
}
