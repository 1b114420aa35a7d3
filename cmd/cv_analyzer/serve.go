package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-analyzer/internal/classify"
	"github.com/jonathan/cv-analyzer/internal/config"
	"github.com/jonathan/cv-analyzer/internal/logger"
	"github.com/jonathan/cv-analyzer/internal/scoring"
	"github.com/jonathan/cv-analyzer/internal/server"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts CV uploads and returns scored, ranked candidates.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if serveConfig != "" {
		fileCfg, err := config.LoadConfig(serveConfig)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if cmd.Flags().Changed("port") || cfg.Port == 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.ClassifierURL == "" {
		return fmt.Errorf("classifier endpoint is required (CLASSIFIER_URL or config file)")
	}

	log, err := logger.New(cfg.JSONLog, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	classifierCfg := classify.DefaultConfig().WithEndpoint(cfg.ClassifierURL)
	if cfg.ClassifierModel != "" {
		classifierCfg.Model = cfg.ClassifierModel
	}
	classifier, err := classify.NewHTTPClient(classifierCfg)
	if err != nil {
		return fmt.Errorf("failed to create classifier client: %w", err)
	}

	weights := scoring.Weights{Skills: cfg.SkillsWeight, Experience: cfg.ExperienceWeight}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		Classifier:  classifier,
		Weights:     weights,
		MaxTokens:   cfg.MaxTokens,
		Concurrency: cfg.Concurrency,
		DatabaseURL: cfg.DatabaseURL,
		APIKey:      cfg.APIKey,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
