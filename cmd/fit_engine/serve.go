package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-fit/internal/predictor"
	"github.com/jonathan/resume-fit/internal/server"
)

var (
	serveAddr     string
	serveArtifact string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing scoring, extraction, artifact reload, and health endpoints. The server starts even when the artifact cannot be loaded and serves heuristic answers until a reload succeeds.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().StringVarP(&serveArtifact, "artifact", "a", "", "Path to the trained artifact (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	norm, _, ext, err := buildExtractor(cfg, log)
	if err != nil {
		return err
	}

	artifactPath := serveArtifact
	if artifactPath == "" {
		artifactPath = cfg.Artifact
	}
	addr := serveAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}
	if addr == "" {
		addr = ":8080"
	}

	pred := predictor.New(norm, ext, log)
	if artifactPath != "" {
		if err := pred.Load(artifactPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: artifact load failed, serving degraded: %v\n", err)
		}
	}

	srv := server.New(server.Config{
		Addr:         addr,
		ArtifactPath: artifactPath,
	}, pred, ext, log)

	return srv.Start()
}
