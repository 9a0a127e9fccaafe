package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/config"
	"github.com/jonathan/resume-fit/internal/extraction"
	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/skills"
	"github.com/jonathan/resume-fit/internal/textnorm"
)

// Flags shared by every subcommand.
var (
	flagConfig   string
	flagVerbose  bool
	flagJSONLogs bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false, "Emit JSON-encoded logs")
}

// loadEffectiveConfig reads the optional config file and layers CLI-level
// defaults under it.
func loadEffectiveConfig() (config.Config, error) {
	cfg := config.Config{}
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return cfg, err
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if flagJSONLogs {
		cfg.JSONLogs = true
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// buildExtractor assembles the normalizer, dictionary, and extractor from
// configuration. A missing dictionary path falls back to the embedded one.
func buildExtractor(cfg config.Config, log *zap.Logger) (*textnorm.Normalizer, *skills.Dictionary, *extraction.Extractor, error) {
	norm := textnorm.New()

	var dict *skills.Dictionary
	var err error
	if cfg.Dictionary != "" {
		dict, err = skills.Load(norm, cfg.Dictionary)
	} else {
		dict, err = skills.Default(norm)
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load skill dictionary: %w", err)
	}

	var rec extraction.Recognizer
	if !cfg.DisableRecognizer {
		rec = extraction.NewPatternRecognizer()
	}
	timeout := extraction.DefaultRecognizerTimeout
	if cfg.RecognizerTimeout > 0 {
		timeout = time.Duration(cfg.RecognizerTimeout) * time.Millisecond
	}

	ext := extraction.New(dict, norm, rec, timeout, log)
	return norm, dict, ext, nil
}
