package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-fit/internal/observability"
	"github.com/jonathan/resume-fit/internal/predictor"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description",
	Long:  "Score loads the trained artifact, extracts skills from both documents, and prints the fit prediction as JSON. Without a loadable artifact the rule-based fallback answers instead.",
	RunE:  runScore,
}

var (
	scoreResumeFile   string
	scoreJobFile      string
	scoreArtifactFile string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to the resume text file")
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to the job description text file")
	scoreCmd.Flags().StringVarP(&scoreArtifactFile, "artifact", "a", "", "Path to the trained artifact (overrides config)")
	_ = scoreCmd.MarkFlagRequired("resume")
	_ = scoreCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
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

	resume, err := os.ReadFile(scoreResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	job, err := os.ReadFile(scoreJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	artifactPath := scoreArtifactFile
	if artifactPath == "" {
		artifactPath = cfg.Artifact
	}

	pred := predictor.New(norm, ext, log)
	if artifactPath != "" {
		// A failed load is not fatal: the predictor degrades to the
		// heuristic path and flags the result.
		if err := pred.Load(artifactPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: artifact load failed, falling back to heuristic: %v\n", err)
		}
	}

	result := pred.Score(cmd.Context(), string(resume), string(job))

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintPrediction(&result)
		printer.PrintSkillGap(&result.Gap)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))

	if result.Fallback {
		fmt.Fprintln(os.Stderr, "Note: result produced by the heuristic fallback, not a trained model.")
	}
	return nil
}
