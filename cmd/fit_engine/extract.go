package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-fit/internal/extraction"
	"github.com/jonathan/resume-fit/internal/observability"
	"github.com/jonathan/resume-fit/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract skills from a text document",
	Long:  "Extract runs hybrid skill extraction (recognizer plus dictionary matching) over a single document and prints the canonical skills found, with spans and confidence, as JSON.",
	RunE:  runExtract,
}

var (
	extractInputFile  string
	extractGapAgainst string
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to the text file to extract from")
	extractCmd.Flags().StringVar(&extractGapAgainst, "gap-against", "", "Optional job description file; prints a skill gap report instead")
	_ = extractCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractCmd)
}

type extractOutput struct {
	Skills   []types.ExtractedSkill `json:"skills"`
	Degraded bool                   `json:"degraded"`
	Gap      *types.SkillGap        `json:"gap,omitempty"`
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	_, _, ext, err := buildExtractor(cfg, log)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(extractInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	res := ext.Extract(cmd.Context(), string(text))
	out := extractOutput{Skills: res.Skills, Degraded: res.Degraded}
	if out.Skills == nil {
		out.Skills = []types.ExtractedSkill{}
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintExtraction(out.Skills, out.Degraded)
	}

	if extractGapAgainst != "" {
		jobText, err := os.ReadFile(extractGapAgainst)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jobRes := ext.Extract(cmd.Context(), string(jobText))
		gap := extraction.BuildSkillGap(res.Skills, jobRes.Skills)
		out.Gap = &gap
	}

	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(enc))
	return nil
}
