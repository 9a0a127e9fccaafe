package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/observability"
	"github.com/jonathan/resume-fit/internal/training"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a fit classifier from a labeled CSV dataset",
	Long:  "Train fits the feature pipeline on labeled resume/job pairs, selects the best classifier by cross-validated ROC-AUC, and writes the pipeline artifact.",
	RunE:  runTrain,
}

var (
	trainDataFile string
	trainOutFile  string
	trainFolds    int
)

func init() {
	trainCmd.Flags().StringVarP(&trainDataFile, "data", "d", "", "Path to labeled CSV (resume_text,job_description,label)")
	trainCmd.Flags().StringVarP(&trainOutFile, "out", "o", "", "Path to write the artifact bundle")
	trainCmd.Flags().IntVar(&trainFolds, "folds", 0, "Cross-validation folds (default 5)")
	_ = trainCmd.MarkFlagRequired("data")
	_ = trainCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	norm, dict, ext, err := buildExtractor(cfg, log)
	if err != nil {
		return err
	}

	samples, err := training.LoadCSV(trainDataFile)
	if err != nil {
		return fmt.Errorf("failed to load training data: %w", err)
	}
	log.Info("training data loaded",
		zap.String("path", trainDataFile),
		zap.Int("samples", len(samples)))

	folds := trainFolds
	if folds <= 0 {
		folds = cfg.Folds
	}

	trainer := training.NewTrainer(norm, dict, ext, log)
	bundle, sel, err := trainer.Run(cmd.Context(), samples, training.Options{Folds: folds})
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	if err := bundle.Save(trainOutFile); err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintTrainingSummary(sel)
	}

	fmt.Printf("Selected model: %s\n", sel.ModelName)
	fmt.Printf("Mean ROC-AUC:   %.4f (variance %.6f)\n", sel.MeanAUC, sel.AUCVariance)
	fmt.Printf("Mean accuracy:  %.4f\n", sel.MeanAccuracy)
	fmt.Printf("Artifact:       %s\n", trainOutFile)
	return nil
}
