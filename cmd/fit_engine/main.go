// Package main provides the entry point for the resume fit scoring engine CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fit_engine",
	Short: "Resume fit scoring engine",
	Long:  "Fit engine trains, evaluates, and serves a resume/job compatibility classifier with hybrid skill extraction.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
