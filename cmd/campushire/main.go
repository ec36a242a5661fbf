// Package main provides the entry point for the CampusHire HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "campushire",
	Short: "CampusHire HTTP API Server",
	Long:  "CampusHire connects students and campus recruiters: resume parsing, AI job matching, simulated interviews with per-answer evaluation, and applicant review, via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
