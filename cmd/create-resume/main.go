// Package main provides the entry point for the resume builder.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "create-resume",
	Short: "Resume builder HTTP API server and export tool",
	Long:  "create-resume stores resume documents, serves a REST API for editing them and exports them as raster PDF or flow DOCX documents.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
