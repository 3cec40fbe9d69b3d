package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeffynunes09/create-resume/internal/export"
	"github.com/jeffynunes09/create-resume/internal/export/flowdoc"
	"github.com/jeffynunes09/create-resume/internal/export/raster"
	"github.com/jeffynunes09/create-resume/internal/preview"
	"github.com/jeffynunes09/create-resume/internal/schemas"
	"github.com/jeffynunes09/create-resume/internal/types"
)

var (
	exportFormat  string
	exportOutput  string
	exportFont    string
	exportSize    int
	exportColor   string
	exportTimeout time.Duration
	exportVerbose bool
)

var exportCmd = &cobra.Command{
	Use:   "export <resume.json>",
	Short: "Export a resume file as PDF or DOCX",
	Long: `Export reads a resume document from a JSON file and renders it
through the same pipelines the server uses: a raster PDF captured from
the HTML preview, or a flow DOCX built from the document model.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "pdf", "Output format: pdf or docx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: derived from the resume name)")
	exportCmd.Flags().StringVar(&exportFont, "font", "", "Font family override")
	exportCmd.Flags().IntVar(&exportSize, "size", 0, "Base font size override in px")
	exportCmd.Flags().StringVar(&exportColor, "color", "", "Text color override, hex")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", 60*time.Second, "Browser capture timeout")
	exportCmd.Flags().BoolVarP(&exportVerbose, "verbose", "v", false, "Print capture progress")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	if err := schemas.ValidateResumePayload(data); err != nil {
		return err
	}

	var input types.ResumeInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("failed to parse resume file: %w", err)
	}
	if err := input.Validate(); err != nil {
		return err
	}

	style := preview.DefaultStyle()
	if exportFont != "" {
		style.FontFamily = exportFont
	}
	if exportSize > 0 {
		style.FontSize = exportSize
	}
	if exportColor != "" {
		style.TextColor = exportColor
	}

	capturer := raster.NewCapturer()
	capturer.Timeout = exportTimeout
	capturer.Verbose = exportVerbose
	exporter := export.New(raster.NewRendererWith(capturer), flowdoc.NewRenderer())

	var (
		artifact []byte
		filename string
	)
	switch exportFormat {
	case "pdf":
		artifact, filename, err = exporter.PDF(context.Background(), input, style)
	case "docx":
		artifact, filename, err = exporter.DOCX(context.Background(), input, style)
	default:
		return fmt.Errorf("unknown format: %s (want pdf or docx)", exportFormat)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" {
		filename = exportOutput
	}
	if err := os.WriteFile(filename, artifact, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", filename, len(artifact))
	return nil
}
