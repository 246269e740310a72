package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moosang1125-png/dangwan/internal/app"
	"github.com/moosang1125-png/dangwan/internal/detect"
	"github.com/moosang1125-png/dangwan/internal/extract"
	"github.com/moosang1125-png/dangwan/internal/ocr"
	"github.com/moosang1125-png/dangwan/internal/sheets"
)

func processCmd() *cobra.Command {
	var spreadsheetTitle string
	var spreadsheetID string
	var resetContext bool
	var noCache bool
	var cacheDir string
	var credentials string
	var ocrMode string
	var ocrLang string
	var minPageChars int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "process <pdf> [pdf...]",
		Short: "Process textbook PDFs into ordered session rows",
		Long: "Extracts per-page text (with OCR fallback for image-only pages), detects\n" +
			"chapters, subtopics, learning goals, homework and review questions, and\n" +
			"appends one session row per chapter/subtopic pairing to a spreadsheet.\n" +
			"Files are processed in the order given; the session counter and chapter\n" +
			"continuation state persist across invocations in the cache directory.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

			provider, err := buildOCRProvider(cmd, ocrMode, ocrLang)
			if err != nil {
				return err
			}

			var sink sheets.Sink
			if !dryRun {
				sink, err = sheets.NewGoogle(ctx, credentials)
				if err != nil {
					return err
				}
			}

			cfg := app.Config{
				PDFs:             args,
				SpreadsheetID:    spreadsheetID,
				SpreadsheetTitle: spreadsheetTitle,
				CacheDir:         cacheDir,
				UseCache:         !noCache,
				ResetContext:     resetContext,
				DryRun:           dryRun,
				Patterns:         detect.Default(),
				Extractor:        extract.New(provider, minPageChars),
				Sink:             sink,
				Log:              log,
			}

			res, err := app.Run(ctx, cfg)
			for _, fe := range res.FileErrors {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed: %v\n", fe)
			}
			if err != nil {
				return err
			}

			b, _ := json.MarshalIndent(struct {
				Rows           int             `json:"rows"`
				SpreadsheetID  string          `json:"spreadsheet_id,omitempty"`
				SpreadsheetURL string          `json:"spreadsheet_url,omitempty"`
				FailedFiles    int             `json:"failed_files,omitempty"`
				Sessions       []sessionOutput `json:"sessions,omitempty"`
			}{
				Rows:           len(res.Rows),
				SpreadsheetID:  res.SpreadsheetID,
				SpreadsheetURL: res.SpreadsheetURL,
				FailedFiles:    len(res.FileErrors),
				Sessions:       sessionOutputs(res, dryRun),
			}, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			if len(res.FileErrors) > 0 {
				return fmt.Errorf("%d of %d files failed", len(res.FileErrors), len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&spreadsheetTitle, "spreadsheet-title", "", "title for a newly created spreadsheet (default: \""+app.DefaultSpreadsheetTitle+"\")")
	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet-id", "", "append to an existing spreadsheet instead of creating one")
	cmd.Flags().BoolVar(&resetContext, "reset-context", false, "start from an empty processing context (session counter, history)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the extraction cache and overwrite its entries")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "cache", "directory for the extraction cache and processing context")
	cmd.Flags().StringVar(&credentials, "credentials", "config/credentials.json", "path to Google API credentials")
	cmd.Flags().StringVar(&ocrMode, "ocr", "tesseract", "OCR provider for image-only pages: off|tesseract|gemini")
	cmd.Flags().StringVar(&ocrLang, "ocr-lang", "kor+eng", "Tesseract language codes, joined with +")
	cmd.Flags().IntVar(&minPageChars, "min-page-chars", extract.DefaultMinChars, "non-whitespace character threshold below which a page goes to OCR")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "extract and build rows but skip the spreadsheet write")
	return cmd
}

func buildOCRProvider(cmd *cobra.Command, mode, lang string) (ocr.Provider, error) {
	switch strings.ToLower(mode) {
	case "off":
		return ocr.Noop{}, nil
	case "tesseract":
		return ocr.NewTesseract(strings.Split(lang, "+")...), nil
	case "gemini":
		return ocr.NewGemini(cmd.Context(), os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	default:
		return nil, fmt.Errorf("unknown --ocr mode %q (want off, tesseract, or gemini)", mode)
	}
}

type sessionOutput struct {
	Session  int    `json:"session"`
	Unit     string `json:"unit"`
	Subtopic string `json:"subtopic,omitempty"`
	Pages    string `json:"pages"`
}

// sessionOutputs lists the built rows in the JSON summary on dry runs,
// where no spreadsheet shows them.
func sessionOutputs(res app.Result, dryRun bool) []sessionOutput {
	if !dryRun {
		return nil
	}
	out := make([]sessionOutput, len(res.Rows))
	for i, r := range res.Rows {
		out[i] = sessionOutput{Session: r.Session, Unit: r.Unit, Subtopic: r.Subtopic, Pages: r.Pages}
	}
	return out
}
