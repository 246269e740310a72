// Package app wires the pipeline together: fingerprint, cache, extract,
// detect, build rows, advance context, write to the sink.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/moosang1125-png/dangwan/internal/cache"
	"github.com/moosang1125-png/dangwan/internal/detect"
	"github.com/moosang1125-png/dangwan/internal/plan"
	"github.com/moosang1125-png/dangwan/internal/sheets"
	"github.com/moosang1125-png/dangwan/internal/state"
)

// ContextFileName is the persisted context file inside the cache dir.
const ContextFileName = "document_context.json"

// DefaultSpreadsheetTitle is used when creating a sheet without an
// explicit title.
const DefaultSpreadsheetTitle = "Unit Management Table"

// PageExtractor produces one file's pages in order.
type PageExtractor interface {
	Pages(ctx context.Context, path string) ([]plan.PageText, error)
}

// Config holds one run's inputs and collaborators.
type Config struct {
	PDFs             []string
	SpreadsheetID    string
	SpreadsheetTitle string
	CacheDir         string
	UseCache         bool
	ResetContext     bool
	DryRun           bool

	Patterns  detect.Patterns
	Extractor PageExtractor
	Sink      sheets.Sink
	Log       *slog.Logger
}

// FileError records an extraction-phase failure for one input file. These
// are collected and reported in aggregate; one bad PDF does not abort the
// others.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e FileError) Unwrap() error { return e.Err }

// Result is the outcome of one run. Rows are kept even when the sink
// write fails, so a later run can re-target the sink without
// re-extraction.
type Result struct {
	Rows           []plan.SessionRow
	SpreadsheetID  string
	SpreadsheetURL string
	FileErrors     []FileError
}

// Run processes the input files strictly in the order given. Session
// numbering and chapter-continuation detection depend on this ordering.
// The returned error is non-nil only for run-fatal conditions: corrupt or
// unsavable context, or a sink failure after extraction succeeded.
func Run(ctx context.Context, cfg Config) (Result, error) {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	store := cache.NewStore(cfg.CacheDir)
	manager := state.NewManager(filepath.Join(cfg.CacheDir, ContextFileName))
	pctx, err := manager.Load(cfg.ResetContext)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, path := range cfg.PDFs {
		rows, fatal, err := processFile(ctx, cfg, store, manager, pctx, path, log)
		if err != nil {
			if fatal {
				return res, err
			}
			log.Warn("skipping file", "file", path, "error", err)
			res.FileErrors = append(res.FileErrors, FileError{Path: path, Err: err})
			continue
		}
		res.Rows = append(res.Rows, rows...)
	}

	log.Info("run summary",
		"files_processed", len(pctx.History),
		"rows_built", len(res.Rows),
		"next_session", pctx.NextSession,
	)

	if len(res.Rows) == 0 || cfg.DryRun || cfg.Sink == nil {
		return res, nil
	}

	id := cfg.SpreadsheetID
	if id == "" {
		title := cfg.SpreadsheetTitle
		if title == "" {
			title = DefaultSpreadsheetTitle
		}
		id, err = cfg.Sink.Create(ctx, title)
		if err != nil {
			return res, err
		}
		log.Info("spreadsheet created", "id", id)
	}

	cells := make([][]string, len(res.Rows))
	for i, row := range res.Rows {
		cells[i] = row.Columns()
	}
	if err := cfg.Sink.Append(ctx, id, cells); err != nil {
		return res, err
	}
	res.SpreadsheetID = id
	res.SpreadsheetURL = cfg.Sink.URL(id)
	log.Info("rows written", "count", len(cells), "url", res.SpreadsheetURL)
	return res, nil
}

// processFile runs the extraction and row-building phases for one file
// and commits the context. The fatal flag distinguishes per-file
// extraction failures (run continues) from context failures (run aborts —
// downstream session numbering would be meaningless).
func processFile(ctx context.Context, cfg Config, store *cache.Store, manager *state.Manager, pctx *state.Context, path string, log *slog.Logger) ([]plan.SessionRow, bool, error) {
	name := filepath.Base(path)

	fp, err := cache.Fingerprint(path)
	if err != nil {
		return nil, false, err
	}
	if pctx.Seen(fp) {
		log.Warn("file already processed before; processing again", "file", name, "fingerprint", fp[:12])
	}

	var units []plan.StructuralUnit
	hit := false
	if cfg.UseCache {
		cached, ok, err := store.Get(fp)
		if err != nil {
			log.Warn("cache read failed", "file", name, "error", err)
		} else if ok {
			units = cached
			hit = true
			log.Info("cache hit", "file", name, "units", len(units))
		}
	}
	if !hit {
		pages, err := cfg.Extractor.Pages(ctx, path)
		if err != nil {
			return nil, false, err
		}
		units = detect.Detect(pages, name, cfg.Patterns)
		log.Info("structure detected", "file", name, "pages", len(pages), "units", len(units))
		if err := store.Put(fp, name, units); err != nil {
			log.Warn("cache write failed", "file", name, "error", err)
		}
	}

	rows := plan.BuildRows(plan.BuildInput{
		Units:       units,
		NextSession: pctx.NextSession,
		LastChapter: pctx.LastChapter,
		Continues:   state.Continues,
	})

	lastChapter := ""
	if len(rows) > 0 {
		lastChapter = rows[len(rows)-1].Unit
	}
	pctx.Record(fp, name, lastChapter, len(rows))
	if err := manager.Save(pctx); err != nil {
		return nil, true, err
	}
	return rows, false, nil
}
