// Package pipeline orchestrates the position sheet batch: discover and
// load export files, clean and combine their rows, write the consolidated
// workbook, run the externally authored macro against it, and apply the
// presentation pass. One forward pass, no retries.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"poscli/internal/config"
	"poscli/internal/dataprocessing"
	apperrors "poscli/internal/errors"
	"poscli/internal/excel"
	"poscli/internal/exporter"
	"poscli/internal/files"
)

// Request carries the five batch inputs plus run options.
type Request struct {
	// InputDir holds the brokerage export files to combine.
	InputDir string
	// OutputFile is the requested output path; the actual file gets a
	// timestamp inserted before the extension.
	OutputFile string
	// ExclusionFile is passed to the macro as its only argument.
	ExclusionFile string
	// MacroFile is the macro-bearing workbook.
	MacroFile string
	// MacroName is the routine to invoke inside MacroFile.
	MacroName string

	// SkipMacro skips the macro stage, for diagnostic runs on hosts
	// without the spreadsheet application.
	SkipMacro bool
	// KeepOpen leaves the finished workbook open on screen for review.
	KeepOpen bool
}

// Validate checks the filesystem contract up front: nothing is attempted
// when an input is missing.
func (r *Request) Validate() error {
	info, err := os.Stat(r.InputDir)
	if err != nil || !info.IsDir() {
		return apperrors.Newf(apperrors.CodeInvalidInput, "input folder does not exist: %s", r.InputDir)
	}
	if _, err := os.Stat(r.ExclusionFile); err != nil {
		return apperrors.Newf(apperrors.CodeInvalidInput, "exclusion file does not exist: %s", r.ExclusionFile)
	}
	if !r.SkipMacro {
		if _, err := os.Stat(r.MacroFile); err != nil {
			return apperrors.Newf(apperrors.CodeInvalidInput, "macro file does not exist: %s", r.MacroFile)
		}
		if r.MacroName == "" {
			return apperrors.New(apperrors.CodeInvalidInput, "macro name must not be empty")
		}
	}
	outDir := filepath.Dir(r.OutputFile)
	if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
		return apperrors.Newf(apperrors.CodeInvalidInput, "output directory does not exist: %s", outDir)
	}
	return nil
}

// Pipeline runs the batch. Construct with New; the automation client
// factory is injectable for tests.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	newApp func() (excel.App, error)
	now    func() time.Time
}

// New creates a pipeline with the real automation client
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logger,
		newApp: excel.NewApp,
		now:    time.Now,
	}
}

// Run executes the batch and returns the path of the produced workbook.
func (p *Pipeline) Run(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	combined, loaded, err := p.loadAndCombine(ctx, req)
	if err != nil {
		return "", err
	}
	p.logger.InfoContext(ctx, "combined export files",
		slog.Int("files_loaded", loaded),
		slog.Int("rows", len(combined.Rows)),
		slog.Int("columns", len(combined.Columns)))

	outPath, err := filepath.Abs(exporter.TimestampedPath(req.OutputFile, p.now()))
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "failed to resolve output path", err)
	}

	// The application handle spans the macro stage and the final
	// leave-open-for-review step. Release is unconditional; Quit depends
	// on the exit path.
	var app excel.App
	if !req.SkipMacro {
		app, err = p.newApp()
		if err != nil {
			return "", apperrors.Wrap(apperrors.CodeMacroFailed, "failed to acquire spreadsheet application", err)
		}
		defer app.Release()

		// A stale copy of the output left open in the editor would block
		// the save below. Best effort.
		if closed, err := app.CloseWorkbookIfOpen(outPath); err != nil {
			p.logger.WarnContext(ctx, "could not check for open workbook",
				slog.String("path", outPath),
				slog.String("error", err.Error()))
		} else if closed {
			p.logger.InfoContext(ctx, "closed stale open workbook", slog.String("path", outPath))
		}
	}

	if err := exporter.WriteWorkbook(outPath, combined, p.numericUnion()); err != nil {
		p.quit(ctx, app)
		return "", apperrors.Wrap(apperrors.CodeWriteFailed, outPath, err)
	}
	p.logger.InfoContext(ctx, "wrote combined workbook", slog.String("path", outPath))

	if !req.SkipMacro {
		if err := p.runMacro(ctx, app, outPath, req); err != nil {
			p.quit(ctx, app)
			return "", apperrors.Wrap(apperrors.CodeMacroFailed, req.MacroName, err)
		}
		p.logger.InfoContext(ctx, "macro completed", slog.String("macro", req.MacroName))
	}

	formatter := exporter.NewFormatter(p.cfg.Columns, p.logger)
	if err := formatter.Format(outPath); err != nil {
		p.quit(ctx, app)
		return "", apperrors.Wrap(apperrors.CodeFormatFailed, outPath, err)
	}
	p.logger.InfoContext(ctx, "formatting applied", slog.String("path", outPath))

	if req.KeepOpen && app != nil {
		p.openForReview(ctx, app, outPath)
	} else {
		p.quit(ctx, app)
	}

	return outPath, nil
}

// loadAndCombine runs the loader and cleaner over every discovered file and
// returns the normalized combined table. A file that fails to parse is
// logged and skipped; only an empty result is fatal.
func (p *Pipeline) loadAndCombine(ctx context.Context, req Request) (*dataprocessing.RowSet, int, error) {
	discovery := files.NewDiscovery(req.InputDir)
	found, err := discovery.FindExportFiles(".")
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeInvalidInput, "failed to read input folder", err)
	}
	p.logger.InfoContext(ctx, "export files discovered", slog.Int("count", len(found)))

	var rowSets []*dataprocessing.RowSet
	for _, file := range found {
		rs, err := dataprocessing.LoadFile(file.Path)
		if err != nil {
			p.logger.WarnContext(ctx, "skipping unreadable file",
				slog.String("filename", file.Name),
				slog.String("error", err.Error()))
			continue
		}

		cleaned := dataprocessing.Clean(rs, p.cfg.Columns.AccountColumn, p.cfg.Columns.ExclusionPrefixes)
		p.logger.DebugContext(ctx, "cleaned file",
			slog.String("filename", file.Name),
			slog.Int("rows_in", len(rs.Rows)),
			slog.Int("rows_out", len(cleaned.Rows)))

		rowSets = append(rowSets, cleaned)
	}

	if len(rowSets) == 0 {
		return nil, 0, apperrors.Newf(apperrors.CodeNoValidFiles,
			"no valid files were found to process in %s", req.InputDir)
	}

	combined := dataprocessing.Combine(rowSets)
	dataprocessing.NormalizeNumericColumns(combined, p.cfg.Columns.Numeric)
	dataprocessing.NormalizeNumericColumns(combined, p.cfg.Columns.Percentage)

	return combined, len(rowSets), nil
}

// runMacro opens the output and macro workbooks, invokes the macro with
// the exclusion file path, and persists the target. On failure the target
// is closed discarding changes so it never lingers half-written.
func (p *Pipeline) runMacro(ctx context.Context, app excel.App, outPath string, req Request) error {
	macroPath, err := filepath.Abs(req.MacroFile)
	if err != nil {
		return fmt.Errorf("failed to resolve macro file path: %w", err)
	}
	exclusionPath, err := filepath.Abs(req.ExclusionFile)
	if err != nil {
		return fmt.Errorf("failed to resolve exclusion file path: %w", err)
	}

	target, err := app.OpenWorkbook(outPath)
	if err != nil {
		return fmt.Errorf("failed to open target workbook: %w", err)
	}

	macroWb, err := app.OpenWorkbook(macroPath)
	if err != nil {
		p.closeQuietly(ctx, target, false)
		return fmt.Errorf("failed to open macro workbook: %w", err)
	}

	macroWbName := macroWb.Name()
	if macroWbName == "" {
		macroWbName = filepath.Base(macroPath)
	}

	if err := app.RunMacro(excel.MacroRef(macroWbName, req.MacroName), exclusionPath); err != nil {
		// Discard whatever the macro left half-applied.
		p.closeQuietly(ctx, target, false)
		p.closeQuietly(ctx, macroWb, false)
		return err
	}

	if err := target.Save(); err != nil {
		p.closeQuietly(ctx, target, false)
		p.closeQuietly(ctx, macroWb, false)
		return fmt.Errorf("failed to save target workbook: %w", err)
	}

	// The formatter works on the file directly, so the editor must let go
	// of it first.
	p.closeQuietly(ctx, target, false)
	p.closeQuietly(ctx, macroWb, false)
	return nil
}

// openForReview reopens the finished workbook visible for the user.
// Best effort: the batch already succeeded, a failure here only logs.
func (p *Pipeline) openForReview(ctx context.Context, app excel.App, outPath string) {
	if _, err := app.OpenWorkbook(outPath); err != nil {
		p.logger.WarnContext(ctx, "could not reopen workbook for review",
			slog.String("path", outPath),
			slog.String("error", err.Error()))
		return
	}
	if err := app.SetVisible(true); err != nil {
		p.logger.WarnContext(ctx, "could not show application window",
			slog.String("error", err.Error()))
		return
	}
	p.logger.InfoContext(ctx, "workbook left open for review", slog.String("path", outPath))
}

// quit closes the application on paths that do not leave it open for the
// user. Safe with a nil app.
func (p *Pipeline) quit(ctx context.Context, app excel.App) {
	if app == nil {
		return
	}
	if err := app.Quit(); err != nil {
		p.logger.WarnContext(ctx, "failed to quit spreadsheet application",
			slog.String("error", err.Error()))
	}
}

// closeQuietly closes a workbook, logging instead of failing; close errors
// on the error path must not mask the original failure.
func (p *Pipeline) closeQuietly(ctx context.Context, wb excel.Workbook, save bool) {
	if wb == nil {
		return
	}
	if err := wb.Close(save); err != nil {
		p.logger.WarnContext(ctx, "failed to close workbook",
			slog.String("workbook", wb.Name()),
			slog.String("error", err.Error()))
	}
}

// numericUnion returns the numeric and percentage column lists combined,
// the set of columns the writer types as numbers.
func (p *Pipeline) numericUnion() []string {
	union := make([]string, 0, len(p.cfg.Columns.Numeric)+len(p.cfg.Columns.Percentage))
	union = append(union, p.cfg.Columns.Numeric...)
	union = append(union, p.cfg.Columns.Percentage...)
	return union
}
