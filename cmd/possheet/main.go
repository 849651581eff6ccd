// possheet combines a folder of brokerage position export files into one
// timestamped workbook, runs the externally authored exclusion/aggregation
// macro against it, and applies presentation formatting before leaving the
// result open for review.
//
// Usage:
//
//	possheet [flags] <input-dir> <output-file> <exclusion-file> <macro-file> <macro-name>
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"poscli/internal/config"
	"poscli/internal/infrastructure"
	"poscli/internal/pipeline"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional)")
	skipMacro := flag.Bool("skip-macro", false, "skip the macro stage (diagnostic runs without the spreadsheet application)")
	keepOpen := flag.Bool("keep-open", true, "leave the finished workbook open for review")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 5 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())

	req := pipeline.Request{
		InputDir:      flag.Arg(0),
		OutputFile:    flag.Arg(1),
		ExclusionFile: flag.Arg(2),
		MacroFile:     flag.Arg(3),
		MacroName:     flag.Arg(4),
		SkipMacro:     *skipMacro,
		KeepOpen:      *keepOpen,
	}

	logger.InfoContext(ctx, "Starting position sheet batch",
		slog.String("input_dir", req.InputDir),
		slog.String("output_file", req.OutputFile),
		slog.String("macro", req.MacroName),
		slog.Bool("skip_macro", req.SkipMacro))

	outPath, err := pipeline.New(cfg, logger).Run(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "Batch failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Batch complete", slog.String("output", outPath))
	fmt.Printf("Price sheet saved to %s\n", outPath)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: possheet [flags] <input-dir> <output-file> <exclusion-file> <macro-file> <macro-name>

Arguments:
  input-dir       folder containing the brokerage export files (.xlsx/.xls/.csv)
  output-file     path for the combined workbook; a timestamp is inserted before the extension
  exclusion-file  workbook passed to the macro as its only argument
  macro-file      macro-bearing workbook
  macro-name      macro routine to invoke inside macro-file

Flags:
`)
	flag.PrintDefaults()
}
