package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/idocr/idocr/constants"
	"github.com/idocr/idocr/internal/common"
	"github.com/idocr/idocr/internal/decode"
	"github.com/idocr/idocr/internal/export"
	"github.com/idocr/idocr/internal/llm"
	"github.com/idocr/idocr/internal/ocr"
	"github.com/idocr/idocr/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir = flag.String("dir", "", "directory of documents to process (required)")
		out = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "documents.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	decoder := decode.NewDecoder(decode.Config{
		Pdftoppm: cfg.PDF.Pdftoppm,
		DPI:      cfg.PDF.DPI,
	}, logger)
	engine := ocr.NewTesseractEngine(ocr.Config{
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	client := llm.NewClient(llm.ClientConfig{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	pl := pipeline.New(logger, decoder, engine, client, llm.NewParser(logger))

	paths, err := collectDocuments(*dir)
	if err != nil {
		printError("Error: scan directory: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		printError("Error: no supported documents found in %s\n", *dir)
		os.Exit(1)
	}

	entries := make([]export.Entry, 0, len(paths))
	for _, path := range paths {
		entries = append(entries, processOne(ctx, pl, path))
	}

	book, err := export.NewService(logger).ExportXLSX(entries)
	if err != nil {
		printError("Error: export workbook: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, book, 0o644); err != nil {
		printError("Error: write %s: %v\n", *out, err)
		os.Exit(1)
	}

	logger.Info("batch.done", "documents", len(entries), "out", *out)
}

// collectDocuments lists supported files directly under dir, sorted by name.
func collectDocuments(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, it := range items {
		if it.IsDir() {
			continue
		}
		if constants.MapExtToFormat(filepath.Ext(it.Name())) == "" {
			continue
		}
		paths = append(paths, filepath.Join(dir, it.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func processOne(ctx context.Context, pl *pipeline.Pipeline, path string) export.Entry {
	entry := export.Entry{SourcePath: path}

	data, err := os.ReadFile(path)
	if err != nil {
		entry.Err = err
		return entry
	}

	var res pipeline.Result
	if constants.MapExtToFormat(filepath.Ext(path)) == constants.PDF {
		res, err = pl.ExtractPDF(ctx, data)
	} else {
		res, err = pl.ExtractImage(ctx, data)
	}
	if err != nil {
		entry.Err = err
		return entry
	}

	entry.Fields = res.Fields
	entry.ExecutionTime = res.ExecutionTime
	return entry
}
