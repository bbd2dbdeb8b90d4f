// Command engine runs a single batch analysis pass: it reads a JSON array
// of transactions from a file (or stdin) and writes the resulting report
// to stdout. It shares the detection engine with cmd/server but has no
// HTTP surface and no event bus.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/moneymule/graph-engine/internal/config"
	"github.com/moneymule/graph-engine/internal/model"
	"github.com/moneymule/graph-engine/internal/pipeline"
)

func main() {
	inputPath := flag.String("input", "", "path to a JSON file of transactions (default: stdin)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	transactions, err := readTransactions(*inputPath)
	if err != nil {
		logger.Error("failed to read transactions", "error", err)
		os.Exit(1)
	}

	engine := pipeline.New(cfg.Detection, logger)
	result, _ := engine.Analyze(transactions)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}
}

func readTransactions(path string) ([]model.Transaction, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var transactions []model.Transaction
	if err := json.NewDecoder(r).Decode(&transactions); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return transactions, nil
}
