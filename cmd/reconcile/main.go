package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/singofwalls/checkbook-updater/internal/adapters/bank"
	"github.com/singofwalls/checkbook-updater/internal/adapters/sheets"
	"github.com/singofwalls/checkbook-updater/internal/application/reconcile"
	"github.com/singofwalls/checkbook-updater/internal/domain/ledger"
	"github.com/singofwalls/checkbook-updater/internal/domain/matcher"
	"github.com/singofwalls/checkbook-updater/internal/domain/normalize"
	"github.com/singofwalls/checkbook-updater/internal/infrastructure/config"
	"github.com/singofwalls/checkbook-updater/internal/infrastructure/logging"
	"github.com/singofwalls/checkbook-updater/internal/infrastructure/storage"
)

func main() {
	// Parse flags
	var (
		configFile  = flag.String("config", "config.yaml", "Configuration file path")
		dryRun      = flag.Bool("dry-run", false, "Preview changes without writing to the sheet")
		interactive = flag.Bool("interactive", false, "Confirm near matches on the terminal")
		bankDir     = flag.String("bank-dir", "", "Bank export directory (overrides config)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if *bankDir != "" {
		cfg.Bank.ExportDir = *bankDir
	}
	if *interactive {
		cfg.Match.Interactive = true
	}

	logger := logging.NewLogger(cfg.Logging)

	// Initialize run history storage
	store, err := storage.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	// Initialize the sheet
	client, err := sheets.NewClient(ctx, cfg.Sheet.CredentialsPath, cfg.Sheet.TokenPath, cfg.Sheet.SpreadsheetID)
	if err != nil {
		logger.Error("Failed to create sheets client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sheet := sheets.NewLedger(client, cfg.Sheet.Name, cfg.Sheet.FieldRow,
		normalize.Parser{DateFormat: cfg.Sheet.DateFormat})
	if err := sheet.Load(ctx); err != nil {
		logger.Error("Failed to load sheet", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load bank exports
	source := bank.NewSource(cfg.Bank.ExportDir, cfg.Bank.Strict)
	txs, err := source.Load()
	if err != nil {
		logger.Error("Failed to load bank exports", slog.String("error", err.Error()))
		os.Exit(1)
	}

	adapter := ledger.NewAdapter(cfg.Sheet.DateFormat, sheets.RunningFormula(sheet.FirstDataRow()))
	if len(cfg.Sheet.Methods) > 0 {
		adapter.Methods = cfg.Sheet.Methods
	}
	if cfg.Sheet.MethodDefault != "" {
		adapter.MethodDefault = cfg.Sheet.MethodDefault
	}

	engine := matcher.NewEngine(cfg.Match, logger)

	var confirm matcher.Confirmer
	if cfg.Match.Interactive {
		confirm = &terminalConfirmer{in: bufio.NewReader(os.Stdin), dateFormat: cfg.Sheet.DateFormat}
	}

	driver := reconcile.NewDriver(sheet, adapter, engine, confirm, store, logger)

	logger.Info("Starting reconciliation",
		slog.Bool("dry_run", *dryRun),
		slog.Int("sheet_rows", len(sheet.Entries())),
		slog.Int("bank_transactions", len(txs)),
		slog.Int("accounts", len(sheet.Accounts())),
	)

	opts := reconcile.Options{DryRun: *dryRun}
	result, err := driver.Run(ctx, sheet.Entries(), txs, sheet.Fields(), sheet.Accounts(), opts)
	if err != nil {
		logger.Error("Reconciliation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := driver.AppendNew(ctx, result.New, sheet.Fields(), sheet.Accounts(), opts); err != nil {
		logger.Error("Failed to append new transactions", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Reconciliation completed successfully",
		slog.String("run_id", result.RunID),
		slog.Int("exact", result.Exact),
		slog.Int("updated", result.Updated),
		slog.Int("new", len(result.New)),
	)
}

// terminalConfirmer asks the user to approve each near match. Only an
// explicit "y" or "yes" accepts.
type terminalConfirmer struct {
	in         *bufio.Reader
	dateFormat string
}

func (c *terminalConfirmer) Confirm(entry ledger.Entry, tx bank.Transaction, pair matcher.Pair) (bool, error) {
	entryDate := "?"
	if d, ok := entry.Date(); ok {
		entryDate = d.Format(c.dateFormat)
	}

	fmt.Printf("\nPossible match (score %.4f):\n", pair.Score)
	fmt.Printf("  sheet row %d: %s %q\n", entry.Row, entryDate, entry.Description())
	fmt.Printf("  bank:        %s %q %.2f [%s]\n",
		tx.Date.Format(c.dateFormat), tx.Description, tx.Amount, tx.Account)
	fmt.Print("Update this row? [y/N] ")

	line, err := c.in.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
