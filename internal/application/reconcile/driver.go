// Package reconcile orchestrates one reconciliation run: matching bank
// transactions against the checkbook sheet, rewriting rows for confirmed
// updates, and surfacing the genuinely new transactions for appending.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/singofwalls/checkbook-updater/internal/adapters/bank"
	"github.com/singofwalls/checkbook-updater/internal/domain/ledger"
	"github.com/singofwalls/checkbook-updater/internal/domain/matcher"
	"github.com/singofwalls/checkbook-updater/internal/domain/normalize"
	"github.com/singofwalls/checkbook-updater/internal/infrastructure/storage"
)

// Sink persists sheet writes. Each call is one blocking round trip with no
// internal retry: a failed write aborts the run, since retrying after a
// partial success could duplicate or corrupt a row.
type Sink interface {
	// Update rewrites the row at the given persisted row offset.
	Update(ctx context.Context, row int, values []normalize.Value) error
	// Append adds a new row at the end of the sheet's table.
	Append(ctx context.Context, values []normalize.Value) error
}

// Options holds per-run settings.
type Options struct {
	// DryRun previews the outcome without writing to the sheet or marking
	// the run history as live.
	DryRun bool
}

// Result summarizes one run.
type Result struct {
	RunID   string
	Exact   int
	Updated int
	// New holds the bank transactions that matched no sheet row, in
	// ascending date order, ready to append.
	New []bank.Transaction
}

// Driver runs the reconciliation process.
type Driver struct {
	sink    Sink
	adapter *ledger.Adapter
	engine  *matcher.Engine
	confirm matcher.Confirmer
	store   *storage.Store
	logger  *slog.Logger
}

// NewDriver creates a driver. confirm may be nil when interactive
// confirmation is disabled; store may be nil to skip run history.
func NewDriver(
	sink Sink,
	adapter *ledger.Adapter,
	engine *matcher.Engine,
	confirm matcher.Confirmer,
	store *storage.Store,
	logger *slog.Logger,
) *Driver {
	return &Driver{
		sink:    sink,
		adapter: adapter,
		engine:  engine,
		confirm: confirm,
		store:   store,
		logger:  logger,
	}
}

// Run reconciles the bank transactions against the sheet entries. Entries
// stay in persisted order (their positions are row identities); transactions
// are sorted by date ascending before matching. Confirmed near matches are
// written back to the sheet during the run; the returned Result carries the
// unmatched transactions for the caller to append via AppendNew.
//
// A second run over the same data is safe: already-reconciled rows match
// exactly and produce no writes.
func (d *Driver) Run(
	ctx context.Context,
	entries []ledger.Entry,
	txs []bank.Transaction,
	fields map[string]int,
	accounts []string,
	opts Options,
) (*Result, error) {
	started := time.Now()

	sorted := make([]bank.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	d.logger.Info("starting reconciliation",
		"sheet_rows", len(entries),
		"bank_transactions", len(sorted),
		"dry_run", opts.DryRun,
	)

	assigned, err := d.engine.Assign(entries, sorted, accounts, d.confirm)
	if err != nil {
		return nil, err
	}

	for _, pair := range assigned.Updates {
		tx := sorted[pair.Bank]
		values, err := d.adapter.RowValues(tx, fields, accounts)
		if err != nil {
			return nil, err
		}

		row := entries[pair.Ledger].Row
		d.logger.Info("updating sheet row",
			"sheet_row", row,
			"description", tx.Description,
			"amount", tx.Amount,
			"score", pair.Score,
			"dry_run", opts.DryRun,
		)
		if opts.DryRun {
			continue
		}
		if err := d.sink.Update(ctx, row, values); err != nil {
			return nil, fmt.Errorf("update sheet row %d: %w", row, err)
		}
	}

	result := &Result{
		RunID:   uuid.NewString(),
		Exact:   len(assigned.Exact),
		Updated: len(assigned.Updates),
		New:     make([]bank.Transaction, 0, len(assigned.Unmatched)),
	}
	for _, bi := range assigned.Unmatched {
		result.New = append(result.New, sorted[bi])
	}

	if err := d.recordRun(started, entries, sorted, assigned, result, opts); err != nil {
		return nil, fmt.Errorf("record run history: %w", err)
	}

	d.logger.Info("reconciliation complete",
		"exact", result.Exact,
		"updated", result.Updated,
		"new", len(result.New),
	)
	return result, nil
}

// AppendNew appends the unmatched transactions as new sheet rows, oldest
// first.
func (d *Driver) AppendNew(
	ctx context.Context,
	txs []bank.Transaction,
	fields map[string]int,
	accounts []string,
	opts Options,
) error {
	for _, tx := range txs {
		values, err := d.adapter.RowValues(tx, fields, accounts)
		if err != nil {
			return err
		}

		d.logger.Info("appending new transaction",
			"description", tx.Description,
			"amount", tx.Amount,
			"account", tx.Account,
			"dry_run", opts.DryRun,
		)
		if opts.DryRun {
			continue
		}
		if err := d.sink.Append(ctx, values); err != nil {
			return fmt.Errorf("append transaction %q: %w", tx.Description, err)
		}
	}
	return nil
}

func (d *Driver) recordRun(
	started time.Time,
	entries []ledger.Entry,
	sorted []bank.Transaction,
	assigned *matcher.Result,
	result *Result,
	opts Options,
) error {
	if d.store == nil {
		return nil
	}

	run := &storage.Run{
		ID:           result.RunID,
		StartedAt:    started,
		FinishedAt:   time.Now(),
		DryRun:       opts.DryRun,
		ExactCount:   result.Exact,
		UpdatedCount: result.Updated,
		NewCount:     len(result.New),
	}
	if err := d.store.SaveRun(run); err != nil {
		return err
	}

	save := func(kind storage.MatchKind, sheetRow int, tx bank.Transaction, score float64) error {
		return d.store.SaveMatch(&storage.Match{
			RunID:       run.ID,
			Kind:        kind,
			SheetRow:    sheetRow,
			Account:     tx.Account,
			Date:        tx.Date,
			Amount:      tx.Amount,
			Score:       score,
			Description: tx.Description,
		})
	}

	for _, pair := range assigned.Exact {
		if err := save(storage.MatchExact, entries[pair.Ledger].Row, sorted[pair.Bank], 0); err != nil {
			return err
		}
	}
	for _, pair := range assigned.Updates {
		if err := save(storage.MatchUpdated, entries[pair.Ledger].Row, sorted[pair.Bank], pair.Score); err != nil {
			return err
		}
	}
	for _, tx := range result.New {
		if err := save(storage.MatchNew, -1, tx, 0); err != nil {
			return err
		}
	}
	return nil
}
