package matcher

import (
	"log/slog"
	"math"

	"github.com/singofwalls/checkbook-updater/internal/adapters/bank"
	"github.com/singofwalls/checkbook-updater/internal/domain/ledger"
)

// unscored masks matrix cells that were never computed or whose sheet row is
// already claimed; it can never be selected as a minimum under any threshold.
const unscored = math.MaxFloat64

// Pair links a sheet row index with a bank transaction index. Indices refer
// to the slices passed to Assign; Ledger doubles as the row's persisted
// identity offset.
type Pair struct {
	Ledger  int
	Bank    int
	Score   float64
	Factors Factors
}

// Result partitions the bank transactions after assignment.
type Result struct {
	// Exact holds pass-1 pairs: the sheet row already reflects the bank.
	Exact []Pair
	// Updates holds confirmed pass-2 pairs: matched, but the sheet row's
	// fields should be rewritten from the bank transaction.
	Updates []Pair
	// Unmatched holds indices of bank transactions that claimed no row;
	// they are genuinely new and must be appended.
	Unmatched []int
}

// Confirmer decides ambiguous near matches. Implementations block until an
// operator answers; only an explicit affirmative accepts the pair.
type Confirmer interface {
	Confirm(entry ledger.Entry, tx bank.Transaction, pair Pair) (bool, error)
}

// Engine assigns bank transactions to sheet rows one-to-one.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

// NewEngine creates an engine with the given config.
func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger}
}

// Assign runs both matching passes. Callers sort txs by date beforehand;
// entries must stay in persisted order since their positions are row
// identities. Once a sheet row is claimed no later transaction can claim it,
// and a claimed transaction never reappears as unmatched.
func (e *Engine) Assign(entries []ledger.Entry, txs []bank.Transaction, accounts []string, confirm Confirmer) (*Result, error) {
	res := &Result{}

	scores := make([][]float64, len(txs))
	factors := make([][]Factors, len(txs))
	claimedLedger := make([]bool, len(entries))
	claimedBank := make([]bool, len(txs))

	// Pass 1: exact matches. Score each transaction against every row,
	// short-circuiting the instant an unclaimed row scores zero: zero is
	// the unique minimum, so the first one found is as good as any.
	for bi, tx := range txs {
		row := make([]float64, len(entries))
		frow := make([]Factors, len(entries))
		for li := range row {
			row[li] = unscored
		}

		exact := -1
		for li, entry := range entries {
			f, err := e.cfg.Factors(entry, tx, accounts)
			if err != nil {
				return nil, err
			}
			row[li] = e.cfg.Score(f)
			frow[li] = f
			if row[li] == 0 && !claimedLedger[li] {
				exact = li
				break
			}
		}
		scores[bi] = row
		factors[bi] = frow

		if exact >= 0 {
			claimedLedger[exact] = true
			claimedBank[bi] = true
			res.Exact = append(res.Exact, Pair{Ledger: exact, Bank: bi, Factors: frow[exact]})
			e.logger.Debug("exact match",
				"sheet_row", entries[exact].Row,
				"description", tx.Description,
				"amount", tx.Amount,
			)
		}
	}

	// Pass 2: near matches. For each unresolved transaction take the
	// minimum score over unclaimed rows; strict < keeps the lowest sheet
	// index on ties, which makes tie-breaking deterministic.
	for bi, tx := range txs {
		if claimedBank[bi] {
			continue
		}

		bestLi := -1
		bestScore := unscored
		for li := range entries {
			if claimedLedger[li] {
				continue
			}
			if scores[bi][li] < bestScore {
				bestLi = li
				bestScore = scores[bi][li]
			}
		}

		// Strict comparison: a score exactly at the threshold is not a
		// near match.
		if bestLi < 0 || bestScore >= e.cfg.Threshold {
			continue
		}

		pair := Pair{Ledger: bestLi, Bank: bi, Score: bestScore, Factors: factors[bi][bestLi]}

		accepted := false
		switch {
		case e.cfg.Interactive && confirm != nil:
			ok, err := confirm.Confirm(entries[bestLi], tx, pair)
			if err != nil {
				return nil, err
			}
			accepted = ok
		case e.cfg.AutoPosted && pair.Factors.PendingPosted:
			accepted = true
			e.logger.Info("pending transaction posted",
				"sheet_row", entries[bestLi].Row,
				"description", tx.Description,
				"score", bestScore,
			)
		}

		if !accepted {
			e.logger.Debug("near match not confirmed",
				"sheet_row", entries[bestLi].Row,
				"description", tx.Description,
				"score", bestScore,
			)
			continue
		}

		claimedLedger[bestLi] = true
		claimedBank[bi] = true
		res.Updates = append(res.Updates, pair)
	}

	for bi := range txs {
		if !claimedBank[bi] {
			res.Unmatched = append(res.Unmatched, bi)
		}
	}
	return res, nil
}
