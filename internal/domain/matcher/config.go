// Package matcher scores bank transactions against checkbook sheet rows and
// assigns a one-to-one correspondence between them.
//
// Matching runs in two passes. Pass 1 claims every pair whose weighted score
// is exactly zero (a perfect match). Pass 2 resolves each remaining bank
// transaction against its closest unclaimed sheet row, accepting it only
// below the configured threshold and only with confirmation: interactively,
// or automatically when a pending sheet row has posted at the bank.
package matcher

// Weights are the per-factor weight shares of the match score. A factor at
// full distance contributes weight/total to the score; a zero-distance
// factor contributes nothing.
type Weights struct {
	Date        float64 `yaml:"date"`
	Amount      float64 `yaml:"amount"`
	Balance     float64 `yaml:"balance"`
	Description float64 `yaml:"description"`
	Pending     float64 `yaml:"pending"`
}

// Ranges normalize raw factor differences: a difference at or beyond the
// range counts as full distance for its factor.
type Ranges struct {
	DateDays float64 `yaml:"date_days"`
	Amount   float64 `yaml:"amount"`
	Balance  float64 `yaml:"balance"`
}

// Config holds matcher configuration.
type Config struct {
	Weights Weights `yaml:"weights"`
	Ranges  Ranges  `yaml:"ranges"`

	// Threshold is the strict upper bound for accepting a near match. A
	// score exactly at the threshold is rejected.
	Threshold float64 `yaml:"threshold"`

	// BalanceEpsilon snaps tiny balance differences to zero. Running
	// balances are formula-derived and accumulate float rounding.
	BalanceEpsilon float64 `yaml:"balance_epsilon"`

	// NormalizeDescriptions compares descriptions case-insensitively with
	// the pending tag stripped; raw comparison otherwise.
	NormalizeDescriptions bool `yaml:"normalize_descriptions"`

	// Interactive presents near matches for manual confirmation.
	Interactive bool `yaml:"interactive"`

	// AutoPosted auto-confirms a near match when the sheet row is marked
	// pending and the bank reports the transaction posted. This is the only
	// non-interactive auto-update rule.
	AutoPosted bool `yaml:"auto_posted"`
}

// DefaultConfig returns the weights and ranges the checkbook sheet was tuned
// with. Description similarity dominates; the balance factor is a weak
// signal since pending transactions often report none.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Date:        5,
			Amount:      10,
			Balance:     1,
			Description: 50,
			Pending:     2,
		},
		Ranges: Ranges{
			DateDays: 5,
			Amount:   100,
			Balance:  100,
		},
		Threshold:             0.10,
		BalanceEpsilon:        0.01,
		NormalizeDescriptions: true,
		AutoPosted:            true,
	}
}

func (w Weights) total() float64 {
	return w.Date + w.Amount + w.Balance + w.Description + w.Pending
}
