package matcher

import "math"

// Score reduces a factor vector to a single weighted score in [0, 1]. Each
// factor contributes min(|difference|/range, 1) of its weight share. Zero
// means every factor is within its zero-cutoff: a perfect match. No factor
// carries a negative weight, so zero is the true global minimum and the
// assignment passes may short-circuit on it.
func (c Config) Score(f Factors) float64 {
	total := c.Weights.total()

	score := distance(f.DateDays, c.Ranges.DateDays) * c.Weights.Date / total
	score += distance(f.Amount, c.Ranges.Amount) * c.Weights.Amount / total
	score += distance(f.Balance, c.Ranges.Balance) * c.Weights.Balance / total
	if f.DescriptionDiffers {
		score += c.Weights.Description / total
	}
	if f.PendingPosted {
		score += c.Weights.Pending / total
	}
	return score
}

func distance(diff, rng float64) float64 {
	if rng <= 0 {
		if diff == 0 {
			return 0
		}
		return 1
	}
	return math.Min(math.Abs(diff)/rng, 1)
}
