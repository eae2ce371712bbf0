package metrics

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-eval/match"
)

// Accumulator sums match results across images so a whole dataset can be
// scored with one report. The zero value is unusable; use NewAccumulator.
type Accumulator struct {
	numClasses int
	total      match.Result
}

// NewAccumulator returns an empty accumulator for the given class count.
func NewAccumulator(numClasses int) *Accumulator {
	return &Accumulator{
		numClasses: numClasses,
		total:      match.NewResult(numClasses),
	}
}

// Add folds one per-image result into the running totals.
//
// Arguments:
// - result: A result produced with the same number of classes.
//
// Returns:
// - match.ErrShapeMismatch if the class counts differ.
func (a *Accumulator) Add(result match.Result) error {
	if len(result.TruePositives) != a.numClasses {
		return errors.Wrapf(match.ErrShapeMismatch,
			"accumulating %d classes into %d", len(result.TruePositives), a.numClasses)
	}

	for c := 0; c < a.numClasses; c++ {
		a.total.TruePositives[c] += result.TruePositives[c]
		a.total.FalsePositives[c] += result.FalsePositives[c]
		a.total.FalseNegatives[c] += result.FalseNegatives[c]
	}
	for i := range result.ConfusionMatrix {
		for j := range result.ConfusionMatrix[i] {
			a.total.ConfusionMatrix[i][j] += result.ConfusionMatrix[i][j]
		}
	}
	return nil
}

// Result returns a copy of the accumulated totals.
func (a *Accumulator) Result() match.Result {
	out := match.NewResult(a.numClasses)
	copy(out.TruePositives, a.total.TruePositives)
	copy(out.FalsePositives, a.total.FalsePositives)
	copy(out.FalseNegatives, a.total.FalseNegatives)
	for i := range a.total.ConfusionMatrix {
		copy(out.ConfusionMatrix[i], a.total.ConfusionMatrix[i])
	}
	return out
}

// Summarize reports on the accumulated totals.
func (a *Accumulator) Summarize(names []string) Report {
	return Summarize(a.total, names)
}
