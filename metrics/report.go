// Package metrics - Precision, recall and F1 reporting over match results.
package metrics

import (
	"github.com/nvr-ai/go-eval/match"
)

// ClassScore captures detection quality for a single class.
type ClassScore struct {
	Class          int     `json:"class"`
	Name           string  `json:"name,omitempty"`
	TruePositives  int     `json:"true_positives"`
	FalsePositives int     `json:"false_positives"`
	FalseNegatives int     `json:"false_negatives"`
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
}

// Report captures per-class scores plus a micro-averaged total.
type Report struct {
	Classes []ClassScore `json:"classes"`
	// Micro pools the raw counts of every class before computing
	// precision and recall.
	Micro ClassScore `json:"micro"`
}

// Summarize derives precision, recall and F1 per class from match counts.
//
// Arguments:
// - result: The accumulated match counts.
// - names: Optional human-readable class names, parallel to the class
// indices. May be nil or shorter than the class count.
//
// Returns:
// - A report with one entry per class and a micro-averaged summary.
func Summarize(result match.Result, names []string) Report {
	report := Report{
		Classes: make([]ClassScore, len(result.TruePositives)),
	}

	var totalTP, totalFP, totalFN int
	for c := range result.TruePositives {
		score := ClassScore{
			Class:          c,
			TruePositives:  result.TruePositives[c],
			FalsePositives: result.FalsePositives[c],
			FalseNegatives: result.FalseNegatives[c],
		}
		if c < len(names) {
			score.Name = names[c]
		}
		score.Precision, score.Recall, score.F1 = prf(
			score.TruePositives, score.FalsePositives, score.FalseNegatives)
		report.Classes[c] = score

		totalTP += score.TruePositives
		totalFP += score.FalsePositives
		totalFN += score.FalseNegatives
	}

	report.Micro = ClassScore{
		Class:          -1,
		Name:           "micro",
		TruePositives:  totalTP,
		FalsePositives: totalFP,
		FalseNegatives: totalFN,
	}
	report.Micro.Precision, report.Micro.Recall, report.Micro.F1 = prf(totalTP, totalFP, totalFN)

	return report
}

// prf computes precision, recall and F1 with zero-division guards: a class
// with no predictions has precision 0, a class with no ground truth has
// recall 0.
func prf(tp, fp, fn int) (precision, recall, f1 float64) {
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, f1
}
