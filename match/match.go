// Package match - Optimal bipartite matching of detections against ground
// truth with per-class scoring.
package match

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-eval/assignment"
	"github.com/nvr-ai/go-eval/boxes"
)

// DefaultIoUThreshold is the overlap required before an assigned pair
// counts as a detection.
const DefaultIoUThreshold float32 = 0.5

// Detections holds predicted boxes with their parallel labels and
// confidence scores.
type Detections struct {
	// The predicted bounding boxes.
	Boxes []boxes.Box
	// The predicted class index of each box, in [0, numClasses).
	Labels []int
	// The confidence score of each box.
	Scores []float32
}

// GroundTruth holds annotated boxes with their parallel labels.
type GroundTruth struct {
	// The annotated bounding boxes.
	Boxes []boxes.Box
	// The class index of each box, in [0, numClasses).
	Labels []int
}

// Config defines parameters for matching.
type Config struct {
	// IoUThreshold is the overlap a pair must strictly exceed to count as
	// a match.
	IoUThreshold float32
	// MinSize would exclude boxes with area smaller than this value from
	// evaluation. Setting it fails with ErrMinSizeUnsupported.
	MinSize float32
}

// DefaultConfig returns the matching configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{IoUThreshold: DefaultIoUThreshold}
}

// Result holds per-class detection counts and the class confusion matrix
// for one matching pass.
type Result struct {
	// TruePositives has one count per class.
	TruePositives []int
	// FalsePositives has one count per class.
	FalsePositives []int
	// FalseNegatives has one count per class.
	FalseNegatives []int
	// ConfusionMatrix is indexed [trueClass][predClass] and has
	// numClasses+1 rows and columns. The extra index is the "none" class:
	// row none counts unmatched predictions, column none counts unmatched
	// ground truth.
	ConfusionMatrix [][]int
}

// NoneClass returns the confusion-matrix index representing "no detection"
// or "no ground truth".
func (r Result) NoneClass() int {
	return len(r.TruePositives)
}

// NewResult returns an all-zero result for the given number of classes.
func NewResult(numClasses int) Result {
	cm := make([][]int, numClasses+1)
	for i := range cm {
		cm[i] = make([]int, numClasses+1)
	}
	return Result{
		TruePositives:   make([]int, numClasses),
		FalsePositives:  make([]int, numClasses),
		FalseNegatives:  make([]int, numClasses),
		ConfusionMatrix: cm,
	}
}

// Match pairs predicted and ground-truth bounding boxes and scores the
// pairing per class.
//
// Matching rules:
//   - Pairs are assigned by solving the optimal bipartite assignment that
//     maximizes total IoU between predicted and ground-truth boxes.
//   - A predicted box and a ground-truth box each take part in at most one
//     match.
//   - An assigned pair counts only when its IoU strictly exceeds the
//     configured threshold; a matched pair with differing classes counts as
//     one false negative for the ground-truth class and one false positive
//     for the predicted class.
//   - Unmatched predictions are false positives, unmatched ground truth are
//     false negatives; both are routed through the "none" row/column of the
//     confusion matrix.
//
// Predictions are processed in ascending confidence order; equal scores
// keep their input order (stable sort).
//
// Arguments:
// - pred: Predicted boxes with parallel labels and scores.
// - truth: Ground-truth boxes with parallel labels.
// - numClasses: Total number of classes.
// - config: Matching parameters. Nil selects DefaultConfig.
//
// Returns:
// - The per-class counts and confusion matrix.
// - ErrShapeMismatch, ErrLabelOutOfRange or ErrMinSizeUnsupported on
// invalid input; no partial results are produced.
func Match(pred Detections, truth GroundTruth, numClasses int, config *Config) (Result, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if len(pred.Labels) != len(pred.Boxes) || len(pred.Labels) != len(pred.Scores) {
		return Result{}, errors.Wrapf(ErrShapeMismatch,
			"predicted boxes:%d labels:%d scores:%d",
			len(pred.Boxes), len(pred.Labels), len(pred.Scores))
	}
	if len(truth.Boxes) != len(truth.Labels) {
		return Result{}, errors.Wrapf(ErrShapeMismatch,
			"ground-truth boxes:%d labels:%d",
			len(truth.Boxes), len(truth.Labels))
	}
	if config.MinSize != 0 {
		return Result{}, ErrMinSizeUnsupported
	}
	if err := validateLabels(pred.Labels, numClasses); err != nil {
		return Result{}, errors.Wrap(err, "predicted labels")
	}
	if err := validateLabels(truth.Labels, numClasses); err != nil {
		return Result{}, errors.Wrap(err, "ground-truth labels")
	}

	result := NewResult(numClasses)
	noneClass := numClasses
	numPred := len(pred.Boxes)
	numTrue := len(truth.Boxes)

	switch {
	case numPred == 0 && numTrue == 0:
		return result, nil
	case numPred == 0:
		for _, trueClass := range truth.Labels {
			result.FalseNegatives[trueClass]++
			result.ConfusionMatrix[trueClass][noneClass]++
		}
		return result, nil
	case numTrue == 0:
		for _, predClass := range pred.Labels {
			result.FalsePositives[predClass]++
			result.ConfusionMatrix[noneClass][predClass]++
		}
		return result, nil
	}

	// Reorder predictions by ascending confidence before resolving the
	// assignment.
	order := make([]int, numPred)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pred.Scores[order[a]] < pred.Scores[order[b]]
	})

	predBoxes := make([]boxes.Box, numPred)
	predLabels := make([]int, numPred)
	for i, idx := range order {
		predBoxes[i] = pred.Boxes[idx]
		predLabels[i] = pred.Labels[idx]
	}

	ious := boxes.IoUMatrix(predBoxes, truth.Boxes)
	rows, cols, err := assignment.Solve(ious, true)
	if err != nil {
		return Result{}, errors.Wrap(err, "solving box assignment")
	}

	consumedPred := make([]bool, numPred)
	consumedTrue := make([]bool, numTrue)

	for k := range rows {
		ri, ci := rows[k], cols[k]
		predClass := predLabels[ri]
		trueClass := truth.Labels[ci]
		if float32(ious.At(ri, ci)) > config.IoUThreshold {
			consumedPred[ri] = true
			consumedTrue[ci] = true
			if predClass == trueClass {
				result.TruePositives[trueClass]++
			} else {
				result.FalsePositives[predClass]++
				result.FalseNegatives[trueClass]++
			}
			result.ConfusionMatrix[trueClass][predClass]++
		}
	}

	for i, predClass := range predLabels {
		if !consumedPred[i] {
			result.FalsePositives[predClass]++
			result.ConfusionMatrix[noneClass][predClass]++
		}
	}
	for j, trueClass := range truth.Labels {
		if !consumedTrue[j] {
			result.FalseNegatives[trueClass]++
			result.ConfusionMatrix[trueClass][noneClass]++
		}
	}

	return result, nil
}

func validateLabels(labels []int, numClasses int) error {
	for i, label := range labels {
		if label < 0 || label >= numClasses {
			return errors.Wrapf(ErrLabelOutOfRange,
				"label %d at index %d with %d classes", label, i, numClasses)
		}
	}
	return nil
}
