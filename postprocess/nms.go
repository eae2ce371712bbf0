// Package postprocess - Non-Maximum Suppression for deduplicating
// detections before scoring.
package postprocess

import (
	"sort"

	"github.com/nvr-ai/go-eval/boxes"
)

// Detection is a single prediction: a box, its confidence and its class.
type Detection struct {
	// The bounding box of the detection.
	Box boxes.Box
	// The confidence score of the detection.
	Score float32
	// The predicted class index of the detection.
	Class int
}

// NMSConfig defines parameters for Non-Maximum Suppression.
type NMSConfig struct {
	IoUThreshold float32 // Overlap threshold for suppression.
	ClassAware   bool    // If true, suppress only within the same class.
}

// ApplyGreedyNMS performs standard greedy Non-Maximum Suppression.
//
// Detections are visited in descending confidence order (the input slice
// is not modified); each kept detection suppresses every later one whose
// IoU with it exceeds the threshold.
//
// Arguments:
// - detections: Slice of detections in any order.
// - config: Suppression parameters.
//
// Returns:
// - Surviving detections sorted by descending confidence, or nil when the
// input is empty.
func ApplyGreedyNMS(detections []Detection, config *NMSConfig) []Detection {
	n := len(detections)
	if n == 0 {
		return nil
	}

	ordered := make([]Detection, n)
	copy(ordered, detections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	filtered := make([]Detection, 0, n)
	used := make([]bool, n)

	for i := 0; i < n; i++ {
		if used[i] {
			continue
		}

		anchor := ordered[i]
		filtered = append(filtered, anchor)
		used[i] = true

		for j := i + 1; j < n; j++ {
			if used[j] {
				continue
			}
			if config.ClassAware && anchor.Class != ordered[j].Class {
				continue
			}
			// Suppress if IoU exceeds threshold
			if anchor.Box.IoU(ordered[j].Box) > config.IoUThreshold {
				used[j] = true
			}
		}
	}

	return filtered
}
