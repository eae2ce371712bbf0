// Package boxes - Axis-aligned bounding box geometry for detection scoring.
package boxes

import (
	"fmt"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/mat"
)

// Box is an axis-aligned bounding box in absolute coordinates.
//
// The convention follows detection model outputs: (X1, Y1) is the top-left
// corner and (X2, Y2) the bottom-right corner, with X1 < X2 and Y1 < Y2.
type Box struct {
	X1, Y1, X2, Y2 float32
}

func (b Box) String() string {
	return fmt.Sprintf("(%f, %f), (%f, %f)", b.X1, b.Y1, b.X2, b.Y2)
}

// Area returns the area of the box.
func (b Box) Area() float32 {
	return (b.X2 - b.X1) * (b.Y2 - b.Y1)
}

// Intersection calculates the intersection area between two bounding boxes.
//
// Arguments:
// - other: The other bounding box to calculate intersection with.
//
// Returns:
// - The area of overlap as float32, 0 when the boxes are disjoint or only
// touch on an edge.
func (b Box) Intersection(other Box) float32 {
	ix1 := math32.Max(b.X1, other.X1)
	iy1 := math32.Max(b.Y1, other.Y1)
	ix2 := math32.Min(b.X2, other.X2)
	iy2 := math32.Min(b.Y2, other.Y2)

	interW := ix2 - ix1
	interH := iy2 - iy1
	if interW <= 0 || interH <= 0 {
		return 0
	}
	return interW * interH
}

// Union calculates the union area between two bounding boxes.
//
// Uses the inclusion-exclusion principle so the overlapping region is not
// counted twice:
//
//	Union(A, B) = Area(A) + Area(B) - Intersection(A, B)
//
// Arguments:
// - other: The other bounding box to calculate union with.
//
// Returns:
// - The combined area as float32.
func (b Box) Union(other Box) float32 {
	return b.Area() + other.Area() - b.Intersection(other)
}

// IoU calculates the Intersection over Union between two bounding boxes.
//
// IoU is the standard overlap metric for pairing detections with ground
// truth: 0 for disjoint boxes, 1 for identical boxes.
//
// Arguments:
// - other: The other bounding box to calculate IoU with.
//
// Returns:
// - The IoU value between 0 and 1.
func (b Box) IoU(other Box) float32 {
	inter := b.Intersection(other)
	if inter <= 0 {
		return 0
	}
	return inter / (b.Area() + other.Area() - inter)
}

// IoUMatrix computes the pairwise IoU gain matrix between two box sets.
//
// Arguments:
// - pred: Predicted boxes, one row per box.
// - truth: Ground-truth boxes, one column per box.
//
// Returns:
// - A len(pred) x len(truth) dense matrix where entry (i, j) is the IoU of
// pred[i] and truth[j]. Nil when either set is empty, since gonum does not
// permit zero-sized matrices.
func IoUMatrix(pred, truth []Box) *mat.Dense {
	if len(pred) == 0 || len(truth) == 0 {
		return nil
	}

	m := mat.NewDense(len(pred), len(truth), nil)
	for i, p := range pred {
		for j, t := range truth {
			m.Set(i, j, float64(p.IoU(t)))
		}
	}
	return m
}
