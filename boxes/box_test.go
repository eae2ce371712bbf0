package boxes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBoxIntersection verifies intersection area calculations.
//
// @example
// go test -v -run TestBoxIntersection
func TestBoxIntersection(t *testing.T) {
	tests := []struct {
		name         string
		box1         Box
		box2         Box
		expectedArea float32
	}{
		{
			name:         "50% overlap",
			box1:         Box{X1: 0, Y1: 0, X2: 100, Y2: 100},
			box2:         Box{X1: 50, Y1: 50, X2: 150, Y2: 150},
			expectedArea: 2500, // 50x50 overlap
		},
		{
			name:         "complete overlap",
			box1:         Box{X1: 0, Y1: 0, X2: 100, Y2: 100},
			box2:         Box{X1: 25, Y1: 25, X2: 75, Y2: 75},
			expectedArea: 2500, // 50x50 inner box
		},
		{
			name:         "no overlap",
			box1:         Box{X1: 0, Y1: 0, X2: 50, Y2: 50},
			box2:         Box{X1: 100, Y1: 100, X2: 150, Y2: 150},
			expectedArea: 0,
		},
		{
			name:         "edge touching",
			box1:         Box{X1: 0, Y1: 0, X2: 50, Y2: 50},
			box2:         Box{X1: 50, Y1: 0, X2: 100, Y2: 50},
			expectedArea: 0, // Touching edges don't count as intersection
		},
		{
			name:         "fractional coordinates",
			box1:         Box{X1: 0, Y1: 0, X2: 1.5, Y2: 1},
			box2:         Box{X1: 0.5, Y1: 0, X2: 2, Y2: 1},
			expectedArea: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.box1.Intersection(tt.box2)
			assert.Equal(t, tt.expectedArea, result,
				"Intersection area should be calculated correctly")

			// Verify commutativity
			reverseResult := tt.box2.Intersection(tt.box1)
			assert.Equal(t, result, reverseResult,
				"Intersection should be commutative")
		})
	}
}

// TestBoxUnion verifies union area calculations.
func TestBoxUnion(t *testing.T) {
	tests := []struct {
		name         string
		box1         Box
		box2         Box
		expectedArea float32
	}{
		{
			name:         "partial overlap",
			box1:         Box{X1: 0, Y1: 0, X2: 100, Y2: 100},
			box2:         Box{X1: 50, Y1: 50, X2: 150, Y2: 150},
			expectedArea: 17500, // 10000 + 10000 - 2500
		},
		{
			name:         "no overlap",
			box1:         Box{X1: 0, Y1: 0, X2: 50, Y2: 50},
			box2:         Box{X1: 100, Y1: 100, X2: 150, Y2: 150},
			expectedArea: 5000, // 2500 + 2500
		},
		{
			name:         "complete containment",
			box1:         Box{X1: 0, Y1: 0, X2: 100, Y2: 100},
			box2:         Box{X1: 25, Y1: 25, X2: 75, Y2: 75},
			expectedArea: 10000, // Larger box area only
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.box1.Union(tt.box2)
			assert.Equal(t, tt.expectedArea, result,
				"Union area should be calculated correctly")

			reverseResult := tt.box2.Union(tt.box1)
			assert.Equal(t, result, reverseResult,
				"Union should be commutative")
		})
	}
}

// TestBoxIoU verifies Intersection over Union calculations, the metric the
// matcher maximizes when pairing detections with ground truth.
func TestBoxIoU(t *testing.T) {
	tests := []struct {
		name        string
		box1        Box
		box2        Box
		expectedIoU float32
		tolerance   float32
	}{
		{
			name:        "identical boxes",
			box1:        Box{X1: 0, Y1: 0, X2: 100, Y2: 100},
			box2:        Box{X1: 0, Y1: 0, X2: 100, Y2: 100},
			expectedIoU: 1.0,
			tolerance:   0.001,
		},
		{
			name:        "50% overlap",
			box1:        Box{X1: 0, Y1: 0, X2: 100, Y2: 100},
			box2:        Box{X1: 50, Y1: 50, X2: 150, Y2: 150},
			expectedIoU: 0.1428, // 2500/17500
			tolerance:   0.001,
		},
		{
			name:        "no overlap",
			box1:        Box{X1: 0, Y1: 0, X2: 50, Y2: 50},
			box2:        Box{X1: 100, Y1: 100, X2: 150, Y2: 150},
			expectedIoU: 0.0,
			tolerance:   0.001,
		},
		{
			name:        "small box inside large box",
			box1:        Box{X1: 0, Y1: 0, X2: 100, Y2: 100},
			box2:        Box{X1: 40, Y1: 40, X2: 60, Y2: 60},
			expectedIoU: 0.04, // 400/10000
			tolerance:   0.001,
		},
		{
			name:        "negative coordinates",
			box1:        Box{X1: -10, Y1: -10, X2: 10, Y2: 10},
			box2:        Box{X1: -10, Y1: -10, X2: 10, Y2: 10},
			expectedIoU: 1.0,
			tolerance:   0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.box1.IoU(tt.box2)
			assert.InDelta(t, tt.expectedIoU, result, float64(tt.tolerance),
				"IoU should be within tolerance")

			reverseResult := tt.box2.IoU(tt.box1)
			assert.InDelta(t, result, reverseResult, 0.0001,
				"IoU should be commutative")
		})
	}
}

// TestIoUMatrix verifies the pairwise IoU matrix fed into the assignment
// solver.
func TestIoUMatrix(t *testing.T) {
	pred := []Box{
		{X1: 0, Y1: 0, X2: 10, Y2: 10},
		{X1: 100, Y1: 100, X2: 110, Y2: 110},
	}
	truth := []Box{
		{X1: 0, Y1: 0, X2: 10, Y2: 10},
		{X1: 5, Y1: 0, X2: 15, Y2: 10},
		{X1: 200, Y1: 200, X2: 210, Y2: 210},
	}

	m := IoUMatrix(pred, truth)
	require.NotNil(t, m, "Matrix should exist for non-empty inputs")

	rows, cols := m.Dims()
	assert.Equal(t, 2, rows, "One row per predicted box")
	assert.Equal(t, 3, cols, "One column per ground-truth box")

	assert.InDelta(t, 1.0, m.At(0, 0), 0.0001, "Identical boxes have IoU 1")
	assert.InDelta(t, 50.0/150.0, m.At(0, 1), 0.0001, "Half-shifted box IoU")
	assert.Equal(t, 0.0, m.At(0, 2), "Disjoint boxes have IoU 0")
	assert.Equal(t, 0.0, m.At(1, 0), "Disjoint boxes have IoU 0")
}

// TestIoUMatrixEmpty verifies that empty box sets yield no matrix.
func TestIoUMatrixEmpty(t *testing.T) {
	some := []Box{{X1: 0, Y1: 0, X2: 1, Y2: 1}}

	assert.Nil(t, IoUMatrix(nil, some), "No predictions means no matrix")
	assert.Nil(t, IoUMatrix(some, nil), "No ground truth means no matrix")
	assert.Nil(t, IoUMatrix(nil, nil), "Empty both ways means no matrix")
}

// TestBoxArea covers the area helper used by union and IoU.
func TestBoxArea(t *testing.T) {
	assert.Equal(t, float32(100), Box{X1: 0, Y1: 0, X2: 10, Y2: 10}.Area())
	assert.Equal(t, float32(12.5), Box{X1: 0, Y1: 0, X2: 5, Y2: 2.5}.Area())
}

// BenchmarkBoxIoU benchmarks IoU calculation performance.
//
// @example
// go test -bench=BenchmarkBoxIoU -benchmem
func BenchmarkBoxIoU(b *testing.B) {
	box1 := Box{X1: 10, Y1: 20, X2: 100, Y2: 200}
	box2 := Box{X1: 50, Y1: 60, X2: 150, Y2: 250}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = box1.IoU(box2)
	}
}
