// Package assignment - Rectangular linear-sum assignment solving.
package assignment

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrInfeasible is returned when no complete assignment of the smaller
// dimension exists because non-finite costs block every remaining pairing.
var ErrInfeasible = errors.New("assignment: cost matrix is infeasible")

// Solve computes an optimal one-to-one assignment over a rectangular cost
// matrix using shortest augmenting paths with dual potentials.
//
// Every row of the smaller dimension is assigned exactly once; excess rows
// or columns of the larger dimension stay unpaired. With maximize set, the
// assignment maximizes the total value instead of minimizing it.
//
// Arguments:
// - costs: The cost (or gain) matrix. May be rectangular.
// - maximize: If true, find the maximum-total assignment.
//
// Returns:
// - Parallel slices of row and column indices, one pair per assignment.
// - ErrInfeasible if a complete assignment cannot be formed.
func Solve(costs mat.Matrix, maximize bool) ([]int, []int, error) {
	if costs == nil {
		return nil, nil, nil
	}
	nr, nc := costs.Dims()
	if nr == 0 || nc == 0 {
		return nil, nil, nil
	}

	// The augmenting-path loop assigns one column per row, so it needs
	// rows <= cols. Wider-than-tall input is solved transposed.
	transposed := nr > nc
	if transposed {
		nr, nc = nc, nr
	}

	c := make([][]float64, nr)
	for i := 0; i < nr; i++ {
		c[i] = make([]float64, nc)
		for j := 0; j < nc; j++ {
			var v float64
			if transposed {
				v = costs.At(j, i)
			} else {
				v = costs.At(i, j)
			}
			if maximize {
				v = -v
			}
			c[i][j] = v
		}
	}

	col4row, err := minimize(c, nr, nc)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]int, nr)
	cols := make([]int, nr)
	for i := 0; i < nr; i++ {
		if transposed {
			rows[i] = col4row[i]
			cols[i] = i
		} else {
			rows[i] = i
			cols[i] = col4row[i]
		}
	}
	return rows, cols, nil
}

// minimize assigns every row of c (nr <= nc) to a distinct column with
// minimal total cost. For each row it grows a shortest alternating path
// over the reduced costs until an unassigned column is reached, then
// updates the dual potentials and augments along the path.
func minimize(c [][]float64, nr, nc int) ([]int, error) {
	u := make([]float64, nr)
	v := make([]float64, nc)
	shortestPathCosts := make([]float64, nc)
	path := make([]int, nc)
	col4row := make([]int, nr)
	row4col := make([]int, nc)
	seenRow := make([]bool, nr)
	seenCol := make([]bool, nc)
	remaining := make([]int, nc)

	for i := range col4row {
		col4row[i] = -1
	}
	for j := range row4col {
		row4col[j] = -1
	}

	for curRow := 0; curRow < nr; curRow++ {
		for j := 0; j < nc; j++ {
			shortestPathCosts[j] = math.Inf(1)
			path[j] = -1
			seenCol[j] = false
			remaining[j] = j
		}
		for i := range seenRow {
			seenRow[i] = false
		}
		numRemaining := nc

		minVal := 0.0
		i := curRow
		sink := -1
		for sink == -1 {
			index := -1
			lowest := math.Inf(1)
			seenRow[i] = true

			for it := 0; it < numRemaining; it++ {
				j := remaining[it]
				r := minVal + c[i][j] - u[i] - v[j]
				if r < shortestPathCosts[j] {
					path[j] = i
					shortestPathCosts[j] = r
				}
				// Prefer terminating at an unassigned column on ties so
				// the path ends as early as possible.
				if shortestPathCosts[j] < lowest ||
					(shortestPathCosts[j] == lowest && row4col[j] == -1) {
					lowest = shortestPathCosts[j]
					index = it
				}
			}

			minVal = lowest
			if math.IsInf(minVal, 1) {
				return nil, ErrInfeasible
			}

			j := remaining[index]
			if row4col[j] == -1 {
				sink = j
			} else {
				i = row4col[j]
			}
			seenCol[j] = true
			numRemaining--
			remaining[index] = remaining[numRemaining]
		}

		// Update dual potentials for the visited rows and columns.
		u[curRow] += minVal
		for ii := 0; ii < nr; ii++ {
			if seenRow[ii] && ii != curRow {
				u[ii] += minVal - shortestPathCosts[col4row[ii]]
			}
		}
		for j := 0; j < nc; j++ {
			if seenCol[j] {
				v[j] -= minVal - shortestPathCosts[j]
			}
		}

		// Augment: flip assignments along the alternating path back to
		// the row that started the search.
		j := sink
		for {
			ii := path[j]
			row4col[j] = ii
			col4row[ii], j = j, col4row[ii]
			if ii == curRow {
				break
			}
		}
	}

	return col4row, nil
}
