package validator

import (
	"fmt"

	"github.com/aretw0/megaverse/pkg/domain"
)

// neighbours are the orthogonal offsets checked for the Soloon rule (up, down, left, right).
var neighbours = [4][2]int{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// Validate checks that the grid is rectangular, contains only known cells
// and that every Soloon touches a Polyanet. It never mutates the grid.
func Validate(grid domain.Grid) error {
	if len(grid) == 0 {
		return fmt.Errorf("%w: map cannot be empty", domain.ErrMalformedGrid)
	}

	expected := len(grid[0])
	if expected == 0 {
		return fmt.Errorf("%w: row 0 is empty", domain.ErrMalformedGrid)
	}
	for i, row := range grid {
		if len(row) != expected {
			return fmt.Errorf("%w: row %d has incorrect length, expected %d, got %d",
				domain.ErrMalformedGrid, i, expected, len(row))
		}
	}

	for r, row := range grid {
		for c, cell := range row {
			if !cell.IsKnown() {
				return &domain.UnknownCellError{Row: r, Column: c, Value: cell}
			}
		}
	}

	return validateBusinessRules(grid)
}

// validateBusinessRules reports the first Soloon (row-major) without an adjacent Polyanet.
func validateBusinessRules(grid domain.Grid) error {
	for r, row := range grid {
		for c, cell := range row {
			if !cell.IsSoloon() {
				continue
			}
			if !hasAdjacentPolyanet(grid, r, c) {
				return &domain.AdjacencyViolation{Row: r, Column: c}
			}
		}
	}
	return nil
}

func hasAdjacentPolyanet(grid domain.Grid, row, column int) bool {
	for _, d := range neighbours {
		// Out of bounds is treated as absent.
		if cell, ok := grid.At(row+d[0], column+d[1]); ok && cell.IsPolyanet() {
			return true
		}
	}
	return false
}

// CheckDeclaredSize compares the documented size of a map against its matrix.
// The declared size is not authoritative; callers only report the mismatch.
func CheckDeclaredSize(data domain.MapData) error {
	rows, cols := data.Map.Rows(), data.Map.Columns()
	if data.Size.Rows != rows || data.Size.Columns != cols {
		return fmt.Errorf("%w: declared %dx%d, actual %dx%d",
			domain.ErrSizeMismatch, data.Size.Rows, data.Size.Columns, rows, cols)
	}
	return nil
}
