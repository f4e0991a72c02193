package domain

// Grid is a row-major matrix of cells.
type Grid [][]Cell

// Rows returns the number of rows in the matrix.
func (g Grid) Rows() int {
	return len(g)
}

// Columns returns the length of the first row, or zero for an empty grid.
// Only meaningful once the grid has been validated as rectangular.
func (g Grid) Columns() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the cell at (row, column), or false when out of bounds.
func (g Grid) At(row, column int) (Cell, bool) {
	if row < 0 || row >= len(g) {
		return CellEmpty, false
	}
	if column < 0 || column >= len(g[row]) {
		return CellEmpty, false
	}
	return g[row][column], true
}

// Size is the declared dimension of a map. It is documentation only;
// the authoritative dimensions come from the matrix itself.
type Size struct {
	Rows    int `json:"rows" yaml:"rows" mapstructure:"rows"`
	Columns int `json:"columns" yaml:"columns" mapstructure:"columns"`
}

// MapData is one named map in the configuration document.
type MapData struct {
	Description string `json:"description" yaml:"description"`
	Size        Size   `json:"size" yaml:"size"`
	Map         Grid   `json:"map" yaml:"map"`
}
