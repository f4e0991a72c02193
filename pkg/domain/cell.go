package domain

import "strings"

// Cell is one square of a megaverse map.
// The zero value (decoded from JSON/YAML null) is empty space.
type Cell string

const (
	CellEmpty        Cell = ""
	CellSpace        Cell = "SPACE"
	CellPolyanet     Cell = "POLYANET"
	CellBlueSoloon   Cell = "BLUE_SOLOON"
	CellRedSoloon    Cell = "RED_SOLOON"
	CellPurpleSoloon Cell = "PURPLE_SOLOON"
	CellWhiteSoloon  Cell = "WHITE_SOLOON"
	CellUpCometh     Cell = "UP_COMETH"
	CellDownCometh   Cell = "DOWN_COMETH"
	CellLeftCometh   Cell = "LEFT_COMETH"
	CellRightCometh  Cell = "RIGHT_COMETH"
)

var knownCells = map[Cell]bool{
	CellEmpty:        true,
	CellSpace:        true,
	CellPolyanet:     true,
	CellBlueSoloon:   true,
	CellRedSoloon:    true,
	CellPurpleSoloon: true,
	CellWhiteSoloon:  true,
	CellUpCometh:     true,
	CellDownCometh:   true,
	CellLeftCometh:   true,
	CellRightCometh:  true,
}

// IsEmpty reports whether the cell places nothing.
func (c Cell) IsEmpty() bool {
	return c == CellEmpty || c == CellSpace
}

func (c Cell) IsPolyanet() bool {
	return c == CellPolyanet
}

// IsSoloon reports whether the cell is a Soloon of any color.
func (c Cell) IsSoloon() bool {
	return c.IsKnown() && strings.HasSuffix(string(c), "_SOLOON")
}

// IsCometh reports whether the cell is a Cometh of any direction.
func (c Cell) IsCometh() bool {
	return c.IsKnown() && strings.HasSuffix(string(c), "_COMETH")
}

// IsKnown reports whether the cell belongs to the enumeration.
func (c Cell) IsKnown() bool {
	return knownCells[c]
}

// Glyph returns the single-character ASCII representation of the cell.
func (c Cell) Glyph() string {
	switch {
	case c.IsEmpty():
		return "."
	case c.IsPolyanet():
		return "o"
	case c.IsSoloon():
		return "*"
	}
	switch c {
	case CellUpCometh:
		return "↑"
	case CellDownCometh:
		return "↓"
	case CellLeftCometh:
		return "←"
	case CellRightCometh:
		return "→"
	}
	return "?"
}
