package compiler

import (
	"maps"

	"github.com/aretw0/megaverse/pkg/domain"
)

// entityMapping is the target of a non-empty cell.
type entityMapping struct {
	kind   domain.EntityKind
	params map[string]string
}

var entityMappings = map[domain.Cell]entityMapping{
	domain.CellPolyanet: {kind: domain.EntityPolyanet, params: map[string]string{}},

	domain.CellBlueSoloon:   {kind: domain.EntitySoloon, params: map[string]string{domain.AttrColor: "blue"}},
	domain.CellRedSoloon:    {kind: domain.EntitySoloon, params: map[string]string{domain.AttrColor: "red"}},
	domain.CellPurpleSoloon: {kind: domain.EntitySoloon, params: map[string]string{domain.AttrColor: "purple"}},
	domain.CellWhiteSoloon:  {kind: domain.EntitySoloon, params: map[string]string{domain.AttrColor: "white"}},

	domain.CellUpCometh:    {kind: domain.EntityCometh, params: map[string]string{domain.AttrDirection: "up"}},
	domain.CellDownCometh:  {kind: domain.EntityCometh, params: map[string]string{domain.AttrDirection: "down"}},
	domain.CellLeftCometh:  {kind: domain.EntityCometh, params: map[string]string{domain.AttrDirection: "left"}},
	domain.CellRightCometh: {kind: domain.EntityCometh, params: map[string]string{domain.AttrDirection: "right"}},
}

// Compile walks the grid in row-major order and emits one command per
// non-empty cell. In ModeClear every command is a delete with no attributes.
// Cells missing from the lookup table are skipped; callers are expected to
// run validator.Validate first.
func Compile(grid domain.Grid, mode domain.Mode) []domain.Command {
	commands := []domain.Command{}

	for r, row := range grid {
		for c, cell := range row {
			if cell.IsEmpty() {
				continue
			}

			mapping, ok := entityMappings[cell]
			if !ok {
				continue
			}

			cmd := domain.Command{
				Op:         domain.OpCreate,
				Kind:       mapping.kind,
				Row:        r,
				Column:     c,
				Attributes: maps.Clone(mapping.params),
			}
			if mode == domain.ModeClear {
				cmd.Op = domain.OpDelete
				cmd.Attributes = map[string]string{}
			}

			commands = append(commands, cmd)
		}
	}

	return commands
}
