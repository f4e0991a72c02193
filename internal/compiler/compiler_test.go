package compiler_test

import (
	"testing"

	"github.com/aretw0/megaverse/internal/compiler"
	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGrid() domain.Grid {
	return domain.Grid{
		{domain.CellPolyanet, domain.CellBlueSoloon, domain.CellSpace},
		{domain.CellEmpty, domain.CellPolyanet, domain.CellWhiteSoloon},
		{domain.CellLeftCometh, domain.CellSpace, domain.CellPolyanet},
	}
}

func TestCompile_ScanOrder(t *testing.T) {
	grid := domain.Grid{
		{domain.CellPolyanet, domain.CellBlueSoloon},
		{domain.CellSpace, domain.CellSpace},
	}

	cmds := compiler.Compile(grid, domain.ModeNormal)

	expected := []domain.Command{
		{Op: domain.OpCreate, Kind: domain.EntityPolyanet, Row: 0, Column: 0, Attributes: map[string]string{}},
		{Op: domain.OpCreate, Kind: domain.EntitySoloon, Row: 0, Column: 1, Attributes: map[string]string{"color": "blue"}},
	}
	assert.Equal(t, expected, cmds)
}

func TestCompile_AllKinds(t *testing.T) {
	cmds := compiler.Compile(sampleGrid(), domain.ModeNormal)
	require.Len(t, cmds, 6)

	assert.Equal(t, domain.EntitySoloon, cmds[3].Kind)
	assert.Equal(t, "white", cmds[3].Attributes[domain.AttrColor])
	assert.Equal(t, domain.EntityCometh, cmds[4].Kind)
	assert.Equal(t, "left", cmds[4].Attributes[domain.AttrDirection])
	assert.Equal(t, 2, cmds[4].Row)
	assert.Equal(t, 0, cmds[4].Column)
}

func TestCompile_ClearRoundTrip(t *testing.T) {
	grid := sampleGrid()
	build := compiler.Compile(grid, domain.ModeNormal)
	clear := compiler.Compile(grid, domain.ModeClear)

	require.Equal(t, len(build), len(clear))
	for i := range build {
		assert.Equal(t, domain.OpCreate, build[i].Op)
		assert.Equal(t, domain.OpDelete, clear[i].Op)
		assert.Equal(t, build[i].Kind, clear[i].Kind)
		assert.Equal(t, build[i].Row, clear[i].Row)
		assert.Equal(t, build[i].Column, clear[i].Column)
		assert.Empty(t, clear[i].Attributes)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	grid := sampleGrid()
	assert.Equal(t, compiler.Compile(grid, domain.ModeNormal), compiler.Compile(grid, domain.ModeNormal))
}

func TestCompile_AttributesAreIndependentCopies(t *testing.T) {
	grid := domain.Grid{{domain.CellPolyanet, domain.CellRedSoloon}}

	first := compiler.Compile(grid, domain.ModeNormal)
	first[1].Attributes[domain.AttrColor] = "tampered"

	second := compiler.Compile(grid, domain.ModeNormal)
	assert.Equal(t, "red", second[1].Attributes[domain.AttrColor])
}

func TestCompile_SkipsEmptyAndUnknown(t *testing.T) {
	grid := domain.Grid{{domain.CellEmpty, domain.CellSpace, "GREEN_SOLOON"}}
	assert.Empty(t, compiler.Compile(grid, domain.ModeNormal))
}
