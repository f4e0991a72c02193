package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCell_Classification(t *testing.T) {
	tests := []struct {
		cell   domain.Cell
		empty  bool
		soloon bool
		cometh bool
		known  bool
		glyph  string
	}{
		{domain.CellEmpty, true, false, false, true, "."},
		{domain.CellSpace, true, false, false, true, "."},
		{domain.CellPolyanet, false, false, false, true, "o"},
		{domain.CellBlueSoloon, false, true, false, true, "*"},
		{domain.CellWhiteSoloon, false, true, false, true, "*"},
		{domain.CellUpCometh, false, false, true, true, "↑"},
		{domain.CellRightCometh, false, false, true, true, "→"},
		{domain.Cell("GREEN_SOLOON"), false, false, false, false, "?"},
	}

	for _, tt := range tests {
		t.Run(string(tt.cell), func(t *testing.T) {
			assert.Equal(t, tt.empty, tt.cell.IsEmpty())
			assert.Equal(t, tt.soloon, tt.cell.IsSoloon())
			assert.Equal(t, tt.cometh, tt.cell.IsCometh())
			assert.Equal(t, tt.known, tt.cell.IsKnown())
			assert.Equal(t, tt.glyph, tt.cell.Glyph())
		})
	}
}

func TestGrid_At(t *testing.T) {
	g := domain.Grid{
		{domain.CellPolyanet, domain.CellSpace},
		{domain.CellSpace, domain.CellBlueSoloon},
	}

	c, ok := g.At(1, 1)
	assert.True(t, ok)
	assert.Equal(t, domain.CellBlueSoloon, c)

	_, ok = g.At(-1, 0)
	assert.False(t, ok)
	_, ok = g.At(0, 2)
	assert.False(t, ok)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 2, g.Columns())
	assert.Equal(t, 0, domain.Grid{}.Columns())
}

func TestCommand_String(t *testing.T) {
	cmd := domain.Command{
		Op:         domain.OpCreate,
		Kind:       domain.EntitySoloon,
		Row:        0,
		Column:     1,
		Attributes: map[string]string{domain.AttrColor: "blue"},
	}
	assert.Equal(t, "CREATE soloon at (0, 1) color=blue", cmd.String())

	del := domain.Command{Op: domain.OpDelete, Kind: domain.EntityPolyanet, Row: 2, Column: 3}
	assert.Equal(t, "DELETE polyanet at (2, 3)", del.String())
}

func TestErrors_Matching(t *testing.T) {
	var err error = &domain.AdjacencyViolation{Row: 0, Column: 1}
	assert.True(t, errors.Is(err, domain.ErrAdjacencyViolation))
	assert.Contains(t, err.Error(), "(0, 1)")

	err = &domain.UnknownCellError{Row: 1, Column: 2, Value: "X"}
	assert.True(t, errors.Is(err, domain.ErrUnknownCell))

	cause := errors.New("connection refused")
	gwErr := &domain.GatewayError{Message: "request failed", Err: cause}
	assert.True(t, errors.Is(gwErr, cause))
	assert.Equal(t, "request failed", gwErr.Error())

	gwErr = &domain.GatewayError{Status: 500, Message: "Internal Server Error", Payload: "boom"}
	assert.Equal(t, "status 500: Internal Server Error (boom)", gwErr.Error())
}

func TestSummarize(t *testing.T) {
	outcomes := []domain.Outcome{
		{Success: true, Attempts: 1},
		{Success: true, Attempts: 2},
		{Success: false, Aborted: true, Attempts: 3, Err: domain.ErrAbortedQueue},
	}

	s := domain.Summarize(5, outcomes)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Attempted)
	assert.Equal(t, 2, s.Succeeded)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 2, s.NotAttempted)
	assert.True(t, s.Aborted)
	assert.ErrorIs(t, s.AbortErr, domain.ErrAbortedQueue)
}
