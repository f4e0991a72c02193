package megaverse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/megaverse/pkg/adapters/memory"
	"github.com/aretw0/megaverse/pkg/dispatcher"
	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func crossGrid() domain.Grid {
	return domain.Grid{
		{domain.CellPolyanet, domain.CellSpace, domain.CellPolyanet},
		{domain.CellSpace, domain.CellPolyanet, domain.CellWhiteSoloon},
		{domain.CellPolyanet, domain.CellSpace, domain.CellLeftCometh},
	}
}

func TestBuild_BuildThenClear(t *testing.T) {
	gw := memory.NewGateway()
	b := New(gw, WithDispatchOptions(dispatcher.WithSleeper(noSleep)))

	res, err := b.Build(context.Background(), crossGrid(), domain.ModeNormal)
	require.NoError(t, err)
	assert.Len(t, res.Commands, 6)
	assert.Equal(t, 6, res.Summary.Succeeded)
	assert.Equal(t, 6, gw.Universe().Len())

	res, err = b.Build(context.Background(), crossGrid(), domain.ModeClear)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Summary.Succeeded)
	assert.Equal(t, 0, gw.Universe().Len())
}

func TestBuild_InvalidGridMakesNoCalls(t *testing.T) {
	gw := memory.NewGateway()
	grid := domain.Grid{{domain.CellBlueSoloon, domain.CellSpace}}

	res, err := New(gw).Build(context.Background(), grid, domain.ModeNormal)
	require.ErrorIs(t, err, domain.ErrAdjacencyViolation)
	assert.Nil(t, res)
	assert.Empty(t, gw.Calls())
}

func TestBuild_AbortReturnsPartialResult(t *testing.T) {
	gw := memory.NewGateway(memory.WithFailures(memory.FailAlways(1, 1)))
	b := New(gw, WithDispatchOptions(dispatcher.WithSleeper(noSleep)))

	res, err := b.Build(context.Background(), crossGrid(), domain.ModeNormal)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAbortedQueue))

	require.NotNil(t, res)
	assert.True(t, res.Summary.Aborted)
	assert.Equal(t, 2, res.Summary.Succeeded)
	assert.Equal(t, 1, res.Summary.Failed)
	assert.Equal(t, 3, res.Summary.NotAttempted)
}

func TestPlan_UnknownCell(t *testing.T) {
	_, err := Plan(domain.Grid{{"NEBULA"}}, domain.ModeNormal)
	assert.ErrorIs(t, err, domain.ErrUnknownCell)
}
