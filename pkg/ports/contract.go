package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLockerContract runs a suite of tests to verify that a RunLocker implementation
// adheres to the defined interface contract.
func RunLockerContract(t *testing.T, locker RunLocker) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405.000")

	t.Run("Acquire and Release", func(t *testing.T) {
		unlock, err := locker.Acquire(ctx, key, time.Minute)
		require.NoError(t, err)
		require.NotNil(t, unlock)
		require.NoError(t, unlock(ctx))

		// Free again after release
		unlock, err = locker.Acquire(ctx, key, time.Minute)
		require.NoError(t, err)
		require.NoError(t, unlock(ctx))
	})

	t.Run("Second Holder Rejected", func(t *testing.T) {
		unlock, err := locker.Acquire(ctx, key, time.Minute)
		require.NoError(t, err)
		defer unlock(ctx)

		_, err = locker.Acquire(ctx, key, time.Minute)
		assert.ErrorIs(t, err, domain.ErrLockHeld)
	})

	t.Run("Independent Keys", func(t *testing.T) {
		unlockA, err := locker.Acquire(ctx, key+"-a", time.Minute)
		require.NoError(t, err)
		defer unlockA(ctx)

		unlockB, err := locker.Acquire(ctx, key+"-b", time.Minute)
		require.NoError(t, err)
		require.NoError(t, unlockB(ctx))
	})
}

// RunGatewayContract verifies the attribute preconditions and success path
// shared by every Gateway implementation. The gateway must accept all calls
// made here (no failure injection).
func RunGatewayContract(t *testing.T, gw Gateway) {
	ctx := context.Background()

	t.Run("Polyanet Create and Delete", func(t *testing.T) {
		resp, err := gw.CreatePolyanet(ctx, 1, 1)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.Status >= 200 && resp.Status < 300)

		_, err = gw.DeletePolyanet(ctx, 1, 1)
		require.NoError(t, err)
	})

	t.Run("Soloon Valid Colors", func(t *testing.T) {
		for _, color := range []string{"blue", "red", "purple", "white"} {
			_, err := gw.CreateSoloon(ctx, 2, 2, map[string]string{domain.AttrColor: color})
			require.NoError(t, err, color)
		}
		_, err := gw.DeleteSoloon(ctx, 2, 2)
		require.NoError(t, err)
	})

	t.Run("Soloon Invalid Color", func(t *testing.T) {
		_, err := gw.CreateSoloon(ctx, 2, 2, map[string]string{domain.AttrColor: "green"})
		assert.ErrorIs(t, err, domain.ErrInvalidAttribute)

		_, err = gw.CreateSoloon(ctx, 2, 2, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidAttribute)
	})

	t.Run("Cometh Valid Directions", func(t *testing.T) {
		for _, dir := range []string{"up", "down", "left", "right"} {
			_, err := gw.CreateCometh(ctx, 3, 3, map[string]string{domain.AttrDirection: dir})
			require.NoError(t, err, dir)
		}
		_, err := gw.DeleteCometh(ctx, 3, 3)
		require.NoError(t, err)
	})

	t.Run("Cometh Invalid Direction", func(t *testing.T) {
		_, err := gw.CreateCometh(ctx, 3, 3, map[string]string{domain.AttrDirection: "sideways"})
		assert.ErrorIs(t, err, domain.ErrInvalidAttribute)
	})
}
