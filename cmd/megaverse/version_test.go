package main

import (
	"bytes"
	"testing"

	"github.com/aretw0/megaverse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version", "--short"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, megaverse.Version+"\n", out.String())

	out.Reset()
	rootCmd.SetArgs([]string{"version", "--short=false"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "megaverse "+megaverse.Version)
	assert.Contains(t, out.String(), "go:")
}
