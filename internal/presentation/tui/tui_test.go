package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlain(t *testing.T) {
	out, err := Plain("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "|___/")
	assert.Contains(t, buf.String(), "1.2.3")
}

func TestStatusColors(t *testing.T) {
	assert.Contains(t, Success("done"), "done")
	assert.Contains(t, Failure("failed"), "failed")
}
