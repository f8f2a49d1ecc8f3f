package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erosion-engine/internal/imagefile"
	"erosion-engine/internal/morph"
)

func noEnv(string) string { return "" }

func writeRamp(t *testing.T, path string, width, height int) *morph.Grid {
	t.Helper()
	g, err := morph.NewGrid(width, height)
	require.NoError(t, err)
	for i := range g.Pix {
		g.Pix[i] = uint8(i * 3)
	}
	require.NoError(t, imagefile.New().Save(path, g))
	return g
}

func TestRunNativeErode(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	src := writeRamp(t, in, 9, 6)

	var stderr bytes.Buffer
	code := run([]string{"-backend", "native", "-log-level", "disabled", in, out}, noEnv, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	got, err := imagefile.New().Load(out)
	require.NoError(t, err)
	want, err := morph.Erode(src)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestRunUsageErrors(t *testing.T) {
	var stderr bytes.Buffer

	assert.Equal(t, exitUsage, run(nil, noEnv, &stderr))
	assert.Contains(t, stderr.String(), "Usage: erosion-engine")

	stderr.Reset()
	assert.Equal(t, exitUsage, run([]string{"-backend", "gpu", "a.png", "b.png"}, noEnv, &stderr))
}

func TestRunUnknownOperationListsAvailable(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeRamp(t, in, 5, 5)

	var stderr bytes.Buffer
	code := run([]string{"-backend", "native", "-log-level", "disabled", "-op", "sharpen", in,
		filepath.Join(dir, "out.png")}, noEnv, &stderr)

	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "erode")
	assert.Contains(t, stderr.String(), "median")
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")

	var stderr bytes.Buffer
	code := run([]string{"-backend", "native", filepath.Join(dir, "missing.png"), out}, noEnv, &stderr)
	assert.Equal(t, exitError, code)
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))

	tiny := filepath.Join(dir, "tiny.png")
	writeRamp(t, tiny, 2, 2)
	stderr.Reset()
	assert.Equal(t, exitError, run([]string{"-backend", "native", tiny, out}, noEnv, &stderr))

	stderr.Reset()
	assert.Equal(t, exitError, run([]string{"a.png", "b.png"}, func(key string) string {
		if key == "EROSION_WORKERS" {
			return "lots"
		}
		return ""
	}, &stderr))
}
