package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func writeToggleCapture(t *testing.T, dir string, units int) (string, []byte) {
	t.Helper()

	raw := make([]byte, units)
	for i := range raw {
		raw[i] = byte(i&1) | 0x04
	}
	path := filepath.Join(dir, "capture.bin")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	return path, raw
}

func TestImportInfoEdgesExport(t *testing.T) {
	dir := t.TempDir()
	input, raw := writeToggleCapture(t, dir, 16)
	seg := filepath.Join(dir, "capture.seg")

	out, err := execute(t, "import", input, "-o", seg, "--batch", "5", "-c", "s2")
	require.NoError(t, err)
	assert.Contains(t, out, "16 samples")
	assert.Contains(t, out, "RunLength/S2")

	out, err = execute(t, "info", seg)
	require.NoError(t, err)
	assert.Contains(t, out, "samples:")
	assert.Contains(t, out, "16")
	assert.Contains(t, out, "little-endian")
	assert.Contains(t, out, "of 16 packed bytes")

	out, err = execute(t, "edges", seg, "-C", "0,2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 15)
	assert.Equal(t, "1\t0\trising", lines[0])
	assert.Equal(t, "2\t0\tfalling", lines[1])
	assert.Equal(t, "15\t0\trising", lines[14])

	out, err = execute(t, "edges", seg, "-C", "0", "--activity", "--start", "4", "--end", "8")
	require.NoError(t, err)
	assert.Equal(t, "0\t5\t8\n", out)

	exported := filepath.Join(dir, "export.bin")
	_, err = execute(t, "export", seg, "-o", exported)
	require.NoError(t, err)
	got, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	out, err = execute(t, "export", seg)
	require.NoError(t, err)
	assert.Equal(t, string(raw), out)
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()
	input, _ := writeToggleCapture(t, dir, 5)
	seg := filepath.Join(dir, "out.seg")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"partial unit", []string{"import", input, "-o", seg, "-u", "2"}, "inside a sample unit"},
		{"bad encoding", []string{"import", input, "-o", seg, "-e", "delta"}, "unknown encoding"},
		{"bad compression", []string{"import", input, "-o", seg, "-c", "gzip"}, "unknown compression"},
		{"bad batch", []string{"import", input, "-o", seg, "--batch", "0"}, "--batch"},
		{"bad log level", []string{"--log-level", "loud", "import", input, "-o", seg}, "--log-level"},
		{"missing input", []string{"import", filepath.Join(dir, "nope"), "-o", seg}, "open input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEdgesRejectsCorruptSegment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.seg")
	require.NoError(t, os.WriteFile(path, []byte("not a segment"), 0o600))

	_, err := execute(t, "edges", path)
	require.Error(t, err)

	_, err = execute(t, "info", path)
	require.Error(t, err)
}
