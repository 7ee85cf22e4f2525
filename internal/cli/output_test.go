package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dfamin/pkg/errors"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name                       string
		output, input, suffix, dir string
		want                       string
	}{
		{"derived", "", "dir/ab.txt", ".min", "", "dir/ab.min"},
		{"derived without extension", "", "ab", "", "", "ab"},
		{"derived into dir", "", "dir/ab.txt", ".min", "out", filepath.Join("out", "ab.min")},
		{"known extension stripped", "res.svg", "ab.txt", ".min", "", "res"},
		{"unknown extension kept", "res.out", "ab.txt", ".min", "", "res.out"},
		{"no extension", "res", "ab.txt", ".min", "", "res"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, basePath(tt.output, tt.input, tt.suffix, tt.dir))
		})
	}
}

func TestOutputPaths(t *testing.T) {
	paths, err := outputPaths([]string{"dot", "svg"}, "", "ab.txt", ".min", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"dot": "ab.min.dot", "svg": "ab.min.svg"}, paths)

	paths, err = outputPaths([]string{"dot"}, "min_aut.txt", "ab.txt", ".min", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"dot": "min_aut.txt"}, paths)

	paths, err = outputPaths([]string{"dot", "png"}, "res.dot", "ab.txt", ".min", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"dot": "res.dot", "png": "res.png"}, paths)

	paths, err = outputPaths([]string{"txt"}, "", "-", ".min", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"txt": "-"}, paths)

	_, err = outputPaths([]string{"txt", "dot"}, "-", "ab.txt", ".min", "")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = outputPaths([]string{"txt", "dot"}, "", "-", ".min", "")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestCheckOverwrite(t *testing.T) {
	assert.NoError(t, checkOverwrite(map[string]string{"dot": "ab.dot"}, "ab.txt"))
	assert.NoError(t, checkOverwrite(map[string]string{"txt": "-"}, "-"))
	err := checkOverwrite(map[string]string{"txt": "./ab.txt"}, "ab.txt")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"dot": []byte("digraph G {\n}\n"),
		"txt": []byte("1\na\n1\n0 0\n0\n"),
	}
	paths := map[string]string{
		"dot": filepath.Join(dir, "sub", "g.dot"),
		"txt": "-",
	}

	var stdout bytes.Buffer
	written, err := writeArtifacts(context.Background(), &stdout, artifacts, []string{"txt", "dot", "svg"}, paths)
	require.NoError(t, err)
	assert.Equal(t, []string{paths["dot"]}, written)
	assert.Equal(t, "1\na\n1\n0 0\n0\n", stdout.String())

	data, err := os.ReadFile(paths["dot"])
	require.NoError(t, err)
	assert.Equal(t, artifacts["dot"], data)
}

func TestOpenOutput_Stdout(t *testing.T) {
	var buf bytes.Buffer
	w, err := openOutput("-", &buf)
	require.NoError(t, err)
	_, _ = w.Write([]byte("x"))
	require.NoError(t, w.Close())
	assert.Equal(t, "x", buf.String())

	_, err = openOutput(" bad", &buf)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))
}
