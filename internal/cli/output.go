package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/dfamin/pkg/errors"
	"github.com/matzehuels/dfamin/pkg/observability"
	"github.com/matzehuels/dfamin/pkg/pipeline"
)

// stdoutPath selects standard output for --output.
const stdoutPath = "-"

// nopCloser wraps a writer that must not be closed.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, creating parent directories. "-"
// returns stdout wrapped so Close leaves it open.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{stdout}, nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	return f, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input, appends suffix and
// moves the result into dir when dir is set.
// If output has a format extension (.svg, .dot, etc.), it strips that extension.
func basePath(output, input, suffix, dir string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input)) + suffix
		if dir != "" {
			base = filepath.Join(dir, filepath.Base(base))
		}
		return base
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps every format to the file it is written to.
//
// A single format written with an explicit --output goes to exactly that
// path, so "-o min_aut.txt -f dot" is honored as given. Several formats
// share a base path and get one extension each. Input read from stdin
// without --output is written to stdout.
func outputPaths(formats []string, output, input, suffix, dir string) (map[string]string, error) {
	if output == "" && input == stdoutPath {
		output = stdoutPath
	}
	paths := make(map[string]string, len(formats))
	if output == stdoutPath {
		if len(formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"writing to stdout needs exactly one format, got %d", len(formats))
		}
		paths[formats[0]] = stdoutPath
		return paths, nil
	}
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths, nil
	}
	base := basePath(output, input, suffix, dir)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths, nil
}

// writeArtifacts writes each artifact in formats order and returns the
// file paths written. Stdout is not listed.
func writeArtifacts(ctx context.Context, stdout io.Writer, artifacts map[string][]byte, formats []string, paths map[string]string) ([]string, error) {
	var written []string
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := paths[f]
		if err := writeFile(path, data, stdout); err != nil {
			return written, err
		}
		observability.Artifact().OnArtifactWritten(ctx, f, path, len(data))
		if path != stdoutPath {
			written = append(written, path)
		}
	}
	return written, nil
}

func writeFile(path string, data []byte, stdout io.Writer) error {
	out, err := openOutput(path, stdout)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "close %s", path)
	}
	return nil
}

// checkOverwrite refuses output paths that would replace the input file.
func checkOverwrite(paths map[string]string, input string) error {
	if input == stdoutPath {
		return nil
	}
	in, err := filepath.Abs(input)
	if err != nil {
		return nil
	}
	for _, p := range paths {
		if p == stdoutPath {
			continue
		}
		if out, err := filepath.Abs(p); err == nil && out == in {
			return errors.New(errors.ErrCodeInvalidPath, "refusing to overwrite input %s", input)
		}
	}
	return nil
}
