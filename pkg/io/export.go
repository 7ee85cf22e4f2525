package io

import (
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dfamin/pkg/dfa"
	"github.com/matzehuels/dfamin/pkg/errors"
)

// WriteJSON encodes a as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(a *dfa.Automaton, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(a)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// WriteYAML encodes a as YAML and writes it to w. Edge lists are written in
// flow style, one state per line.
func WriteYAML(a *dfa.Automaton, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(a)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
	}
	return nil
}

// Write encodes a in format f.
func Write(a *dfa.Automaton, w io.Writer, f Format) error {
	switch f {
	case FormatText:
		return WriteText(a, w)
	case FormatJSON:
		return WriteJSON(a, w)
	case FormatYAML:
		return WriteYAML(a, w)
	}
	return errors.New(errors.ErrCodeUnsupported, "unsupported output format: %q", f)
}

// Export writes a to the file at path. An empty format is detected from the
// file extension; "-" writes to standard output.
func Export(a *dfa.Automaton, path string, f Format) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if f == "" {
		f = DetectFormat(path)
	}
	if path == "-" {
		return Write(a, os.Stdout, f)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(a, file, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "close %s", path)
	}
	return nil
}
