package io

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dfamin/pkg/dfa"
	"github.com/matzehuels/dfamin/pkg/errors"
)

// ReadJSON decodes a JSON automaton from r.
//
// The input must be an object with "alphabet", "states" and "start":
//
//	{
//	  "alphabet": ["a", "b"],
//	  "states": [
//	    {"edges": [{"symbol": "a", "to": 1}]},
//	    {"terminal": true}
//	  ],
//	  "start": 0
//	}
//
// ReadJSON returns an error if:
//   - The JSON is malformed or has unknown fields
//   - The alphabet is empty or has duplicate or invalid symbols
//   - An edge uses an unknown symbol or targets a missing state
//   - A state has two edges on the same symbol with different targets
//   - The start state is out of range
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*dfa.Automaton, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return doc.automaton()
}

// ReadYAML decodes a YAML automaton from r. The document has the same shape
// as the JSON form:
//
//	alphabet: [a, b]
//	states:
//	  - edges: [{symbol: a, to: 1}]
//	  - terminal: true
//	start: 0
func ReadYAML(r io.Reader) (*dfa.Automaton, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "decode yaml: empty document")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return doc.automaton()
}

// Read decodes an automaton in format f from r.
func Read(r io.Reader, f Format) (*dfa.Automaton, error) {
	switch f {
	case FormatText:
		return ReadText(r)
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported input format: %q", f)
}

// Import reads the automaton stored at path. An empty format is detected
// from the file extension with [DetectFormat]; "-" reads standard input.
//
// A missing file yields an error with code FILE_NOT_FOUND.
func Import(path string, f Format) (*dfa.Automaton, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if f == "" {
		f = DetectFormat(path)
	}
	if path == "-" {
		return Read(os.Stdin, f)
	}

	file, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer file.Close()

	a, err := Read(file, f)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInvalidInput
		}
		return nil, errors.Wrap(code, err, "%s", path)
	}
	return a, nil
}
