package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/dfamin/pkg/errors"
)

// Format identifies an automaton file format.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat converts a flag value to a Format. "yml" is accepted as an
// alias for YAML and "text" for the text format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown automaton format: %q (must be txt, json or yaml)", s)
}

// DetectFormat picks a format from the file extension of path. Unknown
// extensions, standard input ("-") and extension-less names use the text
// format.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}
