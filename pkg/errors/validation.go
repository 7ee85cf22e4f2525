package errors

import (
	"strings"
	"unicode"
)

// MaxSymbolLength bounds the length of an alphabet symbol in bytes.
const MaxSymbolLength = 256

// ValidateSymbol checks that an alphabet symbol can be written to every
// supported format and to DOT labels.
//
// The rules:
//   - No empty symbols
//   - No whitespace (the text format is whitespace-separated)
//   - No control characters, null bytes or invisible format characters
//   - No double quotes or backslashes (they would need escaping in DOT)
//   - Maximum length of [MaxSymbolLength] bytes
func ValidateSymbol(sym string) error {
	if sym == "" {
		return New(ErrCodeInvalidSymbol, "symbol cannot be empty")
	}
	if len(sym) > MaxSymbolLength {
		return New(ErrCodeInvalidSymbol, "symbol too long (max %d characters)", MaxSymbolLength)
	}
	for _, r := range sym {
		switch {
		case unicode.IsControl(r):
			return New(ErrCodeInvalidSymbol, "symbol contains control characters: %q", sym)
		case unicode.Is(unicode.Cf, r):
			return New(ErrCodeInvalidSymbol, "symbol contains format characters: %q", sym)
		case unicode.IsSpace(r):
			return New(ErrCodeInvalidSymbol, "symbol contains whitespace: %q", sym)
		case r == '"' || r == '\\':
			return New(ErrCodeInvalidSymbol, "symbol contains %q: %q", r, sym)
		}
	}
	return nil
}

// ValidateAlphabet validates every symbol and rejects duplicates.
func ValidateAlphabet(symbols []string) error {
	if len(symbols) == 0 {
		return New(ErrCodeInvalidSymbol, "alphabet cannot be empty")
	}
	seen := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		if err := ValidateSymbol(s); err != nil {
			return err
		}
		if seen[s] {
			return New(ErrCodeInvalidSymbol, "duplicate symbol: %q", s)
		}
		seen[s] = true
	}
	return nil
}

// ValidatePath validates an input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// "-" is accepted and means standard input or output.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path has leading or trailing whitespace: %q", path)
	}

	return nil
}
