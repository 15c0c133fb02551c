// Package script loads streamlang script files from disk.
package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Load reads a script file and returns its content as UTF-8 source text.
// Files that are not valid UTF-8 are decoded as Shift-JIS, so legacy
// scripts keep working without re-encoding.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return Decode(data)
}

// Decode converts raw script bytes to UTF-8 source text.
func Decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoder := japanese.ShiftJIS.NewDecoder()
	converted, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), decoder))
	if err != nil {
		return "", fmt.Errorf("failed to decode Shift-JIS: %w", err)
	}
	return string(converted), nil
}
