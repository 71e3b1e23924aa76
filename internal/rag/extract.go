package rag

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ExtractText reads a stored file and returns its text content. Binary or
// undecodable files fail here so a single bad upload is reported per-file
// instead of aborting a whole ingestion batch.
func ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read stored file: %w", err)
	}
	return DecodeText(data)
}

// DecodeText validates that raw bytes are plain text and returns them as a
// trimmed string.
func DecodeText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("file is empty")
	}

	probe := data
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return "", fmt.Errorf("file contains binary content")
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("file contains no extractable text")
	}
	return text, nil
}
