package ioutils

import (
	"context"
	"os"
	"strings"
)

// fallbackFileName is used when sanitization leaves nothing usable.
const fallbackFileName = "未命名"

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Parameters:
//   - ctx: Context for cancellation (currently unused but reserved for future use)
//   - path: File path to write to
//   - data: Bytes to write
func WriteFile(ctx context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// SanitizeFileName removes characters that are invalid in file names.
//
// The characters \ / : * ? " < > | are stripped outright and surrounding
// whitespace is trimmed. When nothing remains — the input was empty,
// whitespace, or consisted only of illegal characters — a fixed fallback
// label is returned so the caller always gets a usable name.
//
// Example:
//
//	SanitizeFileName("三体：黑暗森林")  // "三体黑暗森林"
//	SanitizeFileName(`a/b\c`)          // "abc"
//	SanitizeFileName("  ??::  ")       // the fallback label
func SanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, name)

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return fallbackFileName
	}
	return cleaned
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
