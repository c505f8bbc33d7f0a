package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean name unchanged", "活着", "活着"},
		{"fullwidth colon kept", "三体：黑暗森林", "三体：黑暗森林"},
		{"ascii colon stripped", "Go: The Language", "Go The Language"},
		{"slashes stripped", `a/b\c`, "abc"},
		{"all illegal characters", `\/:*?"<>|`, "未命名"},
		{"empty", "", "未命名"},
		{"whitespace only", "   ", "未命名"},
		{"illegal and whitespace", `  ??::  `, "未命名"},
		{"surrounding whitespace trimmed", "  book  ", "book"},
		{"question mark", "why?", "why"},
		{"pipes and angles", "a|b<c>d", "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	if err := WriteFile(context.Background(), path, []byte("# hello\n")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "# hello\n" {
		t.Errorf("file content = %q, want %q", data, "# hello\n")
	}

	// Overwrite truncates.
	if err := WriteFile(context.Background(), path, []byte("x")); err != nil {
		t.Fatalf("WriteFile() overwrite error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "x" {
		t.Errorf("overwritten content = %q, want %q", data, "x")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir() did not create a directory")
	}

	// Existing directory is not an error.
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}
