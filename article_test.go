package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeArticle(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestExtractMetadata(t *testing.T) {
	dir := t.TempDir()
	path := writeArticle(t, dir, "essay.md",
		"---\ntitle: The Essay\ncreated: 2024-01-10\nsent-to-kindle:\n---\n\none two three four five\n")

	meta, err := ExtractMetadata(path)
	if err != nil {
		t.Fatalf("ExtractMetadata() error = %v", err)
	}

	if meta.Title != "The Essay" {
		t.Errorf("Title = %q, want %q", meta.Title, "The Essay")
	}
	if meta.WordCount != 5 {
		t.Errorf("WordCount = %d, want 5", meta.WordCount)
	}
	if meta.Date != "2024-01-10" {
		t.Errorf("Date = %q, want %q", meta.Date, "2024-01-10")
	}
}

func TestExtractMetadataWordCountExcludesHeader(t *testing.T) {
	dir := t.TempDir()
	// Header holds plenty of tokens; only the body's count.
	path := writeArticle(t, dir, "counted.md",
		"---\ntitle: Many Header Tokens In Here Indeed\nauthor:\n  - \"[[Jane Doe]]\"\n---\nbody has exactly four words\n")

	meta, err := ExtractMetadata(path)
	if err != nil {
		t.Fatalf("ExtractMetadata() error = %v", err)
	}
	if meta.WordCount != 5 {
		t.Errorf("WordCount = %d, want 5", meta.WordCount)
	}
}

func TestExtractMetadataFallbacks(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		file      string
		content   string
		wantTitle string
		wantDate  string
	}{
		{
			name:      "published when created absent",
			file:      "pub.md",
			content:   "---\ntitle: Pub\npublished: 2023-06-01\n---\nx",
			wantTitle: "Pub",
			wantDate:  "2023-06-01",
		},
		{
			name:      "created wins over published",
			file:      "both.md",
			content:   "---\ntitle: Both\ncreated: 2023-01-01\npublished: 2023-06-01\n---\nx",
			wantTitle: "Both",
			wantDate:  "2023-01-01",
		},
		{
			name:      "filename stem when no title",
			file:      "no-title-here.md",
			content:   "---\ncreated: 2023-02-02\n---\nx",
			wantTitle: "no-title-here",
			wantDate:  "2023-02-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeArticle(t, dir, tt.file, tt.content)
			meta, err := ExtractMetadata(path)
			if err != nil {
				t.Fatalf("ExtractMetadata() error = %v", err)
			}
			if meta.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", meta.Title, tt.wantTitle)
			}
			if meta.Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", meta.Date, tt.wantDate)
			}
		})
	}
}

func TestExtractMetadataMTimeDate(t *testing.T) {
	dir := t.TempDir()
	path := writeArticle(t, dir, "undated.md", "no header at all\n")

	mtime := time.Date(2022, 8, 15, 12, 0, 0, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	meta, err := ExtractMetadata(path)
	if err != nil {
		t.Fatalf("ExtractMetadata() error = %v", err)
	}
	if meta.Date != "2022-08-15" {
		t.Errorf("Date = %q, want %q", meta.Date, "2022-08-15")
	}
	if !meta.MTime.Equal(mtime) {
		t.Errorf("MTime = %v, want %v", meta.MTime, mtime)
	}
}

func TestExtractMetadataMissingFile(t *testing.T) {
	if _, err := ExtractMetadata(filepath.Join(t.TempDir(), "absent.md")); err == nil {
		t.Error("ExtractMetadata() expected error for missing file")
	}
}
