package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const displayDateFormat = "2006-01-02"

// Lifecycle header fields.
const (
	sentKey       = "sent-to-kindle"
	sentValue     = "yes"
	likedKey      = "liked"
	notesKey      = "notes"
	readStatusKey = "read-status"
	dateReadKey   = "date-read"
)

// ExtractMetadata reads an article file and derives its metadata. It has no
// side effects and may be called repeatedly; every call re-reads the file.
func ExtractMetadata(path string) (Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("reading article: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("stat article: %w", err)
	}

	fm, body := ParseFrontmatter(string(content))
	return metadataFrom(path, fm, body, info.ModTime()), nil
}

// metadataFrom resolves the title and display date fallback chains and counts
// body words. The header is excluded from the word count entirely; that is
// what keeps the bundle budget honest.
func metadataFrom(path string, fm *Frontmatter, body string, mtime time.Time) Metadata {
	title := fm.Get("title")
	if title == "" {
		title = articleStem(path)
	}

	date := fm.Get("created")
	if date == "" {
		date = fm.Get("published")
	}
	if date == "" {
		date = mtime.Format(displayDateFormat)
	}

	return Metadata{
		Title:     title,
		WordCount: len(strings.Fields(body)),
		Date:      date,
		MTime:     mtime,
	}
}

// articleStem returns the filename without directory or extension.
func articleStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
