package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"
)

const importTimeout = 30 * time.Second

// Importer clips a web page into an inbox article: readable content is
// extracted, converted to markdown, and written with a generated header so
// the article enters the normal bundle/triage lifecycle.
type Importer struct {
	settings  *Settings
	converter *md.Converter
}

// NewImporter creates an importer writing into the configured inbox.
func NewImporter(settings *Settings) *Importer {
	return &Importer{
		settings:  settings,
		converter: md.NewConverter("", true, nil),
	}
}

// ImportURL fetches and converts one page, returning the path of the new
// article. An existing file with the same name is never overwritten.
func (imp *Importer) ImportURL(rawURL string) (string, error) {
	article, err := readability.FromURL(rawURL, importTimeout)
	if err != nil {
		return "", fmt.Errorf("extracting article from %s: %w", rawURL, err)
	}

	markdown, err := imp.converter.ConvertString(article.Content)
	if err != nil {
		return "", fmt.Errorf("converting article to markdown: %w", err)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = "Untitled Article"
	}

	fm := NewFrontmatter()
	fm.Set("title", title)
	if byline := strings.TrimSpace(article.Byline); byline != "" {
		fm.SetList("author", []string{"[[" + byline + "]]"})
	}
	fm.Set("source", rawURL)
	if article.PublishedTime != nil {
		fm.Set("published", article.PublishedTime.Format(displayDateFormat))
	}
	fm.Set("created", time.Now().Format(displayDateFormat))
	fm.Set(sentKey, "")

	if err := os.MkdirAll(imp.settings.InboxDir, 0755); err != nil {
		return "", fmt.Errorf("creating inbox directory: %w", err)
	}

	path := filepath.Join(imp.settings.InboxDir, generateSlug(title)+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("article already exists: %s", path)
	}

	content := fm.Serialize("\n" + strings.TrimSpace(markdown) + "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing article: %w", err)
	}

	return path, nil
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
)

// generateSlug creates a filesystem-safe filename stem from a title.
func generateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugHyphenRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	// Limit length to avoid filesystem issues
	if len(slug) > 50 {
		slug = slug[:50]
		slug = strings.Trim(slug, "-")
	}

	if slug == "" {
		return "article"
	}
	return slug
}
