package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Bundler assembles selected articles into a single EPUB via pandoc.
type Bundler struct {
	settings *Settings
}

// NewBundler creates a bundler using the configured tool paths and
// directories.
func NewBundler(settings *Settings) *Bundler {
	return &Bundler{settings: settings}
}

// Create writes prepared copies of the selected articles plus a collection
// metadata document into a temp dir, runs pandoc over them, and returns the
// output path. A non-zero pandoc exit is a hard failure carrying the
// captured stderr.
func (b *Bundler) Create(selected []Candidate) (string, error) {
	tmpDir, err := os.MkdirTemp("", "kindlebundle-")
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	now := time.Now()

	dates := make([]string, 0, len(selected))
	for _, c := range selected {
		dates = append(dates, c.Meta.Date)
	}

	metadataPath := filepath.Join(tmpDir, "metadata.yaml")
	if err := os.WriteFile(metadataPath, []byte(CollectionMetadata(dates, len(selected), now)), 0644); err != nil {
		return "", fmt.Errorf("writing metadata file: %w", err)
	}

	args := []string{metadataPath}
	for i, c := range selected {
		prepared, err := PrepareArticle(c.Path)
		if err != nil {
			return "", fmt.Errorf("preparing %s: %w", c.Path, err)
		}
		preparedPath := filepath.Join(tmpDir, fmt.Sprintf("%02d_%s", i, filepath.Base(c.Path)))
		if err := os.WriteFile(preparedPath, []byte(prepared), 0644); err != nil {
			return "", fmt.Errorf("writing prepared article: %w", err)
		}
		args = append(args, preparedPath)
	}

	outputPath := filepath.Join(b.settings.OutputDir, fmt.Sprintf("articles-%s.epub", now.Format(displayDateFormat)))
	args = append(args,
		"-o", outputPath,
		"--toc",
		"--toc-depth=1",
		"--epub-chapter-level=1",
		"--file-scope",
	)

	cmd := exec.Command(b.settings.Tools.Pandoc, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pandoc: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	return outputPath, nil
}

var headingPattern = regexp.MustCompile(`(?m)^(#{1,5}) `)

// PrepareArticle turns an article file into an EPUB chapter: the header is
// stripped, every markdown heading is demoted one level so chapters do not
// collide, and the title goes in as the single top-level heading.
func PrepareArticle(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading article: %w", err)
	}

	fm, body := ParseFrontmatter(string(content))

	title := fm.Get("title")
	if title == "" {
		title = articleStem(path)
	}

	body = demoteHeadings(body)
	return fmt.Sprintf("# %s\n\n%s", title, strings.TrimLeft(body, "\n")), nil
}

// demoteHeadings pushes h1-h5 down one level (h1 -> h2, ...).
func demoteHeadings(body string) string {
	return headingPattern.ReplaceAllString(body, "#$1 ")
}

// CollectionMetadata builds the bundle-level metadata document pandoc reads
// for the EPUB title page. Display dates sort lexically (YYYY-MM-DD), so the
// range is just min and max.
func CollectionMetadata(dates []string, count int, now time.Time) string {
	today := now.Format(displayDateFormat)

	dateRange := "various dates"
	var oldest, newest string
	for _, d := range dates {
		if d == "" {
			continue
		}
		if oldest == "" || d < oldest {
			oldest = d
		}
		if newest == "" || d > newest {
			newest = d
		}
	}
	if oldest != "" {
		dateRange = oldest
		if oldest != newest {
			dateRange = fmt.Sprintf("%s to %s", oldest, newest)
		}
	}

	fm := NewFrontmatter()
	fm.Set("title", fmt.Sprintf("Articles Bundle - %s", today))
	fm.Set("subtitle", fmt.Sprintf("Collection of %d articles from %s", count, dateRange))
	fm.Set("author", "Various Authors")
	fm.Set("date", today)
	fm.Set("lang", "en")

	return fm.Serialize("\n")
}
