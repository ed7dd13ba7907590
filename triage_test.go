package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func triageSettings(t *testing.T) *Settings {
	t.Helper()
	dir := t.TempDir()
	settings := &Settings{
		InboxDir:   filepath.Join(dir, "Inbox"),
		ArchiveDir: filepath.Join(dir, "Archive"),
	}
	if err := os.MkdirAll(settings.InboxDir, 0755); err != nil {
		t.Fatal(err)
	}
	return settings
}

func runTriage(t *testing.T, settings *Settings, input string) string {
	t.Helper()
	var out bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader(input))
	if err := RunTriage(scanner, &out, settings); err != nil {
		t.Fatalf("RunTriage() error = %v", err)
	}
	return out.String()
}

func TestRunTriageNoSentArticles(t *testing.T) {
	settings := triageSettings(t)
	writeArticle(t, settings.InboxDir, "unsent.md", "---\ntitle: Unsent\n---\nbody")

	output := runTriage(t, settings, "")
	if !strings.Contains(output, "No articles found") {
		t.Errorf("output = %q, want no-articles notice", output)
	}
}

func TestRunTriageSkip(t *testing.T) {
	settings := triageSettings(t)
	path := writeArticle(t, settings.InboxDir, "keep.md",
		"---\ntitle: Keep\nsent-to-kindle: yes\n---\nbody")
	before, _ := os.ReadFile(path)

	// skip the single article
	output := runTriage(t, settings, "y\n")

	if !strings.Contains(output, "Skipping...") {
		t.Error("output missing skip notice")
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("skipped article was modified")
	}
}

func TestRunTriageLikeAndNotes(t *testing.T) {
	settings := triageSettings(t)
	path := writeArticle(t, settings.InboxDir, "liked.md",
		"---\ntitle: Liked\nsent-to-kindle: yes\nnotes: old note\n---\nbody")

	// continue, like, add notes, don't archive
	runTriage(t, settings, "\ny\ngreat piece\nn\n")

	content, _ := os.ReadFile(path)
	fm, _ := ParseFrontmatter(string(content))

	if fm.Get(likedKey) != "yes" {
		t.Errorf("liked = %q, want yes", fm.Get(likedKey))
	}
	if got := fm.Get(notesKey); got != "old note | great piece" {
		t.Errorf("notes = %q, want appended note", got)
	}
	if fm.Get(readStatusKey) != "" {
		t.Error("read-status set without archiving")
	}
}

func TestRunTriageArchive(t *testing.T) {
	settings := triageSettings(t)
	path := writeArticle(t, settings.InboxDir, "finished.md",
		"---\ntitle: Finished\nsent-to-kindle: yes\n---\nbody")

	// continue, no like, no notes, archive
	output := runTriage(t, settings, "\n\n\ny\n")

	if !strings.Contains(output, "Archived to: finished.md") {
		t.Errorf("output missing archive notice:\n%s", output)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("original article still in inbox")
	}

	content, err := os.ReadFile(filepath.Join(settings.ArchiveDir, "finished.md"))
	if err != nil {
		t.Fatalf("archived file missing: %v", err)
	}
	fm, _ := ParseFrontmatter(string(content))
	if fm.Get(readStatusKey) != "read" {
		t.Errorf("read-status = %q, want read", fm.Get(readStatusKey))
	}
	if fm.Get(dateReadKey) == "" {
		t.Error("date-read not set")
	}
}

func TestRunTriageEndOfInputStops(t *testing.T) {
	settings := triageSettings(t)
	first := writeArticle(t, settings.InboxDir, "a.md",
		"---\ntitle: A\nsent-to-kindle: yes\n---\nbody")
	second := writeArticle(t, settings.InboxDir, "b.md",
		"---\ntitle: B\nsent-to-kindle: yes\n---\nbody")

	// Input runs out mid-first-article; both files stay untouched.
	beforeFirst, _ := os.ReadFile(first)
	beforeSecond, _ := os.ReadFile(second)

	output := runTriage(t, settings, "")
	if !strings.Contains(output, "Exiting...") {
		t.Error("output missing exit notice")
	}

	afterFirst, _ := os.ReadFile(first)
	afterSecond, _ := os.ReadFile(second)
	if string(beforeFirst) != string(afterFirst) || string(beforeSecond) != string(afterSecond) {
		t.Error("interrupted triage modified articles")
	}
}

func TestDisplayAuthor(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"scalar author", "---\nauthor: Jane Doe\n---\nx", "Jane Doe"},
		{"list authors", "---\nauthor:\n  - \"[[Jane Doe]]\"\n  - \"[[John Roe]]\"\n---\nx", "Jane Doe, John Roe"},
		{"missing author", "---\ntitle: T\n---\nx", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, _ := ParseFrontmatter(tt.header)
			if got := displayAuthor(fm); got != tt.want {
				t.Errorf("displayAuthor() = %q, want %q", got, tt.want)
			}
		})
	}
}
