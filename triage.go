// triage.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RunTriage walks every sent article through the interactive review flow:
// skip, like, annotate, archive. Header changes land via the lifecycle
// writer, so an interrupted run leaves the current article at its prior
// content while already-reviewed articles stay applied.
func RunTriage(scanner *bufio.Scanner, out io.Writer, settings *Settings) error {
	inbox := NewInbox(settings.InboxDir)
	paths, err := inbox.Sent()
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		fmt.Fprintf(out, "No articles found with '%s: %s' in %s.\n", sentKey, sentValue, settings.InboxDir)
		return nil
	}

	fmt.Fprintf(out, "Found %d article(s) to process.\n", len(paths))

	for i, path := range paths {
		fmt.Fprintf(out, "\n[Article %d/%d]\n", i+1, len(paths))
		done, err := triageArticle(scanner, out, path, settings.ArchiveDir)
		if err != nil {
			return err
		}
		if done {
			fmt.Fprintln(out, "\nExiting...")
			return nil
		}
	}

	divider := strings.Repeat("=", 60)
	fmt.Fprintln(out, "\n"+divider)
	fmt.Fprintln(out, "All articles processed!")
	fmt.Fprintln(out, divider)
	return nil
}

// triageArticle reviews one article. The bool result reports end of input.
func triageArticle(scanner *bufio.Scanner, out io.Writer, path, archiveDir string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	fm, body := ParseFrontmatter(string(content))

	title := fm.Get("title")
	if title == "" {
		title = articleStem(path)
	}

	divider := strings.Repeat("=", 60)
	fmt.Fprintln(out, "\n"+divider)
	fmt.Fprintf(out, "Title: %s\n", title)
	fmt.Fprintf(out, "Author: %s\n", displayAuthor(fm))
	fmt.Fprintln(out, divider)

	answer, ok := prompt(scanner, out, "\n[1/4] Skip this article? (y to skip, Enter to continue): ")
	if !ok {
		return true, nil
	}
	if answer == "y" {
		fmt.Fprintln(out, "Skipping...")
		return false, nil
	}

	answer, ok = prompt(scanner, out, "[2/4] Like this article? (y/n, Enter for no): ")
	if !ok {
		return true, nil
	}
	if answer == "y" {
		fm.Set(likedKey, sentValue)
		fmt.Fprintln(out, "Marked as liked.")
	}

	notes, ok := promptRaw(scanner, out, "[3/4] Quick notes (or Enter to skip): ")
	if !ok {
		return true, nil
	}
	if notes != "" {
		if existing := fm.Get(notesKey); existing != "" {
			fm.Set(notesKey, existing+" | "+notes)
		} else {
			fm.Set(notesKey, notes)
		}
		fmt.Fprintln(out, "Notes saved.")
	}

	answer, ok = prompt(scanner, out, "[4/4] Archive this article? (y/n, Enter for no): ")
	if !ok {
		return true, nil
	}
	if answer == "y" {
		fm.Set(readStatusKey, "read")
		fm.Set(dateReadKey, time.Now().Format(displayDateFormat))

		dest, err := Archive(path, archiveDir, fm.Serialize(body))
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Archived to: %s\n", filepath.Base(dest))
		return false, nil
	}

	if err := writeFileAtomic(path, []byte(fm.Serialize(body))); err != nil {
		return false, err
	}
	fmt.Fprintln(out, "Changes saved (not archived).")
	return false, nil
}

// displayAuthor renders the author field for the triage banner; list values
// come out comma-joined with wiki brackets stripped.
func displayAuthor(fm *Frontmatter) string {
	if fm.IsList("author") {
		items := fm.GetList("author")
		names := make([]string, 0, len(items))
		for _, item := range items {
			names = append(names, strings.Trim(item, "[]"))
		}
		if len(names) > 0 {
			return strings.Join(names, ", ")
		}
	}
	if author := fm.Get("author"); author != "" {
		return author
	}
	return "Unknown"
}

// prompt reads one answer, lowercased and trimmed. ok is false at end of
// input.
func prompt(scanner *bufio.Scanner, out io.Writer, msg string) (string, bool) {
	answer, ok := promptRaw(scanner, out, msg)
	return strings.ToLower(answer), ok
}

func promptRaw(scanner *bufio.Scanner, out io.Writer, msg string) (string, bool) {
	fmt.Fprint(out, msg)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}
