package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Inbox lists articles from the source directory.
type Inbox struct {
	dir string
}

// NewInbox creates an inbox over the given directory.
func NewInbox(dir string) *Inbox {
	return &Inbox{dir: dir}
}

// Candidates returns inbox articles with metadata, ordered ascending by
// modification time (oldest first, ties broken by path). The ordering is a
// contract: selection strategies assume oldest-first and reverse explicitly
// for newest-first. When filterSent is true, articles already marked
// sent-to-kindle are excluded.
func (in *Inbox) Candidates(filterSent bool) ([]Candidate, error) {
	paths, err := filepath.Glob(filepath.Join(in.dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("listing inbox %s: %w", in.dir, err)
	}

	candidates := make([]Candidate, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		fm, body := ParseFrontmatter(string(content))
		if filterSent && fm.Get(sentKey) == sentValue {
			continue
		}

		candidates = append(candidates, Candidate{
			Path: path,
			Meta: metadataFrom(path, fm, body, info.ModTime()),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Meta.MTime.Equal(candidates[j].Meta.MTime) {
			return candidates[i].Path < candidates[j].Path
		}
		return candidates[i].Meta.MTime.Before(candidates[j].Meta.MTime)
	})

	return candidates, nil
}

// Sent returns the paths of inbox articles marked sent-to-kindle, for the
// triage flow.
func (in *Inbox) Sent() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(in.dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("listing inbox %s: %w", in.dir, err)
	}

	var sent []string
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		fm, _ := ParseFrontmatter(string(content))
		if fm.Get(sentKey) == sentValue {
			sent = append(sent, path)
		}
	}
	sort.Strings(sent)
	return sent, nil
}
