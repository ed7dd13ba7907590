package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MarkField sets (or overwrites) a single header field and rewrites the
// article. Re-marking an already-marked article is an idempotent value
// overwrite, not an error.
func MarkField(path, key, value string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	fm, body := ParseFrontmatter(string(content))
	fm.Set(key, value)

	return writeFileAtomic(path, []byte(fm.Serialize(body)))
}

// writeFileAtomic writes via a temp file in the same directory and renames
// it over the target, so the caller either sees the full new content or the
// prior content, never a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".kindlebundle-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting temp file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Archive writes content into destDir under the article's name, appending an
// incrementing numeric suffix on collision, then removes the original. An
// existing archived file is never overwritten or deleted.
func Archive(path, destDir, content string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("creating archive directory: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	dest := filepath.Join(destDir, base)
	for counter := 1; ; counter++ {
		_, err := os.Stat(dest)
		if os.IsNotExist(err) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("checking archive destination %s: %w", dest, err)
		}
		dest = filepath.Join(destDir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
	}

	if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing archived article: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("removing original article: %w", err)
	}
	return dest, nil
}
