// frontmatter.go
package main

import "strings"

const frontmatterDelimiter = "---"

// Frontmatter is the metadata block at the top of an article file: an ordered
// mapping from string keys to either a scalar string or a list of strings.
// Key order is preserved on serialization because article files are
// hand-edited; reordering keys on rewrite would show up as spurious diffs.
type Frontmatter struct {
	keys   []string
	values map[string]frontmatterValue
}

type frontmatterValue struct {
	scalar string
	list   []string
	isList bool
}

// NewFrontmatter returns an empty frontmatter.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{values: make(map[string]frontmatterValue)}
}

// ParseFrontmatter splits article content into its frontmatter and body.
// Content that does not start with the delimiter line, or that never closes
// the block, is treated as all body with an empty frontmatter. The parser is
// deliberately lenient: lines that are neither key-value pairs nor list items
// are skipped, never rejected.
func ParseFrontmatter(content string) (*Frontmatter, string) {
	fm := NewFrontmatter()

	if !strings.HasPrefix(content, frontmatterDelimiter+"\n") {
		return fm, content
	}

	rest := content[len(frontmatterDelimiter)+1:]

	var block, body string
	if after, ok := strings.CutPrefix(rest, frontmatterDelimiter+"\n"); ok {
		// The closing delimiter immediately follows the opener: empty header.
		body = after
	} else {
		end := strings.Index(rest, "\n"+frontmatterDelimiter+"\n")
		if end < 0 {
			return fm, content
		}
		block = rest[:end]
		body = rest[end+len(frontmatterDelimiter)+2:]
	}

	lines := strings.Split(block, "\n")
	openList := "" // key of the list currently collecting items

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if item, ok := strings.CutPrefix(line, "  - "); ok {
			if openList != "" {
				v := fm.values[openList]
				v.list = append(v.list, stripSurroundingQuotes(strings.TrimSpace(item)))
				fm.values[openList] = v
			}
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripSurroundingQuotes(strings.TrimSpace(value))

		if value != "" {
			fm.store(key, frontmatterValue{scalar: value})
			openList = ""
			continue
		}

		// Empty value: peek at the next line to decide between an empty
		// list and an empty scalar.
		if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "  - ") {
			fm.store(key, frontmatterValue{isList: true})
			openList = key
		} else {
			fm.store(key, frontmatterValue{})
			openList = ""
		}
	}

	return fm, body
}

// Serialize renders the frontmatter block followed by the body verbatim.
// Output is normalized (quoting, spacing), so it is not guaranteed to be
// byte-identical to the input it was parsed from, but it re-parses to the
// same mapping.
func (fm *Frontmatter) Serialize(body string) string {
	var b strings.Builder
	b.WriteString(frontmatterDelimiter + "\n")

	for _, key := range fm.keys {
		v := fm.values[key]
		switch {
		case v.isList:
			b.WriteString(key + ":\n")
			for _, item := range v.list {
				if strings.HasPrefix(item, "[[") || strings.Contains(item, " ") {
					b.WriteString("  - \"" + item + "\"\n")
				} else {
					b.WriteString("  - " + item + "\n")
				}
			}
		case v.scalar == "":
			b.WriteString(key + ":\n")
		case strings.Contains(v.scalar, ":") || strings.Contains(v.scalar, "\""):
			b.WriteString(key + ": \"" + v.scalar + "\"\n")
		default:
			b.WriteString(key + ": " + v.scalar + "\n")
		}
	}

	b.WriteString(frontmatterDelimiter + "\n")
	b.WriteString(body)
	return b.String()
}

// Get returns the scalar value for key, or "" when the key is absent or
// holds a list.
func (fm *Frontmatter) Get(key string) string {
	return fm.values[key].scalar
}

// GetList returns the list value for key, or nil when the key is absent or
// holds a scalar.
func (fm *Frontmatter) GetList(key string) []string {
	v := fm.values[key]
	if !v.isList {
		return nil
	}
	return v.list
}

// IsList reports whether key holds a list value.
func (fm *Frontmatter) IsList(key string) bool {
	return fm.values[key].isList
}

// Has reports whether key is present.
func (fm *Frontmatter) Has(key string) bool {
	_, ok := fm.values[key]
	return ok
}

// Set stores a scalar value. An existing key keeps its position; a new key
// is appended.
func (fm *Frontmatter) Set(key, value string) {
	fm.store(key, frontmatterValue{scalar: value})
}

// SetList stores a list value under the same ordering rules as Set.
func (fm *Frontmatter) SetList(key string, items []string) {
	fm.store(key, frontmatterValue{isList: true, list: items})
}

// Keys returns the keys in insertion order.
func (fm *Frontmatter) Keys() []string {
	return append([]string(nil), fm.keys...)
}

func (fm *Frontmatter) store(key string, v frontmatterValue) {
	if _, ok := fm.values[key]; !ok {
		fm.keys = append(fm.keys, key)
	}
	fm.values[key] = v
}

// stripSurroundingQuotes removes one pair of symmetric double quotes.
func stripSurroundingQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, "\"") && strings.HasSuffix(s, "\"") {
		return s[1 : len(s)-1]
	}
	return s
}
