package library

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// entryPattern parses a library directory name of the form "Title (Year)".
var entryPattern = regexp.MustCompile(`^(.+)\s\((\d{4})\)`)

var titleCaser = cases.Title(language.Und)

// Entry is one directory inside a library root.
type Entry struct {
	// Name is the directory name as listed on disk.
	Name string
	// Title is the parsed title portion, or the full name when no year
	// suffix is present.
	Title string
	// Year is the parsed four-digit year, empty when absent.
	Year string
}

// HasYear reports whether the entry carried a "(Year)" suffix.
func (e Entry) HasYear() bool { return e.Year != "" }

// DisplayTitle renders the entry title in title case for logs and summaries.
func (e Entry) DisplayTitle() string {
	return titleCaser.String(strings.ToLower(e.Title))
}

// Index caches the listing of one library root. A missing or unreadable root
// behaves as an empty library. The cache holds for the lifetime of the index;
// a run takes one listing per root.
type Index struct {
	root    string
	loaded  bool
	entries []Entry
}

// NewIndex creates an index over root. An empty root yields an index that is
// not Available and matches nothing.
func NewIndex(root string) *Index {
	return &Index{root: root}
}

// Root returns the indexed directory path.
func (x *Index) Root() string { return x.root }

// Available reports whether the index has a configured root.
func (x *Index) Available() bool { return x != nil && x.root != "" }

// Entries returns the cached directory listing, loading it on first use.
func (x *Index) Entries() []Entry {
	if x == nil || x.root == "" {
		return nil
	}
	if !x.loaded {
		x.loaded = true
		listing, err := os.ReadDir(x.root)
		if err != nil {
			return nil
		}
		x.entries = make([]Entry, 0, len(listing))
		for _, item := range listing {
			if !item.IsDir() {
				continue
			}
			x.entries = append(x.entries, ParseEntry(item.Name()))
		}
	}
	return x.entries
}

// DirPath returns the absolute path of a named entry.
func (x *Index) DirPath(name string) string {
	return filepath.Join(x.root, name)
}

// ParseEntry parses a library directory name into an Entry.
func ParseEntry(name string) Entry {
	if m := entryPattern.FindStringSubmatch(name); m != nil {
		return Entry{Name: name, Title: strings.TrimSpace(m[1]), Year: m[2]}
	}
	return Entry{Name: name, Title: strings.TrimSpace(name)}
}

// ParseTitleYear extracts "Title (Year)" from an arbitrary string, typically
// an asset filename. Returns empty strings when the pattern is absent.
func ParseTitleYear(s string) (title, year string) {
	if m := entryPattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), m[2]
	}
	return "", ""
}
