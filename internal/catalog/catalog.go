package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/iconforge/iconforge/internal/errors"
)

// Entry is one item of the editor data file: either an icon (Paths set) or a style snippet.
type Entry struct {
	Name    string   `json:"name"`
	Paths   []string `json:"paths,omitempty"`
	ViewBox int      `json:"viewBox,omitempty"`
	Snippet string   `json:"snippet,omitempty"`
	Color   string   `json:"color,omitempty"`
}

// IsIcon reports whether the entry carries vector path data.
func (e Entry) IsIcon() bool {
	return len(e.Paths) > 0
}

// Detail is the short label shown next to a completion item.
func (e Entry) Detail() string {
	switch {
	case e.IsIcon():
		return "SVG Icon"
	case e.Snippet != "":
		return "Style Snippet"
	}
	return ""
}

// Catalog is an immutable, name-indexed view of a data file.
// It is safe for concurrent use.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

// New builds a catalog. When names collide, Find returns the first entry.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: entries,
		byName:  make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if _, ok := c.byName[e.Name]; !ok {
			c.byName[e.Name] = i
		}
	}
	return c
}

// wrappedData is the alternate data file shape {"classes": [...]}.
type wrappedData struct {
	Classes *[]Entry `json:"classes"`
}

// Decode parses a data file holding either an array of entries or an object with a "classes" array.
func Decode(data []byte) (*Catalog, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		return New(entries), nil
	}

	var w wrappedData
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if w.Classes == nil {
		return nil, fmt.Errorf("could not find a valid array of icon/style data")
	}
	return New(*w.Classes), nil
}

// Load reads and decodes a data file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFound(path)
		}
		return nil, errors.NewInternal(err)
	}
	c, err := Decode(data)
	if err != nil {
		return nil, errors.NewMalformedDocument(path, err)
	}
	return c, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the entries in file order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Find returns the first entry with exactly the given name.
func (c *Catalog) Find(name string) (Entry, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Sorted returns the entries in natural, case-insensitive name order ("is-2" before "is-10").
func (c *Catalog) Sorted() []Entry {
	out := c.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return lessName(out[i].Name, out[j].Name)
	})
	return out
}

// Filter returns the sorted entries whose name starts with prefix (case-insensitive).
// An empty prefix returns every entry.
func (c *Catalog) Filter(prefix string) []Entry {
	sorted := c.Sorted()
	if prefix == "" {
		return sorted
	}
	prefix = strings.ToLower(prefix)

	out := make([]Entry, 0)
	for _, e := range sorted {
		if strings.HasPrefix(strings.ToLower(e.Name), prefix) {
			out = append(out, e)
		}
	}
	return out
}

func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return natural.Less(la, lb)
	}
	return natural.Less(a, b)
}
