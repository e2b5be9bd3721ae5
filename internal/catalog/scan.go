package catalog

import "regexp"

// referencePattern matches class names the editor decorates ("is-*" styles, "if-*" icons).
var referencePattern = regexp.MustCompile(`(is|if)-[a-zA-Z0-9-]+`)

// Reference is one occurrence of a catalog name in a document.
// Start and End are byte offsets.
type Reference struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Color string `json:"color,omitempty"`
}

// ColorGroup collects the references that share a color swatch.
type ColorGroup struct {
	Color      string      `json:"color"`
	References []Reference `json:"references"`
}

// Scan finds every is-/if- name in text that exists in the catalog.
func (c *Catalog) Scan(text string) []Reference {
	refs := make([]Reference, 0)
	for _, loc := range referencePattern.FindAllStringIndex(text, -1) {
		name := text[loc[0]:loc[1]]
		e, ok := c.Find(name)
		if !ok {
			continue
		}
		refs = append(refs, Reference{Name: name, Start: loc[0], End: loc[1], Color: e.Color})
	}
	return refs
}

// ColorGroups groups the colored references in text by color, in order of first appearance.
// References to entries without a color are left out.
func (c *Catalog) ColorGroups(text string) []ColorGroup {
	groups := make([]ColorGroup, 0)
	index := make(map[string]int)
	for _, ref := range c.Scan(text) {
		if ref.Color == "" {
			continue
		}
		i, ok := index[ref.Color]
		if !ok {
			i = len(groups)
			index[ref.Color] = i
			groups = append(groups, ColorGroup{Color: ref.Color})
		}
		groups[i].References = append(groups[i].References, ref)
	}
	return groups
}
