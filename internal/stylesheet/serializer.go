package stylesheet

import (
	"fmt"
	"strings"
)

// Serialize reconstructs stylesheet text from a document.
// Fragments are joined with a blank line in input order. The result is not validated.
func Serialize(doc Document) string {
	var parts []string

	for _, e := range doc.Entries {
		switch {
		case e.Snippet != nil:
			parts = append(parts, *e.Snippet)
		case e.Content != nil && e.Name != "":
			parts = append(parts, pseudoContentRule(e.Name, *e.Content))
		}
	}

	for _, r := range doc.Rules {
		switch {
		case r.Class != nil:
			if r.Keyframes != nil {
				parts = append(parts, *r.Keyframes)
			}
			parts = append(parts, *r.Class)
		case r.Literal != nil:
			parts = append(parts, *r.Literal)
		}
	}

	return strings.Join(parts, "\n\n")
}

// pseudoContentRule builds the ::before rule used by hand-written icon-font entries.
func pseudoContentRule(name, content string) string {
	return fmt.Sprintf(".%s:before {\n  content: \"%s\";\n}", name, content)
}

// RoundTrip parses text, serializes the snippets back to text and parses again.
// It never yields a name that the first parse did not.
func RoundTrip(text string) []Snippet {
	return Parse(Serialize(FromSnippets(Parse(text))))
}
