package stylesheet

// Snippet is one named, ready-to-emit style rule.
// When the rule drives an animation, Text carries the @keyframes block
// followed by a blank line and the rule itself.
type Snippet struct {
	// Name is the class name without the leading dot
	Name string `json:"name"`

	// Text is the rule text (JSON key "snippet" matches the extension data file)
	Text string `json:"snippet"`

	// Color is the value of the first color or background-color declaration.
	// Empty for animation snippets and rules without a color.
	Color string `json:"color,omitempty"`
}

// Keyframes is the verbatim text of one @keyframes rule.
type Keyframes struct {
	Name string
	Raw  string
}
