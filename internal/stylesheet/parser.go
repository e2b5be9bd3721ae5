package stylesheet

import (
	"regexp"
	"strings"
)

// keyframesPattern matches a single-level @keyframes block.
// The body runs up to the first closing brace, so nested blocks are cut
// short; that text is kept as-is.
var keyframesPattern = regexp.MustCompile(`@keyframes\s+(?P<name>[^\s{]+)\s*\{[^}]+\}`)

// classPattern matches a single-level class rule ".name { body }".
// Bodies containing braces never match and the block is dropped.
var classPattern = regexp.MustCompile(`\.(?P<name>[^\s{]+)\s*\{\s*(?P<body>[^{}]+?)\s*\}`)

// animationPattern captures the first token of an animation declaration.
var animationPattern = regexp.MustCompile(`animation:\s+([^\s;]+)`)

// colorPattern captures the value of the first color or background-color declaration.
var colorPattern = regexp.MustCompile(`(?i)(?:color|background-color)\s*:\s*([^;]+);?`)

// Parse scans rule text and returns one Snippet per class block, in source order.
//
// Only single-level blocks are recognized: nested rules, media queries and
// comments are not supported, and anything that does not match is skipped
// without error. A class whose animation names a @keyframes block from the
// same text is emitted together with that block.
func Parse(text string) []Snippet {
	keyframes := collectKeyframes(text)

	nameIdx := classPattern.SubexpIndex("name")
	bodyIdx := classPattern.SubexpIndex("body")

	snippets := make([]Snippet, 0)
	for _, m := range classPattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[nameIdx])
		body := strings.TrimSpace(m[bodyIdx])
		rule := strings.TrimSpace(m[0])

		if anim := animationPattern.FindStringSubmatch(body); anim != nil {
			if kf, ok := keyframes[strings.TrimSpace(anim[1])]; ok {
				snippets = append(snippets, Snippet{
					Name: name,
					Text: kf.Raw + "\n\n" + rule,
				})
				continue
			}
		}

		s := Snippet{
			Name: name,
			Text: "." + name + " {\n  " + formatDeclarations(body) + "\n}",
		}
		if c := colorPattern.FindStringSubmatch(body); c != nil {
			s.Color = strings.TrimSpace(c[1])
		}
		snippets = append(snippets, s)
	}
	return snippets
}

// collectKeyframes indexes every @keyframes block by name. Later blocks win.
func collectKeyframes(text string) map[string]Keyframes {
	nameIdx := keyframesPattern.SubexpIndex("name")

	keyframes := make(map[string]Keyframes)
	for _, m := range keyframesPattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[nameIdx])
		keyframes[name] = Keyframes{Name: name, Raw: strings.TrimSpace(m[0])}
	}
	return keyframes
}

// formatDeclarations puts each non-empty declaration on its own line.
// The result carries a trailing semicolon unless it is empty.
func formatDeclarations(body string) string {
	var decls []string
	for d := range strings.SplitSeq(body, ";") {
		if d = strings.TrimSpace(d); d != "" {
			decls = append(decls, d)
		}
	}
	if len(decls) == 0 {
		return ""
	}
	return strings.Join(decls, ";\n  ") + ";"
}
