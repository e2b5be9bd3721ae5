package stylesheet

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one element of a list-shaped document.
// Snippet and Content are pointers so an explicitly empty value still counts as present.
type Entry struct {
	Name    string  `json:"name,omitempty"`
	Snippet *string `json:"snippet,omitempty"`
	Color   string  `json:"color,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Rule is one value of a mapping-shaped document.
// Either Literal is set (a plain rule string) or Class is set, optionally with Keyframes.
type Rule struct {
	Name      string
	Literal   *string
	Class     *string
	Keyframes *string
}

// Document is the input accepted by Serialize: either a list of entries or
// a name-keyed mapping of rules. Mapping order follows the source JSON.
type Document struct {
	Entries []Entry
	Rules   []Rule
}

// Len returns the number of entries plus rules.
func (d Document) Len() int {
	return len(d.Entries) + len(d.Rules)
}

// FromSnippets wraps parsed snippets as a list-shaped document.
func FromSnippets(snippets []Snippet) Document {
	entries := make([]Entry, len(snippets))
	for i, s := range snippets {
		text := s.Text
		entries[i] = Entry{Name: s.Name, Snippet: &text, Color: s.Color}
	}
	return Document{Entries: entries}
}

// UnmarshalJSON decodes either a JSON array of entries or a JSON object of rules.
// Array elements that are not objects and mapping values of any other shape are skipped.
func (d *Document) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty document")
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		d.Entries = make([]Entry, 0, len(items))
		d.Rules = nil
		for _, item := range items {
			if e, ok := decodeEntry(item); ok {
				d.Entries = append(d.Entries, e)
			}
		}
		return nil
	case '{':
		rules, err := decodeRules(data)
		if err != nil {
			return err
		}
		d.Entries = nil
		d.Rules = rules
		return nil
	default:
		return fmt.Errorf("document must be a JSON array or object")
	}
}

// decodeEntry reads the fields of one list element independently, so a
// mistyped name or color does not cost the entry its snippet.
// ok is false when item is not an object.
func decodeEntry(item json.RawMessage) (Entry, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
		return Entry{}, false
	}

	var e Entry
	if name := stringField(obj, "name"); name != nil {
		e.Name = *name
	}
	if color := stringField(obj, "color"); color != nil {
		e.Color = *color
	}
	e.Snippet = stringField(obj, "snippet")
	e.Content = stringField(obj, "content")
	return e, true
}

// stringField returns obj[key] when it is a JSON string, else nil.
func stringField(obj map[string]json.RawMessage, key string) *string {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	var v *string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// decodeRules walks a JSON object token by token so that key order is preserved.
func decodeRules(data []byte) ([]Rule, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}

	rules := make([]Rule, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("value for %q: %w", name, err)
		}
		if rule, ok := decodeRule(name, raw); ok {
			rules = append(rules, rule)
		}
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return rules, nil
}

// decodeRule interprets one mapping value. ok is false for shapes Serialize ignores.
func decodeRule(name string, raw json.RawMessage) (Rule, bool) {
	var literal string
	if err := json.Unmarshal(raw, &literal); err == nil {
		return Rule{Name: name, Literal: &literal}, true
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Rule{}, false
	}
	classRaw, ok := obj["class"]
	if !ok {
		return Rule{}, false
	}
	var class string
	if err := json.Unmarshal(classRaw, &class); err != nil {
		return Rule{}, false
	}

	rule := Rule{Name: name, Class: &class}
	if kfRaw, ok := obj["keyframes"]; ok {
		var kf string
		if err := json.Unmarshal(kfRaw, &kf); err == nil {
			rule.Keyframes = &kf
		}
	}
	return rule, true
}
