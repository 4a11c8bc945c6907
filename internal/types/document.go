package types

import "strings"

// Document is the decoded, untrusted JSON object returned by the language
// model. Field access degrades to empty defaults; typed code must go through
// the reconciler before trusting anything in here.
type Document map[string]any

// Str returns the string value at key, or "" when absent or not a string.
func (d Document) Str(key string) string {
	if d == nil {
		return ""
	}
	s, _ := d[key].(string)
	return s
}

// Map returns the object value at key, or nil.
func (d Document) Map(key string) Document {
	if d == nil {
		return nil
	}
	m, _ := d[key].(map[string]any)
	return Document(m)
}

// Slice returns the array value at key, or nil.
func (d Document) Slice(key string) []any {
	if d == nil {
		return nil
	}
	s, _ := d[key].([]any)
	return s
}

// Section is a named, loosely typed group of resume items as declared by the
// model. Items hold either bare strings or map[string]any objects.
type Section struct {
	Name  string
	Type  string
	Items []any
}

// Sections decodes the document's "sections" array, skipping entries that
// are not objects.
func (d Document) Sections() []Section {
	raw := d.Slice("sections")
	sections := make([]Section, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		sd := Document(m)
		sections = append(sections, Section{
			Name:  sd.Str("name"),
			Type:  sd.Str("type"),
			Items: sd.Slice("items"),
		})
	}
	return sections
}

// MatchesKeyword reports whether the section's declared type equals the
// keyword or its name contains the keyword, case-insensitively. This dual
// match tolerates the model either tagging sections correctly or only
// naming them descriptively.
func (s Section) MatchesKeyword(keyword string) bool {
	keyword = strings.ToLower(keyword)
	return strings.ToLower(s.Type) == keyword ||
		strings.Contains(strings.ToLower(s.Name), keyword)
}

// ItemField returns the first non-empty string among keys for an object
// item. Bare-string items and unknown shapes yield "".
func ItemField(item any, keys ...string) string {
	m, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range keys {
		if s, _ := m[key].(string); s != "" {
			return s
		}
	}
	return ""
}

// ItemText returns the display text of an item: the string itself for bare
// strings, otherwise the item's title or name.
func ItemText(item any) string {
	if s, ok := item.(string); ok {
		return s
	}
	return ItemField(item, "title", "name")
}
