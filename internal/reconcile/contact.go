package reconcile

import (
	"strings"

	"github.com/jonathan/folioflow/internal/types"
)

// contactFromDoc reads the model's contact object defensively.
func contactFromDoc(contact types.Document) types.ContactInfo {
	return types.ContactInfo{
		Email:     contact.Str("email"),
		Phone:     contact.Str("phone"),
		LinkedIn:  contact.Str("linkedin"),
		GitHub:    contact.Str("github"),
		Website:   contact.Str("website"),
		Twitter:   contact.Str("twitter"),
		Portfolio: contact.Str("portfolio"),
	}
}

// mergeProfiles resolves a "Profiles"/"Socials" section into contact fields
// without losing data. Named platforms take precedence; after those, the
// first unclassified item fills website and the second fills portfolio.
// Anything left over is written back into the section as normalized items,
// and the section is dropped entirely once empty. A contact channel already
// set is never overwritten.
func mergeProfiles(sections []types.Section, contact *types.ContactInfo) []types.Section {
	idx := -1
	for i, s := range sections {
		name := strings.ToLower(s.Name)
		if strings.Contains(name, "profile") || strings.Contains(name, "social") {
			idx = i
			break
		}
	}
	if idx == -1 || sections[idx].Items == nil {
		return sections
	}

	var remaining []any
	for _, item := range sections[idx].Items {
		if !claimContactItem(item, contact) {
			remaining = append(remaining, normalizeProfileItem(item))
		}
	}

	out := append([]types.Section(nil), sections...)
	if len(remaining) > 0 {
		out[idx].Items = remaining
		return out
	}
	return append(out[:idx], out[idx+1:]...)
}

// claimContactItem classifies one profile item against the fixed priority
// order and reports whether a contact field consumed it.
func claimContactItem(item any, contact *types.ContactInfo) bool {
	text := strings.ToLower(types.ItemText(item))
	link := types.ItemField(item, "link")

	value := link
	if value == "" {
		value = text
	}
	// The generic fallbacks keep the original casing and prefer any
	// descriptive text over the lowered match string.
	generic := link
	if generic == "" {
		if s, ok := item.(string); ok {
			generic = s
		} else {
			generic = types.ItemField(item, "description", "title")
		}
	}

	switch {
	case contact.Twitter == "" && (strings.Contains(text, "twitter") || strings.Contains(text, " x ") || text == "x"):
		contact.Twitter = value
	case contact.GitHub == "" && strings.Contains(text, "github"):
		contact.GitHub = value
	case contact.LinkedIn == "" && strings.Contains(text, "linkedin"):
		contact.LinkedIn = value
	case contact.Website == "":
		contact.Website = generic
	case contact.Portfolio == "":
		contact.Portfolio = generic
	default:
		return false
	}
	return true
}

// normalizeProfileItem converts leftover bare strings into the structured
// shape so the retained section renders uniformly.
func normalizeProfileItem(item any) any {
	if s, ok := item.(string); ok {
		return map[string]any{"title": s, "description": "", "link": ""}
	}
	return item
}
