// Package reconcile maps the model's loosely typed section output into the
// canonical portfolio record. It is the defensive boundary for untrusted
// JSON: no input shape may cause an error, and every missing or malformed
// field degrades to an empty default. Partial resume data is more useful
// than a hard failure.
package reconcile

import (
	"strings"
	"time"

	"github.com/jonathan/folioflow/internal/types"
)

// reservedKeywords mark sections with a fixed home in the canonical record;
// everything else is retained verbatim as a custom section.
var reservedKeywords = []string{
	"skills", "experience", "education", "projects",
	"certification", "language", "award", "achievement",
}

// Reconciler assigns session-local item identifiers while mapping. IDs are
// timestamp-based and strictly monotonic within one Reconciler.
type Reconciler struct {
	now    func() int64
	lastID int64
}

// New returns a Reconciler using wall-clock milliseconds for IDs.
func New() *Reconciler {
	return &Reconciler{now: func() int64 { return time.Now().UnixMilli() }}
}

// NewWithClock overrides the millisecond clock, for deterministic tests.
func NewWithClock(now func() int64) *Reconciler {
	return &Reconciler{now: now}
}

func (r *Reconciler) nextID() int64 {
	id := r.now()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

// Reconcile builds a canonical record from the raw model document.
func (r *Reconciler) Reconcile(doc types.Document) *types.CanonicalResume {
	out := types.NewCanonicalResume()
	out.FullName = doc.Str("fullName")
	out.Title = doc.Str("title")
	out.Location = doc.Str("location")
	out.Bio = doc.Str("bio")

	sections := doc.Sections()
	contact := contactFromDoc(doc.Map("contact"))
	sections = mergeProfiles(sections, &contact)
	out.Contact = contact

	if s, ok := findSection(sections, "skills"); ok {
		out.SkillsArray = stringItems(s.Items)
		out.Skills = strings.Join(out.SkillsArray, ", ")
	}

	if s, ok := findSection(sections, "experience"); ok {
		for _, item := range s.Items {
			out.Experiences = append(out.Experiences, types.Experience{
				ID:          r.nextID(),
				Role:        types.ItemField(item, "title"),
				Company:     types.ItemField(item, "organization"),
				Duration:    types.ItemField(item, "duration"),
				Location:    types.ItemField(item, "location"),
				Description: types.ItemField(item, "description"),
				Link:        types.ItemField(item, "link"),
			})
		}
	}

	if s, ok := findSection(sections, "education"); ok {
		for _, item := range s.Items {
			out.Education = append(out.Education, types.Education{
				ID:          r.nextID(),
				Degree:      types.ItemField(item, "title"),
				Institution: types.ItemField(item, "organization"),
				Year:        types.ItemField(item, "duration"),
				Description: types.ItemField(item, "description"),
				GPA:         types.ItemField(item, "gpa"),
				Link:        types.ItemField(item, "link"),
			})
		}
	}

	if s, ok := findSection(sections, "projects"); ok {
		for _, item := range s.Items {
			out.Projects = append(out.Projects, types.Project{
				ID:           r.nextID(),
				Name:         types.ItemField(item, "title"),
				Description:  types.ItemField(item, "description"),
				Technologies: types.ItemField(item, "technologies"),
				Link:         types.ItemField(item, "link"),
				GitHub:       types.ItemField(item, "github"),
			})
		}
	}

	// Certifications fall back to a top-level array when no section matches;
	// some models emit them outside the sections list.
	certItems := doc.Slice("certifications")
	if s, ok := findSection(sections, "certification"); ok {
		certItems = s.Items
	}
	for _, item := range certItems {
		out.Certifications = append(out.Certifications, types.Certification{
			ID:     r.nextID(),
			Name:   types.ItemText(item),
			Issuer: types.ItemField(item, "organization", "issuer"),
			Year:   types.ItemField(item, "duration", "year"),
			Link:   types.ItemField(item, "link"),
		})
	}

	if s, ok := findSection(sections, "language"); ok {
		for _, item := range s.Items {
			proficiency := types.ItemField(item, "proficiency", "level")
			if proficiency == "" {
				proficiency = "Fluent"
			}
			out.Languages = append(out.Languages, types.Language{
				ID:          r.nextID(),
				Name:        types.ItemText(item),
				Proficiency: proficiency,
			})
		}
	}

	awardsSection, ok := findSection(sections, "award")
	if !ok {
		awardsSection, ok = findSection(sections, "achievement")
	}
	if ok {
		for _, item := range awardsSection.Items {
			out.Awards = append(out.Awards, types.Award{
				ID:          r.nextID(),
				Title:       types.ItemText(item),
				Issuer:      types.ItemField(item, "organization", "issuer"),
				Year:        types.ItemField(item, "duration", "year"),
				Description: types.ItemField(item, "description"),
			})
		}
	}

	out.CustomSections = customSections(sections)
	return out
}

// findSection locates a section by keyword: declared type equality or name
// substring, both case-insensitive.
func findSection(sections []types.Section, keyword string) (types.Section, bool) {
	for _, s := range sections {
		if s.MatchesKeyword(keyword) {
			return s, true
		}
	}
	return types.Section{}, false
}

// stringItems flattens loose items to their display text, dropping empties.
func stringItems(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if text := types.ItemText(item); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// customSections keeps every section without a reserved home, converting
// loose items into the typed custom shape for open-ended rendering.
func customSections(sections []types.Section) []types.CustomSection {
	out := []types.CustomSection{}
	for _, s := range sections {
		if isReserved(s) {
			continue
		}
		cs := types.CustomSection{Name: s.Name, Items: []types.CustomItem{}}
		for _, item := range s.Items {
			cs.Items = append(cs.Items, customItem(item))
		}
		out = append(out, cs)
	}
	return out
}

func isReserved(s types.Section) bool {
	typ := strings.ToLower(s.Type)
	name := strings.ToLower(s.Name)
	for _, keyword := range reservedKeywords {
		if strings.Contains(typ, keyword) || strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

func customItem(item any) types.CustomItem {
	if s, ok := item.(string); ok {
		return types.CustomItem{Text: s}
	}
	return types.CustomItem{
		Title:        types.ItemField(item, "title", "name"),
		Organization: types.ItemField(item, "organization", "issuer"),
		Duration:     types.ItemField(item, "duration", "date"),
		Description:  types.ItemField(item, "description"),
		Link:         types.ItemField(item, "link"),
	}
}
