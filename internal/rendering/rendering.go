// Package rendering turns a canonical portfolio record into themed HTML. It
// is a pure function of the record and the theme options; the same input
// always yields the same markup.
package rendering

import (
	"embed"
	"html/template"
	"strings"

	"github.com/jonathan/folioflow/internal/dates"
	"github.com/jonathan/folioflow/internal/types"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Template names a portfolio layout.
type Template string

// Supported layouts.
const (
	TemplateModern  Template = "modern"
	TemplateMinimal Template = "minimal"
	TemplateBold    Template = "bold"
)

// Accent names a color palette.
type Accent string

// Supported accent palettes.
const (
	AccentViolet  Accent = "violet"
	AccentBlue    Accent = "blue"
	AccentEmerald Accent = "emerald"
	AccentRose    Accent = "rose"
)

// Options selects the layout and palette for one render.
type Options struct {
	Template Template
	Accent   Accent
}

// DefaultOptions returns the default theme.
func DefaultOptions() Options {
	return Options{Template: TemplateModern, Accent: AccentViolet}
}

// Palette holds the concrete colors for an accent.
type Palette struct {
	Primary string
	Bright  string
	Tint    string
	Border  string
}

var palettes = map[Accent]Palette{
	AccentViolet:  {Primary: "#7c3aed", Bright: "#a78bfa", Tint: "#f5f3ff", Border: "#ddd6fe"},
	AccentBlue:    {Primary: "#2563eb", Bright: "#60a5fa", Tint: "#eff6ff", Border: "#bfdbfe"},
	AccentEmerald: {Primary: "#059669", Bright: "#34d399", Tint: "#ecfdf5", Border: "#a7f3d0"},
	AccentRose:    {Primary: "#e11d48", Bright: "#fb7185", Tint: "#fff1f2", Border: "#fecdd3"},
}

var funcMap = template.FuncMap{
	"duration": dates.NormalizeDuration,
	"tech":     techList,
	"isURL":    looksLikeURL,
	"anchor":   anchorID,
}

var templates = template.Must(
	template.New("portfolio").Funcs(funcMap).ParseFS(templateFS, "templates/*.gohtml"),
)

// view is the template root: the record plus derived presentation fields.
type view struct {
	*types.CanonicalResume
	// Photo bypasses URL filtering; profile photos are data URLs.
	Photo    template.URL
	Initials string
	Accent   Palette
}

// Render produces the portfolio body markup for the given theme.
func Render(data *types.CanonicalResume, opts Options) (string, error) {
	name := opts.Template
	if name == "" {
		name = TemplateModern
	}
	if !templateExists(name) {
		return "", &UnknownTemplateError{Name: string(name)}
	}

	palette, ok := palettes[opts.Accent]
	if !ok {
		palette = palettes[AccentViolet]
	}

	v := view{
		CanonicalResume: data,
		Photo:           template.URL(data.ProfilePhoto),
		Initials:        Initials(data.FullName),
		Accent:          palette,
	}

	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, string(name)+".gohtml", v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Templates lists the available layout names.
func Templates() []Template {
	return []Template{TemplateModern, TemplateMinimal, TemplateBold}
}

func templateExists(name Template) bool {
	for _, t := range Templates() {
		if t == name {
			return true
		}
	}
	return false
}

// Initials derives the avatar fallback: first letters of the first two
// words, uppercased. "ME" when there is no name at all.
func Initials(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "ME"
	}
	var sb strings.Builder
	for i, f := range fields {
		if i == 2 {
			break
		}
		sb.WriteString(strings.ToUpper(f[:1]))
	}
	return sb.String()
}

// looksLikeURL reports whether a loose custom-section string should render
// as a link rather than a tag pill.
func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http") || strings.Contains(s, ".com") || strings.Contains(s, ".io")
}

// anchorID converts a section name into a fragment identifier.
func anchorID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// techList splits a comma-separated technology string into trimmed tags.
func techList(technologies string) []string {
	if strings.TrimSpace(technologies) == "" {
		return nil
	}
	parts := strings.Split(technologies, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
