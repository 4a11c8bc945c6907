// Package types defines the canonical portfolio record and the loose
// document wrapper for untrusted model output. The canonical record is the
// single owner of portfolio content; every downstream view renders from it.
package types

// ContactInfo holds the merged contact channels. All fields are optional.
// During reconciliation a channel is never overwritten once set
// (first-writer-wins).
type ContactInfo struct {
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Website   string `json:"website,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Experience is a single work history entry.
type Experience struct {
	ID          int64  `json:"id"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Education is a single education entry.
type Education struct {
	ID          int64  `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Description string `json:"description,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Project is a single project entry.
type Project struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Link         string `json:"link,omitempty"`
	GitHub       string `json:"github,omitempty"`
}

// Certification is a single certification entry. The model sometimes emits
// these as bare strings, in which case only Name is populated.
type Certification struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Year   string `json:"year,omitempty"`
	Link   string `json:"link,omitempty"`
}

// Language is a spoken language entry.
type Language struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Award is an award or achievement entry.
type Award struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Issuer      string `json:"issuer,omitempty"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

// CustomItem is one item of a custom section. Text is set when the model
// returned a bare string; otherwise the structured fields are used.
type CustomItem struct {
	Text         string `json:"text,omitempty"`
	Title        string `json:"title,omitempty"`
	Organization string `json:"organization,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Description  string `json:"description,omitempty"`
	Link         string `json:"link,omitempty"`
}

// CustomSection preserves resume content with no fixed home
// (e.g. Volunteering, Publications, leftover Profiles).
type CustomSection struct {
	Name  string       `json:"name"`
	Items []CustomItem `json:"items"`
}

// CanonicalResume is the normalized in-memory record of all portfolio
// content. It is created empty at session start, replaced wholesale after a
// successful import, and mutated field-by-field through the edit store.
type CanonicalResume struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Bio      string `json:"bio,omitempty"`

	// Skills is the comma-joined form used by form editing; SkillsArray is
	// the original array used for tag rendering. Both views are kept.
	Skills      string   `json:"skills"`
	SkillsArray []string `json:"skillsArray"`

	Experiences    []Experience    `json:"experiences"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Languages      []Language      `json:"languages"`
	Awards         []Award         `json:"awards"`
	CustomSections []CustomSection `json:"customSections"`

	Contact      ContactInfo `json:"contact"`
	ProfilePhoto string      `json:"profilePhoto,omitempty"`
}

// NewCanonicalResume returns an empty record with all lists initialized, so
// JSON encodings always carry arrays rather than nulls.
func NewCanonicalResume() *CanonicalResume {
	return &CanonicalResume{
		SkillsArray:    []string{},
		Experiences:    []Experience{},
		Education:      []Education{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Languages:      []Language{},
		Awards:         []Award{},
		CustomSections: []CustomSection{},
	}
}

// Clone returns a deep copy of the record. History snapshots rely on this;
// a snapshot must never alias the live record's slices.
func (r *CanonicalResume) Clone() *CanonicalResume {
	if r == nil {
		return nil
	}
	out := *r
	out.SkillsArray = append([]string(nil), r.SkillsArray...)
	out.Experiences = append([]Experience(nil), r.Experiences...)
	out.Education = append([]Education(nil), r.Education...)
	out.Projects = append([]Project(nil), r.Projects...)
	out.Certifications = append([]Certification(nil), r.Certifications...)
	out.Languages = append([]Language(nil), r.Languages...)
	out.Awards = append([]Award(nil), r.Awards...)
	out.CustomSections = make([]CustomSection, len(r.CustomSections))
	for i, cs := range r.CustomSections {
		out.CustomSections[i] = CustomSection{
			Name:  cs.Name,
			Items: append([]CustomItem(nil), cs.Items...),
		}
	}
	return &out
}
