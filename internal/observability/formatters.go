// Package observability provides the process logger and formatted output
// utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/folioflow/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtraction outputs a summary of the extracted resume text.
func (p *Printer) PrintExtraction(text string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Characters: %d\n", len(text)))
	sb.WriteString(fmt.Sprintf("Lines:      %d\n", strings.Count(text, "\n")+1))
	sb.WriteString(fmt.Sprintf("Pages:      %d\n", strings.Count(text, "TEXT ---")))
	if strings.Contains(text, "[LEFT COLUMN]") {
		sb.WriteString("Layout:     two-column\n")
	} else {
		sb.WriteString("Layout:     single-column\n")
	}

	p.printBox("Extracted Resume Text", sb.String())
}

// PrintResume outputs a human-readable summary of the reconciled record.
func (p *Printer) PrintResume(resume *types.CanonicalResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", resume.FullName))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", resume.Title))
	sb.WriteString(fmt.Sprintf("Location: %s\n", resume.Location))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(resume.SkillsArray)))
	for i, skill := range resume.SkillsArray {
		if i == maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.SkillsArray)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  - %s\n", skill))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Experience:      %d\n", len(resume.Experiences)))
	sb.WriteString(fmt.Sprintf("Education:       %d\n", len(resume.Education)))
	sb.WriteString(fmt.Sprintf("Projects:        %d\n", len(resume.Projects)))
	sb.WriteString(fmt.Sprintf("Certifications:  %d\n", len(resume.Certifications)))
	sb.WriteString(fmt.Sprintf("Languages:       %d\n", len(resume.Languages)))
	sb.WriteString(fmt.Sprintf("Awards:          %d\n", len(resume.Awards)))

	if len(resume.CustomSections) > 0 {
		sb.WriteString("\nCustom sections:\n")
		for _, s := range resume.CustomSections {
			sb.WriteString(fmt.Sprintf("  - %s (%d items)\n", s.Name, len(s.Items)))
		}
	}

	p.printBox("Reconciled Portfolio Record", sb.String())
}

// PrintContact outputs the merged contact channels, skipping empty ones.
func (p *Printer) PrintContact(contact types.ContactInfo) {
	var sb strings.Builder
	fields := []struct {
		label, value string
	}{
		{"Email", contact.Email},
		{"Phone", contact.Phone},
		{"LinkedIn", contact.LinkedIn},
		{"GitHub", contact.GitHub},
		{"Website", contact.Website},
		{"Twitter", contact.Twitter},
		{"Portfolio", contact.Portfolio},
	}
	for _, f := range fields {
		if f.value != "" {
			sb.WriteString(fmt.Sprintf("%-10s %s\n", f.label+":", f.value))
		}
	}
	if sb.Len() == 0 {
		sb.WriteString("(none found)\n")
	}

	p.printBox("Contact Channels", sb.String())
}
