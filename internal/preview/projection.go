// Package preview derives the visual presentation of a resume document:
// date formatting, section visibility, skill grouping and contact links,
// plus the deterministic HTML rendering of the live preview.
//
// Both export pipelines consume the projection built here. The raster
// path rasterizes the rendered HTML; the flow-document path serializes
// the projection directly. Keeping the shared rules in one place is what
// keeps the two outputs visually consistent.
package preview

import (
	"strconv"
	"strings"

	"github.com/jeffynunes09/create-resume/internal/types"
)

// Presentation labels. The application ships a single pt-BR locale.
const (
	PlaceholderName = "Seu Nome"
	PresentLabel    = "Presente"

	SummaryHeading    = "Resumo"
	ExperienceHeading = "Experiência Profissional"
	EducationHeading  = "Educação"
	SkillsHeading     = "Habilidades"

	// OtherCategory is the sentinel bucket for skills without a category.
	OtherCategory = "Other"
)

// monthAbbrevs maps month 1-12 to its three-letter abbreviation.
var monthAbbrevs = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// FormatDate formats a "YYYY-MM" date as "Jan 2006". Malformed input
// (missing month or year, non-numeric month, month outside 1-12) is
// echoed back unchanged rather than rejected; an empty input yields "".
func FormatDate(date string) string {
	if date == "" {
		return ""
	}
	parts := strings.Split(date, "-")
	if len(parts) < 2 {
		return date
	}
	year, month := parts[0], parts[1]
	if year == "" || month == "" {
		return date
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return date
	}
	return monthAbbrevs[m-1] + " " + year
}

// DateRange renders "start - end" with the present label replacing the
// end date while current is set, regardless of any stored end value.
func DateRange(start, end string, current bool) string {
	if current {
		return FormatDate(start) + " - " + PresentLabel
	}
	return FormatDate(start) + " - " + FormatDate(end)
}

// ContactKind distinguishes contact line entries.
type ContactKind string

// Contact kinds in display order.
const (
	ContactEmail    ContactKind = "email"
	ContactPhone    ContactKind = "phone"
	ContactLocation ContactKind = "location"
	ContactLinkedIn ContactKind = "linkedin"
	ContactGitHub   ContactKind = "github"
)

// Contact is one entry of the contact line. Href is empty for entries
// that are not semantically links (phone, location).
type Contact struct {
	Kind  ContactKind
	Label string
	Href  string
}

// ExperienceView is one experience entry ready for display.
type ExperienceView struct {
	Position    string
	Company     string
	DateRange   string
	Description string
	Highlights  []string
}

// EducationView is one education entry ready for display.
type EducationView struct {
	Title       string // "degree em field"
	Institution string
	GPA         string
	DateRange   string
}

// SkillGroup is a display grouping of skill names sharing a category.
// Groups appear in order of first appearance; names keep the overall
// list order within each group.
type SkillGroup struct {
	Category string
	Names    []string
}

// Document is the presentation projection of a resume draft: everything
// the preview renderer and both exporters need, with all shared rules
// (visibility, dates, grouping, links) already applied.
type Document struct {
	Name        string
	Contacts    []Contact
	Summary     string
	Experiences []ExperienceView
	Education   []EducationView
	SkillGroups []SkillGroup
	SkillNames  []string
}

// HasSummary reports whether the summary section renders.
func (d *Document) HasSummary() bool { return d.Summary != "" }

// HasExperiences reports whether the experience section renders.
func (d *Document) HasExperiences() bool { return len(d.Experiences) > 0 }

// HasEducation reports whether the education section renders.
func (d *Document) HasEducation() bool { return len(d.Education) > 0 }

// HasSkills reports whether the skills section renders.
func (d *Document) HasSkills() bool { return len(d.SkillNames) > 0 }

// ExternalURL normalizes a stored profile value into a clickable URL,
// auto-prefixing https:// when the value lacks a scheme.
func ExternalURL(value string) string {
	if strings.HasPrefix(value, "http") {
		return value
	}
	return "https://" + value
}

// Project builds the presentation projection from the document model.
// It is a pure function: same input, same projection.
func Project(in types.ResumeInput) Document {
	doc := Document{Name: in.PersonalInfo.FullName, Summary: in.Summary}
	if doc.Name == "" {
		doc.Name = PlaceholderName
	}

	pi := in.PersonalInfo
	if pi.Email != "" {
		doc.Contacts = append(doc.Contacts, Contact{ContactEmail, pi.Email, "mailto:" + pi.Email})
	}
	if pi.Phone != "" {
		doc.Contacts = append(doc.Contacts, Contact{ContactPhone, pi.Phone, ""})
	}
	if pi.Location != "" {
		doc.Contacts = append(doc.Contacts, Contact{ContactLocation, pi.Location, ""})
	}
	if pi.LinkedIn != "" {
		doc.Contacts = append(doc.Contacts, Contact{ContactLinkedIn, "LinkedIn", ExternalURL(pi.LinkedIn)})
	}
	if pi.GitHub != "" {
		doc.Contacts = append(doc.Contacts, Contact{ContactGitHub, "GitHub", ExternalURL(pi.GitHub)})
	}

	for _, exp := range in.Experiences {
		doc.Experiences = append(doc.Experiences, ExperienceView{
			Position:    exp.Position,
			Company:     exp.Company,
			DateRange:   DateRange(exp.StartDate, exp.EndDate, exp.Current),
			Description: exp.Description,
			Highlights:  exp.Highlights,
		})
	}

	for _, edu := range in.Education {
		doc.Education = append(doc.Education, EducationView{
			Title:       edu.Degree + " em " + edu.Field,
			Institution: edu.Institution,
			GPA:         edu.GPA,
			DateRange:   DateRange(edu.StartDate, edu.EndDate, edu.Current),
		})
	}

	doc.SkillGroups = GroupSkills(in.Skills)
	for _, s := range in.Skills {
		doc.SkillNames = append(doc.SkillNames, s.Name)
	}

	return doc
}

// GroupSkills buckets skills by category for display. Grouping is
// recomputed from the current category values; an empty category falls
// into the sentinel bucket. The overall list order is preserved within
// each group and determines group order by first appearance.
func GroupSkills(skills []types.Skill) []SkillGroup {
	var groups []SkillGroup
	index := map[string]int{}
	for _, s := range skills {
		category := s.Category
		if category == "" {
			category = OtherCategory
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, SkillGroup{Category: category})
		}
		groups[i].Names = append(groups[i].Names, s.Name)
	}
	return groups
}

// ContactLine joins email, phone and location with a separator for the
// flow-document header, skipping empty fields.
func (d *Document) ContactLine() string {
	var parts []string
	for _, c := range d.Contacts {
		switch c.Kind {
		case ContactEmail, ContactPhone, ContactLocation:
			parts = append(parts, c.Label)
		}
	}
	return strings.Join(parts, " | ")
}
