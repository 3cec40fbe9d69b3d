// Package flowdoc implements the flow-document export pipeline. Unlike
// the raster path it never touches the rendered preview: the document is
// serialized straight from the model projection, so section visibility,
// date formatting and grouping stay consistent with the preview because
// both consume the same projection, not because any markup is shared.
package flowdoc

import (
	"bytes"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/jeffynunes09/create-resume/internal/export"
	"github.com/jeffynunes09/create-resume/internal/preview"
)

// Run sizes in OOXML half-points, matching the proportions of the
// on-screen preview type scale.
const (
	sizeName    = "48"
	sizeHeading = "28"
	sizeEntry   = "24"
	sizeBody    = "22"
	sizeSmall   = "20"
)

// mutedColor is the hex color of secondary text (dates, contact line).
const mutedColor = "666666"

// Renderer serializes a projected document into a DOCX flow document.
type Renderer struct{}

// NewRenderer creates a flow-document renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderDOCX builds the flow document in fixed section order: centered
// name, centered contact line, then the conditional summary, experience,
// education and skills sections.
func (r *Renderer) RenderDOCX(doc preview.Document, style preview.Style) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	name := w.AddParagraph()
	name.AddText(doc.Name).Size(sizeName).Color(hexColor(style.TextColor)).Bold()
	name.Justification("center")

	if line := doc.ContactLine(); line != "" {
		contact := w.AddParagraph()
		contact.AddText(line).Size(sizeSmall).Color(mutedColor)
		contact.Justification("center")
	}

	if doc.HasSummary() {
		addHeading(w, preview.SummaryHeading)
		w.AddParagraph().AddText(doc.Summary).Size(sizeBody)
	}

	if doc.HasExperiences() {
		addHeading(w, preview.ExperienceHeading)
		for _, exp := range doc.Experiences {
			title := w.AddParagraph()
			title.AddText(exp.Position).Size(sizeEntry).Bold()
			title.AddText(" - " + exp.Company).Size(sizeEntry)

			w.AddParagraph().AddText(exp.DateRange).Size(sizeSmall).Color(mutedColor)

			if exp.Description != "" {
				w.AddParagraph().AddText(exp.Description).Size(sizeBody)
			}
			for _, highlight := range exp.Highlights {
				w.AddParagraph().AddText("• " + highlight).Size(sizeBody)
			}
		}
	}

	if doc.HasEducation() {
		addHeading(w, preview.EducationHeading)
		for _, edu := range doc.Education {
			w.AddParagraph().AddText(edu.Title).Size(sizeEntry).Bold()
			w.AddParagraph().AddText(edu.Institution).Size(sizeBody)
			if edu.GPA != "" {
				w.AddParagraph().AddText("CR: " + edu.GPA).Size(sizeSmall).Color(mutedColor)
			}
			w.AddParagraph().AddText(edu.DateRange).Size(sizeSmall).Color(mutedColor)
		}
	}

	if doc.HasSkills() {
		addHeading(w, preview.SkillsHeading)
		w.AddParagraph().AddText(strings.Join(doc.SkillNames, " • ")).Size(sizeBody)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, &export.ComposeError{Format: "docx", Message: "failed to write document", Cause: err}
	}
	return buf.Bytes(), nil
}

// addHeading appends an uppercase section heading.
func addHeading(w *docx.Docx, label string) {
	w.AddParagraph().AddText(strings.ToUpper(label)).Size(sizeHeading).Bold()
}

// hexColor strips the leading # the style carries; OOXML colors are bare
// hex digits.
func hexColor(c string) string {
	return strings.TrimPrefix(c, "#")
}
