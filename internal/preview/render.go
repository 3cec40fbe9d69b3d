package preview

import (
	"fmt"
	"html/template"
	"strings"
)

// Style holds the user-adjustable presentation parameters.
type Style struct {
	FontFamily string // CSS font stack
	FontSize   int    // base size in px
	TextColor  string // hex color, e.g. "#000000"
}

// DefaultStyle returns the style applied before any customization.
func DefaultStyle() Style {
	return Style{
		FontFamily: "Inter, system-ui, sans-serif",
		FontSize:   14,
		TextColor:  "#000000",
	}
}

// HeadingSize is the name heading size derived from the base size.
func (s Style) HeadingSize() int { return s.FontSize + 10 }

// SubheadingSize is the section heading size.
func (s Style) SubheadingSize() int { return s.FontSize }

// SmallSize is the size of dates, contacts and secondary text.
func (s Style) SmallSize() int { return s.FontSize - 2 }

// ContainerID is the DOM id of the preview root. The raster exporter
// measures hyperlink boxes relative to this element.
const ContainerID = "resume-preview"

// previewTemplate renders the projection as a standalone HTML page on an
// opaque white background. Every section is preceded by a divider and
// renders only when its content is non-empty; the markup is a pure
// function of (Document, Style).
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { margin: 0; background: #ffffff; }
  #{{.ContainerID}} { background: #ffffff; padding: 32px; }
  h1, h2, h3 { margin: 0; }
  h2 { text-transform: uppercase; letter-spacing: 0.05em; margin-bottom: 8px; }
  hr.divider { border: none; border-top: 1px solid #e2e8f0; margin: 16px 0; }
  .header { text-align: center; margin-bottom: 24px; }
  .contacts { color: #4a5568; }
  .contacts a, .contacts span { margin: 0 8px; text-decoration: none; }
  .contacts a.external { color: #2563eb; }
  .muted { color: #4a5568; margin: 2px 0; }
  .faint { color: #718096; }
  .entry { margin-bottom: 16px; }
  .entry-row { display: flex; justify-content: space-between; align-items: flex-start; }
  ul.highlights { margin: 4px 0 0; padding-left: 20px; }
  .chip { display: inline-block; background: #f1f5f9; border-radius: 4px; padding: 2px 8px; margin: 2px; }
  .group-label { font-weight: 600; margin: 6px 0 2px; }
</style>
</head>
<body>
<div id="{{.ContainerID}}" style="font-family: {{.FontFamily}}; font-size: {{.Style.FontSize}}px; color: {{.TextColor}};">
  <div class="header">
    <h1 style="font-size: {{.Style.HeadingSize}}px;">{{.Doc.Name}}</h1>
    <div class="contacts" style="font-size: {{.Style.SmallSize}}px;">
{{- range .Doc.Contacts}}
{{- if .Href}}
      <a class="contact-{{.Kind}}{{if ne .Kind "email"}} external{{end}}" href="{{.Href}}">{{.Label}}</a>
{{- else}}
      <span class="contact-{{.Kind}}">{{.Label}}</span>
{{- end}}
{{- end}}
    </div>
  </div>
{{- if .Doc.HasSummary}}
  <hr class="divider">
  <section class="summary">
    <h2 style="font-size: {{.Style.SubheadingSize}}px;">{{.SummaryHeading}}</h2>
    <p class="muted">{{.Doc.Summary}}</p>
  </section>
{{- end}}
{{- if .Doc.HasExperiences}}
  <hr class="divider">
  <section class="experience">
    <h2 style="font-size: {{.Style.SubheadingSize}}px;">{{.ExperienceHeading}}</h2>
{{- range .Doc.Experiences}}
    <div class="entry">
      <div class="entry-row">
        <div>
          <h3>{{.Position}}</h3>
          <p class="muted">{{.Company}}</p>
        </div>
        <span class="faint date-range" style="font-size: {{$.Style.SmallSize}}px;">{{.DateRange}}</span>
      </div>
{{- if .Description}}
      <p class="muted" style="font-size: {{$.Style.SmallSize}}px;">{{.Description}}</p>
{{- end}}
{{- if .Highlights}}
      <ul class="highlights muted" style="font-size: {{$.Style.SmallSize}}px;">
{{- range .Highlights}}
        <li>{{.}}</li>
{{- end}}
      </ul>
{{- end}}
    </div>
{{- end}}
  </section>
{{- end}}
{{- if .Doc.HasEducation}}
  <hr class="divider">
  <section class="education">
    <h2 style="font-size: {{.Style.SubheadingSize}}px;">{{.EducationHeading}}</h2>
{{- range .Doc.Education}}
    <div class="entry entry-row">
      <div>
        <h3>{{.Title}}</h3>
        <p class="muted">{{.Institution}}</p>
{{- if .GPA}}
        <p class="faint" style="font-size: {{$.Style.SmallSize}}px;">CR: {{.GPA}}</p>
{{- end}}
      </div>
      <span class="faint date-range" style="font-size: {{$.Style.SmallSize}}px;">{{.DateRange}}</span>
    </div>
{{- end}}
  </section>
{{- end}}
{{- if .Doc.HasSkills}}
  <hr class="divider">
  <section class="skills">
    <h2 style="font-size: {{.Style.SubheadingSize}}px;">{{.SkillsHeading}}</h2>
{{- range .Doc.SkillGroups}}
    <div class="group">
      <div class="group-label" style="font-size: {{$.Style.SmallSize}}px;">{{.Category}}</div>
{{- range .Names}}
      <span class="chip" style="font-size: {{$.Style.SmallSize}}px;">{{.}}</span>
{{- end}}
    </div>
{{- end}}
  </section>
{{- end}}
</div>
</body>
</html>
`

var previewTmpl = template.Must(template.New("preview").Parse(previewTemplate))

// templateData is the root object handed to the preview template.
type templateData struct {
	Doc   *Document
	Style Style
	// FontFamily and TextColor bypass the CSS value filter: quoted font
	// stacks like 'Times New Roman', serif would otherwise be rejected.
	FontFamily        template.CSS
	TextColor         template.CSS
	ContainerID       string
	SummaryHeading    string
	ExperienceHeading string
	EducationHeading  string
	SkillsHeading     string
}

// Render produces the preview HTML for a projected document. It is
// deterministic: the same projection and style always yield the same
// markup.
func Render(doc Document, style Style) (string, error) {
	var sb strings.Builder
	err := previewTmpl.Execute(&sb, templateData{
		Doc:               &doc,
		Style:             style,
		FontFamily:        template.CSS(style.FontFamily),
		TextColor:         template.CSS(style.TextColor),
		ContainerID:       ContainerID,
		SummaryHeading:    SummaryHeading,
		ExperienceHeading: ExperienceHeading,
		EducationHeading:  EducationHeading,
		SkillsHeading:     SkillsHeading,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return sb.String(), nil
}
