package draft

import (
	"github.com/google/uuid"

	"github.com/jeffynunes09/create-resume/internal/types"
)

// Draft is the in-memory resume document being edited. It is constructed
// empty (create flow) or hydrated once from a fetched resume (edit flow)
// and mutated exclusively through its methods. All mutations are
// synchronous and atomic from the caller's perspective; none of them
// perform I/O or validation.
type Draft struct {
	personalInfo types.PersonalInfo
	summary      string

	Experiences *Collection[types.Experience]
	Education   *Collection[types.Education]
	Skills      *Collection[types.Skill]

	resumeID uuid.UUID
	hydrated bool
}

// New creates an empty draft for the create flow.
func New() *Draft {
	return &Draft{
		Experiences: NewCollection[types.Experience](),
		Education:   NewCollection[types.Education](),
		Skills:      NewCollection[types.Skill](),
	}
}

// Hydrate fills the draft from a fetched resume. It applies at most once
// per draft: a slow background refetch arriving after the user started
// editing must not clobber in-progress edits. Returns whether the
// hydration was applied.
func (d *Draft) Hydrate(r *types.Resume) bool {
	if d.hydrated || r == nil {
		return false
	}
	d.resumeID = r.ID
	d.personalInfo = r.PersonalInfo
	d.summary = r.Summary
	d.Experiences = NewCollection(r.Experiences...)
	d.Education = NewCollection(r.Education...)
	d.Skills = NewCollection(r.Skills...)
	d.hydrated = true
	return true
}

// ResumeID returns the persisted id the draft was hydrated from, or
// uuid.Nil for a never-saved draft.
func (d *Draft) ResumeID() uuid.UUID { return d.resumeID }

// PersonalInfo returns the current personal info record.
func (d *Draft) PersonalInfo() types.PersonalInfo { return d.personalInfo }

// Summary returns the current free-text summary.
func (d *Draft) Summary() string { return d.summary }

// SetSummary replaces the summary text.
func (d *Draft) SetSummary(text string) { d.summary = text }

// SetPersonalInfo applies a partial merge of the personal info record.
// Field values are replaced wholesale by mutate; no validation happens
// here (required fields are checked at save time).
func (d *Draft) SetPersonalInfo(mutate func(*types.PersonalInfo)) {
	mutate(&d.personalInfo)
}

// AddExperience appends a new experience with a fresh id and default
// field values, ready for independent editing.
func (d *Draft) AddExperience() types.Experience {
	exp := types.Experience{ID: uuid.NewString(), Highlights: []string{}}
	d.Experiences.Add(exp)
	return exp
}

// AddEducation appends a new education entry with a fresh id.
func (d *Draft) AddEducation() types.Education {
	edu := types.Education{ID: uuid.NewString()}
	d.Education.Add(edu)
	return edu
}

// AddSkill appends a skill via quick-add: fresh id, the given name, and
// the default intermediate level. Category is left empty, which groups it
// under the sentinel bucket for display.
func (d *Draft) AddSkill(name string) types.Skill {
	skill := types.Skill{ID: uuid.NewString(), Name: name, Level: types.DefaultSkillLevel}
	d.Skills.Add(skill)
	return skill
}

// AddHighlight appends a highlight to the experience with the given id.
// Blank text and unknown ids are no-ops.
func (d *Draft) AddHighlight(experienceID, text string) {
	if text == "" {
		return
	}
	d.Experiences.Update(experienceID, func(exp types.Experience) types.Experience {
		exp.Highlights = append(append([]string{}, exp.Highlights...), text)
		return exp
	})
}

// RemoveHighlight removes the highlight at the given position of the
// experience with the given id. Out-of-range positions are no-ops.
func (d *Draft) RemoveHighlight(experienceID string, index int) {
	d.Experiences.Update(experienceID, func(exp types.Experience) types.Experience {
		if index < 0 || index >= len(exp.Highlights) {
			return exp
		}
		highlights := append([]string{}, exp.Highlights[:index]...)
		exp.Highlights = append(highlights, exp.Highlights[index+1:]...)
		return exp
	})
}

// Snapshot serializes the whole current state into the save payload.
// Persistence replaces the corresponding aggregate server-side with
// exactly this content.
func (d *Draft) Snapshot() types.ResumeInput {
	return types.ResumeInput{
		PersonalInfo: d.personalInfo,
		Summary:      d.summary,
		Experiences:  d.Experiences.Items(),
		Education:    d.Education.Items(),
		Skills:       d.Skills.Items(),
	}
}
