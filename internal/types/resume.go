// Package types provides type definitions for resume documents shared across the system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SkillLevel is the proficiency level of a skill.
type SkillLevel string

// Known skill levels. DefaultSkillLevel is used when a skill is created
// via quick-add without an explicit level.
const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"

	DefaultSkillLevel = SkillIntermediate
)

// Valid reports whether the level is one of the known values.
func (l SkillLevel) Valid() bool {
	switch l {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	}
	return false
}

// PersonalInfo holds the contact header of a resume. It has no identity of
// its own; it is owned 1:1 by a Resume.
type PersonalInfo struct {
	FullName string `json:"fullName" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedIn,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Experience is one entry of the ordered experience collection.
// Dates use "YYYY-MM" granularity; EndDate is ignored for display and
// export whenever Current is true.
type Experience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company" validate:"required,min=1"`
	Position    string   `json:"position" validate:"required,min=1"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate,omitempty"`
	Current     bool     `json:"current"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
}

// ItemID returns the stable collection id of the experience.
func (e Experience) ItemID() string { return e.ID }

// Education is one entry of the ordered education collection.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution" validate:"required,min=1"`
	Degree      string `json:"degree" validate:"required,min=1"`
	Field       string `json:"field" validate:"required,min=1"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa,omitempty"`
}

// ItemID returns the stable collection id of the education entry.
func (e Education) ItemID() string { return e.ID }

// Skill is one entry of the ordered skill collection. An empty Category
// groups the skill under the sentinel "Other" bucket for display.
type Skill struct {
	ID       string     `json:"id"`
	Name     string     `json:"name" validate:"required,min=1"`
	Level    SkillLevel `json:"level,omitempty"`
	Category string     `json:"category,omitempty"`
}

// ItemID returns the stable collection id of the skill.
func (s Skill) ItemID() string { return s.ID }

// Resume is the persisted aggregate. ID and timestamps are assigned by the
// store; a draft that has never been saved carries uuid.Nil.
type Resume struct {
	ID           uuid.UUID    `json:"id"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary,omitempty"`
	Experiences  []Experience `json:"experiences"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Input returns the document content of a stored resume in the payload
// shape, stripped of identity and timestamps.
func (r *Resume) Input() ResumeInput {
	return ResumeInput{
		PersonalInfo: r.PersonalInfo,
		Summary:      r.Summary,
		Experiences:  r.Experiences,
		Education:    r.Education,
		Skills:       r.Skills,
	}
}

// ResumeInput is the request payload for creating or replacing a resume.
// The collection orders are authoritative: children are stored and later
// returned in exactly this order.
type ResumeInput struct {
	PersonalInfo PersonalInfo `json:"personalInfo" validate:"required"`
	Summary      string       `json:"summary,omitempty"`
	Experiences  []Experience `json:"experiences" validate:"dive"`
	Education    []Education  `json:"education" validate:"dive"`
	Skills       []Skill      `json:"skills" validate:"dive"`
}

// Validate runs submit-time validation: the personal-info required fields
// plus nested struct tags. Field-level editing never validates; this is
// only called at the save boundary.
func (r *ResumeInput) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
