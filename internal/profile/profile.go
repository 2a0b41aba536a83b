package profile

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Experience levels, ordered from least to most senior.
const (
	LevelStudent   = "student"
	LevelIntern    = "intern"
	LevelJunior    = "junior"
	LevelMid       = "mid"
	LevelSenior    = "senior"
	LevelExecutive = "executive"
)

// Education levels.
const (
	EducationHighSchool = "high_school"
	EducationAssociate  = "associate"
	EducationBachelor   = "bachelor"
	EducationMaster     = "master"
	EducationPhD        = "phd"
)

const (
	maxSkills         = 50
	maxRoles          = 10
	maxLocations      = 10
	maxIndustries     = 10
	maxKeywords       = 20
	maxCertifications = 20
	maxLanguages      = 10
	maxSoftSkills     = 15
	maxExperienceMo   = 600
)

// SalaryExpectation is an optional expected compensation range. Currency is
// informational only and ignored by matching.
type SalaryExpectation struct {
	Min      *float64 `json:"min" mapstructure:"min"`
	Max      *float64 `json:"max" mapstructure:"max"`
	Currency string   `json:"currency" mapstructure:"currency"`
}

// Basic is the JSON-shaped profile produced by the extraction collaborator.
// Any subset of its keys may be absent; normalization substitutes documented
// defaults.
type Basic struct {
	TargetRoles           []string           `json:"target_roles" mapstructure:"target_roles"`
	Skills                []string           `json:"skills" mapstructure:"skills"`
	ExperienceLevel       string             `json:"experience_level" mapstructure:"experience_level"`
	TotalExperienceMonths int                `json:"total_experience_months" mapstructure:"total_experience_months"`
	EducationLevel        string             `json:"education_level" mapstructure:"education_level"`
	Locations             []string           `json:"locations" mapstructure:"locations"`
	RemotePreference      bool               `json:"remote_preference" mapstructure:"remote_preference"`
	Industries            []string           `json:"industries" mapstructure:"industries"`
	Keywords              []string           `json:"keywords" mapstructure:"keywords"`
	SalaryExpectation     *SalaryExpectation `json:"salary_expectation" mapstructure:"salary_expectation"`
	Certifications        []string           `json:"certifications" mapstructure:"certifications"`
	Languages             []string           `json:"languages" mapstructure:"languages"`
	SoftSkills            []string           `json:"soft_skills" mapstructure:"soft_skills"`
}

// Profile is the enhanced candidate profile consumed by the matching engine.
// It is a read-only input to ranking and never mutated by it.
type Profile struct {
	Skills      []string
	Keywords    []string
	TargetRoles []string

	TotalExperienceMonths int
	ExperienceLevel       string
	EducationLevel        string
	Industries            []string

	PreferredLocations    []string
	RemotePreference      bool
	SalaryExpectationMin  *float64
	SalaryExpectationMax  *float64
	PreferredCompanySizes []string

	SkillProficiency  map[string]float64
	CareerProgression []string
	Certifications    []string
}

// experienceMonthsByLevel estimates total experience when the extraction
// supplied a level but no month count.
var experienceMonthsByLevel = map[string]int{
	LevelStudent:   0,
	LevelIntern:    6,
	LevelJunior:    24,
	LevelMid:       60,
	LevelSenior:    120,
	LevelExecutive: 180,
}

var validLevels = map[string]struct{}{
	LevelStudent: {}, LevelIntern: {}, LevelJunior: {},
	LevelMid: {}, LevelSenior: {}, LevelExecutive: {},
}

var validEducation = map[string]struct{}{
	EducationHighSchool: {}, EducationAssociate: {}, EducationBachelor: {},
	EducationMaster: {}, EducationPhD: {},
}

// FromMap decodes a raw JSON-shaped mapping into a Basic profile, tolerating
// absent keys.
func FromMap(raw map[string]any) (*Basic, error) {
	var basic Basic
	cfg := &mapstructure.DecoderConfig{
		Result:           &basic,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding basic profile: %w", err)
	}
	return &basic, nil
}

// FromBasic converts a basic extracted profile into the enhanced form used by
// matching. The conversion is pure and total: every absent field receives a
// documented default (experience level junior, education bachelor, experience
// months from the level table), lists are bounded, and skills are normalized
// and deduplicated case-insensitively.
func FromBasic(basic *Basic) *Profile {
	if basic == nil {
		basic = &Basic{}
	}

	level := strings.ToLower(strings.TrimSpace(basic.ExperienceLevel))
	if _, ok := validLevels[level]; !ok {
		level = LevelJunior
	}

	education := strings.ToLower(strings.TrimSpace(basic.EducationLevel))
	if _, ok := validEducation[education]; !ok {
		education = EducationBachelor
	}

	months := basic.TotalExperienceMonths
	if months <= 0 {
		months = experienceMonthsByLevel[level]
	}
	if months > maxExperienceMo {
		months = maxExperienceMo
	}

	enhanced := &Profile{
		Skills:                NormalizeSkills(bound(basic.Skills, maxSkills)),
		Keywords:              bound(basic.Keywords, maxKeywords),
		TargetRoles:           bound(basic.TargetRoles, maxRoles),
		TotalExperienceMonths: months,
		ExperienceLevel:       level,
		EducationLevel:        education,
		Industries:            bound(basic.Industries, maxIndustries),
		PreferredLocations:    bound(basic.Locations, maxLocations),
		RemotePreference:      basic.RemotePreference,
		Certifications:        bound(basic.Certifications, maxCertifications),
	}

	if basic.SalaryExpectation != nil {
		enhanced.SalaryExpectationMin = basic.SalaryExpectation.Min
		enhanced.SalaryExpectationMax = basic.SalaryExpectation.Max
	}

	inferTargetRoles(enhanced)
	inferKeywords(enhanced)

	return enhanced
}

// bound returns at most max entries with blanks removed.
func bound(values []string, max int) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		result = append(result, v)
		if len(result) == max {
			break
		}
	}
	return result
}
