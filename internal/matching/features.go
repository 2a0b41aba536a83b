package matching

// Features holds the per-criterion signals computed for one job against one
// profile. Raw counts (skill and keyword matches) are normalized during
// scoring; the remaining fields are already in [0, 1].
type Features struct {
	SkillMatches     float64
	KeywordMatches   float64
	TitleRelevance   float64
	LocationMatch    float64
	ExperienceMatch  float64
	IndustryMatch    float64
	CompanySizeMatch float64
	SalaryCompat     float64
	RemotePreference float64
	EducationMatch   float64
}

// Map returns the features keyed by their wire names for logging and
// reporting.
func (f Features) Map() map[string]float64 {
	return map[string]float64{
		"skill_matches":        f.SkillMatches,
		"keyword_matches":      f.KeywordMatches,
		"title_relevance":      f.TitleRelevance,
		"location_match":       f.LocationMatch,
		"experience_match":     f.ExperienceMatch,
		"industry_match":       f.IndustryMatch,
		"company_size_match":   f.CompanySizeMatch,
		"salary_compatibility": f.SalaryCompat,
		"remote_preference":    f.RemotePreference,
		"education_match":      f.EducationMatch,
	}
}
