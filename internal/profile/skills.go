package profile

import (
	"sort"
	"strings"
)

// skillAliases maps common shorthand to the canonical skill name so that
// extracted skills line up with the matching lexicon.
var skillAliases = map[string]string{
	"js":        "javascript",
	"ts":        "typescript",
	"py":        "python",
	"ml":        "machine learning",
	"ai":        "artificial intelligence",
	"db":        "database",
	"html5":     "html",
	"css3":      "css",
	"reactjs":   "react",
	"nodejs":    "node.js",
	"vuejs":     "vue",
	"angularjs": "angular",
}

// NormalizeSkills lowercases, canonicalizes and deduplicates a skill list.
// Entries shorter than two characters are dropped. The result is sorted for
// deterministic output.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		normalized := NormalizeSkill(skill)
		if len(normalized) < 2 {
			continue
		}
		seen[normalized] = struct{}{}
	}

	result := make([]string, 0, len(seen))
	for skill := range seen {
		result = append(result, skill)
	}
	sort.Strings(result)
	return result
}

// NormalizeSkill lowercases and canonicalizes a single skill name.
func NormalizeSkill(skill string) string {
	normalized := strings.ToLower(strings.TrimSpace(skill))
	if canonical, ok := skillAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// roleSkillHints maps a role to skills that suggest it. A role is inferred
// when at least two of its hint skills are present.
var roleSkillHints = map[string][]string{
	"Software Engineer": {"python", "java", "javascript", "c++", "go", "programming"},
	"Data Scientist":    {"python", "machine learning", "tensorflow", "pandas", "statistics"},
	"Web Developer":     {"html", "css", "javascript", "react", "angular", "node.js"},
	"Mobile Developer":  {"android", "ios", "react native", "flutter", "kotlin", "swift"},
	"DevOps Engineer":   {"docker", "kubernetes", "aws", "jenkins", "terraform"},
	"Data Analyst":      {"sql", "excel", "tableau", "power bi", "python", "r"},
	"Product Manager":   {"product management", "agile", "scrum", "roadmap"},
	"Project Manager":   {"project management", "pmp", "scrum", "agile"},
}

const (
	roleInferenceMinHits = 2
	roleInferenceMax     = 5
)

// inferTargetRoles fills in target roles from the skill set when the
// extraction produced none.
func inferTargetRoles(p *Profile) {
	if len(p.TargetRoles) > 0 || len(p.Skills) == 0 {
		return
	}

	skillSet := make(map[string]struct{}, len(p.Skills))
	for _, skill := range p.Skills {
		skillSet[skill] = struct{}{}
	}

	roles := make([]string, 0, len(roleSkillHints))
	for role := range roleSkillHints {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	for _, role := range roles {
		hits := 0
		for _, hint := range roleSkillHints[role] {
			if _, ok := skillSet[hint]; ok {
				hits++
			}
		}
		if hits >= roleInferenceMinHits {
			p.TargetRoles = append(p.TargetRoles, role)
			if len(p.TargetRoles) == roleInferenceMax {
				return
			}
		}
	}
}

const inferredKeywordSkills = 10

// inferKeywords seeds keywords from top skills and target roles when the
// extraction produced none.
func inferKeywords(p *Profile) {
	if len(p.Keywords) > 0 {
		return
	}

	seen := make(map[string]struct{})
	for i, skill := range p.Skills {
		if i == inferredKeywordSkills {
			break
		}
		if _, ok := seen[skill]; !ok {
			seen[skill] = struct{}{}
			p.Keywords = append(p.Keywords, skill)
		}
	}
	for _, role := range p.TargetRoles {
		key := strings.ToLower(role)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			p.Keywords = append(p.Keywords, role)
		}
	}
}
