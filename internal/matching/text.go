package matching

import (
	"regexp"
	"strings"
)

// skillLexicon is the closed vocabulary of skills recognized in job text.
// Matching elsewhere intersects this with the candidate's skill list, so a
// profile skill outside the lexicon never matches.
var skillLexicon = []string{
	// Languages.
	"python", "java", "javascript", "c++", "c#", "go", "rust", "kotlin",
	"swift", "php", "ruby", "scala", "r", "matlab", "sql", "html", "css",
	// Frameworks.
	"react", "angular", "vue", "django", "flask", "spring", "node.js",
	"express", "tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
	// Platforms and tooling.
	"aws", "azure", "gcp", "docker", "kubernetes", "git", "jenkins",
	"terraform", "ansible", "linux", "windows", "macos",
	// Databases.
	"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra",
	// Practices and soft skills.
	"leadership", "communication", "teamwork", "problem-solving",
	"project management", "agile", "scrum", "devops", "machine learning",
	"data analysis", "data science", "artificial intelligence",
	"cybersecurity",
}

// skillPatterns holds a compiled whole-word pattern per lexicon entry.
// Word boundaries keep "java" from matching inside "javascript". RE2 has no
// lookarounds and \b misbehaves next to the symbols in "c++" and "c#", so the
// boundary is an explicit non-word class.
var skillPatterns = compileSkillPatterns()

func compileSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(skillLexicon))
	for _, skill := range skillLexicon {
		patterns[skill] = wordPattern(skill)
	}
	return patterns
}

func wordPattern(needle string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(needle)
	return regexp.MustCompile(`(?i)(?:\A|[^a-z0-9_])` + quoted + `(?:[^a-z0-9_]|\z)`)
}

// ExtractSkills returns the lexicon skills found as whole words in text,
// lowercased. Order follows the lexicon and is deterministic.
func ExtractSkills(text string) []string {
	if text == "" {
		return nil
	}
	var found []string
	for _, skill := range skillLexicon {
		if skillPatterns[skill].MatchString(text) {
			found = append(found, skill)
		}
	}
	return found
}

// jobText concatenates the searchable fields of a job into one lowercased
// haystack.
func jobText(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " "))
}
