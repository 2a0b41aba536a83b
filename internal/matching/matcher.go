package matching

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/jobs"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/profile"
)

// Feature weights. They sum to exactly 1.0; company size and education carry
// no weight because no provider exposes the data to score them.
const (
	weightSkills     = 0.25
	weightKeywords   = 0.15
	weightTitle      = 0.20
	weightLocation   = 0.10
	weightExperience = 0.15
	weightIndustry   = 0.05
	weightSalary     = 0.05
	weightRemote     = 0.05
)

// Normalization caps for the raw-count features.
const (
	skillMatchCap   = 10
	keywordMatchCap = 5
)

const defaultProficiency = 0.5

var errNilJob = errors.New("nil job")

// Ranked pairs a job with its match score and the features that produced it.
type Ranked struct {
	Score    float64
	Job      *jobs.Job
	Features Features
}

// Matcher scores jobs against a candidate profile across weighted criteria.
// It is stateless per call and safe for concurrent use.
type Matcher struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// ExtractFeatures computes the per-criterion signals for one job. The raw
// skill and keyword counts are left unnormalized.
func (m *Matcher) ExtractFeatures(p *profile.Profile, job *jobs.Job) (Features, error) {
	if job == nil {
		return Features{}, errNilJob
	}

	text := jobText(job.Title, job.Description, job.Company)

	return Features{
		SkillMatches:     skillMatchScore(p, text),
		KeywordMatches:   keywordMatchCount(p, text),
		TitleRelevance:   titleRelevance(p, job.Title),
		LocationMatch:    locationMatch(p, job.Location),
		ExperienceMatch:  experienceMatch(p, text),
		SalaryCompat:     salaryCompatibility(p, job),
		RemotePreference: remotePreference(p, text),
	}, nil
}

// Score folds features into a single 0..100 match score.
func (m *Matcher) Score(f Features) float64 {
	weighted := weightSkills*math.Min(f.SkillMatches/skillMatchCap, 1) +
		weightKeywords*math.Min(f.KeywordMatches/keywordMatchCap, 1) +
		weightTitle*f.TitleRelevance +
		weightLocation*f.LocationMatch +
		weightExperience*f.ExperienceMatch +
		weightIndustry*f.IndustryMatch +
		weightSalary*f.SalaryCompat +
		weightRemote*f.RemotePreference

	score := weighted * 100
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// ScoreJob extracts features and scores a single job.
func (m *Matcher) ScoreJob(p *profile.Profile, job *jobs.Job) (Ranked, error) {
	features, err := m.ExtractFeatures(p, job)
	if err != nil {
		return Ranked{}, fmt.Errorf("extracting features: %w", err)
	}
	return Ranked{Score: m.Score(features), Job: job, Features: features}, nil
}

// RankJobs scores every job against the profile and returns them in
// descending score order, capped at topK when topK is positive. A job that
// fails scoring is logged and skipped, never failing the batch. Incoming
// order is preserved between equal scores.
func (m *Matcher) RankJobs(p *profile.Profile, list *jobs.Jobs, topK int) []Ranked {
	if list == nil || len(list.Items) == 0 {
		return nil
	}

	ranked := make([]Ranked, 0, len(list.Items))
	for _, job := range list.Items {
		r, err := m.ScoreJob(p, job)
		if err != nil {
			m.logger.Warn("skipping unscorable job", zap.Error(err))
			continue
		}
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// skillMatchScore intersects the lexicon skills found in the job text with
// the profile's skills. With per-skill proficiency it sums proficiencies
// (unknown skills count 0.5); otherwise each match counts 1.
func skillMatchScore(p *profile.Profile, text string) float64 {
	if len(p.Skills) == 0 {
		return 0
	}

	profileSkills := make(map[string]struct{}, len(p.Skills))
	for _, skill := range p.Skills {
		profileSkills[strings.ToLower(skill)] = struct{}{}
	}

	var score float64
	for _, skill := range ExtractSkills(text) {
		if _, ok := profileSkills[skill]; !ok {
			continue
		}
		if p.SkillProficiency != nil {
			prof, ok := p.SkillProficiency[skill]
			if !ok {
				prof = defaultProficiency
			}
			score += prof
		} else {
			score++
		}
	}
	return score
}

// keywordMatchCount counts profile keywords occurring anywhere in the job
// text. Keywords match as substrings; only the skill lexicon is held to
// whole-word boundaries.
func keywordMatchCount(p *profile.Profile, text string) float64 {
	var count float64
	for _, keyword := range p.Keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}

// titleRelevance is the fraction of target roles appearing in the job title.
func titleRelevance(p *profile.Profile, title string) float64 {
	if len(p.TargetRoles) == 0 {
		return 0
	}
	lowerTitle := strings.ToLower(title)
	matches := 0
	for _, role := range p.TargetRoles {
		if strings.Contains(lowerTitle, strings.ToLower(role)) {
			matches++
		}
	}
	return math.Min(float64(matches)/float64(len(p.TargetRoles)), 1)
}

// locationMatch is the fraction of preferred locations contained in the job
// location. No preference scores zero.
func locationMatch(p *profile.Profile, location string) float64 {
	if len(p.PreferredLocations) == 0 {
		return 0
	}
	lowerLocation := strings.ToLower(location)
	matches := 0
	for _, preferred := range p.PreferredLocations {
		if strings.Contains(lowerLocation, strings.ToLower(preferred)) {
			matches++
		}
	}
	return float64(matches) / float64(len(p.PreferredLocations))
}

// seniorityKeywords maps job-text signals to a seniority level. Scan order
// matters: the first keyword found decides.
var seniorityKeywords = []struct {
	keyword string
	level   string
}{
	{"junior", profile.LevelJunior},
	{"senior", profile.LevelSenior},
	{"lead", profile.LevelSenior},
	{"manager", profile.LevelExecutive},
	{"director", profile.LevelExecutive},
	{"entry", profile.LevelJunior},
	{"experienced", profile.LevelMid},
}

func detectJobLevel(text string) string {
	for _, sk := range seniorityKeywords {
		if strings.Contains(text, sk.keyword) {
			return sk.level
		}
	}
	return profile.LevelMid
}

type levelPair struct {
	profile string
	job     string
}

// experienceTable scores how well a candidate level fits a job level.
// Unlisted combinations fall back to 0.5.
var experienceTable = map[levelPair]float64{
	{profile.LevelJunior, profile.LevelJunior}:       1.0,
	{profile.LevelJunior, profile.LevelMid}:          0.8,
	{profile.LevelMid, profile.LevelJunior}:          0.6,
	{profile.LevelMid, profile.LevelMid}:             1.0,
	{profile.LevelMid, profile.LevelSenior}:          0.8,
	{profile.LevelSenior, profile.LevelMid}:          0.9,
	{profile.LevelSenior, profile.LevelSenior}:       1.0,
	{profile.LevelSenior, profile.LevelExecutive}:    0.7,
	{profile.LevelExecutive, profile.LevelSenior}:    0.8,
	{profile.LevelExecutive, profile.LevelExecutive}: 1.0,
}

func experienceMatch(p *profile.Profile, text string) float64 {
	jobLevel := detectJobLevel(text)
	if score, ok := experienceTable[levelPair{p.ExperienceLevel, jobLevel}]; ok {
		return score
	}
	return 0.5
}

var remoteIndicators = []string{"remote", "work from home", "wfh", "telecommute", "distributed"}

// remotePreference scores a job's remote signals against the candidate's
// preference. A candidate who wants remote is penalized hard for on-site
// jobs; one who does not gets a mild preference for on-site.
func remotePreference(p *profile.Profile, text string) float64 {
	jobIsRemote := false
	for _, indicator := range remoteIndicators {
		if strings.Contains(text, indicator) {
			jobIsRemote = true
			break
		}
	}

	switch {
	case p.RemotePreference && jobIsRemote:
		return 1.0
	case !p.RemotePreference && !jobIsRemote:
		return 0.8
	case p.RemotePreference && !jobIsRemote:
		return 0.3
	default:
		return 0.6
	}
}

// salaryCompatibility compares the job's salary range with the candidate's
// expectation. Overlapping ranges score 1.0; disjoint ranges decay with the
// gap relative to the larger maximum. Either side missing scores neutral.
func salaryCompatibility(p *profile.Profile, job *jobs.Job) float64 {
	if p.SalaryExpectationMin == nil || p.SalaryExpectationMax == nil || !job.HasSalaryRange() {
		return 0.5
	}

	profMin, profMax := *p.SalaryExpectationMin, *p.SalaryExpectationMax
	jobMin, jobMax := *job.SalaryMin, *job.SalaryMax

	if jobMax >= profMin && profMax >= jobMin {
		return 1.0
	}

	gap := math.Min(math.Abs(jobMax-profMin), math.Abs(profMax-jobMin))
	return math.Max(0, 1-gap/math.Max(jobMax, profMax))
}
