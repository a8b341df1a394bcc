package analyzer

import (
	"fmt"
	"math"
	"strings"
)

const (
	skillWeight = 0.7
	levelWeight = 0.3

	// neutralMatch is the prior used when requirements or a table entry are unknown.
	neutralMatch = 0.5
)

// levelScores maps (issue difficulty, user level) to a fit factor. Pairs
// absent from the table, such as an unknown difficulty, score neutralMatch.
var levelScores = map[[2]string]float64{
	{DifficultyBeginner, DifficultyBeginner}:         1.0,
	{DifficultyBeginner, DifficultyIntermediate}:     0.8,
	{DifficultyBeginner, DifficultyAdvanced}:         0.6,
	{DifficultyIntermediate, DifficultyBeginner}:     0.5,
	{DifficultyIntermediate, DifficultyIntermediate}: 1.0,
	{DifficultyIntermediate, DifficultyAdvanced}:     0.8,
	{DifficultyAdvanced, DifficultyBeginner}:         0.3,
	{DifficultyAdvanced, DifficultyIntermediate}:     0.6,
	{DifficultyAdvanced, DifficultyAdvanced}:         1.0,
}

// CalculateMatchScore computes how well an analyzed issue fits a user
// profile. Skill comparison is case-insensitive and recall-style: it measures
// coverage of the issue's required skills, not of the user's skill set.
// Empty requirements score the neutral prior. The overall score weights skill
// overlap over level fit 70/30.
func CalculateMatchScore(analysis *Analysis, userSkills []string, userLevel string) *MatchReport {
	userSet := make(map[string]struct{}, len(userSkills))
	for _, skill := range userSkills {
		userSet[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
	}

	var required []string
	if analysis != nil {
		required = analysis.Skills
	}

	matching := []string{}
	missing := []string{}
	for _, skill := range required {
		if _, ok := userSet[strings.ToLower(skill)]; ok {
			matching = append(matching, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	skillMatch := neutralMatch
	if len(required) > 0 {
		skillMatch = float64(len(matching)) / float64(len(required))
	}

	difficulty := DifficultyUnknown
	if analysis != nil && analysis.Difficulty != "" {
		difficulty = strings.ToLower(analysis.Difficulty)
	}
	level := strings.ToLower(strings.TrimSpace(userLevel))

	levelMatch, ok := levelScores[[2]string{difficulty, level}]
	if !ok {
		levelMatch = neutralMatch
	}

	overall := skillMatch*skillWeight + levelMatch*levelWeight

	return &MatchReport{
		MatchPercentage: toPercent(overall),
		SkillMatch:      toPercent(skillMatch),
		LevelMatch:      toPercent(levelMatch),
		MatchingSkills:  matching,
		MissingSkills:   missing,
		Explanation:     buildExplanation(matching, missing, difficulty, level),
		Recommendation:  recommendationFor(overall),
	}
}

// buildExplanation concatenates up to three clauses. Clauses without content
// are omitted entirely rather than left as empty placeholders.
func buildExplanation(matching, missing []string, difficulty, level string) string {
	parts := make([]string, 0, 3)

	if len(matching) > 0 {
		parts = append(parts, fmt.Sprintf("You know: %s", strings.Join(matching, ", ")))
	}

	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("You need to learn: %s", strings.Join(missing, ", ")))
	}

	if difficulty != level {
		parts = append(parts, fmt.Sprintf("Issue is %s, you're %s", difficulty, level))
	}

	return strings.Join(parts, " | ")
}

// recommendationFor selects the tier for an overall score. Band lower bounds
// are inclusive, so a boundary score belongs to the higher band.
func recommendationFor(score float64) string {
	switch {
	case score >= 0.8:
		return "Excellent match! Start working on this."
	case score >= 0.6:
		return "Good match. Minor learning needed."
	case score >= 0.4:
		return "Moderate match. Some learning required."
	default:
		return "Low match. Better to learn more first."
	}
}

// toPercent rounds half away from zero.
func toPercent(v float64) int {
	return int(math.Round(v * 100))
}
