package analyzer

import (
	"reflect"
	"strings"
	"testing"
)

func TestCalculateMatchScoreNoRequirements(t *testing.T) {
	t.Parallel()

	analysis := &Analysis{Difficulty: DifficultyUnknown, Skills: []string{}}

	report := CalculateMatchScore(analysis, []string{"Go", "Python"}, "beginner")

	if report.SkillMatch != 50 {
		t.Fatalf("expected neutral skill match 50, got %d", report.SkillMatch)
	}

	// unknown difficulty also scores the neutral prior
	if report.LevelMatch != 50 {
		t.Fatalf("expected neutral level match 50, got %d", report.LevelMatch)
	}

	if report.MatchPercentage != 50 {
		t.Fatalf("expected overall 50, got %d", report.MatchPercentage)
	}
}

func TestCalculateMatchScoreLevelTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		difficulty string
		level      string
		expect     int
	}{
		{DifficultyBeginner, "beginner", 100},
		{DifficultyBeginner, "intermediate", 80},
		{DifficultyBeginner, "advanced", 60},
		{DifficultyIntermediate, "beginner", 50},
		{DifficultyIntermediate, "intermediate", 100},
		{DifficultyIntermediate, "advanced", 80},
		{DifficultyAdvanced, "beginner", 30},
		{DifficultyAdvanced, "intermediate", 60},
		{DifficultyAdvanced, "advanced", 100},
		{DifficultyUnknown, "beginner", 50},
		{DifficultyBeginner, "expert", 50},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty+"/"+tt.level, func(t *testing.T) {
			t.Parallel()

			analysis := &Analysis{Difficulty: tt.difficulty}
			report := CalculateMatchScore(analysis, nil, tt.level)
			if report.LevelMatch != tt.expect {
				t.Fatalf("expected level match %d, got %d", tt.expect, report.LevelMatch)
			}
		})
	}
}

func TestCalculateMatchScoreCaseInsensitiveSkills(t *testing.T) {
	t.Parallel()

	analysis := &Analysis{
		Difficulty: DifficultyBeginner,
		Skills:     []string{"Python", "Git"},
	}

	report := CalculateMatchScore(analysis, []string{"python"}, "beginner")

	if !reflect.DeepEqual(report.MatchingSkills, []string{"Python"}) {
		t.Fatalf("unexpected matching skills: %v", report.MatchingSkills)
	}

	if !reflect.DeepEqual(report.MissingSkills, []string{"Git"}) {
		t.Fatalf("unexpected missing skills: %v", report.MissingSkills)
	}

	if report.SkillMatch != 50 {
		t.Fatalf("expected skill match 50, got %d", report.SkillMatch)
	}
}

func TestCalculateMatchScoreWeights(t *testing.T) {
	t.Parallel()

	analysis := &Analysis{
		Difficulty: DifficultyAdvanced,
		Skills:     []string{"Go", "Kubernetes"},
	}

	// skill match 1.0, level match 0.3 -> overall 0.79
	report := CalculateMatchScore(analysis, []string{"go", "kubernetes"}, "beginner")

	if report.MatchPercentage != 79 {
		t.Fatalf("expected overall 79, got %d", report.MatchPercentage)
	}

	if report.LevelMatch != 30 {
		t.Fatalf("expected level match 30, got %d", report.LevelMatch)
	}
}

func TestExplanationClauses(t *testing.T) {
	t.Parallel()

	analysis := &Analysis{
		Difficulty: DifficultyAdvanced,
		Skills:     []string{"Python", "Git"},
	}

	report := CalculateMatchScore(analysis, []string{"python"}, "Beginner")

	parts := strings.Split(report.Explanation, " | ")
	if len(parts) != 3 {
		t.Fatalf("expected 3 clauses, got %d: %q", len(parts), report.Explanation)
	}

	if parts[0] != "You know: Python" {
		t.Fatalf("unexpected known clause: %q", parts[0])
	}

	if parts[1] != "You need to learn: Git" {
		t.Fatalf("unexpected missing clause: %q", parts[1])
	}

	if parts[2] != "Issue is advanced, you're beginner" {
		t.Fatalf("unexpected level clause: %q", parts[2])
	}
}

func TestExplanationOmitsEmptyClauses(t *testing.T) {
	t.Parallel()

	analysis := &Analysis{
		Difficulty: DifficultyBeginner,
		Skills:     []string{"Markdown"},
	}

	report := CalculateMatchScore(analysis, []string{"markdown"}, "beginner")

	if report.Explanation != "You know: Markdown" {
		t.Fatalf("expected a single clause, got %q", report.Explanation)
	}
}

func TestRecommendationThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score  float64
		expect string
	}{
		{0.95, "Excellent match! Start working on this."},
		{0.8, "Excellent match! Start working on this."},
		{0.79, "Good match. Minor learning needed."},
		{0.6, "Good match. Minor learning needed."},
		{0.59, "Moderate match. Some learning required."},
		{0.4, "Moderate match. Some learning required."},
		{0.39, "Low match. Better to learn more first."},
		{0, "Low match. Better to learn more first."},
	}

	for _, tt := range tests {
		if got := recommendationFor(tt.score); got != tt.expect {
			t.Fatalf("score %.2f: expected %q, got %q", tt.score, tt.expect, got)
		}
	}
}

func TestCalculateMatchScoreNilAnalysis(t *testing.T) {
	t.Parallel()

	report := CalculateMatchScore(nil, []string{"go"}, "beginner")

	if report.SkillMatch != 50 || report.LevelMatch != 50 {
		t.Fatalf("expected neutral report, got %+v", report)
	}
}
