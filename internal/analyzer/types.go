package analyzer

import "github.com/gsocbuddy/gsoc-buddy/internal/ai"

// Difficulty levels recognized in analysis results.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyUnknown      = "unknown"
)

// Tri-state GSOC suitability values.
const (
	GSOCYes     = "yes"
	GSOCNo      = "no"
	GSOCUnknown = "unknown"
)

// Issue categories recognized in analysis results.
const (
	CategoryBug           = "bug"
	CategoryFeature       = "feature"
	CategoryDocumentation = "documentation"
	CategoryRefactoring   = "refactoring"
	CategoryEnhancement   = "enhancement"
	CategoryTesting       = "testing"
	CategoryUnknown       = "unknown"
)

// Issue priorities recognized in analysis results.
const (
	PriorityLow     = "low"
	PriorityMedium  = "medium"
	PriorityHigh    = "high"
	PriorityUnknown = "unknown"
)

// Request carries the inputs for analyzing a single issue.
type Request struct {
	Title       string
	Description string
	Labels      []string
}

// Analysis is the structured assessment of a single GitHub issue. Either the
// classification fields are meaningful or Err is set, never both.
type Analysis struct {
	Difficulty    string   `yaml:"difficulty"`
	Skills        []string `yaml:"skills"`
	EstimatedTime string   `yaml:"estimated_time"`
	GSOCFriendly  string   `yaml:"gsoc_friendly"`
	Category      string   `yaml:"category"`
	Priority      string   `yaml:"priority"`
	Reasoning     string   `yaml:"reasoning"`
	Concepts      []string `yaml:"concepts,omitempty"`

	// GoodForBeginners is derived: true iff Difficulty is exactly "beginner".
	GoodForBeginners bool `yaml:"good_for_beginners"`

	Raw                 string   `yaml:"raw_response,omitempty"`
	OriginalTitle       string   `yaml:"original_title"`
	OriginalDescription string   `yaml:"original_description,omitempty"`
	Labels              []string `yaml:"labels,omitempty"`

	// Position is the 1-based index within a batch, zero otherwise.
	Position int `yaml:"position,omitempty"`

	// ParseWarning records a non-fatal parsing anomaly. The rest of the
	// result is still best-effort valid.
	ParseWarning string `yaml:"parse_warning,omitempty"`

	Err *Failure `yaml:"error,omitempty"`
}

// Failed reports whether the analysis carries a provider failure instead of
// a classification.
func (a *Analysis) Failed() bool {
	return a != nil && a.Err != nil
}

// Failure describes a classified AI provider failure attached to an analysis.
type Failure struct {
	Kind    ai.ErrorKind `yaml:"kind"`
	Message string       `yaml:"message"`
	// Hint suggests a remediation when one is known for the kind.
	Hint string `yaml:"hint,omitempty"`
}

// MatchReport describes how well an analyzed issue fits a user profile.
// Percentages are rounded to integers in the 0-100 range.
type MatchReport struct {
	MatchPercentage int      `yaml:"match_percentage"`
	SkillMatch      int      `yaml:"skill_match"`
	LevelMatch      int      `yaml:"level_match"`
	MatchingSkills  []string `yaml:"matching_skills"`
	MissingSkills   []string `yaml:"missing_skills"`
	Explanation     string   `yaml:"explanation"`
	Recommendation  string   `yaml:"recommendation"`
}

func newAnalysis() *Analysis {
	return &Analysis{
		Difficulty:    DifficultyUnknown,
		Skills:        []string{},
		EstimatedTime: "unknown",
		GSOCFriendly:  GSOCUnknown,
		Category:      CategoryUnknown,
		Priority:      PriorityUnknown,
	}
}
