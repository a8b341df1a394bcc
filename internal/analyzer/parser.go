package analyzer

import "strings"

// Canonical field identifiers produced by normalizing response keys.
const (
	fieldDifficulty = "difficulty"
	fieldSkills     = "skills"
	fieldTime       = "time"
	fieldGSOC       = "gsoc"
	fieldCategory   = "category"
	fieldPriority   = "priority"
	fieldReasoning  = "reasoning"
	fieldConcepts   = "concepts"
)

// fieldAliases maps the header spellings seen across prompt revisions to
// canonical fields. An explicit table avoids the double-match ambiguity of
// substring scanning (a GOOD_FOR_GSOC key binds exactly one field).
var fieldAliases = map[string]string{
	"DIFFICULTY":      fieldDifficulty,
	"SKILLS":          fieldSkills,
	"SKILLS_REQUIRED": fieldSkills,
	"REQUIRED_SKILLS": fieldSkills,
	"TIME":            fieldTime,
	"TIME_ESTIMATE":   fieldTime,
	"ESTIMATED_TIME":  fieldTime,
	"ESTIMATED_HOURS": fieldTime,
	"GSOC_FRIENDLY":   fieldGSOC,
	"GOOD_FOR_GSOC":   fieldGSOC,
	"CATEGORY":        fieldCategory,
	"PRIORITY":        fieldPriority,
	"REASONING":       fieldReasoning,
	"EXPLANATION":     fieldReasoning,
	"CONCEPTS":        fieldConcepts,
	"CONCEPTS_NEEDED": fieldConcepts,
}

var difficulties = map[string]bool{
	DifficultyBeginner:     true,
	DifficultyIntermediate: true,
	DifficultyAdvanced:     true,
}

var categories = map[string]bool{
	CategoryBug:           true,
	CategoryFeature:       true,
	CategoryDocumentation: true,
	CategoryRefactoring:   true,
	CategoryEnhancement:   true,
	CategoryTesting:       true,
}

var priorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// parseResponse turns a free-text model reply into a best-effort Analysis.
// It never fails: unrecognized or missing lines leave fields at their
// defaults, and anomalies are recorded on ParseWarning.
func parseResponse(raw string) *Analysis {
	result := newAnalysis()

	matched := 0
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		field, ok := fieldAliases[normalizeKey(key)]
		if !ok {
			continue
		}
		matched++

		value = strings.TrimSpace(value)
		switch field {
		case fieldDifficulty:
			difficulty := strings.ToLower(value)
			result.GoodForBeginners = difficulty == DifficultyBeginner
			if !difficulties[difficulty] {
				difficulty = DifficultyUnknown
			}
			result.Difficulty = difficulty
		case fieldSkills:
			result.Skills = splitList(value)
		case fieldTime:
			if value != "" {
				result.EstimatedTime = value
			}
		case fieldGSOC:
			result.GSOCFriendly = parseTriState(value)
		case fieldCategory:
			category := strings.ToLower(value)
			if !categories[category] {
				category = CategoryUnknown
			}
			result.Category = category
		case fieldPriority:
			priority := strings.ToLower(value)
			if !priorities[priority] {
				priority = PriorityUnknown
			}
			result.Priority = priority
		case fieldReasoning:
			result.Reasoning = value
		case fieldConcepts:
			result.Concepts = splitList(value)
		}
	}

	if matched == 0 {
		result.ParseWarning = "no recognizable fields in response"
	}

	return result
}

// normalizeKey uppercases the key side of a response line and strips the
// markdown decoration models like to add, so "**Time Estimate**" still binds.
func normalizeKey(key string) string {
	key = strings.ToUpper(strings.TrimSpace(key))
	key = strings.Trim(key, "*-#:. \t")
	key = strings.ReplaceAll(key, " ", "_")
	return key
}

// splitList parses a comma-separated value preserving order. Duplicates are
// kept: deduplication is the caller's concern.
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseTriState(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true":
		return GSOCYes
	case "no", "false":
		return GSOCNo
	default:
		return GSOCUnknown
	}
}
