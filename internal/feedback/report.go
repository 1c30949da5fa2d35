package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MinWords is the minimum whitespace-delimited word count accepted for
// analysis.
const MinWords = 30

type Framework string

const (
	FrameworkCBT           Framework = "cbt"
	FrameworkHumanistic    Framework = "humanistic"
	FrameworkPsychodynamic Framework = "psychodynamic"
)

func (f Framework) Valid() bool {
	switch f {
	case FrameworkCBT, FrameworkHumanistic, FrameworkPsychodynamic:
		return true
	default:
		return false
	}
}

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	default:
		return false
	}
}

// Report is the structured feedback the model must return.
type Report struct {
	Strengths     []string `json:"strengths"`
	Gaps          []string `json:"gaps"`
	Suggestions   []string `json:"suggestions"`
	OverallLevel  Level    `json:"overallLevel"`
	Reformulation string   `json:"reformulation"`
}

var (
	ErrEmptyResponse = errors.New("empty response from model")
	ErrInvalidJSON   = errors.New("model did not return valid JSON")
	ErrBadSchema     = errors.New("model response does not match the report schema")
)

// WordCount counts whitespace-delimited words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

func frameworkPrompt(f Framework) string {
	switch f {
	case FrameworkCBT:
		return "Use a CBT lens: structure, triggers, thoughts, behaviors, interventions, next steps."
	case FrameworkHumanistic:
		return "Use a Humanistic lens: empathy, reflection, congruence, emotion labeling, relational safety."
	case FrameworkPsychodynamic:
		return "Use a Psychodynamic lens: patterns, defenses, affect, meaning, transference/countertransference hypotheses."
	default:
		return ""
	}
}

const systemPrompt = "You are a clinical skills feedback engine."

func userPrompt(f Framework, text string) string {
	return fmt.Sprintf(`
Framework instruction: %s

Input session text:
"""
%s
"""

Return JSON with this exact schema:
{
  "strengths": string[],
  "gaps": string[],
  "suggestions": string[],
  "overallLevel": "Beginner" | "Intermediate" | "Advanced",
  "reformulation": string
}

Rules:
- Make items specific and actionable.
- Keep each bullet short (max ~18 words).
- No diagnosis. Focus on communication/intervention skills.
- No extra keys.
`, frameworkPrompt(f), text)
}

// NormalizeReport validates the model's JSON against the report schema.
// Non-string array entries are dropped; a missing level or reformulation
// fails the whole report rather than being coerced.
func NormalizeReport(raw []byte) (Report, error) {
	var loose struct {
		Strengths     []any  `json:"strengths"`
		Gaps          []any  `json:"gaps"`
		Suggestions   []any  `json:"suggestions"`
		OverallLevel  string `json:"overallLevel"`
		Reformulation string `json:"reformulation"`
	}
	if err := json.Unmarshal(raw, &loose); err != nil {
		return Report{}, ErrBadSchema
	}

	report := Report{
		Strengths:     onlyStrings(loose.Strengths),
		Gaps:          onlyStrings(loose.Gaps),
		Suggestions:   onlyStrings(loose.Suggestions),
		OverallLevel:  Level(loose.OverallLevel),
		Reformulation: loose.Reformulation,
	}
	if !report.OverallLevel.Valid() {
		return Report{}, ErrBadSchema
	}
	if report.Reformulation == "" {
		return Report{}, ErrBadSchema
	}
	return report, nil
}

func onlyStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if s, ok := value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Markdown renders a validated report into the fixed text template served
// alongside the structured form.
func Markdown(f Framework, r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# AI Feedback (%s)\n\n", f)
	b.WriteString("## Strengths\n")
	b.WriteString(bulletList(r.Strengths))
	b.WriteString("\n\n## Gaps\n")
	b.WriteString(bulletList(r.Gaps))
	b.WriteString("\n\n## Suggestions\n")
	b.WriteString(bulletList(r.Suggestions))
	fmt.Fprintf(&b, "\n\n## Overall level\n**%s**\n", r.OverallLevel)
	fmt.Fprintf(&b, "\n## Suggested reformulation\n%s\n", r.Reformulation)
	return b.String()
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
