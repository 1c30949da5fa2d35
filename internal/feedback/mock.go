package feedback

import "context"

// Mock returns a fixed, deterministic report. Selected when no API key is
// configured so the demo stays usable without credentials.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Generate(_ context.Context, _ Framework, _ string) (Result, error) {
	report := Report{
		Strengths: []string{
			"Clear opening question to invite sharing.",
			"Good exploration of body sensations.",
		},
		Gaps: []string{
			"Needs more specificity on timeline and triggers.",
			"Could validate emotions more explicitly.",
		},
		Suggestions: []string{
			"Ask for a recent concrete example (last 24–48h).",
			"Reflect feeling + meaning in one sentence, then ask a focused follow-up.",
			"Close with a small agreed next step for the week.",
		},
		OverallLevel: LevelIntermediate,
		Reformulation: "It sounds like the anxiety shows up most at night, and your mind races as you try " +
			"to regain certainty—let’s slow it down and map what happens right before it spikes.",
	}
	return Result{Report: report, Model: "mock"}, nil
}
