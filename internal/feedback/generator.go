package feedback

import "context"

// Result is a generated report plus the model name that produced it.
type Result struct {
	Report Report
	Model  string
}

// Generator produces a feedback report for a session transcript. Two
// implementations exist: the deterministic Mock used when no API key is
// configured, and the OpenAI-backed Client.
type Generator interface {
	Generate(ctx context.Context, framework Framework, text string) (Result, error)
}
