// Package flows holds one templated generation call per wizard operation.
// Each call declares its input struct, its prompt, and a response schema the
// model output is validated against before it is decoded.
package flows

import (
	"context"

	"google.golang.org/genai"

	"github.com/403errors/ideaflowai/internal/llm"
)

// generator is the piece of llm.Client the flows use. Tests swap in fakes.
type generator interface {
	GenerateJSON(ctx context.Context, prompt string, parts []*genai.Part, schema *genai.Schema, out any) error
}

type Service struct {
	gen generator
}

func NewService(gen *llm.Client) *Service {
	return &Service{gen: gen}
}

// Question is one multiple-choice refinement question. recommendedOption is
// always one of options.
type Question struct {
	Question          string   `json:"question"`
	Options           []string `json:"options"`
	RecommendedOption string   `json:"recommendedOption"`
}

// Feature is one discrete capability extracted from a setup prompt.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PlanSection is one generated block of the final plan. The assembler, not
// the model, decides which headings are allowed to appear.
type PlanSection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// FileChange is one generated file for a feature.
type FileChange struct {
	FilePath string `json:"filePath"`
	Content  string `json:"content"`
}
