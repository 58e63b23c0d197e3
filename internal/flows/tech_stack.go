package flows

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type TechStackInput struct {
	ApplicationType string `json:"applicationType"`
}

type TechStackOutput struct {
	TechStacks []string `json:"techStacks"`
}

var techStackSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"techStacks": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "The top 3 tech stacks suitable for the application type, ranked by popularity.",
		},
	},
	Required: []string{"techStacks"},
}

const techStackPromptFmt = `You are an AI expert in software development.

You will recommend the top 3 most suitable tech stacks for the given application type, ranked by popularity.

Application Type: %s

Return only the stack names, e.g. ["MEAN", "MERN", "LAMP"].
`

// RecommendTechStack returns the top 3 stacks for an application type. The
// wizard keeps at most one of them.
func (s *Service) RecommendTechStack(ctx context.Context, in TechStackInput) (TechStackOutput, error) {
	var out TechStackOutput

	prompt := fmt.Sprintf(techStackPromptFmt, in.ApplicationType)
	if err := s.gen.GenerateJSON(ctx, prompt, nil, techStackSchema, &out); err != nil {
		return out, fmt.Errorf("recommend tech stack: %w", err)
	}

	if len(out.TechStacks) > 3 {
		out.TechStacks = out.TechStacks[:3]
	}
	return out, nil
}
