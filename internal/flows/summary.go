package flows

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type FinalSummaryInput struct {
	IdeaSummary         string            `json:"ideaSummary"`
	Answers             map[string]string `json:"answers"`
	TechStack           []string          `json:"techStack"`
	IncludeAuth         bool              `json:"includeAuth"`
	IncludeMonetization bool              `json:"includeMonetization"`
	// Sections is the decided, ordered heading set. The model writes prose
	// for these headings and nothing else; the assembler drops strays.
	Sections []string `json:"-"`
}

type FinalSummaryOutput struct {
	Sections []PlanSection `json:"sections"`
}

var finalSummarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"sections": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"heading": {Type: genai.TypeString, Description: "Exactly one of the requested section headings."},
					"content": {Type: genai.TypeString, Description: "Markdown body for the section, without the heading line."},
				},
				Required: []string{"heading", "content"},
			},
		},
	},
	Required: []string{"sections"},
}

// GenerateFinalSummary produces the prose for an already-decided section set.
func (s *Service) GenerateFinalSummary(ctx context.Context, in FinalSummaryInput) (FinalSummaryOutput, error) {
	var out FinalSummaryOutput

	prompt := buildFinalSummaryPrompt(in)
	if err := s.gen.GenerateJSON(ctx, prompt, nil, finalSummarySchema, &out); err != nil {
		return out, fmt.Errorf("generate final summary: %w", err)
	}
	return out, nil
}

func buildFinalSummaryPrompt(in FinalSummaryInput) string {
	var b strings.Builder

	b.WriteString(`You are an expert product manager and software architect. Synthesize all the information below into a cohesive application development plan.

Write one markdown body per section, for exactly these sections and no others:
`)
	for _, h := range in.Sections {
		fmt.Fprintf(&b, "- %s\n", h)
	}

	b.WriteString(`
Instructions:
- Synthesize, don't just list: weave the idea and the user's answers into a coherent narrative.
- Do not add a "Development Roadmap", "Timeline", or any other project management section.
- Do not repeat the section heading inside the content; the heading is rendered separately.
`)

	if !in.IncludeMonetization {
		b.WriteString("- The user has explicitly disabled monetization. You MUST NOT suggest or detail monetization, subscriptions, paywalls, ads, or any revenue features in any section, even if the original idea mentions them.\n")
	}

	b.WriteString("\n### Source Information\n\n**Initial Idea Summary:**\n")
	b.WriteString(in.IdeaSummary)
	b.WriteString("\n")

	if len(in.Answers) > 0 {
		b.WriteString("\n**User Refinements (Q&A):**\n")
		b.WriteString(renderAnswers(in.Answers))
	}

	if in.IncludeAuth {
		b.WriteString("\n**User Authentication:** The user has chosen to include a user authentication system.\n")
	}
	if in.IncludeMonetization {
		b.WriteString("\n**Monetization:** The user has chosen to include a monetization strategy.\n")
	}
	if len(in.TechStack) > 0 {
		b.WriteString("\n**Technology Recommendations:**\n")
		for _, t := range in.TechStack {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	b.WriteString("\nGenerate the plan sections based only on the information above, following all instructions.\n")
	return b.String()
}
