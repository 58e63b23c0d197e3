package flows

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type ProjectNameInput struct {
	Summary string `json:"summary"`
}

type ProjectNameOutput struct {
	ProjectName string `json:"projectName"`
}

var projectNameSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"projectName": {
			Type:        genai.TypeString,
			Description: "A creative, catchy, and short name for the application.",
		},
	},
	Required: []string{"projectName"},
}

const projectNamePromptFmt = `You are an expert in branding and marketing. Your task is to generate a single, creative, and catchy name for a new application based on the provided summary. The name should be short, memorable, and ideally hint at the app's purpose.

Application Summary:
---
%s
---

Generate one project name.
`

func (s *Service) GenerateProjectName(ctx context.Context, in ProjectNameInput) (ProjectNameOutput, error) {
	var out ProjectNameOutput

	prompt := fmt.Sprintf(projectNamePromptFmt, in.Summary)
	if err := s.gen.GenerateJSON(ctx, prompt, nil, projectNameSchema, &out); err != nil {
		return out, fmt.Errorf("generate project name: %w", err)
	}

	out.ProjectName = strings.TrimSpace(out.ProjectName)
	if out.ProjectName == "" {
		return out, fmt.Errorf("generate project name: empty name")
	}
	return out, nil
}
