package flows

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type FeaturePromptInput struct {
	SetupPrompt        string `json:"setupPrompt"`
	FileStructure      string `json:"fileStructure"`
	FeatureTitle       string `json:"featureTitle"`
	FeatureDescription string `json:"featureDescription"`
}

type FeaturePromptOutput struct {
	FeaturePrompt string `json:"featurePrompt"`
}

var featurePromptSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"featurePrompt": {
			Type:        genai.TypeString,
			Description: "A detailed, sophisticated engineering prompt for an AI to generate code for the feature.",
		},
	},
	Required: []string{"featurePrompt"},
}

const featurePromptFmt = `You are an expert prompt engineer and senior software architect. Create a detailed, consistent, and sophisticated prompt that will instruct an AI assistant to generate production-quality code for a specific feature within an existing project.

The generated prompt must be a complete, standalone set of instructions for another LLM. It is part of a sequence, so it must be consistent with the overall application plan and assume previously generated features are already implemented.

Overall Application Plan (for context):
---
%s
---

Project File Structure (for reference):
---
%s
---

Feature to create a prompt for:
- Title: %s
- Description: %s

The generated prompt must include:
1. Feature Summary: what is being built and how it fits into the overall application.
2. File Modifications: which files to create or modify, with exact paths consistent with the file structure above.
3. Component Logic: detailed logic including state management, props or parameters, and data flow.
4. Technical Implementation: guidance tied to the plan's recommended tech stack.
5. Edge Cases: empty states, error handling, loading states.
6. Best Practices: reusable components, clean code without comments, placeholder assets where needed.

Return only the text of the generated prompt itself, ready for another AI to execute. Do not wrap it in markdown or add conversational text.
`

// GenerateFeaturePrompt produces the standalone engineering prompt for one
// extracted feature.
func (s *Service) GenerateFeaturePrompt(ctx context.Context, in FeaturePromptInput) (FeaturePromptOutput, error) {
	var out FeaturePromptOutput

	prompt := fmt.Sprintf(featurePromptFmt, in.SetupPrompt, in.FileStructure, in.FeatureTitle, in.FeatureDescription)
	if err := s.gen.GenerateJSON(ctx, prompt, nil, featurePromptSchema, &out); err != nil {
		return out, fmt.Errorf("generate feature prompt: %w", err)
	}
	return out, nil
}
