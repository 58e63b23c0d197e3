package flows

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GenerateCodeInput struct {
	SetupPrompt        string `json:"setupPrompt"`
	FeatureTitle       string `json:"featureTitle"`
	FeatureDescription string `json:"featureDescription"`
}

type GenerateCodeOutput struct {
	Files []FileChange `json:"files"`
}

var generateCodeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"files": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"filePath": {
						Type:        genai.TypeString,
						Description: "The full path of the file to be created or modified.",
					},
					"content": {
						Type:        genai.TypeString,
						Description: "The complete code content for the file.",
					},
				},
				Required: []string{"filePath", "content"},
			},
		},
	},
	Required: []string{"files"},
}

const generateCodePromptFmt = `You are an expert developer specializing in production-quality code for the stack described in the application plan.

Your task is to generate the necessary code for a specific feature based on the provided application plan.

Application Plan:
---
%s
---

Feature to Implement:
- Title: %s
- Description: %s

Instructions:
1. Generate the complete code for the feature. This may involve creating new files or modifying existing ones.
2. Provide the output as an array of file objects, each with the filePath and the full content of the file.
3. Ensure the code is clean, well-structured, and follows best practices for the plan's tech stack.
4. Use placeholder images from https://placehold.co/<width>x<height>.png if needed.
5. Do not include comments in the code.
`

// GenerateCode produces whole-file changes for one feature.
func (s *Service) GenerateCode(ctx context.Context, in GenerateCodeInput) (GenerateCodeOutput, error) {
	var out GenerateCodeOutput

	prompt := fmt.Sprintf(generateCodePromptFmt, in.SetupPrompt, in.FeatureTitle, in.FeatureDescription)
	if err := s.gen.GenerateJSON(ctx, prompt, nil, generateCodeSchema, &out); err != nil {
		return out, fmt.Errorf("generate code: %w", err)
	}
	return out, nil
}
