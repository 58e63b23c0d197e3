package flows

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type ExtractFeaturesInput struct {
	// SetupPrompt is the Key Features slice of the full setup document; the
	// caller cuts it out so other sections cannot leak into the result.
	SetupPrompt string `json:"setupPrompt"`
}

type ExtractFeaturesOutput struct {
	Features []Feature `json:"features"`
}

var extractFeaturesSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"features": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": {
						Type:        genai.TypeString,
						Description: `A concise title for the feature (e.g., "User Authentication").`,
					},
					"description": {
						Type:        genai.TypeString,
						Description: "A detailed, one-paragraph description of the feature and its requirements.",
					},
				},
				Required: []string{"title", "description"},
			},
		},
	},
	Required: []string{"features"},
}

const extractFeaturesPromptFmt = `You are an expert at parsing technical documents. The text below is the features section of a project setup prompt.

Extract every listed feature. For each one, provide a concise but descriptive title and a detailed, one-paragraph description of what the feature entails based on the plan. Do not invent features that are not listed.

Features section:
---
%s
---
`

func (s *Service) ExtractFeatures(ctx context.Context, in ExtractFeaturesInput) (ExtractFeaturesOutput, error) {
	var out ExtractFeaturesOutput

	if strings.TrimSpace(in.SetupPrompt) == "" {
		return out, fmt.Errorf("extract features: empty input")
	}

	prompt := fmt.Sprintf(extractFeaturesPromptFmt, in.SetupPrompt)
	if err := s.gen.GenerateJSON(ctx, prompt, nil, extractFeaturesSchema, &out); err != nil {
		return out, fmt.Errorf("extract features: %w", err)
	}
	return out, nil
}
