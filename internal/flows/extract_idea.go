package flows

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/403errors/ideaflowai/internal/llm"
)

type ExtractIdeaInput struct {
	// Input is free text or a data URI carrying an image or PDF.
	Input string `json:"input"`
}

type ExtractIdeaOutput struct {
	MarkdownOutput string `json:"markdownOutput"`
}

var extractIdeaSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"markdownOutput": {
			Type:        genai.TypeString,
			Description: "The extracted idea in markdown format, with sections for Overview, Goals, Key Features, Target Audience, Potential Monetization, and Constraints.",
		},
	},
	Required: []string{"markdownOutput"},
}

const extractIdeaPrompt = `You are an expert product manager and business analyst. Your task is to analyze the user's input, which could be text, an image, or a PDF, and extract all relevant details to create a structured project idea in markdown format.

Analyze the provided input and generate a markdown document with the following sections:

## Overview
A concise summary of the application idea. What is the core problem it solves?

## Goals
List the primary objectives and desired outcomes for this project.

## Key Features
Detail the essential features and functionalities. Be specific.

## Target Audience
Describe the ideal users for this application.

## Potential Monetization
Suggest possible ways the application could generate revenue (e.g., subscriptions, ads, one-time purchases).

## Constraints
Identify any limitations, challenges, or non-goals mentioned or implied.

Here is the user's input to analyze:
`

// ExtractIdea turns raw user input (text or an uploaded file) into the
// structured idea summary the rest of the wizard builds on.
func (s *Service) ExtractIdea(ctx context.Context, in ExtractIdeaInput) (ExtractIdeaOutput, error) {
	var out ExtractIdeaOutput

	if strings.TrimSpace(in.Input) == "" {
		return out, fmt.Errorf("idea input is empty")
	}

	var prompt strings.Builder
	prompt.WriteString(extractIdeaPrompt)

	media, isMedia, err := llm.MediaPart(in.Input)
	if err != nil {
		return out, fmt.Errorf("extract idea: %w", err)
	}

	var parts []*genai.Part
	if isMedia {
		// The text context tells the model what to do with the file.
		prompt.WriteString("Analyze the attached file which contains an application idea.\n")
		parts = append(parts, media)
	} else {
		prompt.WriteString(in.Input)
		prompt.WriteString("\n")
	}

	if err := s.gen.GenerateJSON(ctx, prompt.String(), parts, extractIdeaSchema, &out); err != nil {
		return out, fmt.Errorf("extract idea: %w", err)
	}
	if strings.TrimSpace(out.MarkdownOutput) == "" {
		return out, fmt.Errorf("extract idea: empty summary")
	}
	return out, nil
}
