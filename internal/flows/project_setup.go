package flows

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type ProjectSetupInput struct {
	FinalSummary string `json:"finalSummary"`
	ProjectName  string `json:"projectName"`
	// IncludeTechStack is decided by the assembler from the plan itself.
	IncludeTechStack bool `json:"-"`
}

type ProjectSetupOutput struct {
	SetupPromptContent string `json:"setupPromptContent"`
	FileStructure      string `json:"fileStructure"`
}

var projectSetupSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"setupPromptContent": {
			Type:        genai.TypeString,
			Description: "The content for the application setup prompt, derived from the final plan.",
		},
		"fileStructure": {
			Type:        genai.TypeString,
			Description: "A markdown fenced code block with the recommended project file structure.",
		},
	},
	Required: []string{"setupPromptContent", "fileStructure"},
}

func (s *Service) GenerateProjectSetup(ctx context.Context, in ProjectSetupInput) (ProjectSetupOutput, error) {
	var out ProjectSetupOutput

	prompt := buildProjectSetupPrompt(in)
	if err := s.gen.GenerateJSON(ctx, prompt, nil, projectSetupSchema, &out); err != nil {
		return out, fmt.Errorf("generate project setup: %w", err)
	}

	if strings.TrimSpace(out.SetupPromptContent) == "" || strings.TrimSpace(out.FileStructure) == "" {
		return out, fmt.Errorf("generate project setup: incomplete output")
	}
	return out, nil
}

func buildProjectSetupPrompt(in ProjectSetupInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a senior software engineer creating a comprehensive "Setup Prompt" for an AI developer. This document is the foundational blueprint and must contain all necessary information to begin the project.

Based on the application plan below for a project named '%s', generate two things: the Setup Prompt document and a recommended file structure.

Setup Prompt instructions:
- It must be a complete, self-contained set of initial instructions that strictly adheres to the plan.
- It must naturally incorporate the project's name, '%s', where appropriate (e.g., in the Core Idea section).
- It must contain these sections: "Core Idea", "Objectives", "Key Features", "User Flow".
`, in.ProjectName, in.ProjectName)

	if in.IncludeTechStack {
		b.WriteString("- It must also contain a \"Recommended Tech Stack\" section reflecting the plan's technology recommendations.\n")
	} else {
		b.WriteString("- The plan does not choose a tech stack, so you MUST NOT include a \"Recommended Tech Stack\" section.\n")
	}

	b.WriteString(`- Do not add a main title or heading like "# Setup Prompt". Start directly with the "Core Idea" section.

File structure instructions:
- Represent the key directories and files as a markdown fenced code block appropriate for the application described.

Application Plan:
---
`)
	b.WriteString(in.FinalSummary)
	b.WriteString("\n---\n")

	return b.String()
}
