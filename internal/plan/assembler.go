// Package plan synthesizes the final development plan and the project setup
// documents. Section inclusion is decided here, in code; the model only
// writes prose for an already-decided section set.
package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/403errors/ideaflowai/internal/flows"
)

const (
	SectionCoreIdea     = "Core Idea"
	SectionKeyFeatures  = "Key Features"
	SectionUserFlow     = "User Flow"
	SectionAuth         = "User Authentication"
	SectionMonetization = "Monetization"
	SectionTechRecs     = "Technology Recommendations"

	SectionObjectives   = "Objectives"
	SectionSetupStack   = "Recommended Tech Stack"
	SectionCoreFeatures = "Core Features"

	fileStructurePrefix = "Use this file structure while developing the application..."
)

// SummaryInput is the accumulated wizard state the plan is built from.
type SummaryInput struct {
	IdeaSummary         string
	Answers             map[string]string
	TechStack           []string
	IncludeAuth         bool
	IncludeMonetization bool
}

type generator interface {
	GenerateFinalSummary(ctx context.Context, in flows.FinalSummaryInput) (flows.FinalSummaryOutput, error)
	GenerateProjectSetup(ctx context.Context, in flows.ProjectSetupInput) (flows.ProjectSetupOutput, error)
}

type Assembler struct {
	gen generator
}

func NewAssembler(gen generator) *Assembler {
	return &Assembler{gen: gen}
}

// Sections returns the ordered heading set the final plan is allowed to
// contain for the given toggles. Nothing outside this set ever appears.
func Sections(in SummaryInput) []string {
	secs := []string{SectionCoreIdea, SectionKeyFeatures, SectionUserFlow}
	if in.IncludeAuth {
		secs = append(secs, SectionAuth)
	}
	if in.IncludeMonetization {
		secs = append(secs, SectionMonetization)
	}
	if len(in.TechStack) > 0 {
		secs = append(secs, SectionTechRecs)
	}
	return secs
}

// Summary generates the final plan. Model output is filtered against the
// decided section set: missing sections fail the call, stray sections are
// dropped.
func (a *Assembler) Summary(ctx context.Context, in SummaryInput) (string, error) {
	decided := Sections(in)

	out, err := a.gen.GenerateFinalSummary(ctx, flows.FinalSummaryInput{
		IdeaSummary:         in.IdeaSummary,
		Answers:             in.Answers,
		TechStack:           in.TechStack,
		IncludeAuth:         in.IncludeAuth,
		IncludeMonetization: in.IncludeMonetization,
		Sections:            decided,
	})
	if err != nil {
		return "", err
	}

	byHeading := make(map[string]string, len(out.Sections))
	for _, sec := range out.Sections {
		byHeading[normalizeHeading(sec.Heading)] = strings.TrimSpace(sec.Content)
	}

	var b strings.Builder
	for _, h := range decided {
		content, ok := byHeading[normalizeHeading(h)]
		if !ok || content == "" {
			return "", fmt.Errorf("assemble summary: missing %q section", h)
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", h, content)
	}
	return strings.TrimSpace(b.String()), nil
}

// Setup generates the setup prompt and file structure from a finished plan.
// The tech-stack section is included iff the plan itself carries technology
// recommendations, detected here rather than trusted to the model.
func (a *Assembler) Setup(ctx context.Context, finalSummary, projectName string) (flows.ProjectSetupOutput, error) {
	includeTech := HasSection(finalSummary, SectionTechRecs)

	out, err := a.gen.GenerateProjectSetup(ctx, flows.ProjectSetupInput{
		FinalSummary:     finalSummary,
		ProjectName:      projectName,
		IncludeTechStack: includeTech,
	})
	if err != nil {
		return flows.ProjectSetupOutput{}, err
	}

	setup := stripTitleHeading(out.SetupPromptContent)
	if !includeTech {
		setup = RemoveSection(setup, SectionSetupStack)
	}

	return flows.ProjectSetupOutput{
		SetupPromptContent: setup,
		FileStructure:      ensureFileStructurePrefix(out.FileStructure),
	}, nil
}

// KeyFeaturesSection cuts the features slice out of a setup prompt so the
// extraction call never sees Objectives, User Flow, or any other section.
func KeyFeaturesSection(setupPrompt string) (string, error) {
	body, ok := Section(setupPrompt, SectionKeyFeatures, SectionCoreFeatures)
	if !ok {
		return "", fmt.Errorf("setup prompt has no %q or %q section", SectionKeyFeatures, SectionCoreFeatures)
	}
	return body, nil
}

func ensureFileStructurePrefix(fs string) string {
	fs = strings.TrimSpace(fs)
	if strings.HasPrefix(fs, fileStructurePrefix) {
		return fs
	}
	return fileStructurePrefix + "\n\n" + fs
}

func normalizeHeading(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimLeft(h, "# ")))
}
