package flows

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeGen replays a canned JSON response and records what it was asked.
type fakeGen struct {
	response   string
	err        error
	lastPrompt string
	lastParts  []*genai.Part
}

func (f *fakeGen) GenerateJSON(_ context.Context, prompt string, parts []*genai.Part, _ *genai.Schema, out any) error {
	f.lastPrompt = prompt
	f.lastParts = parts
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.response), out)
}

func TestExtractIdea(t *testing.T) {
	t.Run("text input is inlined into the prompt", func(t *testing.T) {
		gen := &fakeGen{response: `{"markdownOutput": "## Overview\nA todo app."}`}
		svc := &Service{gen: gen}

		out, err := svc.ExtractIdea(context.Background(), ExtractIdeaInput{Input: "a todo app for students"})
		require.NoError(t, err)
		assert.Equal(t, "## Overview\nA todo app.", out.MarkdownOutput)
		assert.Contains(t, gen.lastPrompt, "a todo app for students")
		assert.Empty(t, gen.lastParts)
	})

	t.Run("data URI becomes a media part", func(t *testing.T) {
		gen := &fakeGen{response: `{"markdownOutput": "## Overview\nFrom a sketch."}`}
		svc := &Service{gen: gen}

		_, err := svc.ExtractIdea(context.Background(), ExtractIdeaInput{
			Input: "data:image/png;base64,aGVsbG8=",
		})
		require.NoError(t, err)
		require.Len(t, gen.lastParts, 1)
		assert.Equal(t, "image/png", gen.lastParts[0].InlineData.MIMEType)
		assert.NotContains(t, gen.lastPrompt, "base64")
	})

	t.Run("empty input rejected before calling the model", func(t *testing.T) {
		gen := &fakeGen{}
		svc := &Service{gen: gen}

		_, err := svc.ExtractIdea(context.Background(), ExtractIdeaInput{Input: "  "})
		require.Error(t, err)
		assert.Empty(t, gen.lastPrompt)
	})

	t.Run("empty summary is an error", func(t *testing.T) {
		gen := &fakeGen{response: `{"markdownOutput": "  "}`}
		svc := &Service{gen: gen}

		_, err := svc.ExtractIdea(context.Background(), ExtractIdeaInput{Input: "a todo app"})
		assert.Error(t, err)
	})
}

func TestGenerateQuestions(t *testing.T) {
	t.Run("empty array is a valid result", func(t *testing.T) {
		gen := &fakeGen{response: `{"questions": []}`}
		svc := &Service{gen: gen}

		out, err := svc.GenerateQuestions(context.Background(), QuestionsInput{
			IdeaSummary: "## Overview\nA todo app.",
			Category:    "Features",
		})
		require.NoError(t, err)
		assert.Empty(t, out.Questions)
	})

	t.Run("question without options is rejected", func(t *testing.T) {
		gen := &fakeGen{response: `{"questions": [{"question": "Theme?", "options": [], "recommendedOption": ""}]}`}
		svc := &Service{gen: gen}

		_, err := svc.GenerateQuestions(context.Background(), QuestionsInput{Category: "UI/UX"})
		assert.Error(t, err)
	})

	t.Run("model failure surfaces", func(t *testing.T) {
		gen := &fakeGen{err: errors.New("model unavailable")}
		svc := &Service{gen: gen}

		_, err := svc.GenerateQuestions(context.Background(), QuestionsInput{Category: "UI/UX"})
		assert.Error(t, err)
	})
}

func TestBuildQuestionsPrompt(t *testing.T) {
	in := QuestionsInput{
		IdeaSummary: "## Overview\nA todo app.",
		Category:    "Features",
		PreviousAnswers: map[string]string{
			"zebra": "yes",
			"alpha": "no",
			"mango": "maybe",
		},
	}

	prompt := buildQuestionsPrompt(in)
	assert.Contains(t, prompt, `category "Features"`)
	assert.Contains(t, prompt, "## Overview\nA todo app.")

	// Answers render sorted, so identical state yields an identical prompt.
	assert.Equal(t, prompt, buildQuestionsPrompt(in))
	iAlpha := strings.Index(prompt, "alpha")
	iMango := strings.Index(prompt, "mango")
	iZebra := strings.Index(prompt, "zebra")
	assert.True(t, iAlpha < iMango && iMango < iZebra)

	t.Run("no answers section when empty", func(t *testing.T) {
		prompt := buildQuestionsPrompt(QuestionsInput{IdeaSummary: "idea", Category: "UI/UX"})
		assert.NotContains(t, prompt, "Choices already made")
	})
}

func TestBuildFinalSummaryPrompt(t *testing.T) {
	base := FinalSummaryInput{
		IdeaSummary: "## Overview\nA todo app.",
		Sections:    []string{"Core Idea", "Key Features", "User Flow"},
	}

	t.Run("monetization disabled adds the suppression rule", func(t *testing.T) {
		prompt := buildFinalSummaryPrompt(base)
		assert.Contains(t, prompt, "MUST NOT suggest or detail monetization")
	})

	t.Run("monetization enabled omits it", func(t *testing.T) {
		in := base
		in.IncludeMonetization = true
		in.Sections = append(in.Sections, "Monetization")
		prompt := buildFinalSummaryPrompt(in)
		assert.NotContains(t, prompt, "MUST NOT suggest or detail monetization")
		assert.Contains(t, prompt, "- Monetization\n")
	})

	t.Run("decided sections are listed", func(t *testing.T) {
		prompt := buildFinalSummaryPrompt(base)
		assert.Contains(t, prompt, "- Core Idea\n- Key Features\n- User Flow\n")
		assert.Contains(t, prompt, "Development Roadmap")
	})

	t.Run("tech stack rendered when selected", func(t *testing.T) {
		in := base
		in.TechStack = []string{"MERN"}
		prompt := buildFinalSummaryPrompt(in)
		assert.Contains(t, prompt, "**Technology Recommendations:**\n- MERN")
	})
}

func TestRecommendTechStack(t *testing.T) {
	gen := &fakeGen{response: `{"techStacks": ["MERN", "T3", "LAMP", "MEAN", "JAMstack"]}`}
	svc := &Service{gen: gen}

	out, err := svc.RecommendTechStack(context.Background(), TechStackInput{ApplicationType: "web"})
	require.NoError(t, err)
	assert.Equal(t, []string{"MERN", "T3", "LAMP"}, out.TechStacks)
	assert.Contains(t, gen.lastPrompt, "Application Type: web")
}

func TestGenerateProjectName(t *testing.T) {
	t.Run("trims the result", func(t *testing.T) {
		gen := &fakeGen{response: `{"projectName": "  Todoly  "}`}
		svc := &Service{gen: gen}

		out, err := svc.GenerateProjectName(context.Background(), ProjectNameInput{Summary: "plan"})
		require.NoError(t, err)
		assert.Equal(t, "Todoly", out.ProjectName)
	})

	t.Run("blank name is an error", func(t *testing.T) {
		gen := &fakeGen{response: `{"projectName": "   "}`}
		svc := &Service{gen: gen}

		_, err := svc.GenerateProjectName(context.Background(), ProjectNameInput{Summary: "plan"})
		assert.Error(t, err)
	})
}
