package flows

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"
)

type QuestionsInput struct {
	IdeaSummary     string            `json:"ideaSummary"`
	Category        string            `json:"category"`
	PreviousAnswers map[string]string `json:"previousAnswers"`
}

type QuestionsOutput struct {
	Questions []Question `json:"questions"`
}

var questionsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"questions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"question": {Type: genai.TypeString},
					"options": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeString},
					},
					"recommendedOption": {
						Type:        genai.TypeString,
						Description: "Must be exactly one of the options.",
					},
				},
				Required: []string{"question", "options", "recommendedOption"},
			},
		},
	},
	Required: []string{"questions"},
}

// GenerateQuestions asks the model for multiple-choice refinement questions
// in one category. An empty list is a valid result, meaning the category has
// nothing left to clarify.
func (s *Service) GenerateQuestions(ctx context.Context, in QuestionsInput) (QuestionsOutput, error) {
	var out QuestionsOutput

	prompt := buildQuestionsPrompt(in)
	if err := s.gen.GenerateJSON(ctx, prompt, nil, questionsSchema, &out); err != nil {
		return out, fmt.Errorf("generate questions: %w", err)
	}

	for _, q := range out.Questions {
		if len(q.Options) == 0 {
			return QuestionsOutput{}, fmt.Errorf("generate questions: question without options")
		}
	}
	return out, nil
}

func buildQuestionsPrompt(in QuestionsInput) string {
	var b strings.Builder

	b.WriteString(`You are an expert product consultant refining an application idea through short multiple-choice questions.

Generate 3 to 5 multiple-choice questions for the category "`)
	b.WriteString(in.Category)
	b.WriteString(`". Each question must have 3 or 4 distinct options and exactly one recommendedOption, which must be one of the options.

Rules:
- Questions must be specific to the idea below, not generic.
- Stay strictly within the given category.
- Be consistent with the choices the user has already made; never re-ask or contradict them.
- If the idea and previous answers already settle everything this category could ask, return an empty questions array.

Idea summary:
---
`)
	b.WriteString(in.IdeaSummary)
	b.WriteString("\n---\n")

	if len(in.PreviousAnswers) > 0 {
		b.WriteString("\nChoices already made:\n")
		b.WriteString(renderAnswers(in.PreviousAnswers))
	}

	return b.String()
}

// renderAnswers formats an answer map sorted by question so prompts are
// stable across calls with the same state.
func renderAnswers(answers map[string]string) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "- Q: %s\n  A: %s\n", k, answers[k])
	}
	return b.String()
}
