package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/403errors/ideaflowai/internal/flows"
	"github.com/403errors/ideaflowai/internal/plan"
	"github.com/403errors/ideaflowai/internal/projects"
)

// ErrGeneration marks any model-call failure. The step stays incomplete and
// the caller resubmits; a retry re-issues the full call.
var ErrGeneration = errors.New("generation failed")

// Generator is the slice of the flow service the wizard drives directly.
type Generator interface {
	ExtractIdea(ctx context.Context, in flows.ExtractIdeaInput) (flows.ExtractIdeaOutput, error)
	GenerateQuestions(ctx context.Context, in flows.QuestionsInput) (flows.QuestionsOutput, error)
	RecommendTechStack(ctx context.Context, in flows.TechStackInput) (flows.TechStackOutput, error)
	GenerateProjectName(ctx context.Context, in flows.ProjectNameInput) (flows.ProjectNameOutput, error)
	ExtractFeatures(ctx context.Context, in flows.ExtractFeaturesInput) (flows.ExtractFeaturesOutput, error)
}

// Planner assembles the terminal-step documents.
type Planner interface {
	Summary(ctx context.Context, in plan.SummaryInput) (string, error)
	Setup(ctx context.Context, finalSummary, projectName string) (flows.ProjectSetupOutput, error)
}

// ProjectStore persists the finished wizard run.
type ProjectStore interface {
	Save(ctx context.Context, ownerID string, p projects.Project) (string, error)
}

// Service sequences the wizard steps. Every operation loads the session with
// an ownership check, acts, and writes the session back; on a generation
// failure the session is left untouched.
type Service struct {
	store    *Store
	gen      Generator
	planner  Planner
	projects ProjectStore
}

func NewService(store *Store, gen Generator, planner Planner, projectStore ProjectStore) *Service {
	return &Service{store: store, gen: gen, planner: planner, projects: projectStore}
}

func (s *Service) Start(ctx context.Context, userID string) (*Session, error) {
	sess := NewSession(uuid.NewString(), userID)
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Session, error) {
	return s.store.Get(ctx, id, userID)
}

func (s *Service) Abandon(ctx context.Context, userID, id string) error {
	return s.store.Delete(ctx, id, userID)
}

// SubmitIdea extracts the idea summary from the raw input and advances to
// the first question step.
func (s *Service) SubmitIdea(ctx context.Context, userID, id, input string) (*Session, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("%w: idea input is required", ErrInvalidInput)
	}

	sess, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepIdea {
		return nil, ErrStepMismatch
	}

	out, err := s.gen.ExtractIdea(ctx, flows.ExtractIdeaInput{Input: input})
	if err != nil {
		return nil, generationErr(err)
	}

	if err := sess.SetIdea(input, out.MarkdownOutput); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Questions generates the MCQs for the current question step. A zero-length
// result completes the step with an empty answer map and advances; that is a
// valid outcome, not a failure.
func (s *Service) Questions(ctx context.Context, userID, id string) ([]flows.Question, *Session, error) {
	sess, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	category, ok := sess.QuestionCategory()
	if !ok {
		return nil, nil, ErrStepMismatch
	}

	out, err := s.gen.GenerateQuestions(ctx, flows.QuestionsInput{
		IdeaSummary:     sess.IdeaSummary,
		Category:        category,
		PreviousAnswers: sess.PreviousAnswers(),
	})
	if err != nil {
		return nil, nil, generationErr(err)
	}

	if len(out.Questions) == 0 {
		if err := sess.CompleteQuestions(nil); err != nil {
			return nil, nil, err
		}
		if err := s.store.Save(ctx, sess); err != nil {
			return nil, nil, err
		}
	}
	return out.Questions, sess, nil
}

func (s *Service) SubmitAnswers(ctx context.Context, userID, id string, answers map[string]string) (*Session, error) {
	sess, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := sess.CompleteQuestions(answers); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) SubmitAddons(ctx context.Context, userID, id string, addons Addons) (*Session, error) {
	sess, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := sess.SetAddons(addons); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// RecommendStacks returns the top suggestions without touching the session;
// the user picks at most one of them afterwards.
func (s *Service) RecommendStacks(ctx context.Context, userID, id string) ([]string, error) {
	sess, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepTechStack {
		return nil, ErrStepMismatch
	}

	out, err := s.gen.RecommendTechStack(ctx, flows.TechStackInput{ApplicationType: "web"})
	if err != nil {
		return nil, generationErr(err)
	}
	return out.TechStacks, nil
}

// SelectTechStack records the chosen stack, or an empty selection when the
// user opts out of suggestions.
func (s *Service) SelectTechStack(ctx context.Context, userID, id, stack string) (*Session, error) {
	sess, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	var stacks []string
	if strings.TrimSpace(stack) != "" {
		stacks = []string{strings.TrimSpace(stack)}
	}

	if err := sess.SetTechStack(stacks); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GenerateSummary assembles the final plan and seeds the project name from
// it. The session stays on the summary step until the name is confirmed.
func (s *Service) GenerateSummary(ctx context.Context, userID, id string) (*Session, error) {
	sess, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepSummary {
		return nil, ErrStepMismatch
	}

	summary, err := s.planner.Summary(ctx, plan.SummaryInput{
		IdeaSummary:         sess.IdeaSummary,
		Answers:             sess.MergedAnswers(),
		TechStack:           sess.TechStack,
		IncludeAuth:         sess.Addons.Auth,
		IncludeMonetization: sess.Addons.Monetization,
	})
	if err != nil {
		return nil, generationErr(err)
	}

	name, err := s.gen.GenerateProjectName(ctx, flows.ProjectNameInput{Summary: summary})
	if err != nil {
		return nil, generationErr(err)
	}

	if err := sess.SetPlan(summary, name.ProjectName); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) SetProjectName(ctx context.Context, userID, id, name string) (*Session, error) {
	sess, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := sess.SetProjectName(name); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) RegenerateName(ctx context.Context, userID, id string) (*Session, error) {
	sess, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepSummary || sess.FinalSummary == "" {
		return nil, ErrStepMismatch
	}

	name, err := s.gen.GenerateProjectName(ctx, flows.ProjectNameInput{Summary: sess.FinalSummary})
	if err != nil {
		return nil, generationErr(err)
	}

	if err := sess.SetProjectName(name.ProjectName); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GenerateSetup advances to the terminal step (requiring a confirmed name)
// and produces the setup prompt and file structure. Retrying on the setup
// step re-issues the whole call.
func (s *Service) GenerateSetup(ctx context.Context, userID, id string) (*Session, error) {
	sess, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if sess.Step == StepSummary {
		if err := sess.AdvanceToSetup(); err != nil {
			return nil, err
		}
	}
	if sess.Step != StepSetup {
		return nil, ErrStepMismatch
	}

	out, err := s.planner.Setup(ctx, sess.FinalSummary, sess.ProjectName)
	if err != nil {
		return nil, generationErr(err)
	}

	if err := sess.SetSetup(out.SetupPromptContent, out.FileStructure); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SaveProject extracts the feature list from the setup prompt, persists the
// project for the owner, and drops the session.
func (s *Service) SaveProject(ctx context.Context, userID, id string) (string, error) {
	sess, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return "", err
	}
	if !sess.ReadyToSave() {
		return "", ErrStepMismatch
	}

	section, err := plan.KeyFeaturesSection(sess.SetupPrompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	extracted, err := s.gen.ExtractFeatures(ctx, flows.ExtractFeaturesInput{SetupPrompt: section})
	if err != nil {
		return "", generationErr(err)
	}

	features := make([]projects.Feature, 0, len(extracted.Features))
	for _, f := range extracted.Features {
		features = append(features, projects.Feature{Title: f.Title, Description: f.Description})
	}

	projectID, err := s.projects.Save(ctx, userID, projects.Project{
		Name:          sess.ProjectName,
		OriginalIdea:  sess.OriginalIdea,
		FinalSummary:  sess.FinalSummary,
		SetupPrompt:   sess.SetupPrompt,
		FileStructure: sess.FileStructure,
		Features:      features,
	})
	if err != nil {
		return "", err
	}

	// The session has served its purpose; a failed delete only leaves a key
	// the TTL will reclaim.
	if err := s.store.Delete(ctx, id, userID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return projectID, err
	}
	return projectID, nil
}

func generationErr(err error) error {
	return fmt.Errorf("%w: %v", ErrGeneration, err)
}
