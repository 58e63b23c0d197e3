package wizard

import (
	"errors"
	"strings"
	"time"
)

// Step is one stage of the linear idea-to-plan flow. Steps only ever move
// forward through stepOrder.
type Step string

const (
	StepIdea       Step = "idea"
	StepUIUX       Step = "ui_ux"
	StepFeatures   Step = "features"
	StepFlowExtras Step = "flow_extras"
	StepAddons     Step = "addons"
	StepTechStack  Step = "tech_stack"
	StepSummary    Step = "summary"
	StepSetup      Step = "setup"
)

var stepOrder = []Step{
	StepIdea, StepUIUX, StepFeatures, StepFlowExtras,
	StepAddons, StepTechStack, StepSummary, StepSetup,
}

var (
	ErrStepMismatch = errors.New("operation not valid for current step")
	ErrInvalidInput = errors.New("invalid input")
)

type Addons struct {
	Auth         bool `json:"auth"`
	Monetization bool `json:"monetization"`
}

// Session is the accumulated state of one wizard run. It lives in Redis
// between requests and is dropped once the project is saved.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Step   Step   `json:"step"`

	OriginalIdea string `json:"original_idea,omitempty"`
	IdeaSummary  string `json:"idea_summary,omitempty"`

	UIUXAnswers    map[string]string `json:"ui_ux_answers,omitempty"`
	FeatureAnswers map[string]string `json:"feature_answers,omitempty"`
	FlowAnswers    map[string]string `json:"flow_answers,omitempty"`

	Addons    Addons   `json:"addons"`
	TechStack []string `json:"tech_stack,omitempty"`

	FinalSummary  string `json:"final_summary,omitempty"`
	ProjectName   string `json:"project_name,omitempty"`
	SetupPrompt   string `json:"setup_prompt,omitempty"`
	FileStructure string `json:"file_structure,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id, userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		UserID:    userID,
		Step:      StepIdea,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) advance() {
	for i, st := range stepOrder {
		if st == s.Step && i+1 < len(stepOrder) {
			s.Step = stepOrder[i+1]
			return
		}
	}
}

// SetIdea records the extracted idea and moves the session to the first
// question step.
func (s *Session) SetIdea(original, summary string) error {
	if s.Step != StepIdea {
		return ErrStepMismatch
	}
	if strings.TrimSpace(summary) == "" {
		return ErrInvalidInput
	}
	s.OriginalIdea = original
	s.IdeaSummary = summary
	s.advance()
	return nil
}

// QuestionCategory maps the current step to its MCQ category label. The
// second return is false outside the three question steps.
func (s *Session) QuestionCategory() (string, bool) {
	switch s.Step {
	case StepUIUX:
		return "UI/UX", true
	case StepFeatures:
		return "Features", true
	case StepFlowExtras:
		return "Flow & Extras", true
	default:
		return "", false
	}
}

// PreviousAnswers returns the context passed to the current step's question
// generation: everything collected by earlier question steps.
func (s *Session) PreviousAnswers() map[string]string {
	switch s.Step {
	case StepFeatures:
		return mergeAnswers(s.UIUXAnswers)
	case StepFlowExtras:
		return mergeAnswers(s.UIUXAnswers, s.FeatureAnswers)
	default:
		return map[string]string{}
	}
}

// CompleteQuestions stores the answers for the current question step and
// advances. An empty map is valid: it is how a zero-question category
// completes.
func (s *Session) CompleteQuestions(answers map[string]string) error {
	if _, ok := s.QuestionCategory(); !ok {
		return ErrStepMismatch
	}

	copied := make(map[string]string, len(answers))
	for k, v := range answers {
		copied[k] = v
	}

	switch s.Step {
	case StepUIUX:
		s.UIUXAnswers = copied
	case StepFeatures:
		s.FeatureAnswers = copied
	case StepFlowExtras:
		s.FlowAnswers = copied
	}
	s.advance()
	return nil
}

// MergedAnswers is the shallow union of all collected answers, later
// categories winning on collision. It grows monotonically as steps complete.
func (s *Session) MergedAnswers() map[string]string {
	return mergeAnswers(s.UIUXAnswers, s.FeatureAnswers, s.FlowAnswers)
}

func (s *Session) SetAddons(a Addons) error {
	if s.Step != StepAddons {
		return ErrStepMismatch
	}
	s.Addons = a
	s.advance()
	return nil
}

// SetTechStack records the selection: empty (user opted out) or exactly one
// chosen stack.
func (s *Session) SetTechStack(stacks []string) error {
	if s.Step != StepTechStack {
		return ErrStepMismatch
	}
	if len(stacks) > 1 {
		return ErrInvalidInput
	}
	s.TechStack = append([]string(nil), stacks...)
	s.advance()
	return nil
}

// SetPlan stores the assembled plan and its generated name. The session
// stays on the summary step so the name can be edited or regenerated.
func (s *Session) SetPlan(finalSummary, projectName string) error {
	if s.Step != StepSummary {
		return ErrStepMismatch
	}
	if strings.TrimSpace(finalSummary) == "" {
		return ErrInvalidInput
	}
	s.FinalSummary = finalSummary
	s.ProjectName = strings.TrimSpace(projectName)
	return nil
}

func (s *Session) SetProjectName(name string) error {
	if s.Step != StepSummary {
		return ErrStepMismatch
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}
	s.ProjectName = name
	return nil
}

// AdvanceToSetup moves past the summary step. A plan and a non-empty name
// are both required.
func (s *Session) AdvanceToSetup() error {
	if s.Step != StepSummary {
		return ErrStepMismatch
	}
	if s.FinalSummary == "" || strings.TrimSpace(s.ProjectName) == "" {
		return ErrInvalidInput
	}
	s.advance()
	return nil
}

func (s *Session) SetSetup(setupPrompt, fileStructure string) error {
	if s.Step != StepSetup {
		return ErrStepMismatch
	}
	if strings.TrimSpace(setupPrompt) == "" || strings.TrimSpace(fileStructure) == "" {
		return ErrInvalidInput
	}
	s.SetupPrompt = setupPrompt
	s.FileStructure = fileStructure
	return nil
}

// ReadyToSave reports whether the terminal step has produced its documents.
func (s *Session) ReadyToSave() bool {
	return s.Step == StepSetup && s.SetupPrompt != "" && s.FileStructure != ""
}

func mergeAnswers(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
