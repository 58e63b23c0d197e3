package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionAt(t *testing.T, step Step) *Session {
	t.Helper()

	s := NewSession("sess-1", "user-1")
	if step == StepIdea {
		return s
	}

	require.NoError(t, s.SetIdea("a todo app", "## Overview\nA todo app."))
	for _, st := range []Step{StepUIUX, StepFeatures, StepFlowExtras} {
		if s.Step == step {
			return s
		}
		require.Equal(t, st, s.Step)
		require.NoError(t, s.CompleteQuestions(map[string]string{string(st) + "-q": "a"}))
	}
	if s.Step == step {
		return s
	}

	require.NoError(t, s.SetAddons(Addons{Auth: true}))
	if s.Step == step {
		return s
	}

	require.NoError(t, s.SetTechStack([]string{"MERN"}))
	if s.Step == step {
		return s
	}

	require.NoError(t, s.SetPlan("## Core Idea\nA todo app.", "Todoly"))
	require.NoError(t, s.AdvanceToSetup())
	require.Equal(t, step, s.Step)
	return s
}

func TestSessionStepOrder(t *testing.T) {
	s := NewSession("sess-1", "user-1")
	assert.Equal(t, StepIdea, s.Step)

	t.Run("idea only valid at idea step", func(t *testing.T) {
		s := sessionAt(t, StepAddons)
		assert.ErrorIs(t, s.SetIdea("x", "y"), ErrStepMismatch)
	})

	t.Run("answers rejected outside question steps", func(t *testing.T) {
		s := NewSession("sess-1", "user-1")
		assert.ErrorIs(t, s.CompleteQuestions(map[string]string{"q": "a"}), ErrStepMismatch)
	})

	t.Run("addons rejected before its step", func(t *testing.T) {
		s := sessionAt(t, StepUIUX)
		assert.ErrorIs(t, s.SetAddons(Addons{}), ErrStepMismatch)
	})

	t.Run("full forward walk", func(t *testing.T) {
		s := sessionAt(t, StepSetup)
		assert.Equal(t, StepSetup, s.Step)
	})
}

func TestSessionAnswerAccumulation(t *testing.T) {
	s := sessionAt(t, StepUIUX)

	require.NoError(t, s.CompleteQuestions(map[string]string{"What theme?": "Dark"}))
	afterUIUX := s.MergedAnswers()

	require.NoError(t, s.CompleteQuestions(map[string]string{"Offline mode?": "Yes"}))
	require.NoError(t, s.CompleteQuestions(map[string]string{"Onboarding?": "Guided tour"}))
	afterFlow := s.MergedAnswers()

	// Later steps never remove earlier keys.
	for k, v := range afterUIUX {
		assert.Equal(t, v, afterFlow[k])
	}
	assert.Len(t, afterFlow, 3)
}

func TestSessionPreviousAnswers(t *testing.T) {
	s := sessionAt(t, StepUIUX)

	assert.Empty(t, s.PreviousAnswers())

	require.NoError(t, s.CompleteQuestions(map[string]string{"theme": "dark"}))
	assert.Equal(t, map[string]string{"theme": "dark"}, s.PreviousAnswers())

	require.NoError(t, s.CompleteQuestions(map[string]string{"search": "fuzzy"}))
	assert.Equal(t, map[string]string{"theme": "dark", "search": "fuzzy"}, s.PreviousAnswers())
}

func TestSessionEmptyQuestionStep(t *testing.T) {
	s := sessionAt(t, StepFeatures)

	// A category with nothing to ask completes with an empty map.
	require.NoError(t, s.CompleteQuestions(nil))
	assert.Equal(t, StepFlowExtras, s.Step)
	assert.NotNil(t, s.FeatureAnswers)
	assert.Empty(t, s.FeatureAnswers)
}

func TestSessionTechStack(t *testing.T) {
	t.Run("accepts empty selection", func(t *testing.T) {
		s := sessionAt(t, StepTechStack)
		require.NoError(t, s.SetTechStack(nil))
		assert.Empty(t, s.TechStack)
		assert.Equal(t, StepSummary, s.Step)
	})

	t.Run("accepts a single stack", func(t *testing.T) {
		s := sessionAt(t, StepTechStack)
		require.NoError(t, s.SetTechStack([]string{"MERN"}))
		assert.Equal(t, []string{"MERN"}, s.TechStack)
	})

	t.Run("rejects more than one", func(t *testing.T) {
		s := sessionAt(t, StepTechStack)
		assert.ErrorIs(t, s.SetTechStack([]string{"MERN", "LAMP"}), ErrInvalidInput)
	})
}

func TestSessionNameGate(t *testing.T) {
	s := sessionAt(t, StepSummary)
	require.NoError(t, s.SetPlan("## Core Idea\nplan", "Todoly"))

	t.Run("empty name rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.SetProjectName("   "), ErrInvalidInput)
	})

	t.Run("cannot advance without a name", func(t *testing.T) {
		s := sessionAt(t, StepSummary)
		require.NoError(t, s.SetPlan("## Core Idea\nplan", ""))
		assert.ErrorIs(t, s.AdvanceToSetup(), ErrInvalidInput)
	})

	t.Run("advances with a name", func(t *testing.T) {
		require.NoError(t, s.SetProjectName("Todoly"))
		require.NoError(t, s.AdvanceToSetup())
		assert.Equal(t, StepSetup, s.Step)
	})
}

func TestSessionReadyToSave(t *testing.T) {
	s := sessionAt(t, StepSetup)
	assert.False(t, s.ReadyToSave())

	require.NoError(t, s.SetSetup("## Core Idea\nsetup", "```\nsrc/\n```"))
	assert.True(t, s.ReadyToSave())
}
