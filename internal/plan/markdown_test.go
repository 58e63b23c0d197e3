package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `## Core Idea

A todo app for students.

## Key Features

- Task lists
- Reminders
- Shared boards

## User Flow

Sign up, create a list, add tasks.
`

func TestSection(t *testing.T) {
	t.Run("returns body up to next heading", func(t *testing.T) {
		body, ok := Section(sampleDoc, "Key Features")
		require.True(t, ok)
		assert.Equal(t, "- Task lists\n- Reminders\n- Shared boards", body)
	})

	t.Run("case-insensitive match", func(t *testing.T) {
		_, ok := Section(sampleDoc, "key features")
		assert.True(t, ok)
	})

	t.Run("alternate names", func(t *testing.T) {
		doc := "## Core Features\n\n- Task lists\n"
		body, ok := Section(doc, "Key Features", "Core Features")
		require.True(t, ok)
		assert.Equal(t, "- Task lists", body)
	})

	t.Run("missing section", func(t *testing.T) {
		_, ok := Section(sampleDoc, "Monetization")
		assert.False(t, ok)
	})

	t.Run("subsections stay inside", func(t *testing.T) {
		doc := "## Key Features\n\nintro\n\n### Sync\n\ndetail\n\n## User Flow\n\nflow\n"
		body, ok := Section(doc, "Key Features")
		require.True(t, ok)
		assert.Contains(t, body, "### Sync")
		assert.NotContains(t, body, "flow")
	})

	t.Run("headings inside fences are opaque", func(t *testing.T) {
		doc := "## Key Features\n\n```\n## User Flow\nnot a heading\n```\nafter fence\n\n## User Flow\n\nreal flow\n"
		body, ok := Section(doc, "Key Features")
		require.True(t, ok)
		assert.Contains(t, body, "not a heading")
		assert.Contains(t, body, "after fence")
		assert.NotContains(t, body, "real flow")
	})
}

func TestRemoveSection(t *testing.T) {
	t.Run("drops heading and body", func(t *testing.T) {
		out := RemoveSection(sampleDoc, "Key Features")
		assert.NotContains(t, out, "Key Features")
		assert.NotContains(t, out, "Task lists")
		assert.Contains(t, out, "## Core Idea")
		assert.Contains(t, out, "## User Flow")
	})

	t.Run("removes every occurrence", func(t *testing.T) {
		doc := "## Monetization\n\nads\n\n## Core Idea\n\nidea\n\n## Monetization\n\nsubs\n"
		out := RemoveSection(doc, "Monetization")
		assert.NotContains(t, out, "Monetization")
		assert.Contains(t, out, "idea")
	})

	t.Run("no-op when absent", func(t *testing.T) {
		assert.Equal(t, sampleDoc, RemoveSection(sampleDoc, "Monetization"))
	})
}

func TestStripTitleHeading(t *testing.T) {
	doc := "# Todoly\n\n## Core Idea\n\nidea\n"
	out := stripTitleHeading(doc)
	assert.True(t, strings.HasPrefix(out, "## Core Idea"))

	t.Run("no title is a no-op", func(t *testing.T) {
		out := stripTitleHeading("## Core Idea\n\nidea")
		assert.True(t, strings.HasPrefix(out, "## Core Idea"))
	})
}

func TestKeyFeaturesSection(t *testing.T) {
	t.Run("slices only the features", func(t *testing.T) {
		doc := "## Application Objectives\n\n- Ship fast\n- Stay simple\n- Delight users\n\n## Key Features\n\n- Task lists\n- Reminders\n\n## User Flow\n\nflow\n"
		body, err := KeyFeaturesSection(doc)
		require.NoError(t, err)
		assert.Equal(t, "- Task lists\n- Reminders", body)
		assert.NotContains(t, body, "Ship fast")
	})

	t.Run("accepts Core Features", func(t *testing.T) {
		body, err := KeyFeaturesSection("## Core Features\n\n- Task lists\n")
		require.NoError(t, err)
		assert.Equal(t, "- Task lists", body)
	})

	t.Run("errors when absent", func(t *testing.T) {
		_, err := KeyFeaturesSection("## Application Objectives\n\n- Ship fast\n")
		assert.Error(t, err)
	})
}
