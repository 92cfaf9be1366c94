package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialStateAllCollapsed(t *testing.T) {
	s := NewState(DefaultMenu())

	for _, sec := range DefaultMenu().Sections {
		assert.False(t, s.IsExpanded(sec.ID))
	}
}

func TestSetRouteExpandsContainingSection(t *testing.T) {
	s := NewState(DefaultMenu())

	s.SetRoute("/refunds")

	assert.True(t, s.IsExpanded("billing"))
	assert.False(t, s.IsExpanded("ads"))

	sec, ok := s.ActiveSection()
	require.True(t, ok)
	assert.Equal(t, "billing", sec.ID)
}

func TestUserTogglesPersistUntilRouteChanges(t *testing.T) {
	s := NewState(DefaultMenu())
	s.SetRoute("/refunds")

	s.Toggle("ads")
	s.Toggle("billing")

	assert.True(t, s.IsExpanded("ads"))
	assert.False(t, s.IsExpanded("billing"))

	// Same route again: toggles survive.
	s.SetRoute("/refunds")
	assert.True(t, s.IsExpanded("ads"))

	// A new route resets everything to its own section.
	s.SetRoute("/ads")
	assert.True(t, s.IsExpanded("ads"))
	assert.False(t, s.IsExpanded("billing"))
}

func TestBreadcrumb(t *testing.T) {
	s := NewState(DefaultMenu())

	s.SetRoute("/jobs/applied")
	assert.Equal(t, []string{"Classifieds", "Applied jobs"}, s.Breadcrumb())

	s.SetRoute("/nowhere")
	assert.Nil(t, s.Breadcrumb())

	_, ok := s.ActiveSection()
	assert.False(t, ok)
}
