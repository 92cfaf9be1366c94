package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgc-platform/admin-api/internal/clipboard"
)

func TestResolveModeEdit(t *testing.T) {
	store := clipboard.NewStore()
	store.SetEditSource(clipboard.Source{
		ID:     "REF-001",
		Kind:   "DEPOSIT",
		Fields: map[string]string{"reason": "wrong_amount"},
	})

	res := ResolveMode(Params{Edit: "REF-001"}, store)

	assert.Equal(t, ModeEdit, res.Mode)
	require.NotNil(t, res.Source)
	assert.Equal(t, "REF-001", res.Source.ID)
	assert.Equal(t, "wrong_amount", res.Source.Fields["reason"])
}

func TestResolveModeEditIDMismatch(t *testing.T) {
	store := clipboard.NewStore()
	store.SetEditSource(clipboard.Source{ID: "REF-001"})

	res := ResolveMode(Params{Edit: "REF-002"}, store)

	assert.Equal(t, ModeNew, res.Mode)
	assert.Nil(t, res.Source)
}

func TestResolveModeEditWithoutCachedSource(t *testing.T) {
	res := ResolveMode(Params{Edit: "REF-001"}, clipboard.NewStore())

	assert.Equal(t, ModeNew, res.Mode)
	assert.Nil(t, res.Source)
}

func TestResolveModeCopyIgnoresID(t *testing.T) {
	store := clipboard.NewStore()
	store.SetCopySource(clipboard.Source{ID: "REF-001", Kind: "SERVICE"})

	// Copy seeds from whatever is cached, so a different id still resolves.
	res := ResolveMode(Params{Copy: "REF-777"}, store)

	assert.Equal(t, ModeCopy, res.Mode)
	require.NotNil(t, res.Source)
	assert.Equal(t, "REF-001", res.Source.ID)
}

func TestResolveModeCopyWithoutCachedSource(t *testing.T) {
	res := ResolveMode(Params{Copy: "REF-001"}, clipboard.NewStore())

	assert.Equal(t, ModeNew, res.Mode)
}

func TestResolveModeEditWinsOverCopy(t *testing.T) {
	store := clipboard.NewStore()
	store.SetEditSource(clipboard.Source{ID: "REF-001"})
	store.SetCopySource(clipboard.Source{ID: "REF-002"})

	res := ResolveMode(Params{Edit: "REF-001", Copy: "REF-002"}, store)

	assert.Equal(t, ModeEdit, res.Mode)
}

func TestResolveModeNoParams(t *testing.T) {
	store := clipboard.NewStore()
	store.SetEditSource(clipboard.Source{ID: "REF-001"})

	// Cached sources alone never force a mode; the parameters decide.
	res := ResolveMode(Params{}, store)

	assert.Equal(t, ModeNew, res.Mode)
	assert.Nil(t, res.Source)
}
