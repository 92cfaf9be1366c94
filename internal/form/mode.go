package form

import (
	"github.com/vgc-platform/admin-api/internal/clipboard"
)

type Mode string

const (
	ModeNew  Mode = "new"
	ModeEdit Mode = "edit"
	ModeCopy Mode = "copy"
)

// Params are the navigation parameters the mode is derived from.
type Params struct {
	Edit string `form:"edit"`
	Copy string `form:"copy"`
}

// SourceStore is the part of the clipboard the resolver reads.
type SourceStore interface {
	GetEditSource() (clipboard.Source, bool)
	GetCopySource() (clipboard.Source, bool)
}

// Resolution is the resolved operating intent of a form session.
type Resolution struct {
	Mode   Mode              `json:"mode"`
	Source *clipboard.Source `json:"source,omitempty"`
}

// ResolveMode derives the form mode from navigation parameters and the
// clipboard. Edit requires the cached edit source to match the requested id.
// Copy seeds from whatever record is in the copy slot, no id match required.
// Anything that does not resolve falls back to a blank new-record session.
// Callers re-resolve whenever the navigation parameters change.
func ResolveMode(p Params, store SourceStore) Resolution {
	if p.Edit != "" {
		if src, ok := store.GetEditSource(); ok && src.ID == p.Edit {
			return Resolution{Mode: ModeEdit, Source: &src}
		}
	}
	if p.Copy != "" {
		if src, ok := store.GetCopySource(); ok {
			return Resolution{Mode: ModeCopy, Source: &src}
		}
	}
	return Resolution{Mode: ModeNew}
}
