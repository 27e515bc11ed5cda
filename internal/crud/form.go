package crud

import "github.com/starford/plantdesk/internal/apperr"

// Mode selects whether a form save creates or updates a record.
type Mode string

// Form modes.
const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// Draft is implemented by every per-entity form struct.
type Draft[D any] interface {
	Clone() D
}

// Form is the transient add/edit buffer of a page. Nothing written to the
// draft reaches the store until the owning page saves it.
type Form[D Draft[D]] struct {
	open   bool
	mode   Mode
	target string
	draft  D
}

// FormState is the read-only projection of an open form.
type FormState[D any] struct {
	Mode   Mode   `json:"mode"`
	Target string `json:"target,omitempty"`
	Draft  D      `json:"draft"`
}

func (f *Form[D]) start(mode Mode, target string, draft D) {
	f.open = true
	f.mode = mode
	f.target = target
	f.draft = draft
}

// IsOpen reports whether a draft is being edited.
func (f *Form[D]) IsOpen() bool {
	return f.open
}

// Edit applies fn to the draft in place.
func (f *Form[D]) Edit(fn func(*D) error) error {
	if !f.open {
		return apperr.ErrFormClosed
	}
	return fn(&f.draft)
}

// State returns a copy of the form, or nil when it is closed.
func (f *Form[D]) State() *FormState[D] {
	if !f.open {
		return nil
	}
	return &FormState[D]{Mode: f.mode, Target: f.target, Draft: f.draft.Clone()}
}

// Discard closes the form and drops the draft.
func (f *Form[D]) Discard() {
	var zero D
	f.open = false
	f.mode = ""
	f.target = ""
	f.draft = zero
}
