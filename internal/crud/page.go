package crud

import (
	"fmt"

	"github.com/starford/plantdesk/internal/apperr"
)

// Schema binds the generic page machinery to one entity type T and its
// form draft D.
type Schema[T Record[T], D Draft[D]] struct {
	// Searchable returns the fields free-text search matches against.
	Searchable func(T) []string
	// Facet returns the value compared with the categorical filter.
	Facet func(T) string
	// BlankDraft returns the draft used in add mode.
	BlankDraft func() D
	// DraftOf copies a record into a draft for edit mode.
	DraftOf func(T) D
	// Create builds a new record from a saved add-mode draft.
	Create func(id string, d D) T
	// Merge applies every draft field to rec, keeping its identifier.
	Merge func(rec T, d D) T
	// SetField replaces one named draft field.
	SetField func(d *D, name, value string) error
	// IDs issues identifiers for created records.
	IDs IDSource
}

// Page owns the store, query, form and overlay of one activated page.
// It is not safe for concurrent use; callers serialize access.
type Page[T Record[T], D Draft[D]] struct {
	schema  Schema[T, D]
	store   *Store[T]
	query   Query
	form    Form[D]
	overlay Overlay
}

// NewPage builds a page over a fresh store seeded with seed.
func NewPage[T Record[T], D Draft[D]](schema Schema[T, D], seed []T) *Page[T, D] {
	return &Page[T, D]{
		schema: schema,
		store:  NewStore(seed),
		query:  Query{Filter: All},
	}
}

// Store exposes the underlying entity store for page-specific actions.
func (p *Page[T, D]) Store() *Store[T] {
	return p.store
}

// Query returns the current search and filter.
func (p *Page[T, D]) Query() Query {
	return p.query
}

// SetQuery replaces the search and filter.
func (p *Page[T, D]) SetQuery(q Query) {
	if q.Filter == "" {
		q.Filter = All
	}
	p.query = q
}

// Visible returns the records matching the current query.
func (p *Page[T, D]) Visible() []T {
	return Visible(p.store.List(), p.query, p.schema.Searchable, p.schema.Facet)
}

// OpenAdd opens the form with a blank draft.
func (p *Page[T, D]) OpenAdd() {
	p.overlay.Close()
	p.form.start(ModeAdd, "", p.schema.BlankDraft())
}

// OpenEdit opens the form with a copy of the record id. Absent ids leave
// the page unchanged and report false.
func (p *Page[T, D]) OpenEdit(id string) bool {
	rec, ok := p.store.Get(id)
	if !ok {
		return false
	}
	p.overlay.Close()
	p.form.start(ModeEdit, id, p.schema.DraftOf(rec))
	return true
}

// SetField replaces one field of the open draft.
func (p *Page[T, D]) SetField(name, value string) error {
	return p.form.Edit(func(d *D) error {
		return p.schema.SetField(d, name, value)
	})
}

// EditDraft applies fn to the open draft.
func (p *Page[T, D]) EditDraft(fn func(*D) error) error {
	return p.form.Edit(fn)
}

// Form returns the open form, or nil.
func (p *Page[T, D]) Form() *FormState[D] {
	return p.form.State()
}

// FormMode reports the mode of the open form.
func (p *Page[T, D]) FormMode() (Mode, bool) {
	if !p.form.IsOpen() {
		return "", false
	}
	return p.form.mode, true
}

// Save commits the draft and closes the form. It returns the identifier of
// the created or updated record.
func (p *Page[T, D]) Save() (string, error) {
	state := p.form.State()
	if state == nil {
		return "", apperr.ErrFormClosed
	}
	switch state.Mode {
	case ModeAdd:
		id := p.schema.IDs.Next()
		if err := p.store.Add(p.schema.Create(id, state.Draft)); err != nil {
			return "", fmt.Errorf("crud: save: %w", err)
		}
		p.form.Discard()
		return id, nil
	default:
		p.store.Update(state.Target, func(rec *T) {
			*rec = p.schema.Merge(*rec, state.Draft)
		})
		p.form.Discard()
		return state.Target, nil
	}
}

// Cancel discards the form without touching the store.
func (p *Page[T, D]) Cancel() {
	p.form.Discard()
}

// Show opens the overlay on id. It is a no-op while the form is open or
// when id is absent.
func (p *Page[T, D]) Show(id string) bool {
	if p.form.IsOpen() {
		return false
	}
	if _, ok := p.store.Get(id); !ok {
		return false
	}
	p.overlay.Show(id)
	return true
}

// CloseOverlay hides the overlay.
func (p *Page[T, D]) CloseOverlay() {
	p.overlay.Close()
}

// Selected returns the record shown in the overlay.
func (p *Page[T, D]) Selected() (T, bool) {
	id, ok := p.overlay.Selected()
	if !ok {
		var zero T
		return zero, false
	}
	return p.store.Get(id)
}

// EditSelected closes the overlay and opens the form on its record.
func (p *Page[T, D]) EditSelected() bool {
	id, ok := p.overlay.Selected()
	if !ok {
		return false
	}
	p.overlay.Close()
	return p.OpenEdit(id)
}

// DeleteSelected closes the overlay and removes its record.
func (p *Page[T, D]) DeleteSelected() (string, bool) {
	id, ok := p.overlay.Selected()
	if !ok {
		return "", false
	}
	return id, p.Remove(id)
}

// Remove deletes id and closes the overlay if it was displaying it.
func (p *Page[T, D]) Remove(id string) bool {
	if sel, ok := p.overlay.Selected(); ok && sel == id {
		p.overlay.Close()
	}
	return p.store.Remove(id)
}
