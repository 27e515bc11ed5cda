package crud

// Overlay tracks which record, if any, the detail view displays. It keeps
// only the identifier so the projection always reflects the current record.
type Overlay struct {
	id   string
	open bool
}

// Show selects id for display.
func (o *Overlay) Show(id string) {
	o.id = id
	o.open = true
}

// Close hides the overlay.
func (o *Overlay) Close() {
	o.id = ""
	o.open = false
}

// Selected returns the displayed identifier.
func (o *Overlay) Selected() (string, bool) {
	return o.id, o.open
}
