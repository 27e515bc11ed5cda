package crud

// The interfaces below are the action surface a transport layer can drive.
// Every *Page satisfies Lister, Editor, Viewer and Remover; page packages
// add the optional ones their entity supports.

// Lister accepts search and filter changes.
type Lister interface {
	SetQuery(q Query)
}

// Editor drives the form buffer.
type Editor interface {
	OpenAdd()
	OpenEdit(id string) bool
	SetField(name, value string) error
	FormMode() (Mode, bool)
	Save() (string, error)
	Cancel()
}

// Viewer drives the detail overlay and its pass-through actions.
type Viewer interface {
	Show(id string) bool
	CloseOverlay()
	EditSelected() bool
	DeleteSelected() (string, bool)
}

// Remover deletes records.
type Remover interface {
	Remove(id string) bool
}

// Toggler flips a two-valued status.
type Toggler interface {
	ToggleStatus(id string) bool
}

// Transitioner moves records through a start/complete lifecycle.
type Transitioner interface {
	Start(id string) (bool, error)
	Complete(id string) (bool, error)
}

// RowEditor edits the nested ordered lists of a draft.
type RowEditor interface {
	AddIngredientRow() error
	RemoveIngredientRow(i int) error
	SetIngredientField(i int, name, value string) error
	AddStepRow() error
	RemoveStepRow(i int) error
	SetStep(i int, value string) error
}

// Charter exposes a series for rendering.
type Charter interface {
	Series() Series
}
