package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/plantdesk/internal/crud"
	"github.com/starford/plantdesk/internal/pageservice"
	"github.com/starford/plantdesk/internal/session"
)

// PageResult is the response of every page operation.
type PageResult = pageservice.Result

// RoutesResponse lists the navigable routes.
type RoutesResponse struct {
	Routes []session.Route `json:"routes"`
}

// QueryRequest replaces the search text and filter of a page.
type QueryRequest struct {
	Search string `json:"search" example:"cookie"`
	Filter string `json:"filter" example:"Bakery"`
}

// Validate implements validation.Validatable.
func (r QueryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Search, validation.Length(0, 200)),
		validation.Field(&r.Filter, validation.Length(0, 64)),
	)
}

// OpenFormRequest opens the add form, or the edit form on ID.
type OpenFormRequest struct {
	Mode crud.Mode `json:"mode" example:"edit"`
	ID   string    `json:"id,omitempty" example:"B-2403"`
}

// Validate implements validation.Validatable.
func (r OpenFormRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Mode, validation.Required, validation.In(crud.ModeAdd, crud.ModeEdit)),
		validation.Field(&r.ID, validation.When(r.Mode == crud.ModeEdit, validation.Required)),
	)
}

// FieldRequest replaces one named field.
type FieldRequest struct {
	Field string `json:"field" example:"name"`
	Value string `json:"value" example:"Rye Bread"`
}

// Validate implements validation.Validatable.
func (r FieldRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Field, validation.Required),
	)
}

// IngredientFieldRequest replaces one field of an ingredient row.
type IngredientFieldRequest struct {
	Field string `json:"field" example:"quantity"`
	Value string `json:"value" example:"12"`
}

// Validate implements validation.Validatable.
func (r IngredientFieldRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Field, validation.Required, validation.In("name", "quantity", "unit")),
	)
}

// StepRequest replaces the text of a step row.
type StepRequest struct {
	Value string `json:"value" example:"Knead for 15 minutes"`
}

// OverlayRequest selects the record shown in the detail overlay.
type OverlayRequest struct {
	ID string `json:"id" example:"1"`
}

// Validate implements validation.Validatable.
func (r OverlayRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
	)
}
