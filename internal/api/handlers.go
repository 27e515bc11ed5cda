package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/plantdesk/internal/crud"
	"github.com/starford/plantdesk/internal/pageservice"
	"github.com/starford/plantdesk/internal/report"
)

// Handler holds API route handlers.
type Handler struct {
	svc *pageservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *pageservice.Service) *Handler {
	return &Handler{svc: svc}
}

func sessionID(r *http.Request) string { return chi.URLParam(r, "sid") }

func recordID(r *http.Request) string { return chi.URLParam(r, "id") }

func rowIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("index must be an integer"))
		return 0, false
	}
	return i, true
}

func (h *Handler) respond(w http.ResponseWriter, op string, res *pageservice.Result, err error) {
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ListRoutes handles GET /api/routes.
//
//	@Summary	List navigation routes
//	@Tags		routes
//	@Produce	json
//	@Success	200	{object}	RoutesResponse
//	@Router		/routes [get]
func (h *Handler) ListRoutes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RoutesResponse{Routes: h.svc.Routes()})
}

// OpenRoute handles POST /api/routes/{route}.
//
//	@Summary	Activate a route in a new session
//	@Tags		routes
//	@Produce	json
//	@Param		route	path		string	true	"Route name"
//	@Success	201		{object}	PageResult
//	@Failure	404		{object}	PageResult	"Unknown route; the session shows the not-found page"
//	@Router		/routes/{route} [post]
func (h *Handler) OpenRoute(w http.ResponseWriter, r *http.Request) {
	res, found := h.svc.Open(r.Context(), chi.URLParam(r, "route"))
	if !found {
		writeJSON(w, http.StatusNotFound, res)
		return
	}
	slog.Debug("session opened", slog.String("session", res.Session), slog.String("route", res.Route))
	writeJSON(w, http.StatusCreated, res)
}

// GetSession handles GET /api/sessions/{sid}.
//
//	@Summary	Render the page of a session
//	@Tags		sessions
//	@Produce	json
//	@Param		sid	path		string	true	"Session ID"
//	@Success	200	{object}	PageResult
//	@Failure	404	{object}	errResponse
//	@Router		/sessions/{sid} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.View(r.Context(), sessionID(r))
	h.respond(w, "view session", res, err)
}

// CloseSession handles DELETE /api/sessions/{sid}.
//
//	@Summary	Navigate away, discarding all page state
//	@Tags		sessions
//	@Param		sid	path	string	true	"Session ID"
//	@Success	204	"Session discarded"
//	@Failure	404	{object}	errResponse
//	@Router		/sessions/{sid} [delete]
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Close(r.Context(), sessionID(r)); err != nil {
		writeError(w, "close session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetQuery handles PUT /api/sessions/{sid}/query.
//
//	@Summary	Set search text and categorical filter
//	@Tags		list
//	@Accept		json
//	@Produce	json
//	@Param		sid		path		string			true	"Session ID"
//	@Param		body	body		QueryRequest	true	"Query"
//	@Success	200		{object}	PageResult
//	@Router		/sessions/{sid}/query [put]
func (h *Handler) SetQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.SetQuery(r.Context(), sessionID(r), crud.Query{Search: req.Search, Filter: req.Filter})
	h.respond(w, "set query", res, err)
}

// OpenForm handles POST /api/sessions/{sid}/form.
//
//	@Summary	Open the add or edit form
//	@Tags		form
//	@Accept		json
//	@Produce	json
//	@Param		sid		path		string			true	"Session ID"
//	@Param		body	body		OpenFormRequest	true	"Mode and record"
//	@Success	200		{object}	PageResult
//	@Failure	400		{object}	errResponse
//	@Router		/sessions/{sid}/form [post]
func (h *Handler) OpenForm(w http.ResponseWriter, r *http.Request) {
	var req OpenFormRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.OpenForm(r.Context(), sessionID(r), req.Mode, req.ID)
	h.respond(w, "open form", res, err)
}

// SetField handles PATCH /api/sessions/{sid}/form.
//
//	@Summary	Replace one draft field
//	@Tags		form
//	@Accept		json
//	@Produce	json
//	@Param		sid		path		string			true	"Session ID"
//	@Param		body	body		FieldRequest	true	"Field and value"
//	@Success	200		{object}	PageResult
//	@Failure	400		{object}	errResponse
//	@Failure	409		{object}	errResponse
//	@Router		/sessions/{sid}/form [patch]
func (h *Handler) SetField(w http.ResponseWriter, r *http.Request) {
	var req FieldRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.SetField(r.Context(), sessionID(r), req.Field, req.Value)
	h.respond(w, "set field", res, err)
}

// SaveForm handles POST /api/sessions/{sid}/form/save.
//
//	@Summary	Commit the draft
//	@Tags		form
//	@Produce	json
//	@Param		sid	path		string	true	"Session ID"
//	@Success	200	{object}	PageResult
//	@Failure	409	{object}	errResponse
//	@Router		/sessions/{sid}/form/save [post]
func (h *Handler) SaveForm(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.SaveForm(r.Context(), sessionID(r))
	h.respond(w, "save form", res, err)
}

// CancelForm handles DELETE /api/sessions/{sid}/form.
//
//	@Summary	Discard the draft
//	@Tags		form
//	@Produce	json
//	@Param		sid	path		string	true	"Session ID"
//	@Success	200	{object}	PageResult
//	@Router		/sessions/{sid}/form [delete]
func (h *Handler) CancelForm(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.CancelForm(r.Context(), sessionID(r))
	h.respond(w, "cancel form", res, err)
}

// AddIngredient handles POST /api/sessions/{sid}/form/ingredients.
func (h *Handler) AddIngredient(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.EditRows(r.Context(), sessionID(r), "ingredient.add", crud.RowEditor.AddIngredientRow)
	h.respond(w, "add ingredient", res, err)
}

// SetIngredient handles PATCH /api/sessions/{sid}/form/ingredients/{index}.
func (h *Handler) SetIngredient(w http.ResponseWriter, r *http.Request) {
	i, ok := rowIndex(w, r)
	if !ok {
		return
	}
	var req IngredientFieldRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.EditRows(r.Context(), sessionID(r), "ingredient.set", func(e crud.RowEditor) error {
		return e.SetIngredientField(i, req.Field, req.Value)
	})
	h.respond(w, "set ingredient", res, err)
}

// RemoveIngredient handles DELETE /api/sessions/{sid}/form/ingredients/{index}.
func (h *Handler) RemoveIngredient(w http.ResponseWriter, r *http.Request) {
	i, ok := rowIndex(w, r)
	if !ok {
		return
	}
	res, err := h.svc.EditRows(r.Context(), sessionID(r), "ingredient.remove", func(e crud.RowEditor) error {
		return e.RemoveIngredientRow(i)
	})
	h.respond(w, "remove ingredient", res, err)
}

// AddStep handles POST /api/sessions/{sid}/form/steps.
func (h *Handler) AddStep(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.EditRows(r.Context(), sessionID(r), "step.add", crud.RowEditor.AddStepRow)
	h.respond(w, "add step", res, err)
}

// SetStep handles PUT /api/sessions/{sid}/form/steps/{index}.
func (h *Handler) SetStep(w http.ResponseWriter, r *http.Request) {
	i, ok := rowIndex(w, r)
	if !ok {
		return
	}
	var req StepRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.EditRows(r.Context(), sessionID(r), "step.set", func(e crud.RowEditor) error {
		return e.SetStep(i, req.Value)
	})
	h.respond(w, "set step", res, err)
}

// RemoveStep handles DELETE /api/sessions/{sid}/form/steps/{index}.
func (h *Handler) RemoveStep(w http.ResponseWriter, r *http.Request) {
	i, ok := rowIndex(w, r)
	if !ok {
		return
	}
	res, err := h.svc.EditRows(r.Context(), sessionID(r), "step.remove", func(e crud.RowEditor) error {
		return e.RemoveStepRow(i)
	})
	h.respond(w, "remove step", res, err)
}

// ShowOverlay handles POST /api/sessions/{sid}/overlay.
//
//	@Summary	Show a record in the detail overlay
//	@Tags		overlay
//	@Accept		json
//	@Produce	json
//	@Param		sid		path		string			true	"Session ID"
//	@Param		body	body		OverlayRequest	true	"Record"
//	@Success	200		{object}	PageResult
//	@Router		/sessions/{sid}/overlay [post]
func (h *Handler) ShowOverlay(w http.ResponseWriter, r *http.Request) {
	var req OverlayRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.ShowOverlay(r.Context(), sessionID(r), req.ID)
	h.respond(w, "show overlay", res, err)
}

// CloseOverlay handles DELETE /api/sessions/{sid}/overlay.
func (h *Handler) CloseOverlay(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.CloseOverlay(r.Context(), sessionID(r))
	h.respond(w, "close overlay", res, err)
}

// EditSelected handles POST /api/sessions/{sid}/overlay/edit.
func (h *Handler) EditSelected(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.EditSelected(r.Context(), sessionID(r))
	h.respond(w, "overlay edit", res, err)
}

// DeleteSelected handles POST /api/sessions/{sid}/overlay/delete.
func (h *Handler) DeleteSelected(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteSelected(r.Context(), sessionID(r))
	h.respond(w, "overlay delete", res, err)
}

// DeleteRecord handles DELETE /api/sessions/{sid}/records/{id}.
//
//	@Summary	Delete a record
//	@Tags		records
//	@Produce	json
//	@Param		sid	path		string	true	"Session ID"
//	@Param		id	path		string	true	"Record ID"
//	@Success	200	{object}	PageResult
//	@Router		/sessions/{sid}/records/{id} [delete]
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Remove(r.Context(), sessionID(r), recordID(r))
	h.respond(w, "delete record", res, err)
}

// ToggleRecord handles POST /api/sessions/{sid}/records/{id}/toggle.
func (h *Handler) ToggleRecord(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Toggle(r.Context(), sessionID(r), recordID(r))
	h.respond(w, "toggle record", res, err)
}

// StartRecord handles POST /api/sessions/{sid}/records/{id}/start.
//
//	@Summary	Start a pending batch
//	@Tags		records
//	@Produce	json
//	@Param		sid	path		string	true	"Session ID"
//	@Param		id	path		string	true	"Batch ID"
//	@Success	200	{object}	PageResult
//	@Failure	405	{object}	errResponse
//	@Failure	409	{object}	errResponse
//	@Router		/sessions/{sid}/records/{id}/start [post]
func (h *Handler) StartRecord(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Start(r.Context(), sessionID(r), recordID(r))
	h.respond(w, "start record", res, err)
}

// CompleteRecord handles POST /api/sessions/{sid}/records/{id}/complete.
func (h *Handler) CompleteRecord(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Complete(r.Context(), sessionID(r), recordID(r))
	h.respond(w, "complete record", res, err)
}

// Chart handles GET /api/sessions/{sid}/chart.png.
//
//	@Summary	Bar chart of the page series
//	@Tags		sessions
//	@Produce	png
//	@Param		sid	path	string	true	"Session ID"
//	@Success	200	"PNG image"
//	@Failure	404	{object}	errResponse
//	@Failure	405	{object}	errResponse
//	@Router		/sessions/{sid}/chart.png [get]
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	series, err := h.svc.Series(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, "chart", err)
		return
	}
	var buf bytes.Buffer
	if err := report.Percent(&buf, series); err != nil {
		if errors.Is(err, report.ErrEmptySeries) {
			writeJSON(w, http.StatusNotFound, errorBody("nothing to chart"))
			return
		}
		writeError(w, "chart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// NotFound answers unmatched API paths.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody("not found"))
}
