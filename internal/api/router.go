package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/plantdesk/internal/pageservice"
)

// NewRouter creates a chi router with all API routes mounted.
// sseHandler, if non-nil, is mounted at GET /events. rps and burst
// configure the per-client rate limit; rps <= 0 disables it.
func NewRouter(svc *pageservice.Service, sseHandler http.Handler, rps float64, burst int) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.NotFound(NotFound)

	// Event stream stays outside the limiter: it is one long request.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(rps, burst))

		r.Get("/routes", h.ListRoutes)
		r.Post("/routes/{route}", h.OpenRoute)

		r.Route("/sessions/{sid}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.CloseSession)
			r.Put("/query", h.SetQuery)
			r.Get("/chart.png", h.Chart)

			r.Route("/form", func(r chi.Router) {
				r.Post("/", h.OpenForm)
				r.Patch("/", h.SetField)
				r.Delete("/", h.CancelForm)
				r.Post("/save", h.SaveForm)

				r.Post("/ingredients", h.AddIngredient)
				r.Patch("/ingredients/{index}", h.SetIngredient)
				r.Delete("/ingredients/{index}", h.RemoveIngredient)

				r.Post("/steps", h.AddStep)
				r.Put("/steps/{index}", h.SetStep)
				r.Delete("/steps/{index}", h.RemoveStep)
			})

			r.Route("/overlay", func(r chi.Router) {
				r.Post("/", h.ShowOverlay)
				r.Delete("/", h.CloseOverlay)
				r.Post("/edit", h.EditSelected)
				r.Post("/delete", h.DeleteSelected)
			})

			r.Route("/records/{id}", func(r chi.Router) {
				r.Delete("/", h.DeleteRecord)
				r.Post("/toggle", h.ToggleRecord)
				r.Post("/start", h.StartRecord)
				r.Post("/complete", h.CompleteRecord)
			})
		})
	})

	return r
}
