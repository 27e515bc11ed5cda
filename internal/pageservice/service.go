// Package pageservice drives page sessions on behalf of the HTTP API and
// the MCP server. It resolves sessions, checks that the page supports the
// requested action and reports record changes to interested listeners.
package pageservice

import (
	"context"
	"fmt"

	"github.com/starford/plantdesk/internal/apperr"
	"github.com/starford/plantdesk/internal/crud"
	"github.com/starford/plantdesk/internal/session"
)

// Change kinds reported to the change hook.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// Result is the outcome of a page operation: the affected record, whether
// anything changed and the page as it now renders.
type Result struct {
	Session string `json:"session"`
	Route   string `json:"route"`
	ID      string `json:"id,omitempty"`
	Changed bool   `json:"changed"`
	View    any    `json:"view"`
}

// ActionHook observes every operation served.
type ActionHook func(route, action string)

// ChangeHook observes committed record changes.
type ChangeHook func(kind, sessionID, route, recordID string)

// Option configures a Service.
type Option func(*Service)

// WithActionHook registers an operation observer.
func WithActionHook(h ActionHook) Option {
	return func(s *Service) { s.onAction = h }
}

// WithChangeHook registers a record change observer.
func WithChangeHook(h ChangeHook) Option {
	return func(s *Service) { s.onChange = h }
}

// Service coordinates the session registry and page operations.
type Service struct {
	reg      *session.Registry
	onAction ActionHook
	onChange ChangeHook
}

// NewService creates a page service over reg.
func NewService(reg *session.Registry, opts ...Option) *Service {
	s := &Service{reg: reg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes lists the navigable routes.
func (s *Service) Routes() []session.Route {
	return s.reg.Catalog().Routes()
}

// Open activates route in a new session. found is false for unknown
// routes, whose session renders the not-found page.
func (s *Service) Open(_ context.Context, route string) (res *Result, found bool) {
	sess, found := s.reg.Open(route)
	s.action(sess.Route, "open")
	return &Result{Session: sess.ID, Route: sess.Route, View: sess.View()}, found
}

// Close discards a session.
func (s *Service) Close(_ context.Context, sid string) error {
	if !s.reg.Close(sid) {
		return fmt.Errorf("session %s: %w", sid, apperr.ErrNotFound)
	}
	return nil
}

// View renders a session's page.
func (s *Service) View(_ context.Context, sid string) (*Result, error) {
	return s.run(sid, "", func(session.Page) (outcome, error) { return outcome{}, nil })
}

// SetQuery replaces the search text and categorical filter.
func (s *Service) SetQuery(_ context.Context, sid string, q crud.Query) (*Result, error) {
	return s.run(sid, "query", func(p session.Page) (outcome, error) {
		l, ok := p.(crud.Lister)
		if !ok {
			return outcome{}, unsupported(p, "query")
		}
		l.SetQuery(q)
		return outcome{changed: true}, nil
	})
}

// OpenForm opens the add form, or the edit form on record id. Editing an
// absent record leaves the page unchanged.
func (s *Service) OpenForm(_ context.Context, sid string, mode crud.Mode, id string) (*Result, error) {
	return s.run(sid, "form.open", func(p session.Page) (outcome, error) {
		e, ok := p.(crud.Editor)
		if !ok {
			return outcome{}, unsupported(p, "form")
		}
		switch mode {
		case crud.ModeAdd:
			e.OpenAdd()
			return outcome{changed: true}, nil
		case crud.ModeEdit:
			return outcome{id: id, changed: e.OpenEdit(id)}, nil
		default:
			return outcome{}, fmt.Errorf("form mode %q: %w", mode, apperr.ErrInvalidArgument)
		}
	})
}

// SetField replaces one field of the open draft.
func (s *Service) SetField(_ context.Context, sid, field, value string) (*Result, error) {
	return s.run(sid, "form.field", func(p session.Page) (outcome, error) {
		e, ok := p.(crud.Editor)
		if !ok {
			return outcome{}, unsupported(p, "form")
		}
		if err := e.SetField(field, value); err != nil {
			return outcome{}, err
		}
		return outcome{changed: true}, nil
	})
}

// SaveForm commits the open draft.
func (s *Service) SaveForm(_ context.Context, sid string) (*Result, error) {
	return s.run(sid, "form.save", func(p session.Page) (outcome, error) {
		e, ok := p.(crud.Editor)
		if !ok {
			return outcome{}, unsupported(p, "form")
		}
		mode, open := e.FormMode()
		if !open {
			return outcome{}, apperr.ErrFormClosed
		}
		id, err := e.Save()
		if err != nil {
			return outcome{}, err
		}
		kind := ChangeUpdated
		if mode == crud.ModeAdd {
			kind = ChangeCreated
		}
		return outcome{id: id, changed: true, kind: kind}, nil
	})
}

// CancelForm discards the open draft.
func (s *Service) CancelForm(_ context.Context, sid string) (*Result, error) {
	return s.run(sid, "form.cancel", func(p session.Page) (outcome, error) {
		e, ok := p.(crud.Editor)
		if !ok {
			return outcome{}, unsupported(p, "form")
		}
		_, open := e.FormMode()
		e.Cancel()
		return outcome{changed: open}, nil
	})
}

// EditRows applies fn to the nested lists of the open draft.
func (s *Service) EditRows(_ context.Context, sid, action string, fn func(crud.RowEditor) error) (*Result, error) {
	return s.run(sid, action, func(p session.Page) (outcome, error) {
		r, ok := p.(crud.RowEditor)
		if !ok {
			return outcome{}, unsupported(p, action)
		}
		if err := fn(r); err != nil {
			return outcome{}, err
		}
		return outcome{changed: true}, nil
	})
}

// ShowOverlay opens the detail overlay on record id.
func (s *Service) ShowOverlay(_ context.Context, sid, id string) (*Result, error) {
	return s.run(sid, "overlay.show", func(p session.Page) (outcome, error) {
		v, ok := p.(crud.Viewer)
		if !ok {
			return outcome{}, unsupported(p, "overlay")
		}
		return outcome{id: id, changed: v.Show(id)}, nil
	})
}

// CloseOverlay hides the detail overlay.
func (s *Service) CloseOverlay(_ context.Context, sid string) (*Result, error) {
	return s.run(sid, "overlay.close", func(p session.Page) (outcome, error) {
		v, ok := p.(crud.Viewer)
		if !ok {
			return outcome{}, unsupported(p, "overlay")
		}
		v.CloseOverlay()
		return outcome{changed: true}, nil
	})
}

// EditSelected moves from the overlay into the edit form of its record.
func (s *Service) EditSelected(_ context.Context, sid string) (*Result, error) {
	return s.run(sid, "overlay.edit", func(p session.Page) (outcome, error) {
		v, ok := p.(crud.Viewer)
		if !ok {
			return outcome{}, unsupported(p, "overlay")
		}
		return outcome{changed: v.EditSelected()}, nil
	})
}

// DeleteSelected deletes the record shown in the overlay.
func (s *Service) DeleteSelected(_ context.Context, sid string) (*Result, error) {
	return s.run(sid, "overlay.delete", func(p session.Page) (outcome, error) {
		v, ok := p.(crud.Viewer)
		if !ok {
			return outcome{}, unsupported(p, "overlay")
		}
		id, removed := v.DeleteSelected()
		o := outcome{id: id, changed: removed}
		if removed {
			o.kind = ChangeDeleted
		}
		return o, nil
	})
}

// Remove deletes record id. Absent ids change nothing.
func (s *Service) Remove(_ context.Context, sid, id string) (*Result, error) {
	return s.run(sid, "delete", func(p session.Page) (outcome, error) {
		r, ok := p.(crud.Remover)
		if !ok {
			return outcome{}, unsupported(p, "delete")
		}
		o := outcome{id: id, changed: r.Remove(id)}
		if o.changed {
			o.kind = ChangeDeleted
		}
		return o, nil
	})
}

// Toggle flips the two-valued status of record id.
func (s *Service) Toggle(_ context.Context, sid, id string) (*Result, error) {
	return s.run(sid, "toggle", func(p session.Page) (outcome, error) {
		t, ok := p.(crud.Toggler)
		if !ok {
			return outcome{}, unsupported(p, "toggle")
		}
		return updated(id, t.ToggleStatus(id)), nil
	})
}

// Start moves a pending record to in-progress.
func (s *Service) Start(_ context.Context, sid, id string) (*Result, error) {
	return s.run(sid, "start", func(p session.Page) (outcome, error) {
		t, ok := p.(crud.Transitioner)
		if !ok {
			return outcome{}, unsupported(p, "start")
		}
		changed, err := t.Start(id)
		if err != nil {
			return outcome{}, err
		}
		return updated(id, changed), nil
	})
}

// Complete moves an in-progress record to completed.
func (s *Service) Complete(_ context.Context, sid, id string) (*Result, error) {
	return s.run(sid, "complete", func(p session.Page) (outcome, error) {
		t, ok := p.(crud.Transitioner)
		if !ok {
			return outcome{}, unsupported(p, "complete")
		}
		changed, err := t.Complete(id)
		if err != nil {
			return outcome{}, err
		}
		return updated(id, changed), nil
	})
}

// Series returns the chartable series of a session's page.
func (s *Service) Series(_ context.Context, sid string) (crud.Series, error) {
	var out crud.Series
	_, err := s.run(sid, "chart", func(p session.Page) (outcome, error) {
		c, ok := p.(crud.Charter)
		if !ok {
			return outcome{}, unsupported(p, "chart")
		}
		out = c.Series()
		return outcome{}, nil
	})
	return out, err
}

type outcome struct {
	id      string
	changed bool
	kind    string
}

func updated(id string, changed bool) outcome {
	o := outcome{id: id, changed: changed}
	if changed {
		o.kind = ChangeUpdated
	}
	return o
}

func unsupported(p session.Page, action string) error {
	return fmt.Errorf("%s on %s: %w", action, p.Route(), apperr.ErrUnsupported)
}

func (s *Service) run(sid, action string, fn func(session.Page) (outcome, error)) (*Result, error) {
	sess, ok := s.reg.Get(sid)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sid, apperr.ErrNotFound)
	}
	if action != "" {
		s.action(sess.Route, action)
	}
	return s.do(sess, fn)
}

func (s *Service) do(sess *session.Session, fn func(session.Page) (outcome, error)) (*Result, error) {
	var res *Result
	var o outcome
	err := sess.Do(func(p session.Page) error {
		var err error
		if o, err = fn(p); err != nil {
			return err
		}
		res = &Result{Session: sess.ID, Route: sess.Route, ID: o.id, Changed: o.changed, View: p.View()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if o.kind != "" && s.onChange != nil {
		s.onChange(o.kind, sess.ID, sess.Route, o.id)
	}
	return res, nil
}

func (s *Service) action(route, action string) {
	if s.onAction != nil {
		s.onAction(route, action)
	}
}
