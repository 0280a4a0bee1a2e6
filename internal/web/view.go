package web

import (
	"context"
	"html/template"
	"net/url"
	"strings"

	"github.com/valpere/vieng/internal/session"
)

// View names one of the page sections selectable from the navigation bar.
type View string

const (
	ViewHome      View = "home"
	ViewTranslate View = "translate"
	ViewAnalyze   View = "analyze"
)

type navItem struct {
	View  View
	Icon  string
	Title string
}

// navigation is in display order; the first entry is shown when no view is
// selected.
var navigation = []navItem{
	{ViewHome, "🏠", "Home"},
	{ViewTranslate, "🌐", "Translate"},
	{ViewAnalyze, "🔍", "Analyze"},
}

// ParseView reads the selection value. A missing value selects the first
// view. Unknown values are returned as is and dispatch to nothing.
func ParseView(s string) View {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return navigation[0].View
	}
	return View(s)
}

// Request is what a view sees of one render cycle. State may be replaced by
// the view and is saved back to the session afterwards.
type Request struct {
	Query url.Values
	State *session.State
}

// RenderFunc produces the content area of one view.
type RenderFunc func(ctx context.Context, req *Request) (template.HTML, error)

// Dispatch returns the render routine for v, or nil when v names no view.
func (s *Server) Dispatch(v View) RenderFunc {
	switch v {
	case ViewHome:
		return s.renderHome
	case ViewTranslate:
		return s.renderTranslate
	case ViewAnalyze:
		return s.renderAnalyze
	default:
		return nil
	}
}
