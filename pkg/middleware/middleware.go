// Package middleware holds the HTTP middleware the API module stacks around its routes.
package middleware

import "net/http"

// Middleware wraps a handler.
type Middleware = func(http.Handler) http.Handler

// System is an ordered middleware stack. The first middleware added is the
// outermost when applied.
type System interface {
	Use(mw Middleware)
	Apply(handler http.Handler) http.Handler
}

type stack []Middleware

func New() System {
	return &stack{}
}

func (s *stack) Use(mw Middleware) {
	*s = append(*s, mw)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	mws := *s
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}
