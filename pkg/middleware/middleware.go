// Package middleware provides composable HTTP middleware and an ordered stack
// for module-level application.
package middleware

import "net/http"

// System manages an ordered stack of HTTP middleware.
type System interface {
	// Use appends middleware to the stack.
	Use(mw func(http.Handler) http.Handler)
	// Apply wraps the handler with the stack, outermost first.
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	middleware []func(http.Handler) http.Handler
}

// New creates an empty middleware stack.
func New() System {
	return &stack{
		middleware: make([]func(http.Handler) http.Handler, 0),
	}
}

func (s *stack) Use(mw func(http.Handler) http.Handler) {
	s.middleware = append(s.middleware, mw)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.middleware) - 1; i >= 0; i-- {
		handler = s.middleware[i](handler)
	}
	return handler
}
