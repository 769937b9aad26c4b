// Package middleware provides HTTP middleware and an ordered middleware stack.
package middleware

import "net/http"

// Stack manages an ordered set of HTTP middleware.
type Stack interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	chain []func(http.Handler) http.Handler
}

// NewStack creates an empty middleware Stack.
func NewStack() Stack {
	return &stack{chain: []func(http.Handler) http.Handler{}}
}

func (s *stack) Use(fn func(http.Handler) http.Handler) {
	s.chain = append(s.chain, fn)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.chain) - 1; i >= 0; i-- {
		handler = s.chain[i](handler)
	}
	return handler
}
