// Package router tracks the current destination and runs the route guard
// in front of every navigation.
package router

import (
	"sync"

	"go.uber.org/zap"

	"github.com/kraigochieng/4th-year-project/internal/auth"
	"github.com/kraigochieng/4th-year-project/internal/logger"
)

// Checker decides whether a navigation may proceed.
type Checker interface {
	Check(dest string) auth.Decision
}

// Listener is called after the current destination changes.
type Listener func(from, to string)

// Router implements auth.Navigator.
type Router struct {
	guard Checker

	mu        sync.Mutex
	current   string
	history   []string
	listeners []Listener
}

// New creates a router positioned at no destination.
func New(guard Checker) *Router {
	return &Router{guard: guard}
}

// NavigateTo moves to dest, or to the guard's redirect when dest is
// blocked.
func (r *Router) NavigateTo(dest string) {
	r.Navigate(dest)
}

// Navigate is NavigateTo returning the destination actually reached.
func (r *Router) Navigate(dest string) string {
	return r.move(dest, true)
}

// Back returns to the previous destination, re-checking the guard. With an
// empty history it stays put.
func (r *Router) Back() string {
	r.mu.Lock()
	if len(r.history) == 0 {
		cur := r.current
		r.mu.Unlock()
		return cur
	}
	prev := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.mu.Unlock()

	return r.move(prev, false)
}

func (r *Router) move(dest string, push bool) string {
	to := dest
	if decision := r.guard.Check(dest); !decision.Allow {
		logger.Debug("navigation blocked",
			zap.String("requested", dest),
			zap.String("redirect", decision.Redirect),
		)
		to = decision.Redirect
	}

	r.mu.Lock()
	from := r.current
	if push && from != "" && from != to {
		r.history = append(r.history, from)
	}
	r.current = to
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(from, to)
	}
	return to
}

// Current returns the current destination.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// OnChange registers fn to be called after every navigation.
func (r *Router) OnChange(fn Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}
