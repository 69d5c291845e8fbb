package router

import (
	"fmt"
	"strings"
)

type Request struct {
	Token   string `json:"token"`
	Command string `json:"command"`
	Data    any    `json:"data"`
}

// GetModule returns the part of the command before the first dot,
// GetAction the remainder. "main.reload" routes to the "main" handler.
func (r Request) GetModule() string {
	module, _, found := strings.Cut(r.Command, ".")

	if !found {
		return "main"
	}

	return module
}

func (r Request) GetAction() string {
	module, action, found := strings.Cut(r.Command, ".")

	if !found {
		return module
	}

	return action
}

type Handler interface {
	Handle(request Request) (any, error)
}

type Router struct {
	handlers map[string]Handler
}

func (r *Router) RegisterHandler(module string, handler Handler) {
	if r.handlers == nil {
		r.handlers = make(map[string]Handler)
	}

	r.handlers[module] = handler
}

func (r *Router) GetHandler(module string) (Handler, error) {
	handler, ok := r.handlers[module]

	if !ok {
		return nil, fmt.Errorf("handler for module '%s' is not registered", module)
	}

	return handler, nil
}
