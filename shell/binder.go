package shell

import (
	"context"
	"fmt"
	"net/http"
)

// Binder stages one module's route and task attachments. Nothing staged
// becomes visible on the App until commit, so a failing module leaves the
// application exactly as it was before the attempt.
type Binder struct {
	app    *App
	routes []binding
	tasks  []Task
}

type binding struct {
	pattern string
	handler http.Handler
}

func newBinder(app *App) *Binder {
	return &Binder{app: app}
}

// Handle stages a guarded route for the given ServeMux pattern.
func (b *Binder) Handle(pattern string, h http.Handler) {
	b.routes = append(b.routes, binding{pattern: pattern, handler: h})
}

// HandleFunc stages a guarded route from a handler function.
func (b *Binder) HandleFunc(pattern string, h http.HandlerFunc) {
	b.Handle(pattern, h)
}

// AddTask stages a background task.
func (b *Binder) AddTask(name string, run func(ctx context.Context) error) {
	b.tasks = append(b.tasks, Task{Name: name, Run: run})
}

// commit publishes the staged bindings onto the App. Conflicting patterns
// are detected against a scratch mux first, so a failed commit applies
// nothing.
func (b *Binder) commit() error {
	if err := b.validate(); err != nil {
		return err
	}

	for _, rt := range b.routes {
		b.app.Handle(rt.pattern, rt.handler)
	}
	for _, t := range b.tasks {
		b.app.AddTask(t)
	}
	return nil
}

// validate replays the committed patterns plus the staged ones into a
// throwaway mux, converting ServeMux's conflict panic into an error.
func (b *Binder) validate() (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: %v", ErrRouteConflict, v)
		}
	}()

	scratch := http.NewServeMux()
	for _, pattern := range b.app.routes {
		scratch.Handle(pattern, http.NotFoundHandler())
	}
	for _, rt := range b.routes {
		scratch.Handle(rt.pattern, http.NotFoundHandler())
	}
	return nil
}
