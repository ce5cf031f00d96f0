package shell

import (
	"context"
	"net/http"
)

// Task is a background trigger run for the life of the service, the
// non-HTTP counterpart of a route.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// AppConfig configures the application handle.
type AppConfig struct {
	// Guard wraps every handler registered through Handle or a Binder.
	// Nil leaves module routes unprotected.
	Guard func(http.Handler) http.Handler
}

// App is the mutable application handle modules attach routes and background
// tasks to.
//
// Contract:
// - Concurrency: registration is not safe for concurrent use; it happens on
//   the bootstrap goroutine before the server starts. The Handler is safe
//   for concurrent use once serving begins.
// - Errors: Handle panics on pattern conflicts exactly as http.ServeMux
//   does. Module attachment goes through the Registrar, which converts such
//   panics into failed Outcomes.
type App struct {
	config AppConfig
	mux    *http.ServeMux
	routes []string
	tasks  []Task
}

// NewApp creates an application handle.
func NewApp(config ...AppConfig) *App {
	cfg := AppConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}

	return &App{
		config: cfg,
		mux:    http.NewServeMux(),
	}
}

// Handle registers a guarded handler for the given ServeMux pattern.
func (a *App) Handle(pattern string, h http.Handler) {
	if a.config.Guard != nil {
		h = a.config.Guard(h)
	}
	a.mux.Handle(pattern, h)
	a.routes = append(a.routes, pattern)
}

// HandleAnonymous registers a handler that bypasses the guard. The health
// and metrics endpoints use it; modules cannot.
func (a *App) HandleAnonymous(pattern string, h http.Handler) {
	a.mux.Handle(pattern, h)
	a.routes = append(a.routes, pattern)
}

// AddTask registers a background task.
func (a *App) AddTask(t Task) {
	a.tasks = append(a.tasks, t)
}

// Handler returns the root handler serving every committed route.
func (a *App) Handler() http.Handler {
	return a.mux
}

// Routes returns the committed route patterns in registration order.
func (a *App) Routes() []string {
	return append([]string(nil), a.routes...)
}

// Tasks returns the registered background tasks in registration order.
func (a *App) Tasks() []Task {
	return append([]Task(nil), a.tasks...)
}
