package shell

import (
	"context"
	"fmt"

	"github.com/snipops/snippetd/observe"
)

// RegistrarConfig configures a Registrar.
type RegistrarConfig struct {
	// Logger receives one line per registration outcome. Defaults to a
	// no-op logger.
	Logger observe.Logger
}

// Registrar attaches modules to an App, one at a time, converting every
// failure into an Outcome instead of letting it escape. A panicking or
// erroring module never prevents later modules from being attempted and
// never leaves partial routes on the App.
//
// Concurrency: Apply and ApplyAll are not safe for concurrent use with
// each other or with the App's own registration methods.
//
// Errors: registration failures are reported through Outcome, not
// returned; the only logging side effect is one structured line per
// module.
type Registrar struct {
	logger observe.Logger
}

// NewRegistrar creates a Registrar.
func NewRegistrar(config ...RegistrarConfig) *Registrar {
	cfg := RegistrarConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger()
	}
	return &Registrar{logger: cfg.Logger}
}

// Apply loads one module and attaches its routes and tasks to the App.
// The returned Outcome records success or the failure phase; the App is
// left untouched unless the whole module committed cleanly.
func (r *Registrar) Apply(ctx context.Context, app *App, m Module) Outcome {
	out := Outcome{Module: m.Name}

	attach, err := loadModule(m)
	if err != nil {
		out.Kind = FailureLoad
		out.Err = err.Error()
		r.logOutcome(ctx, out)
		return out
	}

	if err := attachModule(app, attach); err != nil {
		out.Kind = FailureAttach
		out.Err = err.Error()
		r.logOutcome(ctx, out)
		return out
	}

	out.OK = true
	out.Kind = FailureNone
	r.logOutcome(ctx, out)
	return out
}

// ApplyAll applies every module in order. All modules are attempted even
// when earlier ones fail; the returned slice has one Outcome per module
// in input order.
func (r *Registrar) ApplyAll(ctx context.Context, app *App, modules []Module) []Outcome {
	outcomes := make([]Outcome, 0, len(modules))
	for _, m := range modules {
		outcomes = append(outcomes, r.Apply(ctx, app, m))
	}
	return outcomes
}

func (r *Registrar) logOutcome(ctx context.Context, out Outcome) {
	if out.OK {
		r.logger.Info(ctx, "module registered",
			observe.Field{Key: "module", Value: out.Module},
		)
		return
	}
	r.logger.Error(ctx, "module registration failed",
		observe.Field{Key: "module", Value: out.Module},
		observe.Field{Key: "failure", Value: out.Kind.String()},
		observe.Field{Key: "error", Value: out.Err},
	)
}

// loadModule resolves the module's attach function, containing panics.
func loadModule(m Module) (attach AttachFunc, err error) {
	defer func() {
		if v := recover(); v != nil {
			attach = nil
			err = fmt.Errorf("%w: %v", ErrLoadPanic, v)
		}
	}()

	if m.Load == nil {
		return nil, ErrNilLoad
	}
	attach, err = m.Load()
	if err != nil {
		return nil, err
	}
	if attach == nil {
		return nil, ErrNilAttach
	}
	return attach, nil
}

// attachModule runs the attach function against a staged binder and
// commits only on success, containing panics.
func attachModule(app *App, attach AttachFunc) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: %v", ErrAttachPanic, v)
		}
	}()

	b := newBinder(app)
	if err := attach(b); err != nil {
		return err
	}
	return b.commit()
}
