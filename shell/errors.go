package shell

import "errors"

// Registration errors recorded in Outcomes.
var (
	// ErrNilLoad indicates a module descriptor without a load function.
	ErrNilLoad = errors.New("shell: module has no load function")

	// ErrNilAttach indicates a load step that returned no attach function.
	ErrNilAttach = errors.New("shell: module load returned no attach function")

	// ErrLoadPanic indicates a panic while resolving the module.
	ErrLoadPanic = errors.New("shell: module load panicked")

	// ErrAttachPanic indicates a panic while attaching the module.
	ErrAttachPanic = errors.New("shell: module attach panicked")

	// ErrRouteConflict indicates staged routes that collide with already
	// committed ones (or with each other).
	ErrRouteConflict = errors.New("shell: route conflict")
)
