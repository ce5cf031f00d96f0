package shell

// AttachFunc wires a module's routes and tasks onto a Binder.
type AttachFunc func(b *Binder) error

// Module describes one feature module: a name plus the load step that
// resolves its attach function. The two steps fail differently: a Load error
// means the module's code or collaborators could not be resolved at all,
// while an attach error means its registration logic ran and failed.
type Module struct {
	Name string
	Load func() (AttachFunc, error)
}

// FailureKind classifies a registration failure.
type FailureKind int

const (
	// FailureNone means the module registered successfully.
	FailureNone FailureKind = iota

	// FailureLoad means the module's load step errored or panicked.
	FailureLoad

	// FailureAttach means the attach step errored or panicked, or its
	// staged routes conflicted at commit.
	FailureAttach
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureLoad:
		return "load_error"
	case FailureAttach:
		return "attach_error"
	default:
		return "unknown"
	}
}

// Outcome reports one module registration attempt. Outcomes are produced
// once per module per process start and consumed for logging and tests;
// no endpoint surfaces them.
type Outcome struct {
	// Module is the descriptor name.
	Module string

	// OK is true when the module's routes and tasks were committed.
	OK bool

	// Kind classifies the failure; FailureNone on success.
	Kind FailureKind

	// Err is the captured failure text, empty on success.
	Err string
}
