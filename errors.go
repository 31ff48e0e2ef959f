package wikistream

import "errors"

// Kind classifies a wikistream error.
type Kind int

const (
	// KindInitialization is reported when a writer or session cannot be
	// created (unsupported encoding, unusable target, factory failure).
	KindInitialization Kind = iota + 1
	// KindWrite is reported when a write, flush or close against the sink
	// fails.
	KindWrite
	// KindStructure is reported when begin/end calls are not properly
	// nested, or an attribute has no element to attach to.
	KindStructure
	// KindRead is reported when a serialized stream cannot be read back.
	KindRead
)

func (k Kind) String() string {
	switch k {
	case KindInitialization:
		return "initialization failure"
	case KindWrite:
		return "write failure"
	case KindStructure:
		return "structural violation"
	case KindRead:
		return "read failure"
	default:
		return "unknown failure"
	}
}

// Sentinels usable with errors.Is.
var (
	ErrInitialization = errors.New(KindInitialization.String())
	ErrWrite          = errors.New(KindWrite.String())
	ErrStructure      = errors.New(KindStructure.String())
	ErrRead           = errors.New(KindRead.String())
)

// Error is the error type returned by all wikistream packages.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInitialization:
		return e.Kind == KindInitialization
	case ErrWrite:
		return e.Kind == KindWrite
	case ErrStructure:
		return e.Kind == KindStructure
	case ErrRead:
		return e.Kind == KindRead
	}
	return false
}

func InitializationFailure(msg string, cause error) error {
	return &Error{Kind: KindInitialization, Msg: msg, Err: cause}
}

func WriteFailure(msg string, cause error) error {
	return &Error{Kind: KindWrite, Msg: msg, Err: cause}
}

func StructuralViolation(msg string) error {
	return &Error{Kind: KindStructure, Msg: msg}
}

func ReadFailure(msg string, cause error) error {
	return &Error{Kind: KindRead, Msg: msg, Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
