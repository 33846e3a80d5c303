package generation

// ErrorKind classifies a failed generation
type ErrorKind int

const (
	// InvalidInput means the request was rejected locally, the backend was not called
	InvalidInput ErrorKind = iota + 1
	// BackendError covers any failure raised while invoking the backend
	BackendError
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case BackendError:
		return "backend_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Generate call: either Success with the text,
// or Failure with a kind and a human-readable message.
type Result struct {
	Text    string
	Kind    ErrorKind // zero on success
	Message string
}

// Success wraps generated text
func Success(text string) Result {
	return Result{Text: text}
}

// Failure builds a failed result
func Failure(kind ErrorKind, message string) Result {
	return Result{Kind: kind, Message: message}
}

// OK reports whether the result is a Success
func (r Result) OK() bool {
	return r.Kind == 0
}
