// Package generation turns a mode and its field values into a prompt, sends it
// to a language model backend and normalizes the outcome into a Result.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/talecraft/internal/modes"
)

// Backend is a synchronous text completion client
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// BackendFunc adapts a function to Backend
type BackendFunc func(ctx context.Context, prompt string) (string, error)

func (f BackendFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Request is one user action: a mode plus its raw field values
type Request struct {
	ID     string
	Mode   modes.Mode
	Fields map[string]string
}

var errNoBackend = errors.New("no language model backend configured")

// Generate validates req, renders its prompt and calls backend exactly once.
// It always returns a Result; failures are values, never panics.
func Generate(ctx context.Context, backend Backend, req Request) Result {
	if !req.Mode.Valid() {
		return Failure(InvalidInput, fmt.Sprintf("unknown mode %q", req.Mode))
	}

	spec := modes.SpecFor(req.Mode)
	if err := spec.Validate(req.Fields); err != nil {
		return Failure(InvalidInput, err.Error())
	}

	prompt := spec.Render(req.Fields)

	text, err := complete(ctx, backend, prompt)
	if err != nil {
		return Failure(BackendError, backendMessage(err))
	}
	return Success(text)
}

func complete(ctx context.Context, backend Backend, prompt string) (text string, err error) {
	if backend == nil {
		return "", errNoBackend
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panic: %v", r)
		}
	}()
	return backend.Complete(ctx, prompt)
}

func backendMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown backend failure"
	}
	return "An error occurred: " + msg
}

// Facade binds Generate to a default backend, optional per-mode backends,
// a per-call timeout and a logger.
type Facade struct {
	backend Backend
	perMode map[modes.Mode]Backend
	timeout time.Duration
	log     *slog.Logger
}

// Option configures a Facade
type Option func(*Facade)

// WithModeBackend routes one mode to its own backend
func WithModeBackend(m modes.Mode, b Backend) Option {
	return func(f *Facade) {
		f.perMode[m] = b
	}
}

// WithTimeout bounds each backend call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(f *Facade) {
		f.timeout = d
	}
}

// WithLogger sets the logger used for per-request records
func WithLogger(log *slog.Logger) Option {
	return func(f *Facade) {
		f.log = log
	}
}

// New creates a Facade using backend for every mode without an override
func New(backend Backend, opts ...Option) *Facade {
	f := &Facade{
		backend: backend,
		perMode: make(map[modes.Mode]Backend),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// BackendFor returns the backend a request for m goes to
func (f *Facade) BackendFor(m modes.Mode) Backend {
	if b, ok := f.perMode[m]; ok && b != nil {
		return b
	}
	return f.backend
}

// Generate runs one request. Safe for concurrent use.
func (f *Facade) Generate(ctx context.Context, req Request) Result {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	log := f.log.With("request_id", req.ID, "mode", string(req.Mode))
	if req.Mode.Valid() && log.Enabled(ctx, slog.LevelDebug) {
		if spec := modes.SpecFor(req.Mode); spec.Validate(req.Fields) == nil {
			log.Debug("prompt rendered", "prompt", spec.Render(req.Fields))
		}
	}

	start := time.Now()
	res := Generate(ctx, f.BackendFor(req.Mode), req)
	elapsed := time.Since(start)

	if res.OK() {
		log.Info("generation finished", "chars", len(res.Text), "duration", elapsed)
		log.Debug("generation text", "text", res.Text)
	} else {
		log.Warn("generation failed", "kind", res.Kind.String(), "message", res.Message, "duration", elapsed)
	}
	return res
}
