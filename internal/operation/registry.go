package operation

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Handler implements one operation. It receives the raw input and the
// parameters resolved against the operation's descriptor.
type Handler func(input string, params Params) (string, error)

// Transform adapts a parameterless transform to a Handler.
func Transform(fn func(string) (string, error)) Handler {
	return func(input string, _ Params) (string, error) {
		return fn(input)
	}
}

// Entry registers one operation: its discovery metadata and its
// implementation, kept together so neither can exist without the other.
type Entry struct {
	Descriptor Descriptor
	Handler    Handler
}

// Registry maps operation names to entries. It is built once and never
// mutated, so it needs no locking.
type Registry struct {
	entries []Entry
	index   map[string]int
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug output on each execution.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry validates entries and builds a registry that preserves their
// order. It fails on an empty or duplicate name, a nil handler, an
// unsupported parameter type, or a default value that does not coerce.
func NewRegistry(entries []Entry, opts ...Option) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, err
		}
		if _, dup := r.index[e.Descriptor.Name]; dup {
			return nil, fmt.Errorf("duplicate operation %q", e.Descriptor.Name)
		}
		r.index[e.Descriptor.Name] = len(r.entries)
		r.entries = append(r.entries, Entry{Descriptor: e.Descriptor.clone(), Handler: e.Handler})
	}

	return r, nil
}

func validateEntry(e Entry) error {
	d := e.Descriptor
	if d.Name == "" {
		return fmt.Errorf("operation name cannot be empty")
	}
	if e.Handler == nil {
		return fmt.Errorf("operation %q has no handler", d.Name)
	}

	seen := make(map[string]bool, len(d.Parameters))
	for _, p := range d.Parameters {
		if p.Name == "" {
			return fmt.Errorf("operation %q: parameter name cannot be empty", d.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("operation %q: duplicate parameter %q", d.Name, p.Name)
		}
		seen[p.Name] = true

		if _, ok := coercers[p.Type]; !ok {
			return fmt.Errorf("operation %q: parameter %q has unsupported type %q", d.Name, p.Name, p.Type)
		}
		if p.DefaultValue != nil {
			if _, err := Coerce(p.Type, *p.DefaultValue); err != nil {
				return fmt.Errorf("operation %q: default for parameter %q is not a valid %s: %w",
					d.Name, p.Name, p.Type, err)
			}
		}
	}
	return nil
}

// List returns the catalog in registration order. The slice and its
// descriptors are copies.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Descriptor.clone()
	}
	return out
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	i, ok := r.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.entries[i].Descriptor.clone(), true
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Execute runs the named operation on input. A nil params map is treated
// as empty. Every outcome, including an unknown name, is returned as a
// Result; Execute never panics on behalf of a transform.
func (r *Registry) Execute(operation, input string, params map[string]string) Result {
	start := time.Now()

	label := operation
	output, err := r.dispatch(operation, input, params)
	if e, ok := err.(*Error); ok && e.Type == ErrorTypeUnknownOperation {
		label = unknownLabel
	}

	duration := time.Since(start)
	recordMetrics(label, duration, err)

	if r.logger.Enabled(context.Background(), slog.LevelDebug) {
		attrs := []any{
			slog.String("operation", operation),
			slog.Bool("success", err == nil),
			slog.Int("input_bytes", len(input)),
			slog.Int64("duration_us", duration.Microseconds()),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error_type", errorKind(err)))
		}
		r.logger.Debug("operation executed", attrs...)
	}

	return fromOutcome(output, err)
}

func (r *Registry) dispatch(operation, input string, raw map[string]string) (string, error) {
	i, ok := r.index[operation]
	if !ok {
		return "", NewUnknownOperationError(operation)
	}
	entry := r.entries[i]

	params, fallbacks, err := resolveParams(operation, entry.Descriptor.Parameters, raw)
	if err != nil {
		return "", err
	}
	for _, fb := range fallbacks {
		recordFallback(operation, fb.Parameter)
		r.logger.Debug("parameter did not coerce, using default",
			slog.String("operation", operation),
			slog.String("parameter", fb.Parameter),
			slog.String("value", fb.Raw),
			slog.Any("error", fb.Cause),
		)
	}

	return invoke(operation, entry.Handler, input, params)
}

// invoke calls h, converting a panic into an internal error.
func invoke(operation string, h Handler, input string, params Params) (output string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			output = ""
			err = &Error{
				Type:      ErrorTypeInternal,
				Operation: operation,
				Message:   fmt.Sprintf("%s: internal error", operation),
				Cause:     fmt.Errorf("%v", rec),
			}
		}
	}()
	return h(input, params)
}
