package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnknownOperation indicates no handler is registered for the name.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrMissingArgument indicates a declared required argument was absent
	// or empty.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrExecutionFailed wraps handler errors and recovered panics.
	ErrExecutionFailed = errors.New("operation execution failed")
)

// Handler executes one operation. The returned value is normalized to a
// string by Call; returning an error marks the invocation as failed.
type Handler func(ctx context.Context, args map[string]any) (any, error)

type operation struct {
	required []string
	handler  Handler
}

// Registry maps operation names to handlers.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]operation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]operation)}
}

// Register adds a handler under name. Required lists the argument keys
// that must be present and non-empty on every call. Re-registering a
// name replaces the previous handler.
func (r *Registry) Register(name string, required []string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[name] = operation{required: required, handler: h}
}

// Names returns the registered operation names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes the named operation and returns its normalized result.
// A handler panic is converted to ErrExecutionFailed rather than taking
// down the server.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (result string, err error) {
	r.mu.RLock()
	op, ok := r.ops[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}

	for _, key := range op.required {
		if !hasArg(args, key) {
			return "", fmt.Errorf("%w: %q", ErrMissingArgument, key)
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = ""
			err = fmt.Errorf("%w: %s: panic: %v", ErrExecutionFailed, name, rec)
		}
	}()

	raw, err := op.handler(ctx, args)
	if err != nil {
		if errors.Is(err, ErrExecutionFailed) || errors.Is(err, ErrMissingArgument) || errors.Is(err, ErrUnknownOperation) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s: %v", ErrExecutionFailed, name, err)
	}

	return Normalize(raw), nil
}

// hasArg reports whether args carries a usable value for key. An empty
// string does not count as present.
func hasArg(args map[string]any, key string) bool {
	val, ok := args[key]
	if !ok || val == nil {
		return false
	}
	if s, isStr := val.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Normalize converts a handler result to its textual form. Strings pass
// through unchanged. Maps prefer their "result" entry. Slices yield
// their first string element, or all elements joined with spaces when
// none is a string. Anything else is formatted with %v.
func Normalize(raw any) string {
	switch val := raw.(type) {
	case string:
		return val
	case map[string]any:
		if res, ok := val["result"]; ok {
			return Normalize(res)
		}
		return fmt.Sprintf("%v", val)
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				return s
			}
		}
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprintf("%v", item)
		}
		return strings.Join(parts, " ")
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
