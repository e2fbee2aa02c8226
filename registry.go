package csvmap

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ConverterFunc turns one raw cell string into a typed value. The raw value is
// never nil or blank; blank cells short-circuit to the absent value before
// dispatch reaches a converter.
type ConverterFunc func(raw string) (any, error)

// Registry maps target value types to converter functions. It comes
// pre-populated with converters for the common scalar types and their pointer
// counterparts and can be extended or overridden per type.
//
// A Registry is read-mostly: it may be shared across any number of Map calls,
// but Register and Convert are not safe to run concurrently. Callers that
// mutate a shared Registry after setup must serialize externally.
type Registry struct {
	converters map[reflect.Type]ConverterFunc
}

// NewRegistry returns a Registry initialized with the default converters:
// string, int, int32, int64, float64, float32, bool, and the pointer form of
// each.
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[reflect.Type]ConverterFunc)}
	r.registerDefaults()
	return r
}

func (r *Registry) registerDefaults() {
	registerPair[string](r, func(raw string) (string, error) { return raw, nil })
	registerPair[int](r, strconv.Atoi)
	registerPair[int32](r, func(raw string) (int32, error) {
		v, err := strconv.ParseInt(raw, 10, 32)
		return int32(v), err
	})
	registerPair[int64](r, func(raw string) (int64, error) {
		return strconv.ParseInt(raw, 10, 64)
	})
	registerPair[float64](r, func(raw string) (float64, error) {
		return strconv.ParseFloat(raw, 64)
	})
	registerPair[float32](r, func(raw string) (float32, error) {
		v, err := strconv.ParseFloat(raw, 32)
		return float32(v), err
	})
	// "true" in any casing maps to true; every other non-blank string maps to
	// false. Unrecognized boolean text is not an error.
	registerPair[bool](r, func(raw string) (bool, error) {
		return strings.EqualFold(raw, "true"), nil
	})
}

// Register stores fn as the converter for t, replacing any prior entry
// (last-write-wins). This both extends the Registry to new types and overrides
// behavior for types with a default converter.
func (r *Registry) Register(t reflect.Type, fn ConverterFunc) {
	r.converters[t] = fn
}

// RegisterAll registers every entry of converters. A nil map is a no-op.
func (r *Registry) RegisterAll(converters map[reflect.Type]ConverterFunc) {
	for t, fn := range converters {
		r.converters[t] = fn
	}
}

// RegisterFor registers fn as the converter for type T, keeping reflect noise
// out of call sites.
func RegisterFor[T any](r *Registry, fn func(raw string) (T, error)) {
	r.Register(reflect.TypeOf((*T)(nil)).Elem(), func(raw string) (any, error) { return fn(raw) })
}

// registerPair registers fn for T and a pointer-producing variant for *T, so
// value and pointer fields of the same underlying type parse identically.
func registerPair[T any](r *Registry, fn func(raw string) (T, error)) {
	RegisterFor(r, fn)
	RegisterFor(r, func(raw string) (*T, error) {
		v, err := fn(raw)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
}

// Convert turns raw into a value of type t using the registered converter.
//
// A nil-equivalent input (empty or whitespace-only) yields (nil, nil) — the
// absent value — for every t, including types that cannot hold absence; that
// check belongs to the mapping engine, which knows the target field. A missing
// converter yields an unsupported_type issue. A converter failure of any kind,
// error or panic, is caught and returned as a conversion_error issue carrying
// the raw value, the type name, and the underlying cause.
func (r *Registry) Convert(raw string, t reflect.Type) (v any, err error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	fn, ok := r.converters[t]
	if !ok {
		return nil, singleIssue(CodeUnsupportedType, "unsupported type conversion for: "+t.String())
	}
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = Issues{Issue{
				Path:    "/",
				Code:    CodeConversionError,
				Message: fmt.Sprintf("error converting value %q to type %s", raw, t),
				Cause:   fmt.Errorf("converter panic: %v", rec),
			}}
		}
	}()
	out, cErr := fn(raw)
	if cErr != nil {
		return nil, Issues{Issue{
			Path:    "/",
			Code:    CodeConversionError,
			Message: fmt.Sprintf("error converting value %q to type %s", raw, t),
			Cause:   cErr,
		}}
	}
	return out, nil
}
