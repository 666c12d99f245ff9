// Package typed compiles maps of textual signatures into fast runtime
// multiple-dispatch callables: one function value that routes each call to
// an implementation based on the runtime types of its arguments, applying
// declared conversions when no exact overload matches.
package typed

import (
	"github.com/funvibe/typed/internal/config"
	"github.com/funvibe/typed/internal/dispatch"
	"github.com/funvibe/typed/internal/registry"
	"github.com/funvibe/typed/internal/signature"
)

// Impl is the shape of an overload implementation.
type Impl = dispatch.Impl

// Signatures maps signature strings to implementations.
type Signatures = dispatch.Signatures

// Callable is a compiled dispatcher.
type Callable = dispatch.Callable

// Type is a named runtime type predicate.
type Type = registry.Type

// Conversion is a declared coercion between two registered types.
type Conversion = registry.Conversion

// Construction-time errors.
type (
	SyntaxError             = signature.SyntaxError
	UnknownTypeError        = registry.UnknownTypeError
	UnknownValueTypeError   = registry.UnknownValueTypeError
	InvalidArgumentError    = registry.InvalidArgumentError
	NoConversionError       = registry.NoConversionError
	NoSignaturesError       = dispatch.NoSignaturesError
	DuplicateSignatureError = dispatch.DuplicateSignatureError
	NotTypedError           = dispatch.NotTypedError
	NameMismatchError       = dispatch.NameMismatchError
	NotFoundError           = dispatch.NotFoundError
)

// CallError is the structured call-time dispatch failure.
type CallError = dispatch.CallError

// Call-time failure categories.
const (
	CategoryWrongType   = dispatch.CategoryWrongType
	CategoryTooFewArgs  = dispatch.CategoryTooFewArgs
	CategoryTooManyArgs = dispatch.CategoryTooManyArgs
	CategoryMismatch    = dispatch.CategoryMismatch
)

// Engine owns a type registry, a conversion registry and an ignore set, and
// compiles callables against them. Engines are independent: registrations
// on one never leak into another. Registries are append-only; compiled
// callables snapshot what they need, so registering more types or
// conversions later leaves existing callables untouched.
type Engine struct {
	// Registry holds the engine's types, conversions and ignore set.
	Registry *registry.Registry

	// FastPathDefs caps how many leading definitions each compiled
	// callable specializes; zero means the package default. The value is
	// read once, when the first From call builds the engine's constructor;
	// changing it afterwards does not affect later compilations.
	FastPathDefs int

	constructor *dispatch.Callable
}

// New creates an engine with the default type registry.
func New() *Engine {
	return &Engine{Registry: registry.NewDefault()}
}

// Default is the shared engine behind the package-level functions.
var Default = New()

// AddType registers a type predicate. New types classify ahead of the
// Object and any catch-alls.
func (e *Engine) AddType(t Type) error {
	return e.Registry.AddType(t)
}

// AddConversion registers a conversion; later compilations expand matching
// signatures with its source type.
func (e *Engine) AddConversion(c Conversion) error {
	return e.Registry.AddConversion(c)
}

// Ignore marks type names to be stripped from signatures during
// compilation.
func (e *Engine) Ignore(names ...string) {
	e.Registry.Ignore(names...)
}

// From builds a callable. Accepted argument shapes:
//
//	From(signatures)        name inferred when implementations agree
//	From(name, signatures)
//	From(fns...)            merge of compiled callables
//
// The overloads are themselves dispatched by a callable the engine compiles
// over its own construction surface.
func (e *Engine) From(args ...any) (*Callable, error) {
	if e.constructor == nil {
		ctor, err := dispatch.NewConstructor(e.Registry, e.FastPathDefs)
		if err != nil {
			return nil, err
		}
		e.constructor = ctor
	}
	result, err := e.constructor.Call(args...)
	if err != nil {
		return nil, err
	}
	switch r := result.(type) {
	case *Callable:
		return r, nil
	case error:
		return nil, r
	default:
		return nil, &NotTypedError{Value: result}
	}
}

// Convert coerces a value to the target type using the engine's
// conversions.
func (e *Engine) Convert(v any, target string) (any, error) {
	return e.Registry.Convert(v, target)
}

// FindType classifies a value against the engine's registry.
func (e *Engine) FindType(v any) (string, error) {
	return e.Registry.FindType(v)
}

// From builds a callable on the default engine.
func From(args ...any) (*Callable, error) {
	return Default.From(args...)
}

// AddType registers a type on the default engine.
func AddType(t Type) error {
	return Default.AddType(t)
}

// AddConversion registers a conversion on the default engine.
func AddConversion(c Conversion) error {
	return Default.AddConversion(c)
}

// Ignore marks type names ignored on the default engine.
func Ignore(names ...string) {
	Default.Ignore(names...)
}

// Find returns the implementation bound to an exact canonical signature on
// a compiled callable. The signature may be a string or a []string of type
// names. No fuzzy or conversion-aware matching is performed.
func Find(fn any, sig any) (Impl, error) {
	return dispatch.Find(fn, sig)
}

// FastPathDefault reports the package-default fast-path width.
func FastPathDefault() int {
	return config.FastPathDefs
}
