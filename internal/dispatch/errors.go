package dispatch

import (
	"fmt"
	"strings"
)

// NoSignaturesError indicates an empty signatures map, or one whose every
// signature was discarded during normalization.
type NoSignaturesError struct {
	Name string
}

func (e *NoSignaturesError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("no signatures provided for function %q", e.Name)
	}
	return "no signatures provided"
}

// DuplicateSignatureError indicates two different implementations bound to
// the same canonical signature. Binding the same implementation twice is
// not an error.
type DuplicateSignatureError struct {
	Signature string
}

func (e *DuplicateSignatureError) Error() string {
	return fmt.Sprintf("signature %q is defined twice", e.Signature)
}

// NotTypedError indicates a value expected to be a compiled callable was
// something else.
type NotTypedError struct {
	Value any
}

func (e *NotTypedError) Error() string {
	return fmt.Sprintf("value is not a typed function (%T)", e.Value)
}

// NameMismatchError indicates merged callables disagree on their name.
type NameMismatchError struct {
	Want string
	Got  string
}

func (e *NameMismatchError) Error() string {
	return fmt.Sprintf("function names do not match (expected %q, got %q)", e.Want, e.Got)
}

// NotFoundError indicates the finder had no implementation under the
// requested signature.
type NotFoundError struct {
	Fn        string
	Signature string
}

func (e *NotFoundError) Error() string {
	if e.Fn != "" {
		return fmt.Sprintf("signature %q not found in function %q", e.Signature, e.Fn)
	}
	return fmt.Sprintf("signature %q not found", e.Signature)
}

// Category classifies a call-time dispatch failure.
type Category string

const (
	CategoryWrongType   Category = "wrongType"
	CategoryTooFewArgs  Category = "tooFewArgs"
	CategoryTooManyArgs Category = "tooManyArgs"
	CategoryMismatch    Category = "mismatch"
)

// CallError is raised when no definition matches a call. The populated
// fields depend on the category:
//
//	wrongType    Index, ActualType, ExpectedTypes
//	tooFewArgs   Index, ExpectedTypes
//	tooManyArgs  ActualLength, ExpectedLength
//	mismatch     ActualTypes
//
// It is built, and returned to the caller, before any user implementation
// runs.
type CallError struct {
	Category       Category
	Fn             string
	Index          int
	ActualType     string
	ExpectedTypes  []string
	ActualTypes    []string
	ActualLength   int
	ExpectedLength int
}

func (e *CallError) Error() string {
	name := e.Fn
	if name == "" {
		name = "unnamed"
	}
	switch e.Category {
	case CategoryWrongType:
		return fmt.Sprintf(
			"unexpected type of argument in function %s (expected: %s, actual: %s, index: %d)",
			name, strings.Join(e.ExpectedTypes, " or "), e.ActualType, e.Index)
	case CategoryTooFewArgs:
		return fmt.Sprintf(
			"too few arguments in function %s (expected: %s, index: %d)",
			name, strings.Join(e.ExpectedTypes, " or "), e.Index)
	case CategoryTooManyArgs:
		return fmt.Sprintf(
			"too many arguments in function %s (expected: %d, actual: %d)",
			name, e.ExpectedLength, e.ActualLength)
	default:
		return fmt.Sprintf(
			"arguments of type (%s) do not match any of the defined signatures of function %s",
			strings.Join(e.ActualTypes, ", "), name)
	}
}
