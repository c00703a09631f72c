// Package errors provides structured error reporting for the effect pipeline.
//
// The blur and shape pipelines never return failures to their callers; they
// degrade to a visually reasonable result instead. The failure itself is
// reported here so hosts can still observe it.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid configuration value that was defaulted.
	KindConfig
	// KindResource indicates an unavailable capability or failed allocation.
	KindResource
	// KindDecode indicates a drawable could not be turned into a bitmap.
	KindDecode
	// KindRender indicates a drawing failure.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindResource:
		return "resource"
	case KindDecode:
		return "decode"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// EffectError represents a structured error raised inside an effect pipeline.
type EffectError struct {
	// Op is the operation that failed (e.g., "blur.DrawerManager.Blur").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Mode is the effect mode active when the error happened, if any.
	Mode string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *EffectError) Error() string {
	if e.Mode != "" {
		return fmt.Sprintf("%s [%s] mode=%s: %v", e.Op, e.Kind, e.Mode, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *EffectError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "blur.Registry.Run").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the effect pipelines.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *EffectError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
