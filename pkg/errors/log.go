package errors

import (
	"github.com/go-drift/effectview/pkg/logging"
)

// LogHandler is an ErrorHandler that forwards errors to the shared logger.
type LogHandler struct {
	// Verbose includes stack traces in the logged attributes.
	Verbose bool
}

// HandleError logs an EffectError at error level.
func (h *LogHandler) HandleError(err *EffectError) {
	if err == nil {
		return
	}
	args := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if err.Mode != "" {
		args = append(args, "mode", err.Mode)
	}
	if h.Verbose && err.StackTrace != "" {
		args = append(args, "stack", err.StackTrace)
	}
	logging.Logger().Error("effect error", args...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	args := []any{"value", err.Value}
	if err.Op != "" {
		args = append(args, "op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		args = append(args, "stack", err.StackTrace)
	}
	logging.Logger().Error("effect panic", args...)
}
