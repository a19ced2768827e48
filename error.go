package dynacfg

import (
	"errors"

	"github.com/dynacfg/dynacfg/internal/cfglang"
)

// ErrorState mirrors the interpreter's sticky error taxonomy
// (spec.md S7) at the host boundary.
type ErrorState = cfglang.ErrorState

const (
	ErrNone     = cfglang.ErrNone
	ErrInvalid  = cfglang.ErrInvalid
	ErrOverflow = cfglang.ErrOverflow
	ErrMemory   = cfglang.ErrMemory
)

// Pos is a source position, reported alongside a sticky error.
type Pos = cfglang.Pos

// Error is returned by Config.Load/LoadInternal when a parse left the
// instance in a sticky error state (SPEC_FULL.md S7).
type Error struct {
	State ErrorState
	Pos   Pos
}

func (e *Error) Error() string {
	inner := &cfglang.Error{State: e.State, Pos: e.Pos}
	return inner.Error()
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	var ce *cfglang.Error
	if errors.As(err, &ce) {
		return &Error{State: ce.State, Pos: ce.Pos}
	}
	return err
}
