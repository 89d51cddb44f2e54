package tools

import (
	"errors"
	"fmt"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
)

// Kind classifies a tool failure.
type Kind string

const (
	KindTransport  Kind = "transport"
	KindMalformed  Kind = "malformed"
	KindConfig     Kind = "config"
	KindUnexpected Kind = "unexpected"
)

// Error is the failure half of a tool result. Fallback, when set, is readable
// text a caller may use in place of a result.
type Error struct {
	Tool     models.ToolID
	Kind     Kind
	Err      error
	Fallback string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Tool, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Degradable reports whether the failure can be turned into a textual result.
// Configuration errors never degrade.
func (e *Error) Degradable() bool {
	return e.Fallback != "" && e.Kind != KindConfig
}

func newError(tool models.ToolID, kind Kind, err error) *Error {
	return &Error{Tool: tool, Kind: kind, Err: err}
}

// KindOf returns the Kind of err, or KindUnexpected when err is not a tool error.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnexpected
}
