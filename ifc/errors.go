package ifc

import (
	"errors"
	"fmt"
)

// ErrDanglingReference is wrapped by StructureError when an instance points
// at an id that is not defined in the DATA section.
var ErrDanglingReference = errors.New("dangling entity reference")

// ParseError reports malformed STEP syntax.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ifc: line %d: %s", e.Line, e.Msg)
}

// StructureError reports an instance whose arguments do not have the shape
// its entity type requires.
type StructureError struct {
	EntityID int
	Msg      string
	Err      error
}

func (e *StructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ifc: #%d: %s: %v", e.EntityID, e.Msg, e.Err)
	}
	return fmt.Sprintf("ifc: #%d: %s", e.EntityID, e.Msg)
}

func (e *StructureError) Unwrap() error { return e.Err }
