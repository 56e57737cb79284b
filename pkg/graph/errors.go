package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrProcessNotFound = errors.New("process graph not found")
	ErrNodeNotFound    = errors.New("node not found in graph")
	ErrSelfLoop        = errors.New("self-loop edges are not allowed")
)

// IntegrityError reports an edge that would violate graph integrity, such as
// referencing a node outside the graph's process_id namespace. It indicates a
// builder bug and is not recoverable by the caller.
type IntegrityError struct {
	Op        string // Operation that failed (e.g., "AddEdge")
	ProcessID string
	NodeID    uint64
	Cause     error
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	if e.NodeID != 0 {
		return fmt.Sprintf("%s in graph %q (node %d): %v", e.Op, e.ProcessID, e.NodeID, e.Cause)
	}
	return fmt.Sprintf("%s in graph %q: %v", e.Op, e.ProcessID, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *IntegrityError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *IntegrityError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
