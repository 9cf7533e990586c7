package aevum

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned by NewEngine when Init has not run.
	ErrNotInitialized = errors.New("aevum: engine not initialized; call Init at process start")
	// ErrReleased is returned when registering on a released MountHandle.
	ErrReleased = errors.New("aevum: mount handle already released")
	// ErrTargetActive is wrapped by ConflictError.
	ErrTargetActive = errors.New("aevum: target already registered")
	// ErrInvalidRange reports a Range outside [0,1] or with Start >= End.
	ErrInvalidRange = errors.New("aevum: invalid range")
	// ErrInvalidThreshold reports a visibility threshold outside (0,1].
	ErrInvalidThreshold = errors.New("aevum: visibility threshold must be in (0,1]")
)

// ConflictError reports an attempt to register a node that is already active
// in another scrub timeline or reveal group of the same kind. Callers decide
// whether to ignore it or dispose the owner and retry.
type ConflictError struct {
	Node *Node
	Kind ClaimKind
}

func (e *ConflictError) Error() string {
	name := "<nil>"
	if e.Node != nil {
		name = e.Node.Name
	}
	return fmt.Sprintf("aevum: node %q already registered in an active %s", name, e.Kind)
}

func (e *ConflictError) Unwrap() error { return ErrTargetActive }
