package domain

import "errors"

// ErrInvalidContainer is returned when an insert target or active-container
// reference does not resolve to an existing Repeat node. The reference is
// rejected rather than silently redirected to the root.
var ErrInvalidContainer = errors.New("container does not resolve to a repeat block")

// ErrRunInProgress is returned by Start while a run is active. Non-fatal;
// callers typically surface it by disabling the start control.
var ErrRunInProgress = errors.New("a run is already in progress")

// ErrEmptyProgram is returned by Start when there is nothing to execute.
var ErrEmptyProgram = errors.New("program is empty")

// ErrNotFound is returned by lookups that need to distinguish a missing node.
// Edit operations treat missing ids as silent no-ops instead.
var ErrNotFound = errors.New("command not found")
