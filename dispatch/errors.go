package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateDefinition  = errors.New("dispatch: definition already registered")
	ErrUnresolvedDependency = errors.New("dispatch: unresolved dependency")
	ErrUnknownDefinition    = errors.New("dispatch: unknown definition")
	ErrCyclicDefinition     = errors.New("dispatch: definitions extend each other")
)

// DuplicateDefinitionError reports a second registration under one name.
type DuplicateDefinitionError struct {
	Name string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("dispatch: definition %q already registered", e.Name)
}

func (e *DuplicateDefinitionError) Unwrap() error {
	return ErrDuplicateDefinition
}

// UnresolvedDependencyError reports a definition that names another
// definition, through extends or a nest target, that was never registered.
type UnresolvedDependencyError struct {
	Name       string // the dependent definition
	Dependency string // the missing one
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("dispatch: definition %q depends on undefined definition %q", e.Name, e.Dependency)
}

func (e *UnresolvedDependencyError) Unwrap() error {
	return ErrUnresolvedDependency
}

// CycleError reports an extends chain that loops back on itself.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "dispatch: extends cycle " + strings.Join(e.Path, " -> ")
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicDefinition
}
