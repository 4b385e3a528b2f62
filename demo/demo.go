// Package demo holds the example operation driven by "reprise demo". It is
// also the reference target for generated regression tests: a test file that
// imports this package and reprise can replay any capture of ImportantAction.
package demo

import (
	"errors"

	"reprise"
)

// Args is the argument pair for one invocation of ImportantAction.
type Args = [2]uint32

// ImportantAction is a minimal capturable operation: two fields of state
// and a failure mode that trips when the first argument is 3.
type ImportantAction struct {
	Var1 uint32 `json:"var_1" yaml:"var_1"`
	Var2 uint32 `json:"var_2" yaml:"var_2"`
}

// FullPath names the type as generated tests reference it.
func (a *ImportantAction) FullPath() string { return "demo.ImportantAction" }

// Description documents the operation's intent in generated tests.
func (a *ImportantAction) Description() string {
	return "Executes some very important action!"
}

// Clone returns an independent copy of the action's state.
func (a *ImportantAction) Clone() reprise.Executable[Args, struct{}] {
	cp := *a
	return &cp
}

// Execute performs the very important action. It fails when the first
// argument is 3.
func (a *ImportantAction) Execute(args Args) (struct{}, error) {
	if args[0] == 3 {
		return struct{}{}, errors.New("Whoopsie")
	}
	return struct{}{}, nil
}
