// Package cmd provides a transport-agnostic command core: a command has a
// name, a description, and Run(ctx, invocation). Registration and dispatch
// (Discord prefix messages, CLI, anything else) live in adapters that wrap
// this package.
package cmd

import "context"

// Invocation carries the minimal input any dispatcher can pass: positional
// arguments and an opaque payload. Adapters set Data to their own context
// type (e.g. a Discord session plus the triggering message).
type Invocation struct {
	Args []string
	Data interface{}
}

// Command is the universal contract. Transport-specific concerns such as
// permissions and reply formatting stay inside the command implementations
// or middleware.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Middleware wraps a command (logging, guild checks, metrics).
type Middleware func(Command) Command

// Apply applies middlewares in order; the last in the list is the outermost.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

// Wrapped wraps a command with a custom Run, delegating identity to the
// inner command. Used by middleware.
type Wrapped struct {
	Inner   Command
	RunFunc func(ctx context.Context, inv *Invocation) error
}

func (w *Wrapped) Name() string        { return w.Inner.Name() }
func (w *Wrapped) Description() string { return w.Inner.Description() }

func (w *Wrapped) Run(ctx context.Context, inv *Invocation) error {
	if w.RunFunc != nil {
		return w.RunFunc(ctx, inv)
	}
	return w.Inner.Run(ctx, inv)
}

// Wrap returns a command that runs run instead of c.Run.
func Wrap(c Command, run func(ctx context.Context, inv *Invocation) error) Command {
	return &Wrapped{Inner: c, RunFunc: run}
}
