package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoCommand struct {
	name string
	ran  *[]string
}

func (c *echoCommand) Name() string        { return c.name }
func (c *echoCommand) Description() string { return "echo " + c.name }

func (c *echoCommand) Run(ctx context.Context, inv *Invocation) error {
	*c.ran = append(*c.ran, c.name)
	return nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	var ran []string

	r.Register(&echoCommand{name: "play", ran: &ran})
	r.Register(&echoCommand{name: "stop", ran: &ran})

	require.NotNil(t, r.Get("play"))
	assert.Nil(t, r.Get("missing"))

	names := make([]string, 0)
	for _, c := range r.All() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"play", "stop"}, names)
}

func TestApplyOrdersMiddleware(t *testing.T) {
	var ran []string
	base := &echoCommand{name: "base", ran: &ran}

	tag := func(label string) Middleware {
		return func(c Command) Command {
			return Wrap(c, func(ctx context.Context, inv *Invocation) error {
				ran = append(ran, label)
				return c.Run(ctx, inv)
			})
		}
	}

	// the last middleware in the list is the outermost
	wrapped := Apply(base, tag("inner"), tag("outer"))
	assert.Equal(t, "base", wrapped.Name())

	require.NoError(t, wrapped.Run(context.Background(), &Invocation{}))
	assert.Equal(t, []string{"outer", "inner", "base"}, ran)
}
