package command

import (
	"context"
	"fmt"

	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/pkg/cmd"
)

// NowCommand shows the currently playing track title.
type NowCommand struct{}

func (c *NowCommand) Name() string { return "now" }
func (c *NowCommand) Description() string {
	return "Show playing track title"
}

func (c *NowCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := fromInvocation(inv)
	if !ok {
		return nil
	}

	sess, ok := connectedSession(mc, c.Name())
	if !ok {
		return nil
	}

	current := sess.Now()
	if current == nil {
		return mc.reply(bot.Embed(mc.title(c.Name()), "Not currently playing a track"))
	}
	return mc.reply(bot.Embed(mc.title(c.Name()),
		fmt.Sprintf("Now playing **%s**", current.Title)))
}
