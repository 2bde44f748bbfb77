package command

import (
	"context"
	"errors"

	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/internal/music/player"
	"github.com/hironha/nina/pkg/cmd"
)

// StopCommand stops playback and clears the queue without disconnecting.
type StopCommand struct{}

func (c *StopCommand) Name() string { return "stop" }
func (c *StopCommand) Description() string {
	return "Stop Nina if playing a track and clears all enqueued tracks"
}

func (c *StopCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := fromInvocation(inv)
	if !ok {
		return nil
	}

	sess, ok := connectedSession(mc, c.Name())
	if !ok {
		return nil
	}

	if err := sess.Stop(); errors.Is(err, player.ErrNothingPlaying) {
		return mc.reply(bot.Embed(mc.title(c.Name()), "Nothing is playing"))
	}
	return mc.reply(bot.Embed(mc.title(c.Name()), "Playback stopped and queue cleared"))
}
