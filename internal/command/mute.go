package command

import (
	"context"

	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/pkg/cmd"
)

// MuteCommand silences audio emission without touching the queue or the
// current track; the stream keeps running silently.
type MuteCommand struct{}

func (c *MuteCommand) Name() string { return "mute" }
func (c *MuteCommand) Description() string {
	return "Mutes Nina. Beware, if playing a track, no sound will come out. See !unmute to unmute Nina"
}

func (c *MuteCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := fromInvocation(inv)
	if !ok {
		return nil
	}

	sess, ok := connectedSession(mc, c.Name())
	if !ok {
		return nil
	}

	if !sess.Mute() {
		return mc.reply(bot.Embed(mc.title(c.Name()),
			"I'm already muted. Use `"+mc.Prefix+"unmute` to unmute me"))
	}
	return mc.reply(bot.Embed(mc.title(c.Name()),
		"I'm now muted. Use `"+mc.Prefix+"unmute` to unmute me"))
}

// UnmuteCommand restores audio emission.
type UnmuteCommand struct{}

func (c *UnmuteCommand) Name() string { return "unmute" }
func (c *UnmuteCommand) Description() string {
	return "Unmute Nina. See !mute to mute Nina"
}

func (c *UnmuteCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := fromInvocation(inv)
	if !ok {
		return nil
	}

	sess, ok := connectedSession(mc, c.Name())
	if !ok {
		return nil
	}

	sess.Unmute()
	return mc.reply(bot.Embed(mc.title(c.Name()),
		"I'm now unmuted. Use `"+mc.Prefix+"mute` to mute me"))
}
