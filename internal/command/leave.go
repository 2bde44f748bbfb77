package command

import (
	"context"
	"fmt"
	"log"

	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/pkg/cmd"
)

// LeaveCommand disconnects the bot, clearing the queue and the session.
type LeaveCommand struct{}

func (c *LeaveCommand) Name() string { return "leave" }
func (c *LeaveCommand) Description() string {
	return "Make Nina leave the voice channel and clear the queue"
}

func (c *LeaveCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := fromInvocation(inv)
	if !ok {
		return nil
	}

	sess, ok := connectedSession(mc, c.Name())
	if !ok {
		return nil
	}

	channelID := sess.ChannelID()
	if err := mc.Sessions.Remove(mc.Message.GuildID); err != nil {
		log.Println("[ERR] Failed leaving voice channel:", err)
		return mc.reply(bot.ErrorEmbed(mc.title(c.Name()), "Failed leaving voice channel"))
	}

	return mc.reply(bot.Embed(mc.title(c.Name()),
		fmt.Sprintf("Left voice channel <#%s>", channelID)))
}
