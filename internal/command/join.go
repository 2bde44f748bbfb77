package command

import (
	"context"
	"fmt"

	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/pkg/cmd"
)

// JoinCommand connects the bot to the author's voice channel.
type JoinCommand struct{}

func (c *JoinCommand) Name() string { return "join" }
func (c *JoinCommand) Description() string {
	return "Call Nina to join your current voice channel"
}

func (c *JoinCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := fromInvocation(inv)
	if !ok {
		return nil
	}

	vs, ok := authorVoiceState(mc, c.Name())
	if !ok {
		return nil
	}

	sess := mc.Sessions.GetOrCreate(mc.Message.GuildID)
	if err := sess.Join(vs.ChannelID); err != nil {
		return mc.reply(bot.ErrorEmbed(mc.title(c.Name()),
			fmt.Sprintf("Could not join the voice channel <#%s>", vs.ChannelID)))
	}

	return mc.reply(bot.Embed(mc.title(c.Name()),
		fmt.Sprintf("Joined <#%s>", vs.ChannelID)))
}
