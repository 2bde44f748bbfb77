package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/pkg/cmd"
)

// HelpCommand lists every registered command. Static text only; it never
// touches the playback engine.
type HelpCommand struct {
	Registry *cmd.Registry
}

func (c *HelpCommand) Name() string { return "help" }
func (c *HelpCommand) Description() string {
	return "Explains all available commands"
}

func (c *HelpCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := fromInvocation(inv)
	if !ok {
		return nil
	}

	commands := c.Registry.All()
	fields := make([]*discordgo.MessageEmbedField, 0, len(commands))
	for _, command := range commands {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  mc.Prefix + command.Name(),
			Value: command.Description(),
		})
	}

	return mc.reply(bot.EmbedWithFields(mc.title(c.Name()), "Available commands", fields))
}
