// Package command implements the bot's prefix commands. Each command is a
// pkg/cmd.Command; the Discord dispatcher passes a *Context as the
// invocation payload.
package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/internal/music/player"
	"github.com/hironha/nina/internal/storage"
	"github.com/hironha/nina/pkg/cmd"
)

// TrackResolver turns user input into playable tracks.
type TrackResolver interface {
	Resolve(ctx context.Context, input, requestedBy string) ([]*player.Track, error)
}

// Context carries everything a prefix command needs for one invocation.
type Context struct {
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	Args    []string
	Prefix  string

	Sessions *player.Registry
	Resolver TrackResolver
	Storage  *storage.Storage
	Voice    bot.VoiceStateFinder
}

// fromInvocation extracts the command context from an invocation payload.
func fromInvocation(inv *cmd.Invocation) (*Context, bool) {
	mc, ok := inv.Data.(*Context)
	return mc, ok
}

// reply sends an embed to the channel the command came from.
func (c *Context) reply(embed *discordgo.MessageEmbed) error {
	return bot.MessageEmbed(c.Session, c.Message.ChannelID, embed)
}

// title renders the command title shown in reply embeds, e.g. "!play".
func (c *Context) title(name string) string {
	return c.Prefix + name
}
