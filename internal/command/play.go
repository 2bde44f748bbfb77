package command

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/internal/storage"
	"github.com/hironha/nina/pkg/cmd"
)

// PlayCommand resolves a URL, playlist URL, or search query and enqueues the
// result, joining the author's voice channel first when needed.
type PlayCommand struct{}

func (c *PlayCommand) Name() string { return "play" }
func (c *PlayCommand) Description() string {
	return "Play or enqueue a track. Must provide the track name or source URL"
}

func (c *PlayCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := fromInvocation(inv)
	if !ok {
		return nil
	}

	vs, ok := authorVoiceState(mc, c.Name())
	if !ok {
		return nil
	}

	if len(mc.Args) == 0 {
		return mc.reply(bot.ErrorEmbed(mc.title(c.Name()), "Missing music or URL argument"))
	}
	input := strings.Join(mc.Args, " ")

	sess := mc.Sessions.GetOrCreate(mc.Message.GuildID)
	if sess.Connected() && sess.ChannelID() != vs.ChannelID {
		return mc.reply(bot.ErrorEmbed(mc.title(c.Name()), "User not in the same voice channel"))
	}

	tracks, err := mc.Resolver.Resolve(ctx, input, mc.Message.Author.Username)
	if err != nil {
		log.Printf("[ERR] Failed resolving %q: %v", input, err)
		return mc.reply(bot.ErrorEmbed(mc.title(c.Name()), "Could not load a track for the given input"))
	}

	started, err := sess.Play(vs.ChannelID, tracks...)
	if err != nil {
		log.Println("[ERR] Failed joining voice channel to play music:", err)
		return mc.reply(bot.ErrorEmbed(mc.title(c.Name()),
			fmt.Sprintf("Could not join voice channel <#%s>", vs.ChannelID)))
	}

	if mc.Storage != nil {
		for _, t := range tracks {
			if err := mc.Storage.AddTrackRecord(mc.Message.GuildID, storage.TrackRecord{
				Title:       t.Title,
				URL:         t.URL,
				RequestedBy: t.RequestedBy,
				Datetime:    time.Now(),
			}); err != nil {
				log.Println("[WARN] Failed recording track history:", err)
			}
		}
	}

	switch {
	case len(tracks) > 1:
		return mc.reply(bot.Embed(mc.title(c.Name()),
			fmt.Sprintf("%d tracks added to the queue", len(tracks))))
	case started != nil:
		return mc.reply(bot.Embed(mc.title(c.Name()),
			fmt.Sprintf("Now playing **%s**", started.Title)))
	default:
		return mc.reply(bot.Embed(mc.title(c.Name()),
			fmt.Sprintf("Enqueued **%s**", tracks[0].Title)))
	}
}
