package command

import (
	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/internal/music/player"
)

// authorVoiceState returns the command author's voice state, replying with
// the standard rejection when the author is not in a voice channel.
func authorVoiceState(mc *Context, name string) (*bot.VoiceState, bool) {
	vs, err := mc.Voice.FindUserVoiceState(mc.Message.GuildID, mc.Message.Author.ID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		mc.reply(bot.ErrorEmbed(mc.title(name), "User not in a voice channel"))
		return nil, false
	}
	return vs, true
}

// connectedSession returns the guild's connected session, replying with the
// standard rejections when the bot is not in voice or the author is in a
// different channel.
func connectedSession(mc *Context, name string) (*player.Session, bool) {
	vs, ok := authorVoiceState(mc, name)
	if !ok {
		return nil, false
	}

	sess, ok := mc.Sessions.Get(mc.Message.GuildID)
	if !ok || !sess.Connected() {
		mc.reply(bot.ErrorEmbed(mc.title(name), "I'm not in a voice channel"))
		return nil, false
	}
	if sess.ChannelID() != vs.ChannelID {
		mc.reply(bot.ErrorEmbed(mc.title(name), "User not in the same voice channel"))
		return nil, false
	}
	return sess, true
}
