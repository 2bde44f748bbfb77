package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// onVoiceStateUpdate leaves the voice channel automatically once the bot is
// the only member left in it.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, vsu *discordgo.VoiceStateUpdate) {
	// only a user leaving (or moving out of) a channel can empty it
	if vsu.BeforeUpdate == nil || vsu.BeforeUpdate.ChannelID == "" {
		return
	}
	if vsu.ChannelID == vsu.BeforeUpdate.ChannelID {
		return
	}
	if vsu.UserID == s.State.User.ID {
		return
	}

	leftChannel := vsu.BeforeUpdate.ChannelID
	sess, ok := b.sessions.Get(vsu.GuildID)
	if !ok || sess.ChannelID() != leftChannel {
		return
	}

	guild, err := s.State.Guild(vsu.GuildID)
	if err != nil {
		log.Println("[ERR] Failed getting guild state:", err)
		return
	}

	remaining := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == leftChannel && vs.UserID != s.State.User.ID {
			remaining++
		}
	}
	if remaining > 0 {
		log.Printf("[INFO] Remaining %d member(s) connected to voice channel %s", remaining, leftChannel)
		return
	}

	log.Printf("[INFO] Voice channel %s is empty, leaving guild %s", leftChannel, vsu.GuildID)
	if err := b.sessions.Remove(vsu.GuildID); err != nil {
		log.Println("[ERR] Failed leaving empty voice channel automatically:", err)
	}
}
