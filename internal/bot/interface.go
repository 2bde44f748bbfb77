package bot

// VoiceState holds minimal voice channel state for a user.
type VoiceState struct {
	ChannelID string
	UserID    string
}

// VoiceStateFinder locates the voice channel a user is connected to.
type VoiceStateFinder interface {
	FindUserVoiceState(guildID, userID string) (*VoiceState, error)
}
