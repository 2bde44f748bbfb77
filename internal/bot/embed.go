package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hironha/nina/internal/version"
)

const avatarImgURL = "https://raw.githubusercontent.com/Hironha/rina/main/static/images/nina.jpg"

const (
	colorDefault = 0xE67E22 // orange
	colorError   = 0xE74C3C // red
)

// Embed builds the bot's standard reply embed.
func Embed(title, description string) *discordgo.MessageEmbed {
	return baseEmbed(title, description, colorDefault)
}

// ErrorEmbed builds the red variant used for failures and rejections.
func ErrorEmbed(title, description string) *discordgo.MessageEmbed {
	return baseEmbed(title, description, colorError)
}

// EmbedWithFields builds a standard embed with extra fields (used by !help).
func EmbedWithFields(title, description string, fields []*discordgo.MessageEmbedField) *discordgo.MessageEmbed {
	e := baseEmbed(title, description, colorDefault)
	e.Fields = fields
	return e
}

func baseEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    version.AppName,
			IconURL: avatarImgURL,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
