package discord

import (
	"io"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Event carries one command invocation: the session, the triggering
// message, and the parsed arguments after the command phrase.
type Event struct {
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	Args    []string

	logger *slog.Logger
}

// AuthorTag returns the sender's identity tag.
func (e *Event) AuthorTag() string {
	return UserTag(e.Message.Author)
}

// IsDM reports whether the message was sent in a direct message channel.
func (e *Event) IsDM() bool {
	return e.Message.GuildID == ""
}

// ChannelName returns the "#name" form of the originating channel, or an
// empty string for direct messages.
func (e *Event) ChannelName() string {
	if e.IsDM() {
		return ""
	}
	channel, err := e.Session.State.Channel(e.Message.ChannelID)
	if err != nil {
		channel, err = e.Session.Channel(e.Message.ChannelID)
		if err != nil {
			e.logger.Warn("Failed to resolve channel", "channel_id", e.Message.ChannelID, "error", err)
			return ""
		}
	}
	return "#" + channel.Name
}

// ArgsFrom joins the arguments starting at index i with spaces, for
// trailing multi-word values like team names and role names.
func (e *Event) ArgsFrom(i int) string {
	if i >= len(e.Args) {
		return ""
	}
	return strings.Join(e.Args[i:], " ")
}

// AttachmentURLs returns the URLs of the message attachments.
func (e *Event) AttachmentURLs() []string {
	urls := make([]string, 0, len(e.Message.Attachments))
	for _, a := range e.Message.Attachments {
		urls = append(urls, a.URL)
	}
	return urls
}

// Reply sends text to the channel the command came from.
func (e *Event) Reply(text string) {
	if _, err := e.Session.ChannelMessageSend(e.Message.ChannelID, text); err != nil {
		e.logger.Error("Failed to send reply", "channel_id", e.Message.ChannelID, "error", err)
	}
}

// ReplyEmbed sends an embed to the channel the command came from.
func (e *Event) ReplyEmbed(embed *discordgo.MessageEmbed) {
	if _, err := e.Session.ChannelMessageSendEmbed(e.Message.ChannelID, embed); err != nil {
		e.logger.Error("Failed to send embed", "channel_id", e.Message.ChannelID, "error", err)
	}
}

// DM sends text to the command author in a direct message.
func (e *Event) DM(text string) {
	channel, err := e.Session.UserChannelCreate(e.Message.Author.ID)
	if err != nil {
		e.logger.Error("Failed to open DM channel", "user", e.AuthorTag(), "error", err)
		return
	}
	if _, err := e.Session.ChannelMessageSend(channel.ID, text); err != nil {
		e.logger.Error("Failed to send DM", "user", e.AuthorTag(), "error", err)
	}
}

// DMEmbed sends an embed to the command author in a direct message.
func (e *Event) DMEmbed(embed *discordgo.MessageEmbed) {
	channel, err := e.Session.UserChannelCreate(e.Message.Author.ID)
	if err != nil {
		e.logger.Error("Failed to open DM channel", "user", e.AuthorTag(), "error", err)
		return
	}
	if _, err := e.Session.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		e.logger.Error("Failed to send DM embed", "user", e.AuthorTag(), "error", err)
	}
}

// DMFile sends a file to the command author in a direct message.
func (e *Event) DMFile(name string, reader io.Reader) {
	channel, err := e.Session.UserChannelCreate(e.Message.Author.ID)
	if err != nil {
		e.logger.Error("Failed to open DM channel", "user", e.AuthorTag(), "error", err)
		return
	}
	if _, err := e.Session.ChannelFileSend(channel.ID, name, reader); err != nil {
		e.logger.Error("Failed to send file", "user", e.AuthorTag(), "file", name, "error", err)
	}
}
