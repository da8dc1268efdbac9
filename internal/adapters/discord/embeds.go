// Package discord contains the Discord adapter: the driven implementations
// of the platform ports (channel gateway, applicant notifier, review poster)
// and the driving event handler that translates gateway events into
// primary-port calls. All message formatting lives here; the core only says
// what state to render.
package discord

import (
	"github.com/bwmarrin/discordgo"
)

const (
	themeColor = 0xf69f7e
	errorColor = 0xff6b6b

	footerIconURL     = "https://i.imgur.com/K0Lw3oU.png"
	supportFooter     = "Mineset  •  Support"
	applicationFooter = "Mineset  •  Applications"

	ticketPanelImageURL      = "https://i.imgur.com/E3UH40u.png"
	applicationPanelImageURL = "https://i.imgur.com/V4MY9qO.png"
)

func supportEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: themeColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    supportFooter,
			IconURL: footerIconURL,
		},
	}
}

func applicationEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: themeColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    applicationFooter,
			IconURL: footerIconURL,
		},
	}
}

// ephemeralText replies to an interaction with an ephemeral text message.
func ephemeralText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// interactionUser resolves the acting user for guild and DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// isAdmin reports whether the interaction member holds Administrator.
func isAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}
