package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/example/warden/internal/config"
	"github.com/example/warden/internal/ports/secondary"
)

// Gateway implements the channel-surface ports over a Discord session.
type Gateway struct {
	session *discordgo.Session
	cfg     *config.Config
}

// NewGateway creates a new Gateway.
func NewGateway(session *discordgo.Session, cfg *config.Config) *Gateway {
	return &Gateway{session: session, cfg: cfg}
}

// CreateTicketChannel creates a private text channel visible to the owner
// and the support team.
func (g *Gateway) CreateTicketChannel(ctx context.Context, req secondary.CreateChannelRequest) (string, error) {
	memberAllow := int64(discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionReadMessageHistory)

	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   g.cfg.GuildID, // @everyone
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: int64(discordgo.PermissionViewChannel),
		},
		{
			ID:    req.OwnerID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: memberAllow,
		},
		{
			ID:    g.cfg.TeamRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: memberAllow | int64(discordgo.PermissionManageMessages),
		},
	}

	channel, err := g.session.GuildChannelCreateComplex(g.cfg.GuildID, discordgo.GuildChannelCreateData{
		Name:                 req.Name,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             g.cfg.TicketParentID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return "", fmt.Errorf("channel create: %w", err)
	}
	return channel.ID, nil
}

// DestroyChannel deletes a channel.
func (g *Gateway) DestroyChannel(ctx context.Context, channelID string) error {
	if _, err := g.session.ChannelDelete(channelID); err != nil {
		return fmt.Errorf("channel delete: %w", err)
	}
	return nil
}

// ReorderChannel moves a channel to the given visual position.
func (g *Gateway) ReorderChannel(ctx context.Context, channelID string, rank int) error {
	if _, err := g.session.ChannelEditComplex(channelID, &discordgo.ChannelEdit{
		Position: &rank,
	}); err != nil {
		return fmt.Errorf("channel reorder: %w", err)
	}
	return nil
}

// GrantAccess adds a user to a channel's permission overlay.
func (g *Gateway) GrantAccess(ctx context.Context, channelID, userID string) error {
	allow := int64(discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionReadMessageHistory)
	if err := g.session.ChannelPermissionSet(channelID, userID,
		discordgo.PermissionOverwriteTypeMember, allow, 0); err != nil {
		return fmt.Errorf("grant access: %w", err)
	}
	return nil
}

// RevokeAccess removes a user from a channel's permission overlay.
func (g *Gateway) RevokeAccess(ctx context.Context, channelID, userID string) error {
	if err := g.session.ChannelPermissionDelete(channelID, userID); err != nil {
		return fmt.Errorf("revoke access: %w", err)
	}
	return nil
}

// HasTeamRole reports whether the user holds the support-team role.
func (g *Gateway) HasTeamRole(ctx context.Context, userID string) (bool, error) {
	member, err := g.session.GuildMember(g.cfg.GuildID, userID)
	if err != nil {
		return false, fmt.Errorf("member lookup: %w", err)
	}
	for _, role := range member.Roles {
		if role == g.cfg.TeamRoleID {
			return true, nil
		}
	}
	return false, nil
}

// Ensure Gateway implements the platform ports
var (
	_ secondary.ChannelGateway = (*Gateway)(nil)
	_ secondary.RoleChecker    = (*Gateway)(nil)
)
