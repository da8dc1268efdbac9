package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/example/warden/internal/config"
	coreapp "github.com/example/warden/internal/core/application"
	coresub "github.com/example/warden/internal/core/submission"
	coreticket "github.com/example/warden/internal/core/ticket"
	"github.com/example/warden/internal/ports/primary"
)

// Ticket-flow component identifiers. Close confirmations carry the
// confirmation token so overlapping close requests cannot cross wires.
const (
	customIDCloseTicket        = "close-ticket"
	customIDClaimTicket        = "claim-ticket"
	customIDTicketSettings     = "ticket-settings"
	customIDTicketSettingsMenu = "ticket-settings-menu"
	customIDStartApplication   = "start-application"

	customIDConfirmClosePrefix = "confirm-close:"
	customIDCancelClosePrefix  = "cancel-close:"
	customIDTicketPrefix       = "ticket-"
	customIDPriorityPrefix     = "priority-"
)

// Handler translates normalized Discord events (buttons, menus, messages,
// slash commands) into primary-port calls and renders the replies.
type Handler struct {
	tickets     primary.TicketService
	apps        primary.ApplicationService
	submissions primary.SubmissionPipeline
	cfg         *config.Config
}

// NewHandler creates a new Handler over the given services.
func NewHandler(tickets primary.TicketService, apps primary.ApplicationService, submissions primary.SubmissionPipeline, cfg *config.Config) *Handler {
	return &Handler{tickets: tickets, apps: apps, submissions: submissions, cfg: cfg}
}

// Register attaches the handler to a Discord session.
func (h *Handler) Register(s *discordgo.Session) {
	s.AddHandler(h.onInteractionCreate)
	s.AddHandler(h.onMessageCreate)
}

// RegisterCommands overwrites the bot's slash commands. Call after Open.
func (h *Handler) RegisterCommands(s *discordgo.Session) error {
	adminOnly := int64(discordgo.PermissionAdministrator)
	commands := []*discordgo.ApplicationCommand{
		{
			Name:                     "ticket-setup",
			Description:              "Setup the ticket panel in this channel",
			DefaultMemberPermissions: &adminOnly,
		},
		{
			Name:        "ticket-add",
			Description: "Add a user to the current ticket",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to add to the ticket",
					Required:    true,
				},
			},
		},
		{
			Name:        "ticket-remove",
			Description: "Remove a user from the current ticket",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to remove from the ticket",
					Required:    true,
				},
			},
		},
		{
			Name:        "ticket-close",
			Description: "Close the current ticket",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for closing the ticket",
					Required:    false,
				},
			},
		},
		{
			Name:        "ticket-transcript",
			Description: "Generate a transcript of the current ticket",
		},
		{
			Name:                     "application-setup",
			Description:              "Setup the application panel in this channel",
			DefaultMemberPermissions: &adminOnly,
		},
	}
	_, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, "", commands)
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	return nil
}

func (h *Handler) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		if data.ComponentType == discordgo.SelectMenuComponent {
			h.handleMenu(s, i, data)
		} else {
			h.handleButton(s, i, data.CustomID)
		}
	}
}

// onMessageCreate feeds applicant direct messages into the session state
// machine. Guild messages and bot messages are not session input.
func (h *Handler) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID != "" {
		return
	}
	if !h.apps.HasSession(m.Author.ID) {
		return
	}

	attachments := make([]string, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		attachments = append(attachments, a.URL)
	}

	_ = h.apps.HandleMessage(context.Background(), primary.InboundMessage{
		UserID:      m.Author.ID,
		Text:        m.Content,
		Attachments: attachments,
	})
}

// ---------------------------------------------------------------------------
// Slash commands
// ---------------------------------------------------------------------------

func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "ticket-setup":
		h.cmdTicketSetup(s, i)
	case "ticket-add":
		h.cmdTicketParticipant(s, i, data, true)
	case "ticket-remove":
		h.cmdTicketParticipant(s, i, data, false)
	case "ticket-close":
		h.cmdTicketClose(s, i, data)
	case "ticket-transcript":
		h.cmdTicketTranscript(s, i)
	case "application-setup":
		h.cmdApplicationSetup(s, i)
	}
}

func (h *Handler) cmdTicketSetup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		_ = ephemeralText(s, i, "❌ You need Administrator permissions to use this command.")
		return
	}

	imageEmbed := &discordgo.MessageEmbed{
		Color: themeColor,
		Image: &discordgo.MessageEmbedImage{URL: ticketPanelImageURL},
	}
	embed := supportEmbed()
	embed.Title = "SUPPORT TICKETS"
	embed.Description = "Need assistance? Select the appropriate category below to open a support ticket."
	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name: "Categories:",
			Value: "`General Help` - Questions and general assistance\n" +
				"`Bug Report` - Technical issues and bugs\n" +
				"`Player Report` - Report rule violations\n" +
				"`Server Help` - Server-related problems",
		},
	}

	row := discordgo.ActionsRow{}
	for _, c := range coreticket.Categories() {
		row.Components = append(row.Components, discordgo.Button{
			Label:    c.Title(),
			Style:    discordgo.SecondaryButton,
			CustomID: customIDTicketPrefix + string(c),
		})
	}

	if _, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{imageEmbed, embed},
		Components: []discordgo.MessageComponent{row},
	}); err != nil {
		_ = ephemeralText(s, i, "❌ Failed to set up the ticket panel.")
		return
	}
	_ = ephemeralText(s, i, "Ticket panel has been set up successfully.")
}

func (h *Handler) cmdTicketParticipant(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData, add bool) {
	user := data.Options[0].UserValue(s)
	req := primary.ParticipantRequest{
		ChannelID: i.ChannelID,
		UserID:    user.ID,
		ActorID:   interactionUser(i).ID,
	}

	var err error
	var verb, failure string
	if add {
		err = h.tickets.AddParticipant(context.Background(), req)
		verb, failure = "added to", "❌ Failed to add user."
	} else {
		err = h.tickets.RemoveParticipant(context.Background(), req)
		verb, failure = "removed from", "❌ Failed to remove user."
	}

	switch {
	case errors.Is(err, coreticket.ErrNotTicket):
		_ = ephemeralText(s, i, "❌ This command can only be used in ticket channels.")
	case err != nil:
		_ = ephemeralText(s, i, failure)
	default:
		embed := supportEmbed()
		embed.Description = fmt.Sprintf("<@%s> has been %s the ticket.", user.ID, verb)
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{embed},
			},
		})
	}
}

func (h *Handler) cmdTicketClose(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	reason := ""
	if len(data.Options) > 0 {
		reason = data.Options[0].StringValue()
	}

	confirmation, err := h.tickets.RequestClose(context.Background(), primary.CloseRequest{
		ChannelID:   i.ChannelID,
		RequesterID: interactionUser(i).ID,
		Reason:      reason,
	})
	if errors.Is(err, coreticket.ErrNotTicket) {
		_ = ephemeralText(s, i, "❌ This command can only be used in ticket channels.")
		return
	}
	if err != nil {
		_ = ephemeralText(s, i, "❌ Failed to request ticket closure.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Confirm Closure",
		Description: fmt.Sprintf("Are you sure you want to close this ticket?\n\n**Reason:** %s", confirmation.Reason),
		Color:       errorColor,
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{closeConfirmRow(confirmation.Token, "Confirm Close")},
		},
	})
}

func (h *Handler) cmdTicketTranscript(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ticket, err := h.tickets.GetTicket(context.Background(), i.ChannelID)
	if err != nil || ticket == nil {
		_ = ephemeralText(s, i, "❌ This command can only be used in ticket channels.")
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	messages, err := s.ChannelMessages(i.ChannelID, 100, "", "", "")
	if err != nil {
		content := "❌ Failed to generate transcript."
		_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return
	}

	// ChannelMessages returns newest first; render oldest first.
	var b strings.Builder
	for idx := len(messages) - 1; idx >= 0; idx-- {
		m := messages[idx]
		fmt.Fprintf(&b, "[%s] %s: %s\n",
			m.Timestamp.Format("2006-01-02 15:04:05"), m.Author.Username, m.Content)
	}

	content := "Ticket transcript generated:"
	name := fmt.Sprintf("transcript-%s-%s.txt", ticket.Category, ticket.Number)
	_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
		Files: []*discordgo.File{
			{
				Name:        name,
				ContentType: "text/plain",
				Reader:      strings.NewReader(b.String()),
			},
		},
	})
}

func (h *Handler) cmdApplicationSetup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		_ = ephemeralText(s, i, "❌ You need Administrator permissions to use this command.")
		return
	}

	imageEmbed := &discordgo.MessageEmbed{
		Color: themeColor,
		Image: &discordgo.MessageEmbedImage{URL: applicationPanelImageURL},
	}
	embed := applicationEmbed()
	embed.Title = "APPLICATIONS"
	embed.Description = "We are currently looking for experienced **builders** to join our team at Mineset."
	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name: "Requirements:",
			Value: "`Age` -  14+\n`Experience` - Must have past builds to show\n" +
				"`Knowledge` - Must be familiar with Axiom",
		},
		{
			Name:  "Apply:",
			Value: "To apply, press the button below.",
		},
	}

	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Apply Now",
				Style:    discordgo.SecondaryButton,
				CustomID: customIDStartApplication,
			},
		},
	}

	if _, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{imageEmbed, embed},
		Components: []discordgo.MessageComponent{row},
	}); err != nil {
		_ = ephemeralText(s, i, "❌ Failed to set up the application panel.")
		return
	}
	_ = ephemeralText(s, i, "Application panel has been set up successfully.")
}

// ---------------------------------------------------------------------------
// Buttons
// ---------------------------------------------------------------------------

func (h *Handler) handleButton(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	switch {
	case customID == customIDCloseTicket:
		h.buttonCloseTicket(s, i)
	case strings.HasPrefix(customID, customIDConfirmClosePrefix):
		h.buttonConfirmClose(s, i, strings.TrimPrefix(customID, customIDConfirmClosePrefix))
	case strings.HasPrefix(customID, customIDCancelClosePrefix):
		h.buttonCancelClose(s, i, strings.TrimPrefix(customID, customIDCancelClosePrefix))
	case customID == customIDClaimTicket:
		h.buttonClaim(s, i)
	case customID == customIDTicketSettings:
		h.buttonSettings(s, i)
	case strings.HasPrefix(customID, customIDPriorityPrefix):
		h.buttonPriority(s, i, strings.TrimPrefix(customID, customIDPriorityPrefix))
	case customID == customIDStartApplication:
		h.buttonStartApplication(s, i)
	case customID == customIDSubmitApplication:
		h.buttonSubmitApplication(s, i)
	case customID == customIDEditApplication:
		h.buttonEditApplication(s, i)
	case customID == customIDCancelApplication:
		h.buttonCancelApplication(s, i)
	default:
		if outcome, applicantID, ok := coresub.ParseDecisionActionID(customID); ok {
			h.buttonDecision(s, i, outcome, applicantID)
			return
		}
		if strings.HasPrefix(customID, customIDTicketPrefix) {
			h.buttonCreateTicket(s, i, strings.TrimPrefix(customID, customIDTicketPrefix))
		}
	}
}

func (h *Handler) buttonDecision(s *discordgo.Session, i *discordgo.InteractionCreate, outcome coresub.Outcome, applicantID string) {
	moderator := interactionUser(i)
	if err := h.submissions.RecordDecision(context.Background(), primary.DecisionRequest{
		Outcome:     string(outcome),
		ApplicantID: applicantID,
		ModeratorID: moderator.ID,
	}); err != nil {
		_ = ephemeralText(s, i, "❌ Failed to record the decision.")
		return
	}

	// Strip the action row and stamp the decision on the review post.
	embeds := i.Message.Embeds
	if len(embeds) > 0 {
		embeds[0].Fields = append(embeds[0].Fields, &discordgo.MessageEmbedField{
			Name:  "Decision",
			Value: fmt.Sprintf("**%s** by <@%s>", outcome.Label(), moderator.ID),
		})
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: []discordgo.MessageComponent{},
		},
	})

	h.notifyDecision(s, outcome, applicantID)
}

// notifyDecision tells the applicant the outcome over DM. Delivery failures
// are swallowed: the decision is already recorded.
func (h *Handler) notifyDecision(s *discordgo.Session, outcome coresub.Outcome, applicantID string) {
	var title, description string
	color := themeColor
	switch outcome {
	case coresub.OutcomeAccept:
		title = "Application Accepted"
		description = "Congratulations! Your builder application has been **accepted**. A team member will reach out with next steps."
	case coresub.OutcomeDeny:
		title = "Application Denied"
		description = "Thank you for applying. Unfortunately your builder application has been **denied** at this time. You are welcome to apply again in the future."
		color = errorColor
	case coresub.OutcomeInterview:
		title = "Interview Requested"
		description = "Your builder application looks promising! The team would like to **schedule an interview** with you. A team member will contact you shortly."
	}

	dm, err := s.UserChannelCreate(applicantID)
	if err != nil {
		return
	}
	embed := applicationEmbed()
	embed.Title = title
	embed.Description = description
	embed.Color = color
	_, _ = s.ChannelMessageSendEmbed(dm.ID, embed)
}

func (h *Handler) buttonCreateTicket(s *discordgo.Session, i *discordgo.InteractionCreate, categorySlug string) {
	if _, err := coreticket.ParseCategory(categorySlug); err != nil {
		return
	}
	user := interactionUser(i)

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})

	resp, err := h.tickets.CreateTicket(context.Background(), primary.CreateTicketRequest{
		Category: categorySlug,
		OwnerID:  user.ID,
	})
	if err != nil {
		content := "❌ Failed to create ticket. Please try again later."
		if errors.Is(err, coreticket.ErrAlreadyOpen) {
			content = "❌ " + err.Error()
		}
		_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return
	}

	h.sendTicketWelcome(s, resp.Ticket, user)

	content := fmt.Sprintf("Your ticket has been created: <#%s>", resp.Ticket.ChannelID)
	_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
}

// sendTicketWelcome posts the welcome embed with the ticket control row into
// the freshly created channel.
func (h *Handler) sendTicketWelcome(s *discordgo.Session, ticket *primary.Ticket, owner *discordgo.User) {
	embed := supportEmbed()
	embed.Title = fmt.Sprintf("Welcome %s", owner.Username)
	embed.Description = "Please describe your issue below and a staff member will assist you."
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Ticket", Value: fmt.Sprintf("`#%s`", ticket.Number), Inline: true},
		{Name: "Category", Value: fmt.Sprintf("`%s`", ticket.CategoryTitle), Inline: true},
		{Name: "Created", Value: fmt.Sprintf("<t:%d:R>", ticket.CreatedAt.Unix()), Inline: true},
	}

	controlRow := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Close", Style: discordgo.DangerButton, CustomID: customIDCloseTicket},
			discordgo.Button{Label: "Claim", Style: discordgo.PrimaryButton, CustomID: customIDClaimTicket},
			discordgo.Button{Label: "Settings", Style: discordgo.SecondaryButton, CustomID: customIDTicketSettings},
		},
	}

	_, _ = s.ChannelMessageSendComplex(ticket.ChannelID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("<@&%s>", h.cfg.TeamRoleID),
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{controlRow},
	})
}

func (h *Handler) buttonCloseTicket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	confirmation, err := h.tickets.RequestClose(context.Background(), primary.CloseRequest{
		ChannelID:   i.ChannelID,
		RequesterID: interactionUser(i).ID,
	})
	if errors.Is(err, coreticket.ErrNotTicket) {
		_ = ephemeralText(s, i, "❌ This is not a ticket channel.")
		return
	}
	if err != nil {
		_ = ephemeralText(s, i, "❌ Failed to request ticket closure.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Confirm Closure",
		Description: "Are you sure you want to close this ticket?",
		Color:       errorColor,
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{closeConfirmRow(confirmation.Token, "Confirm")},
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

func closeConfirmRow(token, confirmLabel string) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    confirmLabel,
				Style:    discordgo.DangerButton,
				CustomID: customIDConfirmClosePrefix + token,
			},
			discordgo.Button{
				Label:    "Cancel",
				Style:    discordgo.SecondaryButton,
				CustomID: customIDCancelClosePrefix + token,
			},
		},
	}
}

func (h *Handler) buttonConfirmClose(s *discordgo.Session, i *discordgo.InteractionCreate, token string) {
	ticket, err := h.tickets.ConfirmClose(context.Background(), primary.ConfirmCloseRequest{
		Token:    token,
		CloserID: interactionUser(i).ID,
	})
	if err != nil {
		_ = ephemeralText(s, i, "❌ Failed to close the ticket.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Ticket Closed",
		Description: fmt.Sprintf("This ticket has been closed by <@%s>", ticket.ClosedBy),
		Color:       errorColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Closed At", Value: fmt.Sprintf("<t:%d:F>", ticket.ClosedAt.Unix())},
		},
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		},
	})
}

func (h *Handler) buttonCancelClose(s *discordgo.Session, i *discordgo.InteractionCreate, token string) {
	_ = h.tickets.CancelClose(context.Background(), token)
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    "❌ Ticket closure cancelled.",
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		},
	})
}

func (h *Handler) buttonClaim(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	err := h.tickets.Claim(context.Background(), primary.ClaimRequest{
		ChannelID:  i.ChannelID,
		ClaimantID: user.ID,
	})
	switch {
	case errors.Is(err, coreticket.ErrNotTicket):
		_ = ephemeralText(s, i, "❌ This is not a ticket channel.")
	case errors.Is(err, coreticket.ErrNotAuthorized):
		_ = ephemeralText(s, i, "❌ Only team members can claim tickets.")
	case err != nil:
		_ = ephemeralText(s, i, "❌ Failed to claim the ticket.")
	default:
		embed := supportEmbed()
		embed.Description = fmt.Sprintf("This ticket has been claimed by <@%s>", user.ID)
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{embed},
			},
		})
	}
}

func (h *Handler) buttonSettings(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ticket, err := h.tickets.GetTicket(context.Background(), i.ChannelID)
	if err != nil || ticket == nil {
		_ = ephemeralText(s, i, "❌ This is not a ticket channel.")
		return
	}

	embed := supportEmbed()
	embed.Title = "Ticket Settings"
	embed.Description = "Select an option from the menu below:"

	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    customIDTicketSettingsMenu,
		Placeholder: "Choose an action",
		Options: []discordgo.SelectMenuOption{
			{Label: "Add User", Description: "Add a user to this ticket", Value: "add-user"},
			{Label: "Remove User", Description: "Remove a user from this ticket", Value: "remove-user"},
			{Label: "Priority Level", Description: "Set ticket priority", Value: "priority"},
		},
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}}},
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

func (h *Handler) buttonPriority(s *discordgo.Session, i *discordgo.InteractionCreate, level string) {
	priority, err := coreticket.ParsePriority(level)
	if err != nil {
		return
	}

	err = h.tickets.SetPriority(context.Background(), primary.PriorityRequest{
		ChannelID: i.ChannelID,
		Priority:  level,
		ActorID:   interactionUser(i).ID,
	})
	switch {
	case errors.Is(err, coreticket.ErrNotTicket):
		_ = ephemeralText(s, i, "❌ This is not a ticket channel.")
	case err != nil:
		_ = ephemeralText(s, i, "❌ Failed to update ticket priority.")
	default:
		embed := supportEmbed()
		embed.Description = fmt.Sprintf("Ticket priority set to **%s**", priority.Label())
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{embed},
				Components: []discordgo.MessageComponent{},
			},
		})
	}
}

func (h *Handler) buttonStartApplication(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if h.apps.HasSession(user.ID) {
		_ = ephemeralText(s, i, "❌ You already have an active application in progress. Please complete it first.")
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})

	err := h.apps.Start(context.Background(), primary.StartApplicationRequest{
		UserID:   user.ID,
		Username: user.Username,
	})
	content := "Application started! Please check your DMs to continue the application process."
	if errors.Is(err, coreapp.ErrAlreadyActive) {
		content = "❌ You already have an active application in progress. Please complete it first."
	} else if err != nil {
		content = "❌ I cannot send you a DM. Please enable DMs from server members in your privacy settings and try again."
	}
	_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
}

func (h *Handler) buttonSubmitApplication(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if !h.apps.HasSession(user.ID) {
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	// Outcome messages (success or failure) are delivered by the applicant
	// notifier; nothing further to render here.
	_ = h.apps.Submit(context.Background(), user.ID)
}

func (h *Handler) buttonEditApplication(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	answers := h.apps.Answers(user.ID)
	if answers == nil {
		return
	}

	embed := applicationEmbed()
	embed.Title = "Edit Application"
	embed.Description = fmt.Sprintf("Which question would you like to edit? Select a question below (1-%d).", len(answers))

	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    customIDSelectEditTarget,
		Placeholder: "Select a question to edit",
	}
	for idx, qa := range answers {
		desc := qa.Question
		if len(desc) > 50 {
			desc = desc[:50] + "..."
		}
		menu.Options = append(menu.Options, discordgo.SelectMenuOption{
			Label:       fmt.Sprintf("Question %d", idx+1),
			Description: desc,
			Value:       strconv.Itoa(idx),
		})
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}}},
		},
	})
}

func (h *Handler) buttonCancelApplication(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if !h.apps.HasSession(user.ID) {
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	_ = h.apps.Cancel(context.Background(), user.ID)
}

// ---------------------------------------------------------------------------
// Select menus
// ---------------------------------------------------------------------------

func (h *Handler) handleMenu(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.MessageComponentInteractionData) {
	if len(data.Values) == 0 {
		return
	}
	switch data.CustomID {
	case customIDTicketSettingsMenu:
		h.menuTicketSettings(s, i, data.Values[0])
	case customIDSelectEditTarget:
		h.menuSelectEditTarget(s, i, data.Values[0])
	}
}

func (h *Handler) menuTicketSettings(s *discordgo.Session, i *discordgo.InteractionCreate, value string) {
	switch value {
	case "add-user":
		_ = ephemeralText(s, i, "Please use the `/ticket-add` command to add a user to this ticket.")
	case "remove-user":
		_ = ephemeralText(s, i, "Please use the `/ticket-remove` command to remove a user from this ticket.")
	case "priority":
		ticket, err := h.tickets.GetTicket(context.Background(), i.ChannelID)
		if err != nil || ticket == nil {
			_ = ephemeralText(s, i, "❌ This is not a ticket channel.")
			return
		}

		embed := supportEmbed()
		embed.Title = "Set Priority Level"
		embed.Description = "Select the priority level for this ticket:"

		row := discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Low", Style: discordgo.SuccessButton, CustomID: customIDPriorityPrefix + string(coreticket.PriorityLow)},
				discordgo.Button{Label: "Medium", Style: discordgo.PrimaryButton, CustomID: customIDPriorityPrefix + string(coreticket.PriorityMedium)},
				discordgo.Button{Label: "High", Style: discordgo.DangerButton, CustomID: customIDPriorityPrefix + string(coreticket.PriorityHigh)},
				discordgo.Button{Label: "Urgent", Style: discordgo.DangerButton, CustomID: customIDPriorityPrefix + string(coreticket.PriorityUrgent)},
			},
		}

		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{embed},
				Components: []discordgo.MessageComponent{row},
			},
		})
	}
}

func (h *Handler) menuSelectEditTarget(s *discordgo.Session, i *discordgo.InteractionCreate, value string) {
	user := interactionUser(i)
	index, err := strconv.Atoi(value)
	if err != nil {
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	// The edit prompt (with the current answer) is delivered by the
	// applicant notifier.
	_ = h.apps.BeginEdit(context.Background(), primary.EditRequest{
		UserID:        user.ID,
		QuestionIndex: index,
	})
}
