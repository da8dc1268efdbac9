package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/example/warden/internal/config"
	coresub "github.com/example/warden/internal/core/submission"
	"github.com/example/warden/internal/ports/secondary"
)

// ReviewPoster publishes decision requests to the configured applications
// channel.
type ReviewPoster struct {
	session *discordgo.Session
	cfg     *config.Config
}

// NewReviewPoster creates a new ReviewPoster.
func NewReviewPoster(session *discordgo.Session, cfg *config.Config) *ReviewPoster {
	return &ReviewPoster{session: session, cfg: cfg}
}

// PostDecisionRequest posts the decision request embed with its decision
// buttons, followed by up to four attachment previews.
func (p *ReviewPoster) PostDecisionRequest(ctx context.Context, post *secondary.DecisionPost) error {
	if p.cfg.ApplicationsChannelID == "" {
		return coresub.ErrNoReviewSurface
	}

	embed := applicationEmbed()
	embed.Title = "New Builder Application"
	embed.Description = fmt.Sprintf("**Applicant:** %s (<@%s>)", post.ApplicantName, post.ApplicantID)
	embed.Timestamp = post.SubmittedAt.Format("2006-01-02T15:04:05Z07:00")
	for _, f := range post.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  f.Question,
			Value: f.Answer,
		})
	}

	row := discordgo.ActionsRow{}
	for _, action := range post.Actions {
		row.Components = append(row.Components, discordgo.Button{
			Label:    action.Label,
			Style:    decisionStyle(action.ID),
			CustomID: action.ID,
		})
	}

	_, err := p.session.ChannelMessageSendComplex(p.cfg.ApplicationsChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	})
	if err != nil {
		return fmt.Errorf("post decision request: %w", err)
	}

	if len(post.AttachmentPreviews) > 0 {
		previews := make([]*discordgo.MessageEmbed, 0, len(post.AttachmentPreviews))
		for _, url := range post.AttachmentPreviews {
			previews = append(previews, &discordgo.MessageEmbed{
				Color: themeColor,
				Image: &discordgo.MessageEmbedImage{URL: url},
			})
		}
		if _, err := p.session.ChannelMessageSendComplex(p.cfg.ApplicationsChannelID, &discordgo.MessageSend{
			Embeds: previews,
		}); err != nil {
			// The decision request itself is posted; preview failure is not
			// worth failing the submission over.
			return nil
		}
	}

	return nil
}

func decisionStyle(actionID string) discordgo.ButtonStyle {
	outcome, _, ok := coresub.ParseDecisionActionID(actionID)
	if !ok {
		return discordgo.SecondaryButton
	}
	switch outcome {
	case coresub.OutcomeAccept:
		return discordgo.SuccessButton
	case coresub.OutcomeDeny:
		return discordgo.DangerButton
	case coresub.OutcomeInterview:
		return discordgo.PrimaryButton
	}
	return discordgo.SecondaryButton
}

// Ensure ReviewPoster implements the interface
var _ secondary.ReviewPoster = (*ReviewPoster)(nil)
