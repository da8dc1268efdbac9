package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	coreapp "github.com/example/warden/internal/core/application"
	coresub "github.com/example/warden/internal/core/submission"
	"github.com/example/warden/internal/ports/secondary"
)

// Applicant-flow component identifiers.
const (
	customIDSubmitApplication = "submit-application"
	customIDEditApplication   = "edit-application"
	customIDCancelApplication = "cancel-application"
	customIDSelectEditTarget  = "select-edit-question"
)

// ApplicantNotifier renders application-flow state to the applicant's DM
// channel.
type ApplicantNotifier struct {
	session *discordgo.Session
}

// NewApplicantNotifier creates a new ApplicantNotifier.
func NewApplicantNotifier(session *discordgo.Session) *ApplicantNotifier {
	return &ApplicantNotifier{session: session}
}

// dm resolves (or opens) the applicant's DM channel.
func (n *ApplicantNotifier) dm(userID string) (string, error) {
	channel, err := n.session.UserChannelCreate(userID)
	if err != nil {
		return "", fmt.Errorf("open DM: %w", err)
	}
	return channel.ID, nil
}

func (n *ApplicantNotifier) sendEmbed(userID string, embed *discordgo.MessageEmbed) error {
	channelID, err := n.dm(userID)
	if err != nil {
		return err
	}
	if _, err := n.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		return fmt.Errorf("send DM: %w", err)
	}
	return nil
}

// SendWelcome opens the DM surface and sends the application welcome.
func (n *ApplicantNotifier) SendWelcome(ctx context.Context, userID string) error {
	embed := applicationEmbed()
	embed.Title = "Builder Application"
	embed.Description = "Thank you for your interest in joining our build team!\n\n" +
		"I will guide you through the application process. Please answer each question honestly and thoroughly."
	return n.sendEmbed(userID, embed)
}

// AskQuestion prompts for the question at the given script index. The final
// question carries the attachment-collection footer.
func (n *ApplicantNotifier) AskQuestion(ctx context.Context, userID string, index int) error {
	embed := applicationEmbed()
	embed.Title = fmt.Sprintf("Question %d/%d", index+1, coreapp.QuestionCount())
	embed.Description = coreapp.Question(index)
	footer := "Type your answer below"
	if coreapp.IsAttachmentQuestion(index) {
		footer = `Send your images below. When done, type "done" to review your application`
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer, IconURL: footerIconURL}
	return n.sendEmbed(userID, embed)
}

// ConfirmAttachments confirms newly collected attachments.
func (n *ApplicantNotifier) ConfirmAttachments(ctx context.Context, userID string, added, total int) error {
	embed := applicationEmbed()
	embed.Description = fmt.Sprintf("%d image(s) added to your application.\n\n"+
		`Send more images or type "done" to review your application.`, added)
	return n.sendEmbed(userID, embed)
}

// ShowReview renders the full review with submit/edit/cancel actions.
func (n *ApplicantNotifier) ShowReview(ctx context.Context, userID string, view secondary.ReviewView) error {
	answers := make([]coresub.Answer, len(view.Answers))
	for i, qa := range view.Answers {
		answers[i] = coresub.Answer{Question: qa.Question, Response: qa.Answer}
	}

	embed := applicationEmbed()
	embed.Title = "Review Your Application"
	embed.Description = "Please review your answers below. You can edit any answer or submit your application."
	for _, f := range coresub.ReviewFields(answers, view.AttachmentCount) {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  f.Name,
			Value: f.Value,
		})
	}

	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Submit Application",
				Style:    discordgo.SuccessButton,
				CustomID: customIDSubmitApplication,
			},
			discordgo.Button{
				Label:    "Edit Answers",
				Style:    discordgo.PrimaryButton,
				CustomID: customIDEditApplication,
			},
			discordgo.Button{
				Label:    "Cancel Application",
				Style:    discordgo.DangerButton,
				CustomID: customIDCancelApplication,
			},
		},
	}

	channelID, err := n.dm(userID)
	if err != nil {
		return err
	}
	_, err = n.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	})
	if err != nil {
		return fmt.Errorf("send review: %w", err)
	}
	return nil
}

// PromptEdit prompts for a replacement answer to an answered question.
func (n *ApplicantNotifier) PromptEdit(ctx context.Context, userID string, index int, question, current string) error {
	if current == "" {
		current = coresub.EmptyAnswerPlaceholder
	}
	embed := applicationEmbed()
	embed.Title = fmt.Sprintf("Edit Answer - Question %d", index+1)
	embed.Description = question
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Current Answer", Value: current},
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text:    "Type your new answer below",
		IconURL: footerIconURL,
	}
	return n.sendEmbed(userID, embed)
}

// SessionExpired notifies the applicant their session timed out.
func (n *ApplicantNotifier) SessionExpired(ctx context.Context, userID string) error {
	embed := applicationEmbed()
	embed.Title = "Application Timed Out"
	embed.Description = "Your application has been automatically cancelled due to 30 minutes of inactivity.\n\n" +
		"You can start a new application at any time."
	embed.Color = errorColor
	return n.sendEmbed(userID, embed)
}

// Cancelled confirms an explicit cancellation.
func (n *ApplicantNotifier) Cancelled(ctx context.Context, userID string) error {
	embed := applicationEmbed()
	embed.Title = "Application Cancelled"
	embed.Description = "Your application has been cancelled. You can start a new application at any time " +
		"by clicking the Apply button in the server."
	embed.Color = errorColor
	return n.sendEmbed(userID, embed)
}

// Submitted confirms a successful submission.
func (n *ApplicantNotifier) Submitted(ctx context.Context, userID string) error {
	embed := applicationEmbed()
	embed.Title = "Application Submitted!"
	embed.Description = "Your application has been successfully submitted. Our team will review it and " +
		"get back to you soon.\n\nThank you for your interest in joining Mineset!"
	return n.sendEmbed(userID, embed)
}

// SubmitFailed tells the applicant their submission did not go through.
func (n *ApplicantNotifier) SubmitFailed(ctx context.Context, userID string) error {
	embed := applicationEmbed()
	embed.Title = "Error"
	embed.Description = "An error occurred while submitting your application. Please try again later."
	embed.Color = errorColor
	return n.sendEmbed(userID, embed)
}

// Ensure ApplicantNotifier implements the interface
var _ secondary.ApplicantNotifier = (*ApplicantNotifier)(nil)
