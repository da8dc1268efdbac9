// Package application contains the pure business logic for the builder
// application intake flow. This is part of the Functional Core - no I/O,
// only pure functions and the session state machine.
package application

import "strings"

// questions is the fixed intake script. The final question collects
// attachment references instead of free text.
var questions = []string{
	"What is your age?",
	"What is your Minecraft username?",
	"How long have you been building in Minecraft?",
	"What building styles are you most comfortable with? (Medieval, Modern, Fantasy, etc.)",
	"Are you familiar with Axiom? If yes, how experienced are you with it?",
	"What timezone are you in and what hours are you typically available?",
	"Why do you want to join the Mineset build team?",
	"Please provide links to your portfolio or previous builds (Imgur, Planet Minecraft, etc.)",
	"Please upload screenshots of your best builds (you can send multiple images)",
}

// DoneSentinel terminates attachment collection on the final question.
const DoneSentinel = "done"

// QuestionCount returns the total number of questions in the script.
func QuestionCount() int {
	return len(questions)
}

// AttachmentQuestionIndex is the index of the attachment-collection question.
func AttachmentQuestionIndex() int {
	return len(questions) - 1
}

// Question returns the script text for the given index.
func Question(i int) string {
	return questions[i]
}

// IsAttachmentQuestion reports whether the given index is the
// attachment-collection question.
func IsAttachmentQuestion(i int) bool {
	return i == AttachmentQuestionIndex()
}

// IsDone reports whether a message is the attachment-collection terminator.
func IsDone(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), DoneSentinel)
}
