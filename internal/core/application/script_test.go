package application

import "testing"

func TestScript_AttachmentQuestionIsLast(t *testing.T) {
	if AttachmentQuestionIndex() != QuestionCount()-1 {
		t.Errorf("expected attachment question at index %d, got %d",
			QuestionCount()-1, AttachmentQuestionIndex())
	}
	if !IsAttachmentQuestion(AttachmentQuestionIndex()) {
		t.Error("expected the final question to be the attachment question")
	}
	if IsAttachmentQuestion(0) {
		t.Error("expected the first question not to be the attachment question")
	}
}

func TestIsDone(t *testing.T) {
	cases := map[string]bool{
		"done":     true,
		"DONE":     true,
		"  Done  ": true,
		"done!":    false,
		"finished": false,
		"":         false,
	}
	for text, want := range cases {
		if got := IsDone(text); got != want {
			t.Errorf("IsDone(%q): expected %v, got %v", text, want, got)
		}
	}
}
