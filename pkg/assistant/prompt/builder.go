package prompt

import (
	"fmt"
	"strings"
)

// Spec carries the per-deployment wording of the question prompt.
type Spec struct {
	// RoleFraming opens the prompt and sets the assistant persona.
	RoleFraming string

	// FinalInstruction closes the prompt; must contain one %d verb for
	// the question count.
	FinalInstruction string

	QuestionCount int
}

// QuestionBuilder assembles the grounded question-generation prompt.
// Ordering is deliberate: the live window must dominate the model's
// attention over retrieved background, which is enforced purely through
// the primary-emphasis instruction and section placement, since
// retrieval applies no relevance threshold.
type QuestionBuilder struct {
	spec       Spec
	transcript string
	background string
	guidance   string
}

func NewQuestionBuilder(spec Spec, transcript, background, guidance string) *QuestionBuilder {
	return &QuestionBuilder{
		spec:       spec,
		transcript: transcript,
		background: background,
		guidance:   guidance,
	}
}

func (b *QuestionBuilder) Build() string {
	var prompt strings.Builder

	b.writeRoleFraming(&prompt)
	b.writeEmphasis(&prompt)
	b.writeTranscript(&prompt)
	b.writeBackground(&prompt)
	b.writeGuidance(&prompt)
	b.writeInstruction(&prompt)

	return strings.TrimSpace(prompt.String())
}

func (b *QuestionBuilder) writeRoleFraming(prompt *strings.Builder) {
	prompt.WriteString(b.spec.RoleFraming)
	prompt.WriteString("\n\n")
}

func (b *QuestionBuilder) writeEmphasis(prompt *strings.Builder) {
	prompt.WriteString("Put primary emphasis on the most recent transcription of the conversation — the most important and relevant part of the context.\n\n")
	prompt.WriteString("Use other background information as supplemental, only if it's relevant to what was just said.\n\n")
}

func (b *QuestionBuilder) writeTranscript(prompt *strings.Builder) {
	prompt.WriteString("---\nLive Transcript:\n")
	prompt.WriteString(b.transcript)
	prompt.WriteString("\n\n")
}

func (b *QuestionBuilder) writeBackground(prompt *strings.Builder) {
	prompt.WriteString("---\nRelevant Background Context:\n")
	prompt.WriteString(b.background)
	prompt.WriteString("\n\n")
}

func (b *QuestionBuilder) writeGuidance(prompt *strings.Builder) {
	if b.guidance == "" {
		return
	}
	prompt.WriteString("Additional Context: ")
	prompt.WriteString(b.guidance)
	prompt.WriteString("\n\n")
}

func (b *QuestionBuilder) writeInstruction(prompt *strings.Builder) {
	prompt.WriteString("---\n")
	fmt.Fprintf(prompt, b.spec.FinalInstruction, b.spec.QuestionCount)
}

// SummaryPrompt is the fixed summarization instruction applied to the
// live window before persisting it as durable context.
func SummaryPrompt(window string) string {
	return "Summarize this transcript:\n\n" + window
}
