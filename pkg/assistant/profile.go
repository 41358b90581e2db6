package assistant

import "fmt"

// Profile parameterizes one assistant variant. Each deployment that used
// to be its own near-identical app (Twitter Spaces, LinkedIn calls,
// in-person meetings, interview prep) is a configuration value over the
// same engine.
type Profile struct {
	Name            string
	NamespacePrefix string

	// RoleFraming opens the question prompt and sets the assistant persona.
	RoleFraming string

	// FinalInstruction closes the prompt; must contain one %d verb for the
	// question count.
	FinalInstruction string

	QuestionCount int

	// BufferLimit and TriggerPeriod override the global defaults when > 0.
	BufferLimit   int
	TriggerPeriod int
}

// Namespace derives the vector store namespace for a topic. All storage
// and retrieval is partitioned by this key.
func (p Profile) Namespace(topic string) string {
	return fmt.Sprintf("%s-%s", p.NamespacePrefix, topic)
}

var profiles = map[string]Profile{
	"twitter-space": {
		Name:            "twitter-space",
		NamespacePrefix: "twitter-space",
		RoleFraming: "You are an expert assistant listening to a live Twitter Spaces conversation. " +
			"Your goal is to generate intelligent, context-specific questions that will help the speaker (me) sound informed and drive the conversation forward.",
		FinalInstruction: "Generate %d intelligent, discussion-forwarding questions:",
		QuestionCount:    3,
	},
	"linkedin-call": {
		Name:            "linkedin-call",
		NamespacePrefix: "linkedin-call",
		RoleFraming: "You are a professional business consultant listening to a LinkedIn call. " +
			"Your goal is to generate intelligent, professional questions that will help the speaker (me) sound informed and drive the business conversation forward.\n\n" +
			"Focus on:\n" +
			"- Professional networking opportunities\n" +
			"- Business development and partnerships\n" +
			"- Industry insights and trends\n" +
			"- Follow-up actions and next steps\n" +
			"- Relationship building",
		FinalInstruction: "Generate %d professional, business-focused questions:",
		QuestionCount:    5,
	},
	"in-person-meeting": {
		Name:            "in-person-meeting",
		NamespacePrefix: "in-person-meeting",
		RoleFraming: "You are an expert meeting facilitator listening to an in-person meeting. " +
			"Your goal is to generate intelligent, context-specific questions that will help the speaker (me) sound informed and drive the conversation forward.\n\n" +
			"Focus on:\n" +
			"- Meeting objectives and goals\n" +
			"- Action items and next steps\n" +
			"- Decision points and consensus building\n" +
			"- Stakeholder engagement\n" +
			"- Project progress and timelines",
		FinalInstruction: "Generate %d intelligent, meeting-focused questions:",
		QuestionCount:    5,
	},
	"it-martini": {
		Name:            "it-martini",
		NamespacePrefix: "it-martini",
		RoleFraming: "You are an expert technology advisor listening to a live conversation. " +
			"Your goal is to generate intelligent, context-specific questions that will help the speaker (me) sound informed and drive the conversation forward.",
		FinalInstruction: "Generate %d intelligent, discussion-forwarding questions that will help move the conversation forward:",
		QuestionCount:    10,
		BufferLimit:      6,
		TriggerPeriod:    6,
	},
}

// ProfileByName resolves a deployment profile. Unknown names fall back to
// the twitter-space profile so a bad config value degrades gracefully.
func ProfileByName(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	return profiles["twitter-space"]
}

// ProfileNames lists the registered deployment variants.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	return names
}
