package events

import "time"

const (
	TypeSessionStarted     = "SESSION_STARTED"
	TypeSessionStopped     = "SESSION_STOPPED"
	TypeQuestionsGenerated = "QUESTIONS_GENERATED"
	TypeTopicCleared       = "TOPIC_CLEARED"
)

func NewSessionStarted(topic, profile string) Event {
	return BaseEvent{
		Type: TypeSessionStarted,
		Data: map[string]interface{}{
			"topic":   topic,
			"profile": profile,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionStopped(topic string) Event {
	return BaseEvent{
		Type: TypeSessionStopped,
		Data: map[string]interface{}{
			"topic": topic,
		},
		OccurredAt: time.Now(),
	}
}

// NewQuestionsGenerated carries one trigger cycle's artifacts for
// downstream consumers (analytics, reasoning traces, dashboards).
func NewQuestionsGenerated(topic, window, questions, background string) Event {
	return BaseEvent{
		Type: TypeQuestionsGenerated,
		Data: map[string]interface{}{
			"topic":      topic,
			"window":     window,
			"questions":  questions,
			"background": background,
		},
		OccurredAt: time.Now(),
	}
}

func NewTopicCleared(topic, namespace string) Event {
	return BaseEvent{
		Type: TypeTopicCleared,
		Data: map[string]interface{}{
			"topic":     topic,
			"namespace": namespace,
		},
		OccurredAt: time.Now(),
	}
}
