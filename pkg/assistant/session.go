package assistant

import (
	"context"
	"errors"
	"log"
	"sync"

	"conversation-assistant-be/pkg/llm"
)

// State is the session lifecycle phase.
type State string

const (
	StateIdle      State = "idle"
	StateListening State = "listening"
)

// TriggerHook observes successful trigger cycles. It runs with its own
// failure isolation: a panicking or slow hook never affects question
// delivery.
type TriggerHook func(windowText, questions, retrievedContext string)

// Config parameterizes one session. Zero values fall back to the
// profile's overrides, then to the package defaults.
type Config struct {
	Profile       Profile
	BufferLimit   int
	TriggerPeriod int
	TopK          int
	Guidance      string
}

// IngestResult reports what one segment caused. It distinguishes
// "no trigger this cycle" (normal), "trigger fired but failed" (Err set)
// and "trigger fired and succeeded" (Questions present).
type IngestResult struct {
	Triggered        bool
	Questions        string
	Summary          string
	SummaryPersisted bool
	Err              error
}

// Session owns one conversation's rolling buffer and segment counter and
// drives the ingestion loop: accept segment, update buffer, and on
// trigger summarize + persist + generate. Safe for concurrent callers;
// segments are processed to completion one at a time.
type Session struct {
	mu sync.Mutex

	cfg        Config
	store      ContextStore
	summarizer *Summarizer
	generator  *QuestionGenerator
	onTrigger  TriggerHook

	state  State
	topic  string
	buffer *RollingBuffer

	latestQuestions string
	latestSummary   string
}

func NewSession(cfg Config, store ContextStore, provider llm.Provider, hook TriggerHook) *Session {
	limit := cfg.BufferLimit
	if limit <= 0 {
		limit = cfg.Profile.BufferLimit
	}
	period := cfg.TriggerPeriod
	if period <= 0 {
		period = cfg.Profile.TriggerPeriod
	}

	return &Session{
		cfg:        cfg,
		store:      store,
		summarizer: NewSummarizer(provider),
		generator:  NewQuestionGenerator(store, provider, cfg.Profile, cfg.TopK),
		onTrigger:  hook,
		state:      StateIdle,
		buffer:     NewRollingBuffer(limit, period),
	}
}

// Start transitions Idle -> Listening with a fresh buffer and counter.
// Knowledge records already persisted for the topic's namespace are
// untouched.
func (s *Session) Start(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.topic = topic
	s.buffer.Reset()
	s.latestQuestions = ""
	s.latestSummary = ""
	s.state = StateListening
}

// Stop transitions back to Idle from any state. Persisted knowledge
// records survive.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
}

// IngestSegment appends one transcript segment and, when the counter
// reaches a trigger point, synchronously summarizes the window, persists
// the summary and generates questions. Trigger failures are reported in
// the result but never stop the session: the buffer was already updated,
// so the next segment arrives correctly positioned.
func (s *Session) IngestSegment(ctx context.Context, text string) (IngestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res IngestResult

	if s.state != StateListening {
		return res, ErrSessionNotListening
	}

	if err := s.buffer.Append(text); err != nil {
		if errors.Is(err, ErrEmptySegment) {
			// Silence from the transcriber; not worth generating on.
			return res, nil
		}
		return res, err
	}

	if !s.buffer.ShouldTrigger() {
		return res, nil
	}

	res.Triggered = true
	window := s.buffer.Window()
	namespace := s.cfg.Profile.Namespace(s.topic)

	summary, err := s.summarizer.Summarize(ctx, window)
	if err != nil {
		res.Err = err
	} else {
		res.Summary = summary
		s.latestSummary = summary
		if err := s.store.Ingest(ctx, summary, namespace); err != nil {
			res.Err = errors.Join(res.Err, err)
		} else {
			res.SummaryPersisted = true
		}
	}

	questions, background, err := s.generator.Generate(ctx, window, namespace, s.cfg.Guidance)
	if err != nil {
		res.Err = errors.Join(res.Err, err)
		return res, nil
	}

	res.Questions = questions
	s.latestQuestions = questions
	s.fireTriggerHook(window, questions, background)

	return res, nil
}

// ClearTopic deletes every knowledge record under the topic's namespace.
// Valid in any state; the in-memory buffer is unaffected.
func (s *Session) ClearTopic(ctx context.Context, topic string) error {
	return s.store.Clear(ctx, s.cfg.Profile.Namespace(topic))
}

// Window returns the current live window text.
func (s *Session) Window() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.Window()
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Topic returns the topic the session was started with.
func (s *Session) Topic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic
}

// Profile returns the deployment profile the session runs under.
func (s *Session) Profile() Profile {
	return s.cfg.Profile
}

// Len returns the number of segments currently buffered.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.Len()
}

// Latest returns the most recent questions and summary artifacts.
func (s *Session) Latest() (questions, summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestQuestions, s.latestSummary
}

func (s *Session) fireTriggerHook(window, questions, background string) {
	if s.onTrigger == nil {
		return
	}
	hook := s.onTrigger
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[WARN] trigger hook panicked: %v", r)
			}
		}()
		hook(window, questions, background)
	}()
}
