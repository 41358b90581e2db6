package dto

type StartSessionRequest struct {
	Topic    string `json:"topic" validate:"required"`
	Profile  string `json:"profile"`
	Guidance string `json:"guidance"`
}

type StartSessionResponse struct {
	Topic   string `json:"topic"`
	Profile string `json:"profile"`
	State   string `json:"state"`
}

type IngestSegmentRequest struct {
	Segment string `json:"segment" validate:"required"`
}

type IngestSegmentResponse struct {
	Triggered        bool   `json:"triggered"`
	Questions        string `json:"questions,omitempty"`
	Summary          string `json:"summary,omitempty"`
	SummaryPersisted bool   `json:"summary_persisted"`
	Warning          string `json:"warning,omitempty"`
}

type TranscribeSegmentResponse struct {
	Transcript string                `json:"transcript"`
	Ingest     IngestSegmentResponse `json:"ingest"`
}

type ShowSessionResponse struct {
	Topic           string `json:"topic"`
	Profile         string `json:"profile"`
	State           string `json:"state"`
	Window          string `json:"window"`
	SegmentCount    int    `json:"segment_count"`
	LatestQuestions string `json:"latest_questions,omitempty"`
	LatestSummary   string `json:"latest_summary,omitempty"`
}
