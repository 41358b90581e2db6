package dto

import "time"

type UploadContextRequest struct {
	Text    string `json:"text" validate:"required"`
	Profile string `json:"profile"`
}

type UploadContextResponse struct {
	Topic     string `json:"topic"`
	Namespace string `json:"namespace"`
	Queued    bool   `json:"queued"`
}

// PublishIngestDocumentMessage is the payload queued for background embedding.
type PublishIngestDocumentMessage struct {
	Namespace string `json:"namespace"`
	Text      string `json:"text"`
}

type KnowledgeRecordResponse struct {
	Id         string    `json:"id"`
	Document   string    `json:"document"`
	ChunkIndex int       `json:"chunk_index"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListRecordsResponse struct {
	Topic     string                    `json:"topic"`
	Namespace string                    `json:"namespace"`
	Records   []KnowledgeRecordResponse `json:"records"`
	Total     int64                     `json:"total"`
	Page      int                       `json:"page"`
	PageSize  int                       `json:"page_size"`
}
