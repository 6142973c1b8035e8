package models

import "time"

// SubmissionUploadedEvent is published after a successful upload so that
// out-of-process analyzers can pick up new documents.
type SubmissionUploadedEvent struct {
	FileID       string    `json:"file_id"`
	TeamNumber   string    `json:"team_number,omitempty"`
	TeamName     string    `json:"team_name"`
	ProjectTitle string    `json:"project_title,omitempty"`
	ContentHash  string    `json:"content_hash"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
