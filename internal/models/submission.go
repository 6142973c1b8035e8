package models

import "time"

// Submission is the metadata record for one uploaded project document.
// The bytes themselves live in the object store under StoragePath.
type Submission struct {
	ID            string    `json:"id" db:"id"`
	OriginalName  string    `json:"original_name" db:"original_name"`
	FileName      string    `json:"file_name" db:"file_name"`
	FileSize      int64     `json:"file_size" db:"file_size"`
	MimeType      string    `json:"mime_type" db:"mime_type"`
	ContentHash   string    `json:"content_hash" db:"content_hash"`
	TeamNumber    string    `json:"team_number,omitempty" db:"team_number"`
	TeamName      string    `json:"team_name" db:"team_name"`
	TeamLeader    string    `json:"team_leader" db:"team_leader"`
	TeamEmail     string    `json:"team_email" db:"team_email"`
	ProjectTitle  string    `json:"project_title,omitempty" db:"project_title"`
	StorageBucket string    `json:"storage_bucket" db:"storage_bucket"`
	StoragePath   string    `json:"storage_path" db:"storage_path"`
	UploadedAt    time.Time `json:"uploaded_at" db:"uploaded_at"`
}

type SubmissionStats struct {
	TotalSubmissions int64 `json:"total_submissions"`
	TotalSize        int64 `json:"total_size"`
	UploadedToday    int64 `json:"uploaded_today"`
	AverageFileSize  int64 `json:"average_file_size"`
}
