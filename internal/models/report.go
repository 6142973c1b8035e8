package models

import (
	"encoding/json"
	"time"
)

// PlagiarismReport is a persisted verdict for one submission, either
// produced by the external NLP service or saved directly by a client.
type PlagiarismReport struct {
	ID                 string          `json:"id" db:"id"`
	TeamName           string          `json:"originalTeamName" db:"team_name"`
	TeamLeader         string          `json:"originalTeamLeader" db:"team_leader"`
	TeamEmail          string          `json:"originalTeamEmail" db:"team_email"`
	Message            string          `json:"message" db:"message"`
	Plagiarised        bool            `json:"plagiarised" db:"plagiarised"`
	AvgSimilarityScore float64         `json:"avg_similarity_score" db:"avg_similarity_score"`
	Details            json.RawMessage `json:"detailedResults,omitempty" db:"details"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}

// ReportDetail is one per-comparison record inside a report's Details.
type ReportDetail struct {
	ComparedFileID     string  `json:"comparedFileId"`
	ComparedTeamName   string  `json:"comparedTeamName"`
	ComparedTeamLeader string  `json:"comparedTeamLeader"`
	SimilarityScore    float64 `json:"similarityScore"`
	ResultLabel        string  `json:"resultLabel"`
}
