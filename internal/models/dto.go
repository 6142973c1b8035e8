package models

import "encoding/json"

// UploadRequest carries the parsed multipart form of POST /upload.
type UploadRequest struct {
	FileName     string
	ContentType  string
	Content      []byte
	TeamNumber   string
	TeamName     string
	TeamLeader   string
	TeamEmail    string
	ProjectTitle string
}

// UploadResponse is returned to the client whether or not the similarity
// check succeeded; a failed check only degrades PlagiarismReport.
type UploadResponse struct {
	Message          string          `json:"message"`
	FileID           string          `json:"fileId"`
	PlagiarismReport json.RawMessage `json:"plagiarismReport,omitempty"`
}

// DuplicateCheckResult holds the independent per-field flags of the
// advisory duplicate lookup.
type DuplicateCheckResult struct {
	TeamNumberExists   bool `json:"teamNumberExists"`
	ProjectTitleExists bool `json:"projectTitleExists"`
}

// FallbackComparison is one entry of the hash-equality fallback checker.
// Field names mirror the NLP service's scoring vocabulary even though the
// fallback only detects verbatim re-uploads.
type FallbackComparison struct {
	FileID                string  `json:"fileId"`
	ResultMessage         string  `json:"result_message"`
	JaccardScore          float64 `json:"jaccard_score"`
	LevenshteinSimilarity float64 `json:"levenshtein_similarity"`
	PlagiarismScore       float64 `json:"plagiarism_score"`
}

type FallbackCheckResponse struct {
	PlagiarismResults []FallbackComparison `json:"plagiarismResults"`
}

type SignupRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Student PublicStudent `json:"student"`
}

type DownloadResponse struct {
	Content     []byte
	FileName    string
	ContentType string
	FileSize    int64
}

type SaveReportRequest struct {
	TeamName           string         `json:"originalTeamName"`
	TeamLeader         string         `json:"originalTeamLeader"`
	TeamEmail          string         `json:"originalTeamEmail"`
	Message            string         `json:"message"`
	Plagiarised        bool           `json:"plagiarised"`
	AvgSimilarityScore float64        `json:"avg_similarity_score"`
	DetailedResults    []ReportDetail `json:"detailedResults"`
}
