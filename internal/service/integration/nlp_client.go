package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// NLPClient talks to the external similarity-scoring service. The algorithm
// behind it is not part of this repository; only the consumption contract
// below is.
type NLPClient interface {
	CheckFile(ctx context.Context, fileID string) (*NLPReport, error)
}

// NLPReport is the documented response of GET /nlp-check/{fileId}.
type NLPReport struct {
	Plagiarised        bool        `json:"plagiarised"`
	AvgSimilarityScore float64     `json:"avg_similarity_score"`
	DetailedResults    []NLPDetail `json:"detailedResults"`
	Message            string      `json:"message"`
}

type NLPDetail struct {
	Section         string  `json:"section"`
	FileID          string  `json:"fileId"`
	SimilarityScore float64 `json:"similarity_score"`
	Result          string  `json:"result"`
}

type nlpClient struct {
	baseURL    string
	retryCount int
	retryDelay time.Duration
	client     *http.Client
	logger     zerolog.Logger
}

func NewNLPClient(baseURL string, timeout time.Duration, retryCount int, retryDelay time.Duration, logger zerolog.Logger) NLPClient {
	return &nlpClient{
		baseURL:    baseURL,
		retryCount: retryCount,
		retryDelay: retryDelay,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *nlpClient) CheckFile(ctx context.Context, fileID string) (*NLPReport, error) {
	url := fmt.Sprintf("%s/nlp-check/%s", c.baseURL, fileID)

	var lastErr error

	for i := 0; i <= c.retryCount; i++ {
		if i > 0 {
			c.logger.Warn().Int("attempt", i).Str("file_id", fileID).Msg("Retrying NLP check")
			time.Sleep(c.retryDelay * time.Duration(i))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			lastErr = fmt.Errorf("failed to create request: %w", err)
			continue
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to reach NLP service: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			var report NLPReport
			if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
				resp.Body.Close()
				lastErr = fmt.Errorf("failed to decode NLP response: %w", err)
				continue
			}
			resp.Body.Close()

			c.logger.Info().
				Str("file_id", fileID).
				Bool("plagiarised", report.Plagiarised).
				Float64("avg_similarity_score", report.AvgSimilarityScore).
				Msg("NLP check completed")

			return &report, nil
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("NLP service returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil, fmt.Errorf("NLP check failed after %d attempts: %w", c.retryCount+1, lastErr)
}
