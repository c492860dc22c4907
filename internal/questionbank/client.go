// Package questionbank is the HTTP client for the MCQ question bank and the
// answer submission endpoint.
package questionbank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
)

const (
	questionsPath     = "/api/mcq/questions"
	submitAnswersPath = "/api/mcq/submit-answers"
)

var (
	ErrUnexpectedStatus   = errors.New("unexpected status from question bank")
	ErrMalformedResponse  = errors.New("malformed response from question bank")
	ErrSubmissionRejected = errors.New("submission rejected by grading service")
)

// Client talks to the question bank service. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "questionbank"),
	}
}

// FetchQuestions returns the ordered question set for a skill identifier and
// level. A missing or non-array "questions" field yields an empty slice.
func (c *Client) FetchQuestions(ctx context.Context, skillID string, level models.Level) ([]models.Question, error) {
	query := url.Values{}
	query.Set("skill_id", skillID)
	query.Set("level", level.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+questionsPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build questions request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body questionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	questions := body.toModels()
	c.logger.DebugContext(ctx, "Fetched questions",
		"skill_id", skillID,
		"level", level.String(),
		"count", len(questions))

	return questions, nil
}

// SubmitAnswers posts the batch and succeeds only when the service replies
// with a 2xx status and "success": true.
func (c *Client) SubmitAnswers(ctx context.Context, records []models.SubmissionRecord) error {
	payload, err := json.Marshal(models.SubmissionBatch{Submissions: records})
	if err != nil {
		return fmt.Errorf("failed to marshal submissions: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitAnswersPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit answers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !body.Success {
		return ErrSubmissionRejected
	}

	c.logger.InfoContext(ctx, "Submitted answers", "count", len(records))
	return nil
}
