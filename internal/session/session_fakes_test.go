package session

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFetcher struct {
	mu        sync.Mutex
	questions []models.Question
	err       error
	calls     []string
}

func (f *fakeFetcher) FetchQuestions(ctx context.Context, skillID string, level models.Level) ([]models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, skillID+"|"+level.String())
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

type fakeSubmitter struct {
	mu      sync.Mutex
	err     error
	batches [][]models.SubmissionRecord
	block   chan struct{}
	entered chan struct{}
}

func (s *fakeSubmitter) SubmitAnswers(ctx context.Context, records []models.SubmissionRecord) error {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, records)
	return s.err
}
