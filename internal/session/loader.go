package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/skill-test-service/internal/cache"
	"github.com/SAP-F-2025/skill-test-service/internal/models"
)

// QuestionFetcher retrieves a question set from the question bank.
type QuestionFetcher interface {
	FetchQuestions(ctx context.Context, skillID string, level models.Level) ([]models.Question, error)
}

// QuestionLoader fetches question sets and degrades every failure to an empty
// set. A cache, when set, holds non-empty sets for ttl.
type QuestionLoader struct {
	fetcher QuestionFetcher
	cache   cache.CacheService
	ttl     time.Duration
	logger  *slog.Logger
}

func NewQuestionLoader(fetcher QuestionFetcher, cacheService cache.CacheService, ttl time.Duration, logger *slog.Logger) *QuestionLoader {
	return &QuestionLoader{
		fetcher: fetcher,
		cache:   cacheService,
		ttl:     ttl,
		logger:  logger,
	}
}

func (l *QuestionLoader) Load(ctx context.Context, skillID string, level models.Level) []models.Question {
	key := cache.QuestionSetKey(skillID, level.String())

	if l.cache != nil {
		var cached []models.Question
		err := l.cache.Get(ctx, key, &cached)
		switch {
		case err == nil && len(cached) > 0:
			l.logger.DebugContext(ctx, "Question set served from cache", "skill_id", skillID, "level", level.String())
			return cached
		case err != nil && !errors.Is(err, cache.ErrCacheMiss):
			l.logger.WarnContext(ctx, "Question cache read failed", "key", key, "error", err)
		}
	}

	questions, err := l.fetcher.FetchQuestions(ctx, skillID, level)
	if err != nil {
		l.logger.WarnContext(ctx, "Question fetch failed, treating as no questions",
			"skill_id", skillID,
			"level", level.String(),
			"error", err)
		return []models.Question{}
	}

	l.logger.InfoContext(ctx, "Loaded questions",
		"skill_id", skillID,
		"level", level.String(),
		"count", len(questions))

	if l.cache != nil && len(questions) > 0 {
		if err := l.cache.Set(ctx, key, questions, l.ttl); err != nil {
			l.logger.WarnContext(ctx, "Question cache write failed", "key", key, "error", err)
		}
	}

	return questions
}
