package memory

import (
	"context"

	"topic-quiz-bot/internal/domain"
)

// StaticCatalog is a CatalogLoader backed by in-memory maps (useful for
// tests and demo runs without a database).
type StaticCatalog struct {
	topics    []domain.Topic
	questions map[int64][]domain.Question
}

func NewStaticCatalog(topics []domain.Topic, questions map[int64][]domain.Question) *StaticCatalog {
	return &StaticCatalog{topics: topics, questions: questions}
}

func (l *StaticCatalog) LoadTopics(_ context.Context) ([]domain.Topic, error) {
	return l.topics, nil
}

func (l *StaticCatalog) LoadQuestions(_ context.Context, topicID int64) ([]domain.Question, error) {
	// An unknown or empty topic yields an empty set, never an error.
	return l.questions[topicID], nil
}
