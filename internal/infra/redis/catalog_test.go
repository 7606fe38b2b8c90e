package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"topic-quiz-bot/internal/domain"
	"topic-quiz-bot/internal/infra/memory"
)

func TestCatalogCachesQuestionsInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	loader := &countingLoader{
		CatalogLoader: memory.NewStaticCatalog(sampleTopics(), sampleQuestions()),
	}
	catalog := NewCatalog(client, loader, time.Minute)

	questions, err := catalog.FetchQuestions(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetch questions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if loader.questionCalls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.questionCalls)
	}
	if !mr.Exists("catalog:topic:1:questions") {
		t.Fatalf("expected redis cache entry")
	}

	// Second call should hit redis, loader not incremented.
	if _, err := catalog.FetchQuestions(context.Background(), 1); err != nil {
		t.Fatalf("fetch questions 2: %v", err)
	}
	if loader.questionCalls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.questionCalls)
	}
}

func TestCatalogCachesTopicsInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		CatalogLoader: memory.NewStaticCatalog(sampleTopics(), sampleQuestions()),
	}
	catalog := NewCatalog(newClient(mr), loader, time.Minute)

	topics, err := catalog.ListTopics(context.Background())
	if err != nil {
		t.Fatalf("list topics: %v", err)
	}
	if len(topics) != 1 || topics[0].ID != 1 {
		t.Fatalf("unexpected topics %+v", topics)
	}

	if _, err := catalog.ListTopics(context.Background()); err != nil {
		t.Fatalf("list topics 2: %v", err)
	}
	if loader.topicCalls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.topicCalls)
	}
}

type countingLoader struct {
	CatalogLoader
	topicCalls    int
	questionCalls int
}

func (l *countingLoader) LoadTopics(ctx context.Context) ([]domain.Topic, error) {
	l.topicCalls++
	return l.CatalogLoader.LoadTopics(ctx)
}

func (l *countingLoader) LoadQuestions(ctx context.Context, topicID int64) ([]domain.Question, error) {
	l.questionCalls++
	return l.CatalogLoader.LoadQuestions(ctx, topicID)
}

func sampleTopics() []domain.Topic {
	return []domain.Topic{{ID: 1, Name: "History"}}
}

func sampleQuestions() map[int64][]domain.Question {
	return map[int64][]domain.Question{
		1: {
			{
				ID:      1,
				TopicID: 1,
				Prompt:  "In which year did the war end?",
				Choices: [4]domain.Choice{
					{Label: "a", Text: "1943"},
					{Label: "b", Text: "1945"},
					{Label: "c", Text: "1947"},
					{Label: "d", Text: "1950"},
				},
				Correct:     "b",
				Explanation: "It ended in 1945.",
			},
			{
				ID:      2,
				TopicID: 1,
				Prompt:  "Who wrote the declaration?",
				Choices: [4]domain.Choice{
					{Label: "a", Text: "Jefferson"},
					{Label: "b", Text: "Adams"},
					{Label: "c", Text: "Franklin"},
					{Label: "d", Text: "Washington"},
				},
				Correct:     "a",
				Explanation: "Jefferson drafted it.",
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
