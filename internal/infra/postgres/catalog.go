package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"topic-quiz-bot/internal/domain"
)

// Catalog loads topics and questions from Postgres. Question order is
// randomized by the database, matching the per-fetch shuffle contract.
type Catalog struct {
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) *Catalog {
	return &Catalog{pool: pool}
}

func (c *Catalog) LoadTopics(ctx context.Context) ([]domain.Topic, error) {
	rows, err := c.pool.Query(ctx, `SELECT id, name FROM topics ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.Topic
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	return topics, nil
}

func (c *Catalog) LoadQuestions(ctx context.Context, topicID int64) ([]domain.Question, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT id, question, option_a, option_b, option_c, option_d, correct_answer, explanation
		FROM questions
		WHERE topic_id = $1
		ORDER BY random()`, topicID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q                      domain.Question
			optA, optB, optC, optD string
		)
		if err := rows.Scan(&q.ID, &q.Prompt, &optA, &optB, &optC, &optD, &q.Correct, &q.Explanation); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.TopicID = topicID
		q.Choices = [4]domain.Choice{
			{Label: "a", Text: optA},
			{Label: "b", Text: optB},
			{Label: "c", Text: optC},
			{Label: "d", Text: optD},
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}
