package app

import (
	"context"
	"errors"
	"strings"

	"topic-quiz-bot/internal/domain"
)

// SessionStore abstracts how active sessions are kept (in-memory, Redis-marked, etc).
// Put replaces any existing session for the user.
type SessionStore interface {
	Put(userID string, session *Session)
	Get(userID string) (*Session, bool)
	Delete(userID string)
}

// QuestionSource is a read-only provider of topics and question sets.
// FetchQuestions returns an empty slice (not an error) for topics without
// questions, and may return a different permutation on every call.
type QuestionSource interface {
	ListTopics(ctx context.Context) ([]domain.Topic, error)
	FetchQuestions(ctx context.Context, topicID int64) ([]domain.Question, error)
}

// Engine owns all active quiz sessions and drives them through the
// NoSession -> InProgress -> removed lifecycle. It performs no I/O beyond
// catalog reads; every outcome is returned as directives for the transport.
type Engine struct {
	sessions SessionStore
	source   QuestionSource
}

func NewEngine(store SessionStore, source QuestionSource) *Engine {
	return &Engine{sessions: store, source: source}
}

// User-visible messages. Catalog failures are returned as errors instead;
// callers treat those as fatal.
const (
	msgEmptyTopic = "There are no questions for this topic yet."
	msgExpired    = "Session expired, start over with /start."
	msgStale      = "That question was already answered."
)

// Topics builds the topic picker.
func (e *Engine) Topics(ctx context.Context) ([]domain.Directive, error) {
	topics, err := e.source.ListTopics(ctx)
	if err != nil {
		return nil, err
	}
	return []domain.Directive{domain.ShowTopicList{Topics: topics}}, nil
}

// StartTopic creates (or silently replaces) the user's session and presents
// the first question. An empty topic yields an error directive and leaves
// any prior in-progress session untouched.
func (e *Engine) StartTopic(ctx context.Context, userID, displayName string, topicID int64) ([]domain.Directive, error) {
	questions, err := e.source.FetchQuestions(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return []domain.Directive{domain.ShowError{Message: msgEmptyTopic}}, nil
	}

	session := newSession(userID, displayName, topicID, questions)
	e.sessions.Put(userID, session)
	return []domain.Directive{session.question()}, nil
}

// SubmitAnswer judges one answer and advances the session. The submitted
// index must match the session's own cursor; replayed or double-tapped
// callbacks are rejected without touching state. On the final question the
// session is removed before the result directives are returned.
func (e *Engine) SubmitAnswer(ctx context.Context, userID string, index int, choice string) ([]domain.Directive, error) {
	label := strings.ToLower(strings.TrimSpace(choice))
	if !validLabel(label) {
		return []domain.Directive{domain.ShowError{Message: msgExpired}}, nil
	}

	session, ok := e.sessions.Get(userID)
	if !ok {
		return []domain.Directive{domain.ShowError{Message: msgExpired}}, nil
	}

	outcome, err := session.submit(index, label)
	if err != nil {
		if errors.Is(err, domain.ErrStaleAnswer) {
			return []domain.Directive{domain.ShowError{Message: msgStale}}, nil
		}
		return []domain.Directive{domain.ShowError{Message: msgExpired}}, nil
	}

	out := []domain.Directive{outcome.feedback}
	if outcome.summary != nil {
		e.sessions.Delete(userID)
		out = append(out,
			domain.ShowResult{Summary: *outcome.summary},
			domain.ReportToAdmin{
				DisplayName: session.displayName,
				TopicID:     session.topicID,
				Correct:     outcome.summary.Correct,
				Total:       outcome.summary.Total,
				WrongCount:  outcome.summary.WrongCount,
			},
		)
	} else {
		out = append(out, *outcome.next)
	}
	return out, nil
}

func validLabel(label string) bool {
	for _, l := range domain.ChoiceLabels {
		if label == l {
			return true
		}
	}
	return false
}
