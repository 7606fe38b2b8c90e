package app

import (
	"strings"
	"sync"
	"time"

	"topic-quiz-bot/internal/domain"
)

// Session is one user's in-progress quiz attempt. The question order is
// frozen at creation; only submit mutates it, under the session mutex.
type Session struct {
	userID      string
	displayName string
	topicID     int64
	createdAt   time.Time
	now         func() time.Time

	mu           sync.Mutex
	questions    []domain.Question
	currentIndex int
	correctCount int
	wrongAnswers []domain.WrongAnswer
}

// NewSession is exported for infrastructure layers and their tests.
func NewSession(userID, displayName string, topicID int64, questions []domain.Question) *Session {
	return newSession(userID, displayName, topicID, questions)
}

func newSession(userID, displayName string, topicID int64, questions []domain.Question) *Session {
	return newSessionWithClock(userID, displayName, topicID, questions, time.Now)
}

// newSessionWithClock allows deterministic timestamps in tests.
func newSessionWithClock(userID, displayName string, topicID int64, questions []domain.Question, now func() time.Time) *Session {
	return &Session{
		userID:      userID,
		displayName: displayName,
		topicID:     topicID,
		createdAt:   now(),
		now:         now,
		questions:   questions,
	}
}

// TopicID reports the topic this session was started for.
func (s *Session) TopicID() int64 { return s.topicID }

// Progress reports the cursor, correct count and question total.
func (s *Session) Progress() (answered, correct, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndex, s.correctCount, len(s.questions)
}

// WrongAnswers returns a copy of the missed questions so far.
func (s *Session) WrongAnswers() []domain.WrongAnswer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WrongAnswer, len(s.wrongAnswers))
	copy(out, s.wrongAnswers)
	return out
}

// question builds the directive for the question at the current cursor.
func (s *Session) question() domain.ShowQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questionLocked()
}

func (s *Session) questionLocked() domain.ShowQuestion {
	q := s.questions[s.currentIndex]
	return domain.ShowQuestion{
		Index:   s.currentIndex,
		Total:   len(s.questions),
		Prompt:  q.Prompt,
		Choices: q.Choices,
	}
}

type submitOutcome struct {
	feedback domain.ShowFeedback
	next     *domain.ShowQuestion // nil when the session finished
	summary  *domain.Summary      // set when the session finished
}

// submit judges the answer at the session's own cursor and advances it by
// one. Compare-and-advance: a submitted index that does not equal the
// cursor (replayed callback, double tap) is rejected with ErrStaleAnswer
// and the session is left unchanged.
func (s *Session) submit(index int, label string) (submitOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentIndex >= len(s.questions) {
		// Terminal sessions are removed by the engine; hitting this means
		// the store handed out a session mid-removal.
		return submitOutcome{}, domain.ErrNoSession
	}
	if index != s.currentIndex {
		return submitOutcome{}, domain.ErrStaleAnswer
	}

	q := s.questions[s.currentIndex]
	correct := strings.EqualFold(label, q.Correct)
	if correct {
		s.correctCount++
	} else {
		s.wrongAnswers = append(s.wrongAnswers, domain.WrongAnswer{Prompt: q.Prompt, Submitted: label})
	}
	s.currentIndex++

	outcome := submitOutcome{
		feedback: domain.ShowFeedback{
			Index:       index,
			Prompt:      q.Prompt,
			Submitted:   label,
			Correct:     strings.ToLower(q.Correct),
			IsCorrect:   correct,
			Explanation: q.Explanation,
		},
	}

	if s.currentIndex == len(s.questions) {
		summary := domain.Summary{
			Correct:    s.correctCount,
			Total:      len(s.questions),
			Tier:       domain.TierFor(s.correctCount, len(s.questions)),
			WrongCount: len(s.wrongAnswers),
		}
		outcome.summary = &summary
	} else {
		next := s.questionLocked()
		outcome.next = &next
	}
	return outcome, nil
}
