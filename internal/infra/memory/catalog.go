package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"topic-quiz-bot/internal/domain"
)

// CatalogLoader fetches topic and question rows from a backing store.
type CatalogLoader interface {
	LoadTopics(ctx context.Context) ([]domain.Topic, error)
	LoadQuestions(ctx context.Context, topicID int64) ([]domain.Question, error)
}

// Catalog caches the question catalog with TTL to avoid repeated DB hits.
// Every FetchQuestions call returns a freshly shuffled copy so a replayed
// topic feels new.
type Catalog struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu        sync.RWMutex
	topics    cachedTopics
	questions map[int64]cachedQuestions
}

type cachedTopics struct {
	topics    []domain.Topic
	expiresAt time.Time
}

type cachedQuestions struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewCatalog(loader CatalogLoader, ttl time.Duration) *Catalog {
	return &Catalog{
		loader:    loader,
		ttl:       ttl,
		clock:     time.Now,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		questions: make(map[int64]cachedQuestions),
	}
}

func (c *Catalog) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	now := c.clock()

	c.mu.RLock()
	if c.topics.topics != nil && c.topics.expiresAt.After(now) {
		topics := c.topics.topics
		c.mu.RUnlock()
		return topics, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("topics", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.topics.topics != nil && c.topics.expiresAt.After(now) {
			topics := c.topics.topics
			c.mu.RUnlock()
			return topics, nil
		}
		c.mu.RUnlock()

		topics, err := c.loader.LoadTopics(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.topics = cachedTopics{topics: topics, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return topics, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Topic), nil
}

func (c *Catalog) FetchQuestions(ctx context.Context, topicID int64) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.questions[topicID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return c.shuffled(entry.questions), nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(questionsKey(topicID), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.questions[topicID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.questions, nil
		}
		c.mu.RUnlock()

		questions, err := c.loader.LoadQuestions(ctx, topicID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.questions[topicID] = cachedQuestions{questions: questions, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return c.shuffled(result.([]domain.Question)), nil
}

// shuffled returns a permuted copy; the cached slice is never reordered.
func (c *Catalog) shuffled(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	c.rndMu.Lock()
	c.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	c.rndMu.Unlock()
	return out
}

func (c *Catalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func questionsKey(topicID int64) string {
	return "questions:" + strconv.FormatInt(topicID, 10)
}
