package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"topic-quiz-bot/internal/domain"
)

// CatalogLoader fetches topic and question rows from a backing store.
type CatalogLoader interface {
	LoadTopics(ctx context.Context) ([]domain.Topic, error)
	LoadQuestions(ctx context.Context, topicID int64) ([]domain.Question, error)
}

// Catalog caches the question catalog in Redis and falls back to a loader
// on cache miss. Entries are stored as JSON:
//
//	SET catalog:topics              [topics...]
//	SET catalog:topic:{id}:questions [questions...]
//
// FetchQuestions shuffles the decoded set on every call, so the cache never
// fixes a presentation order.
type Catalog struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewCatalog(client *redis.Client, loader CatalogLoader, ttl time.Duration) *Catalog {
	return &Catalog{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *Catalog) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	if topics, ok := c.cachedTopics(ctx); ok {
		return topics, nil
	}

	result, err, _ := c.sf.Do(topicsKey, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if topics, ok := c.cachedTopics(ctx); ok {
			return topics, nil
		}

		topics, err := c.loader.LoadTopics(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, topicsKey, topics)
		return topics, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Topic), nil
}

func (c *Catalog) FetchQuestions(ctx context.Context, topicID int64) ([]domain.Question, error) {
	key := questionsKey(topicID)
	if questions, ok := c.cachedQuestions(ctx, key); ok {
		return c.shuffled(questions), nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if questions, ok := c.cachedQuestions(ctx, key); ok {
			return questions, nil
		}

		questions, err := c.loader.LoadQuestions(ctx, topicID)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, questions)
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return c.shuffled(result.([]domain.Question)), nil
}

func (c *Catalog) cachedTopics(ctx context.Context) ([]domain.Topic, bool) {
	raw, err := c.client.Get(ctx, topicsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var topics []domain.Topic
	if err := json.Unmarshal(raw, &topics); err != nil {
		return nil, false
	}
	return topics, true
}

func (c *Catalog) cachedQuestions(ctx context.Context, key string) ([]domain.Question, bool) {
	// misses and redis failures look the same; the loader is authoritative
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, false
	}
	return questions, true
}

// store writes a cache entry best-effort; a failed write only costs a reload.
func (c *Catalog) store(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
}

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

const topicsKey = "catalog:topics"

func questionsKey(topicID int64) string {
	return "catalog:topic:" + strconv.FormatInt(topicID, 10) + ":questions"
}
