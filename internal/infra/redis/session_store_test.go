package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"topic-quiz-bot/internal/app"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	store.Put("u1", app.NewSession("u1", "Alice", 1, nil))
	if !mr.Exists("quiz:session:u1") {
		t.Fatalf("expected redis key to be set")
	}
	if _, ok := store.Get("u1"); !ok {
		t.Fatalf("expected session present")
	}

	store.Delete("u1")
	if mr.Exists("quiz:session:u1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := store.Get("u1"); ok {
		t.Fatalf("expected session removed")
	}
}
