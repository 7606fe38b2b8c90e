package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"topic-quiz-bot/internal/app"
	"topic-quiz-bot/internal/domain"
	"topic-quiz-bot/internal/infra/memory"
)

func TestWebSocketQuizFlow(t *testing.T) {
	store := memory.NewSessionStore()
	catalog := memory.NewCatalog(memory.NewStaticCatalog(sampleTopics(), sampleQuestions()), time.Minute)
	engine := app.NewEngine(store, catalog)
	wsHandler := NewWSHandler(engine)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?userId=u1&name=Alice"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Topic picker arrives on connect.
	msgType, _ := readNext(conn, t, "topics")
	if msgType != "topics" {
		t.Fatalf("expected topics, got %s", msgType)
	}

	start := map[string]any{
		"type":    "start",
		"payload": map[string]any{"topicId": 1},
	}
	if err := conn.WriteJSON(start); err != nil {
		t.Fatalf("write start: %v", err)
	}

	msgType, payload := readNext(conn, t, "question")
	if msgType != "question" {
		t.Fatalf("expected question, got %s", msgType)
	}
	if payload["prompt"] != "In which year did the war end?" {
		t.Fatalf("unexpected prompt %v", payload["prompt"])
	}

	answer := map[string]any{
		"type":    "answer",
		"payload": map[string]any{"index": 0, "choice": "b"},
	}
	if err := conn.WriteJSON(answer); err != nil {
		t.Fatalf("write answer: %v", err)
	}

	msgType, payload = readNext(conn, t, "feedback")
	if msgType != "feedback" || payload["isCorrect"] != true {
		t.Fatalf("expected correct feedback, got %s %v", msgType, payload)
	}

	msgType, payload = readNext(conn, t, "result")
	if msgType != "result" {
		t.Fatalf("expected result, got %s", msgType)
	}
	if payload["tier"] != string(domain.TierExcellent) {
		t.Fatalf("expected excellent tier, got %v", payload["tier"])
	}
}

func TestWebSocketEmptyTopic(t *testing.T) {
	store := memory.NewSessionStore()
	catalog := memory.NewCatalog(memory.NewStaticCatalog(sampleTopics(), sampleQuestions()), time.Minute)
	engine := app.NewEngine(store, catalog)
	wsHandler := NewWSHandler(engine)

	server := httptest.NewServer(http.HandlerFunc(wsHandler.ServeWS))
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "?userId=u1&name=Alice"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readNext(conn, t, "topics")

	start := map[string]any{
		"type":    "start",
		"payload": map[string]any{"topicId": 99},
	}
	if err := conn.WriteJSON(start); err != nil {
		t.Fatalf("write start: %v", err)
	}
	msgType, _ := readNext(conn, t, "error")
	if msgType != "error" {
		t.Fatalf("expected error for empty topic, got %s", msgType)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string `json:"type"`
		Payload any    `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	payload, _ := msg.Payload.(map[string]any)
	return msg.Type, payload
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
		},
	}
}
