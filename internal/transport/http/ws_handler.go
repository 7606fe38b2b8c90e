package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"topic-quiz-bot/internal/app"
	"topic-quiz-bot/internal/domain"
)

// WSHandler exposes the quiz engine to browser clients over a websocket.
type WSHandler struct {
	engine   *app.Engine
	upgrader websocket.Upgrader
}

func NewWSHandler(engine *app.Engine) *WSHandler {
	return &WSHandler{
		engine: engine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	TopicID int64 `json:"topicId"`
}

type answerPayload struct {
	Index  int    `json:"index"`
	Choice string `json:"choice"`
}

type questionPayload struct {
	Index   int             `json:"index"`
	Total   int             `json:"total"`
	Prompt  string          `json:"prompt"`
	Choices []domain.Choice `json:"choices"`
}

type feedbackPayload struct {
	Index       int    `json:"index"`
	Prompt      string `json:"prompt"`
	Submitted   string `json:"submitted"`
	Correct     string `json:"correct"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz
// engine. Each inbound action yields one or more directive envelopes.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	name := r.URL.Query().Get("name")
	if userID == "" || name == "" {
		http.Error(w, "missing userId or name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	// New connections start at the topic picker, like the bot's /start.
	h.dispatch(send, h.topics(r))

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "topics":
			h.dispatch(send, h.topics(r))
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid start payload"}}
				continue
			}
			directives, err := h.engine.StartTopic(r.Context(), userID, name, payload.TopicID)
			if err != nil {
				// catalog reads have no recovery path
				log.Fatalf("catalog read failed: %v", err)
			}
			h.dispatch(send, directives)
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			directives, err := h.engine.SubmitAnswer(r.Context(), userID, payload.Index, payload.Choice)
			if err != nil {
				log.Fatalf("catalog read failed: %v", err)
			}
			h.dispatch(send, directives)
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) topics(r *http.Request) []domain.Directive {
	directives, err := h.engine.Topics(r.Context())
	if err != nil {
		log.Fatalf("catalog read failed: %v", err)
	}
	return directives
}

// dispatch maps directives to outbound envelopes. Admin reports have no
// user-facing surface here and are only logged.
func (h *WSHandler) dispatch(send chan<- outboundMessage[any], directives []domain.Directive) {
	for _, d := range directives {
		switch d := d.(type) {
		case domain.ShowTopicList:
			send <- outboundMessage[any]{Type: "topics", Payload: d.Topics}
		case domain.ShowQuestion:
			send <- outboundMessage[any]{Type: "question", Payload: questionPayload{
				Index:   d.Index,
				Total:   d.Total,
				Prompt:  d.Prompt,
				Choices: d.Choices[:],
			}}
		case domain.ShowFeedback:
			send <- outboundMessage[any]{Type: "feedback", Payload: feedbackPayload{
				Index:       d.Index,
				Prompt:      d.Prompt,
				Submitted:   d.Submitted,
				Correct:     d.Correct,
				IsCorrect:   d.IsCorrect,
				Explanation: d.Explanation,
			}}
		case domain.ShowResult:
			send <- outboundMessage[any]{Type: "result", Payload: d.Summary}
		case domain.ShowError:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: d.Message}}
		case domain.ReportToAdmin:
			log.Printf("quiz finished: user=%s topic=%d score=%d/%d wrong=%d",
				d.DisplayName, d.TopicID, d.Correct, d.Total, d.WrongCount)
		}
	}
}
