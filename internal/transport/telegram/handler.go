package telegram

import (
	"context"
	"log"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"topic-quiz-bot/internal/app"
	"topic-quiz-bot/internal/domain"
)

const msgBadAction = "Session expired, start over with /start."

// Handler wires bot commands and callback buttons onto the session engine.
// Callbacks are decoded here, once, into typed engine calls.
type Handler struct {
	bot     *tele.Bot
	engine  *app.Engine
	adminID int64
}

func NewHandler(bot *tele.Bot, engine *app.Engine, adminID int64) *Handler {
	return &Handler{bot: bot, engine: engine, adminID: adminID}
}

var (
	btnTopic  = tele.Btn{Unique: "topic"}
	btnAnswer = tele.Btn{Unique: "answer"}
)

// Register binds all routes on the bot.
func (h *Handler) Register() {
	h.bot.Handle("/start", h.onStart)
	h.bot.Handle("/restart", h.onStart)
	h.bot.Handle(&btnTopic, h.onTopic)
	h.bot.Handle(&btnAnswer, h.onAnswer)
}

func (h *Handler) onStart(c tele.Context) error {
	directives, err := h.engine.Topics(context.Background())
	if err != nil {
		// catalog reads have no recovery path
		log.Fatalf("catalog read failed: %v", err)
	}
	return h.render(c, directives)
}

func (h *Handler) onTopic(c tele.Context) error {
	// ack right away so the callback does not go stale
	_ = c.Respond()

	topicID, err := strconv.ParseInt(strings.TrimSpace(c.Data()), 10, 64)
	if err != nil {
		return c.Send(msgBadAction)
	}

	directives, err := h.engine.StartTopic(context.Background(), userKey(c.Sender()), displayName(c.Sender()), topicID)
	if err != nil {
		log.Fatalf("catalog read failed: %v", err)
	}
	return h.render(c, directives)
}

func (h *Handler) onAnswer(c tele.Context) error {
	_ = c.Respond()

	parts := strings.SplitN(c.Data(), "|", 2)
	if len(parts) != 2 {
		return c.Send(msgBadAction)
	}
	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return c.Send(msgBadAction)
	}

	directives, err := h.engine.SubmitAnswer(context.Background(), userKey(c.Sender()), index, parts[1])
	if err != nil {
		log.Fatalf("catalog read failed: %v", err)
	}
	return h.render(c, directives)
}

// render maps each directive to one outbound message. Delivery failures are
// logged and never retried; engine state is already committed.
func (h *Handler) render(c tele.Context, directives []domain.Directive) error {
	for _, d := range directives {
		var err error
		switch d := d.(type) {
		case domain.ShowTopicList:
			err = c.Send(topicListText, topicMarkup(d.Topics))
		case domain.ShowQuestion:
			err = c.Send(questionText(d), questionMarkup(d))
		case domain.ShowFeedback:
			err = c.Send(feedbackText(d))
		case domain.ShowResult:
			err = c.Send(resultText(d))
		case domain.ShowError:
			err = c.Send(d.Message)
		case domain.ReportToAdmin:
			if h.adminID != 0 {
				_, err = h.bot.Send(tele.ChatID(h.adminID), reportText(d))
			}
		}
		if err != nil {
			log.Printf("send failed: %v", err)
		}
	}
	return nil
}

func userKey(u *tele.User) string {
	if u == nil {
		return ""
	}
	return strconv.FormatInt(u.ID, 10)
}

func displayName(u *tele.User) string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return name
}
