package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"topic-quiz-bot/internal/domain"
)

const topicListText = "Choose a topic to be quizzed on:"

func topicMarkup(topics []domain.Topic) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(topics))
	for _, topic := range topics {
		rows = append(rows, markup.Row(markup.Data(topic.Name, btnTopic.Unique, strconv.FormatInt(topic.ID, 10))))
	}
	markup.Inline(rows...)
	return markup
}

func questionText(q domain.ShowQuestion) string {
	return fmt.Sprintf("Question %d of %d:\n\n%s", q.Index+1, q.Total, q.Prompt)
}

func questionMarkup(q domain.ShowQuestion) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(q.Choices))
	for _, choice := range q.Choices {
		label := fmt.Sprintf("%s) %s", choice.Label, choice.Text)
		rows = append(rows, markup.Row(markup.Data(label, btnAnswer.Unique, strconv.Itoa(q.Index), choice.Label)))
	}
	markup.Inline(rows...)
	return markup
}

func feedbackText(f domain.ShowFeedback) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d:\n\n%s\nYour answer: %s\n", f.Index+1, f.Prompt, strings.ToUpper(f.Submitted))
	if f.IsCorrect {
		b.WriteString("✅ Correct!")
	} else {
		fmt.Fprintf(&b, "❌ Wrong. Correct answer: %s", strings.ToUpper(f.Correct))
	}
	if f.Explanation != "" {
		fmt.Fprintf(&b, "\n\nℹ %s", f.Explanation)
	}
	return b.String()
}

func resultText(r domain.ShowResult) string {
	text := fmt.Sprintf("🎉 Quiz finished!\n✅ Correct answers: %d/%d\n", r.Summary.Correct, r.Summary.Total)
	switch r.Summary.Tier {
	case domain.TierExcellent:
		text += "🔥 Excellent work!"
	case domain.TierGood:
		text += "😊 Good result!"
	default:
		text += "😕 Try again!"
	}
	return text
}

func reportText(r domain.ReportToAdmin) string {
	return fmt.Sprintf(
		"📊 User results\n👤 Name: %s\n📌 Topic: %d\n✅ Correct: %d/%d\n❌ Mistakes: %d",
		r.DisplayName, r.TopicID, r.Correct, r.Total, r.WrongCount,
	)
}
