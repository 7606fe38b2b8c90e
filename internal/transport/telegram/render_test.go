package telegram

import (
	"strings"
	"testing"

	"topic-quiz-bot/internal/domain"
)

func TestQuestionMarkupEncodesIndexAndLabel(t *testing.T) {
	markup := questionMarkup(domain.ShowQuestion{
		Index:  2,
		Total:  5,
		Prompt: "Pick one",
		Choices: [4]domain.Choice{
			{Label: "a", Text: "First"},
			{Label: "b", Text: "Second"},
			{Label: "c", Text: "Third"},
			{Label: "d", Text: "Fourth"},
		},
	})

	if len(markup.InlineKeyboard) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(markup.InlineKeyboard))
	}
	first := markup.InlineKeyboard[0][0]
	if first.Unique != "answer" {
		t.Fatalf("expected answer unique, got %q", first.Unique)
	}
	if first.Data != "2|a" {
		t.Fatalf("expected data 2|a, got %q", first.Data)
	}
	if first.Text != "a) First" {
		t.Fatalf("unexpected button text %q", first.Text)
	}
}

func TestTopicMarkupOneRowPerTopic(t *testing.T) {
	markup := topicMarkup([]domain.Topic{
		{ID: 1, Name: "History"},
		{ID: 7, Name: "Science"},
	})
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(markup.InlineKeyboard))
	}
	if markup.InlineKeyboard[1][0].Data != "7" {
		t.Fatalf("expected topic id payload, got %q", markup.InlineKeyboard[1][0].Data)
	}
}

func TestFeedbackText(t *testing.T) {
	wrong := feedbackText(domain.ShowFeedback{
		Index:       0,
		Prompt:      "Pick one",
		Submitted:   "b",
		Correct:     "a",
		IsCorrect:   false,
		Explanation: "Because.",
	})
	if !strings.Contains(wrong, "Your answer: B") {
		t.Fatalf("expected submitted echo, got %q", wrong)
	}
	if !strings.Contains(wrong, "Correct answer: A") {
		t.Fatalf("expected correct label, got %q", wrong)
	}
	if !strings.Contains(wrong, "Because.") {
		t.Fatalf("expected explanation, got %q", wrong)
	}

	right := feedbackText(domain.ShowFeedback{Prompt: "Pick one", Submitted: "a", Correct: "a", IsCorrect: true})
	if !strings.Contains(right, "✅ Correct!") {
		t.Fatalf("expected correct marker, got %q", right)
	}
}

func TestResultTextTiers(t *testing.T) {
	cases := []struct {
		tier domain.Tier
		want string
	}{
		{domain.TierExcellent, "Excellent work"},
		{domain.TierGood, "Good result"},
		{domain.TierTryAgain, "Try again"},
	}
	for _, tc := range cases {
		got := resultText(domain.ShowResult{Summary: domain.Summary{Correct: 1, Total: 2, Tier: tc.tier}})
		if !strings.Contains(got, tc.want) {
			t.Fatalf("tier %q: expected %q in %q", tc.tier, tc.want, got)
		}
	}
}
