package domain

// ChoiceLabels lists the four answer labels in presentation order.
var ChoiceLabels = [4]string{"a", "b", "c", "d"}

// Topic is a named category grouping questions.
type Topic struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Choice pairs an answer label with its display text.
type Choice struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question models an MCQ question with exactly one correct label.
// Records are immutable once fetched from the catalog.
type Question struct {
	ID          int64     `json:"id"`
	TopicID     int64     `json:"topicId"`
	Prompt      string    `json:"prompt"`
	Choices     [4]Choice `json:"choices"` // labels a..d in order
	Correct     string    `json:"correct"` // one of ChoiceLabels
	Explanation string    `json:"explanation"`
}

// WrongAnswer records a missed question for the end-of-quiz report.
type WrongAnswer struct {
	Prompt    string `json:"prompt"`
	Submitted string `json:"submitted"`
}

// Tier buckets a final score.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierTryAgain  Tier = "try again"
)

// TierFor derives the result tier from the score ratio. A perfect score is
// excellent; strictly more than half is good; everything else is try again.
func TierFor(correct, total int) Tier {
	switch {
	case correct == total:
		return TierExcellent
	case correct > total/2:
		return TierGood
	default:
		return TierTryAgain
	}
}

// Summary is the terminal outcome of a quiz session.
type Summary struct {
	Correct    int  `json:"correct"`
	Total      int  `json:"total"`
	Tier       Tier `json:"tier"`
	WrongCount int  `json:"wrongCount"`
}
