package cli

import "testing"

func TestValidateSeed(t *testing.T) {
	valid := seedFile{Topics: []seedTopic{{
		Name: "History",
		Questions: []seedQuestion{
			{Prompt: "Pick one", A: "1", B: "2", C: "3", D: "4", Correct: "b"},
		},
	}}}
	if err := validateSeed(valid); err != nil {
		t.Fatalf("expected valid seed, got %v", err)
	}

	badLabel := valid
	badLabel.Topics = []seedTopic{{
		Name:      "History",
		Questions: []seedQuestion{{Prompt: "Pick one", Correct: "x"}},
	}}
	if err := validateSeed(badLabel); err == nil {
		t.Fatalf("expected error for bad correct label")
	}

	noName := seedFile{Topics: []seedTopic{{Name: ""}}}
	if err := validateSeed(noName); err == nil {
		t.Fatalf("expected error for empty topic name")
	}

	noPrompt := seedFile{Topics: []seedTopic{{
		Name:      "History",
		Questions: []seedQuestion{{Prompt: "", Correct: "a"}},
	}}}
	if err := validateSeed(noPrompt); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
}
