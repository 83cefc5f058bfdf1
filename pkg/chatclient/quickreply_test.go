package chatclient

import (
	"testing"

	"fertilitycare/pkg/api"
)

func TestSuggestRepliesKeywordGroups(t *testing.T) {
	tests := []struct {
		name          string
		assistantText string
		wantFirst     string
	}{
		{
			name:          "assessment keywords",
			assistantText: "A fertility assessment reviews your health indicators.",
			wantFirst:     "What are common fertility tests?",
		},
		{
			name:          "cycle keywords",
			assistantText: "Tracking your cycle daily gives the clearest picture.",
			wantFirst:     "What's the best tracking method?",
		},
		{
			name:          "testing keywords",
			assistantText: "Your doctor may order a diagnostic blood test.",
			wantFirst:     "Are these tests painful?",
		},
		{
			name:          "partner keywords",
			assistantText: "Your partner can offer support during this process.",
			wantFirst:     "How can we reduce stress?",
		},
		{
			name:          "no keywords falls back to default",
			assistantText: "I'm glad that was helpful.",
			wantFirst:     "Tell me more about fertility testing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestReplies(tt.assistantText, api.LanguageEnglish)
			if len(got) != 3 {
				t.Fatalf("Expected 3 replies, got %d", len(got))
			}
			if got[0] != tt.wantFirst {
				t.Errorf("Expected first reply %q, got %q", tt.wantFirst, got[0])
			}
		})
	}
}

func TestSuggestRepliesCaseInsensitive(t *testing.T) {
	upper := SuggestReplies("TRACKING YOUR CYCLE IS USEFUL.", api.LanguageEnglish)
	lower := SuggestReplies("tracking your cycle is useful.", api.LanguageEnglish)
	for i := range upper {
		if upper[i] != lower[i] {
			t.Errorf("Reply %d differs by case: %q vs %q", i, upper[i], lower[i])
		}
	}
	if upper[0] != "What's the best tracking method?" {
		t.Errorf("Expected cycle group, got %q", upper[0])
	}
}

func TestSuggestRepliesLocalized(t *testing.T) {
	text := "A fertility assessment reviews your health indicators."
	en := SuggestReplies(text, api.LanguageEnglish)
	hi := SuggestReplies(text, api.LanguageHindi)
	gu := SuggestReplies(text, api.LanguageGujarati)

	for i := range en {
		if en[i] == hi[i] {
			t.Errorf("Expected Hindi reply %d to differ from English", i)
		}
		if en[i] == gu[i] {
			t.Errorf("Expected Gujarati reply %d to differ from English", i)
		}
	}
}

func TestSuggestRepliesEnglishFallback(t *testing.T) {
	// The default group has no Gujarati variant yet; the English prompts
	// are served rather than nothing.
	got := SuggestReplies("I'm glad that was helpful.", api.LanguageGujarati)
	want := SuggestReplies("I'm glad that was helpful.", api.LanguageEnglish)
	if len(got) != len(want) {
		t.Fatalf("Expected %d replies, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Reply %d: expected English fallback %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSuggestRepliesPure(t *testing.T) {
	first := SuggestReplies("Tracking your cycle is useful.", api.LanguageHindi)
	first[0] = "mutated"
	second := SuggestReplies("Tracking your cycle is useful.", api.LanguageHindi)
	if second[0] == "mutated" {
		t.Error("Expected SuggestReplies to return an independent copy")
	}
}
