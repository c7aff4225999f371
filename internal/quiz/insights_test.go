package quiz

import "testing"

func TestComputeInsightsPicksExtremes(t *testing.T) {
	stats := []ChapterResult{
		{Chapter: "Chapter 1", Correct: 9, Total: 10},
		{Chapter: "Chapter 2", Correct: 1, Total: 5},
		{Chapter: "Chapter 3", Correct: 3, Total: 6},
	}

	insights := ComputeInsights(stats)
	if insights.Strongest == nil || insights.Weakest == nil {
		t.Fatalf("expected both insights, got %+v", insights)
	}
	if insights.Strongest.Chapter != "Chapter 1" {
		t.Fatalf("strongest = %q, want Chapter 1", insights.Strongest.Chapter)
	}
	if insights.Weakest.Chapter != "Chapter 2" {
		t.Fatalf("weakest = %q, want Chapter 2", insights.Weakest.Chapter)
	}
	if insights.Strongest.Accuracy != 0.9 {
		t.Fatalf("strongest accuracy = %v, want 0.9", insights.Strongest.Accuracy)
	}
	if insights.Weakest.Accuracy != 0.2 {
		t.Fatalf("weakest accuracy = %v, want 0.2", insights.Weakest.Accuracy)
	}
}

func TestComputeInsightsTieBreaksByTotal(t *testing.T) {
	stats := []ChapterResult{
		{Chapter: "Chapter 1", Correct: 1, Total: 2},
		{Chapter: "Chapter 2", Correct: 5, Total: 10},
	}

	insights := ComputeInsights(stats)
	if insights.Strongest.Chapter != "Chapter 2" {
		t.Fatalf("strongest tie should prefer the larger sample, got %q", insights.Strongest.Chapter)
	}
	if insights.Weakest.Chapter != "Chapter 2" {
		t.Fatalf("weakest tie should prefer the larger sample, got %q", insights.Weakest.Chapter)
	}
}

func TestComputeInsightsEmptyAndSingle(t *testing.T) {
	insights := ComputeInsights(nil)
	if insights.Strongest != nil || insights.Weakest != nil {
		t.Fatalf("expected nil insights for empty stats, got %+v", insights)
	}

	insights = ComputeInsights([]ChapterResult{{Chapter: "Chapter 1", Correct: 2, Total: 4}})
	if insights.Strongest == nil || insights.Weakest == nil {
		t.Fatalf("expected both insights for a single chapter")
	}
	if insights.Strongest.Chapter != insights.Weakest.Chapter {
		t.Fatalf("single chapter should be both strongest and weakest")
	}
}

func TestReviewEntries(t *testing.T) {
	q := Question{
		Type:    TypeMultipleChoice,
		Text:    "Capital of France?",
		Chapter: "Chapter 1",
		Section: "1.1",
		Answers: []Answer{
			{Text: "Paris", Correct: true},
			{Text: "Lyon"},
		},
	}
	history := []HistoryEntry{
		{Question: q, ChosenIndex: 1, CorrectIndex: 0, Correct: false},
	}

	rows := ReviewEntries(history)
	if len(rows) != 1 {
		t.Fatalf("expected 1 review row, got %d", len(rows))
	}
	row := rows[0]
	if row.Number != 1 {
		t.Fatalf("row number = %d, want 1", row.Number)
	}
	if row.ChosenLetter != "B" || row.ChosenText != "Lyon" {
		t.Fatalf("chosen = %s/%s, want B/Lyon", row.ChosenLetter, row.ChosenText)
	}
	if row.CorrectLetter != "A" || row.CorrectText != "Paris" {
		t.Fatalf("correct = %s/%s, want A/Paris", row.CorrectLetter, row.CorrectText)
	}
	if row.Correct {
		t.Fatalf("row marked correct for a wrong answer")
	}
	if row.Meta != "Chapter 1 • 1.1" {
		t.Fatalf("unexpected meta: %q", row.Meta)
	}
}

func TestInsightHints(t *testing.T) {
	if got := StrongestHint(&ChapterInsight{Accuracy: 0.9}); got != "Keep it fresh with mixed quizzes." {
		t.Fatalf("unexpected strong hint at 90%%: %q", got)
	}
	if got := StrongestHint(&ChapterInsight{Accuracy: 0.5}); got != "Good progress—top it up with a short focused review." {
		t.Fatalf("unexpected strong hint at 50%%: %q", got)
	}
	if got := WeakestHint(&ChapterInsight{Accuracy: 0.7}); got != "Not bad—push it higher with targeted questions." {
		t.Fatalf("unexpected weak hint at 70%%: %q", got)
	}
	if got := WeakestHint(&ChapterInsight{Accuracy: 0.2}); got != "Prioritise this chapter next for the biggest score gain." {
		t.Fatalf("unexpected weak hint at 20%%: %q", got)
	}
	if StrongestHint(nil) != "" || WeakestHint(nil) != "" {
		t.Fatalf("nil insight should yield an empty hint")
	}
}
