package quiz

// ChapterInsight summarizes one chapter's accuracy within a finished (or
// in-progress) session.
type ChapterInsight struct {
	Chapter  string  `json:"chapter"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// Insights carries the strongest and weakest chapter of a run; both are nil
// when nothing was answered.
type Insights struct {
	Strongest *ChapterInsight `json:"strongest,omitempty"`
	Weakest   *ChapterInsight `json:"weakest,omitempty"`
}

// ReviewRow is one entry of the post-quiz answer review, self-contained so
// renderers never touch session internals.
type ReviewRow struct {
	Number        int    `json:"number"`
	Question      string `json:"question"`
	Chapter       string `json:"chapter"`
	Section       string `json:"section,omitempty"`
	Page          string `json:"page,omitempty"`
	Meta          string `json:"meta,omitempty"`
	Correct       bool   `json:"correct"`
	ChosenLetter  string `json:"chosen_letter"`
	ChosenText    string `json:"chosen_text"`
	CorrectLetter string `json:"correct_letter"`
	CorrectText   string `json:"correct_text"`
}

// ComputeInsights picks the strongest and weakest chapter from per-chapter
// stats. Strongest: highest accuracy, ties broken by higher total. Weakest:
// lowest accuracy, ties broken by higher total — a heavily sampled chapter
// tied on accuracy is the better drill target. Remaining ties keep
// first-answered order.
func ComputeInsights(stats []ChapterResult) Insights {
	if len(stats) == 0 {
		return Insights{}
	}

	entries := make([]ChapterInsight, 0, len(stats))
	for _, stat := range stats {
		accuracy := 0.0
		if stat.Total > 0 {
			accuracy = float64(stat.Correct) / float64(stat.Total)
		}
		entries = append(entries, ChapterInsight{
			Chapter:  stat.Chapter,
			Correct:  stat.Correct,
			Total:    stat.Total,
			Accuracy: accuracy,
		})
	}

	strongest := entries[0]
	weakest := entries[0]
	for _, entry := range entries[1:] {
		if entry.Accuracy > strongest.Accuracy ||
			(entry.Accuracy == strongest.Accuracy && entry.Total > strongest.Total) {
			strongest = entry
		}
		if entry.Accuracy < weakest.Accuracy ||
			(entry.Accuracy == weakest.Accuracy && entry.Total > weakest.Total) {
			weakest = entry
		}
	}

	return Insights{Strongest: &strongest, Weakest: &weakest}
}

// ReviewEntries flattens an answer history into renderable review rows.
func ReviewEntries(history []HistoryEntry) []ReviewRow {
	rows := make([]ReviewRow, 0, len(history))
	for idx, entry := range history {
		q := entry.Question
		rows = append(rows, ReviewRow{
			Number:        idx + 1,
			Question:      q.Text,
			Chapter:       q.Chapter,
			Section:       q.Section,
			Page:          q.Page,
			Meta:          q.Meta(),
			Correct:       entry.Correct,
			ChosenLetter:  AnswerLetter(entry.ChosenIndex),
			ChosenText:    q.Answers[entry.ChosenIndex].Text,
			CorrectLetter: AnswerLetter(entry.CorrectIndex),
			CorrectText:   q.Answers[entry.CorrectIndex].Text,
		})
	}
	return rows
}

// StrongestHint mirrors the result-screen coaching line for the strongest
// chapter.
func StrongestHint(insight *ChapterInsight) string {
	if insight == nil {
		return ""
	}
	if roundTo(insight.Accuracy*100, 1) >= 80 {
		return "Keep it fresh with mixed quizzes."
	}
	return "Good progress—top it up with a short focused review."
}

// WeakestHint mirrors the result-screen coaching line for the weakest
// chapter.
func WeakestHint(insight *ChapterInsight) string {
	if insight == nil {
		return ""
	}
	if roundTo(insight.Accuracy*100, 1) >= 70 {
		return "Not bad—push it higher with targeted questions."
	}
	return "Prioritise this chapter next for the biggest score gain."
}
