package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"chapter-quiz/internal/quiz"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func parseIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return parsed, nil
}

// parseChaptersParam reads a comma-separated chapter list; an absent
// parameter means "all chapters", returned as nil.
func parseChaptersParam(r *http.Request) []string {
	raw := r.URL.Query().Get("chapters")
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	chapters := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			chapters = append(chapters, trimmed)
		}
	}
	return chapters
}

func parseMode(raw string) (quiz.Mode, error) {
	mode := quiz.Mode(strings.ToLower(strings.TrimSpace(raw)))
	if mode == "" {
		return quiz.ModeMultipleChoice, nil
	}
	if !mode.Valid() {
		return "", errors.New("mode must be one of mc, tf, mix")
	}
	return mode, nil
}

// catalogFor builds a per-request catalog: nil chapters selects everything,
// an explicit list selects exactly those labels.
func catalogFor(bankMC, bankTF []quiz.Question, chapters []string) *quiz.Catalog {
	catalog := quiz.BuildCatalog(bankMC, bankTF)
	if chapters == nil {
		return catalog
	}
	catalog.SelectNone()
	for _, chapter := range chapters {
		catalog.SetSelected(chapter, true)
	}
	return catalog
}

func toQuestionView(q quiz.Question) *questionView {
	answers := make([]answerOption, 0, len(q.Answers))
	for idx, answer := range q.Answers {
		answers = append(answers, answerOption{
			Letter: quiz.AnswerLetter(idx),
			Label:  answer.Label,
			Text:   answer.Text,
		})
	}
	return &questionView{
		Key:      q.Key(),
		Type:     q.Type,
		Question: q.Text,
		Chapter:  q.Chapter,
		Section:  q.Section,
		Page:     q.Page,
		Note:     q.Note,
		Meta:     q.Meta(),
		Answers:  answers,
	}
}

func toSessionView(live *liveSession) sessionView {
	session := live.session
	view := sessionView{
		SessionID:     live.id,
		Mode:          string(live.mode),
		Position:      session.Position(),
		Total:         session.Len(),
		Completed:     session.Completed(),
		CorrectCount:  session.CorrectCount(),
		AnsweredCount: session.AnsweredCount(),
		ScorePercent:  session.ScorePercent(),
	}

	if question, ok := session.Current(); ok {
		view.Question = toQuestionView(question)
		if chosen, locked := session.Selection(); locked {
			view.Locked = true
			view.ChosenIndex = &chosen
		}
	}
	return view
}

func toCompletionSummary(live *liveSession) *completionSummary {
	session := live.session
	insights := quiz.ComputeInsights(session.ChapterStats())
	return &completionSummary{
		SessionID:     live.id,
		Total:         session.Len(),
		CorrectCount:  session.CorrectCount(),
		AnsweredCount: session.AnsweredCount(),
		ScorePercent:  session.ScorePercent(),
		Insights:      insights,
		StrongestHint: quiz.StrongestHint(insights.Strongest),
		WeakestHint:   quiz.WeakestHint(insights.Weakest),
		Chapters:      session.ChapterStats(),
		Review:        quiz.ReviewEntries(session.History()),
	}
}

func toArchivedResult(result quiz.SessionResult, includeChapters bool) archivedResultResponse {
	response := archivedResultResponse{
		ResultID:      result.ResultID,
		Mode:          string(result.Mode),
		ChapterFilter: result.ChapterFilter,
		QuestionCount: result.QuestionCount,
		AnsweredCount: result.AnsweredCount,
		CorrectCount:  result.CorrectCount,
		FinishedAt:    result.FinishedAt,
	}
	if includeChapters {
		response.Chapters = result.Chapters
	}
	return response
}
