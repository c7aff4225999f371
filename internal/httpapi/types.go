package httpapi

import (
	"time"

	"chapter-quiz/internal/quiz"
)

const (
	StatusCorrect         = "correct"
	StatusIncorrect       = "incorrect"
	StatusAlreadyAnswered = "already_answered"
	StatusInvalidLetter   = "invalid_letter"
)

type banksResponse struct {
	MultipleChoice int `json:"mc_count"`
	TrueFalse      int `json:"tf_count"`
	Total          int `json:"total"`
}

type chapterResponse struct {
	Chapter        string `json:"chapter"`
	MultipleChoice int    `json:"mc"`
	TrueFalse      int    `json:"tf"`
	Total          int    `json:"total"`
}

type chaptersResponse struct {
	Chapters []chapterResponse `json:"chapters"`
}

type countsResponse struct {
	PoolSize     int   `json:"pool_size"`
	Counts       []int `json:"counts"`
	DefaultCount int   `json:"default_count"`
}

type startSessionRequest struct {
	Mode          string   `json:"mode"`
	Chapters      []string `json:"chapters,omitempty"`
	Count         int      `json:"count,omitempty"`
	ChapterFilter string   `json:"chapter_filter,omitempty"`
}

// answerOption is a question option without its correctness flag; feedback
// reveals the correct index only after an answer is committed.
type answerOption struct {
	Letter string `json:"letter"`
	Label  string `json:"label,omitempty"`
	Text   string `json:"text"`
}

type questionView struct {
	Key      string            `json:"key"`
	Type     quiz.QuestionType `json:"type"`
	Question string            `json:"question"`
	Chapter  string            `json:"chapter"`
	Section  string            `json:"section,omitempty"`
	Page     string            `json:"page,omitempty"`
	Note     string            `json:"note,omitempty"`
	Meta     string            `json:"meta,omitempty"`
	Answers  []answerOption    `json:"answers"`
}

type sessionView struct {
	SessionID     string        `json:"session_id"`
	Mode          string        `json:"mode"`
	Position      int           `json:"position"`
	Total         int           `json:"total"`
	Completed     bool          `json:"completed"`
	CorrectCount  int           `json:"correct_count"`
	AnsweredCount int           `json:"answered_count"`
	ScorePercent  int           `json:"score_percent"`
	Locked        bool          `json:"locked"`
	ChosenIndex   *int          `json:"chosen_index,omitempty"`
	Question      *questionView `json:"question,omitempty"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type answerResponse struct {
	Status        string `json:"status"`
	CorrectIndex  *int   `json:"correct_index,omitempty"`
	CorrectLetter string `json:"correct_letter,omitempty"`
	CorrectText   string `json:"correct_text,omitempty"`
	CorrectCount  int    `json:"correct_count"`
	ScorePercent  int    `json:"score_percent"`
}

type completionSummary struct {
	SessionID     string               `json:"session_id"`
	Total         int                  `json:"total"`
	CorrectCount  int                  `json:"correct_count"`
	AnsweredCount int                  `json:"answered_count"`
	ScorePercent  int                  `json:"score_percent"`
	Insights      quiz.Insights        `json:"insights"`
	StrongestHint string               `json:"strongest_hint,omitempty"`
	WeakestHint   string               `json:"weakest_hint,omitempty"`
	Chapters      []quiz.ChapterResult `json:"chapters"`
	Review        []quiz.ReviewRow     `json:"review"`
}

type advanceResponse struct {
	Completed bool               `json:"completed"`
	Session   *sessionView       `json:"session,omitempty"`
	Summary   *completionSummary `json:"summary,omitempty"`
}

type archivedResultResponse struct {
	ResultID      string               `json:"result_id"`
	Mode          string               `json:"mode"`
	ChapterFilter string               `json:"chapter_filter,omitempty"`
	QuestionCount int                  `json:"question_count"`
	AnsweredCount int                  `json:"answered_count"`
	CorrectCount  int                  `json:"correct_count"`
	FinishedAt    time.Time            `json:"finished_at"`
	Chapters      []quiz.ChapterResult `json:"chapters,omitempty"`
}

type archivedResultsResponse struct {
	Results []archivedResultResponse `json:"results"`
}

type chapterAccuracyResponse struct {
	Chapter  string  `json:"chapter"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

type chapterAccuraciesResponse struct {
	Chapters []chapterAccuracyResponse `json:"chapters"`
}

type errorResponse struct {
	Error string `json:"error"`
}
