package quiz

import (
	"context"
	"errors"
	"time"
)

var ErrResultNotFound = errors.New("result not found")

// SessionResult is the archived summary of one completed run.
type SessionResult struct {
	ResultID      string
	Mode          Mode
	ChapterFilter string
	QuestionCount int
	AnsweredCount int
	CorrectCount  int
	FinishedAt    time.Time
	Chapters      []ChapterResult
}

// ChapterAccuracy aggregates one chapter's results across archived runs.
type ChapterAccuracy struct {
	Chapter  string
	Correct  int
	Total    int
	Accuracy float64
}

// ResultRepository archives completed runs. The live session never reads
// from it; it exists for run history and cross-run chapter accuracy.
type ResultRepository interface {
	SaveResult(ctx context.Context, result SessionResult) error
	GetResult(ctx context.Context, resultID string) (SessionResult, error)
	ListRecentResults(ctx context.Context, limit int) ([]SessionResult, error)
	ChapterAccuracy(ctx context.Context) ([]ChapterAccuracy, error)
}

// ResultFromSession snapshots a session into an archivable result.
func ResultFromSession(resultID string, mode Mode, chapterFilter string, session *Session, finishedAt time.Time) SessionResult {
	return SessionResult{
		ResultID:      resultID,
		Mode:          mode,
		ChapterFilter: chapterFilter,
		QuestionCount: session.Len(),
		AnsweredCount: session.AnsweredCount(),
		CorrectCount:  session.CorrectCount(),
		FinishedAt:    finishedAt,
		Chapters:      session.ChapterStats(),
	}
}
