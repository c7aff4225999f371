package quiz

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore archives completed runs in a local sqlite file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "results.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	// No FK constraints: result rows and their chapter rows are only ever
	// written together in one transaction.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS results (
			result_id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			chapter_filter TEXT NOT NULL DEFAULT '',
			question_count INTEGER NOT NULL,
			answered_count INTEGER NOT NULL,
			correct_count INTEGER NOT NULL,
			finished_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS result_chapters (
			result_id TEXT NOT NULL,
			chapter TEXT NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (result_id, chapter)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_finished_at ON results(finished_at_unix DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_result_chapters_chapter ON result_chapters(chapter);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveResult writes a run summary and its chapter rows in one transaction.
// Re-saving the same result id replaces it wholesale.
func (s *SQLiteStore) SaveResult(ctx context.Context, result SessionResult) error {
	if result.ResultID == "" {
		return errors.New("result id is required")
	}
	if result.FinishedAt.IsZero() {
		result.FinishedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM result_chapters WHERE result_id = ?`, result.ResultID); err != nil {
		return err
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO results (result_id, mode, chapter_filter, question_count, answered_count, correct_count, finished_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.ResultID,
		string(result.Mode),
		result.ChapterFilter,
		result.QuestionCount,
		result.AnsweredCount,
		result.CorrectCount,
		result.FinishedAt.UnixNano(),
	)
	if err != nil {
		return err
	}

	for idx, chapter := range result.Chapters {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO result_chapters (result_id, chapter, correct, total, position) VALUES (?, ?, ?, ?, ?)`,
			result.ResultID,
			chapter.Chapter,
			chapter.Correct,
			chapter.Total,
			idx,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetResult(ctx context.Context, resultID string) (SessionResult, error) {
	var (
		result         SessionResult
		mode           string
		finishedAtUnix int64
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT result_id, mode, chapter_filter, question_count, answered_count, correct_count, finished_at_unix
		 FROM results WHERE result_id = ?`,
		resultID,
	).Scan(&result.ResultID, &mode, &result.ChapterFilter, &result.QuestionCount, &result.AnsweredCount, &result.CorrectCount, &finishedAtUnix)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionResult{}, ErrResultNotFound
		}
		return SessionResult{}, err
	}
	result.Mode = Mode(mode)
	result.FinishedAt = time.Unix(0, finishedAtUnix).UTC()

	result.Chapters, err = s.resultChapters(ctx, resultID)
	if err != nil {
		return SessionResult{}, err
	}
	return result, nil
}

func (s *SQLiteStore) resultChapters(ctx context.Context, resultID string) ([]ChapterResult, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT chapter, correct, total FROM result_chapters WHERE result_id = ? ORDER BY position ASC`,
		resultID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chapters := make([]ChapterResult, 0)
	for rows.Next() {
		var chapter ChapterResult
		if err := rows.Scan(&chapter.Chapter, &chapter.Correct, &chapter.Total); err != nil {
			return nil, err
		}
		chapters = append(chapters, chapter)
	}
	return chapters, rows.Err()
}

func (s *SQLiteStore) ListRecentResults(ctx context.Context, limit int) ([]SessionResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT result_id, mode, chapter_filter, question_count, answered_count, correct_count, finished_at_unix
		 FROM results
		 ORDER BY finished_at_unix DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]SessionResult, 0)
	for rows.Next() {
		var (
			result         SessionResult
			mode           string
			finishedAtUnix int64
		)
		if err := rows.Scan(&result.ResultID, &mode, &result.ChapterFilter, &result.QuestionCount, &result.AnsweredCount, &result.CorrectCount, &finishedAtUnix); err != nil {
			return nil, err
		}
		result.Mode = Mode(mode)
		result.FinishedAt = time.Unix(0, finishedAtUnix).UTC()
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Chapter rows are loaded per result; recent-result listings are small.
	for idx := range results {
		results[idx].Chapters, err = s.resultChapters(ctx, results[idx].ResultID)
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// ChapterAccuracy aggregates archived chapter scores across all runs,
// weakest accuracy first so the next drill target is on top.
func (s *SQLiteStore) ChapterAccuracy(ctx context.Context) ([]ChapterAccuracy, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT chapter, SUM(correct) AS correct, SUM(total) AS total
		 FROM result_chapters
		 GROUP BY chapter
		 ORDER BY CAST(SUM(correct) AS REAL) / SUM(total) ASC, SUM(total) DESC, chapter ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accuracies := make([]ChapterAccuracy, 0)
	for rows.Next() {
		var entry ChapterAccuracy
		if err := rows.Scan(&entry.Chapter, &entry.Correct, &entry.Total); err != nil {
			return nil, err
		}
		if entry.Total > 0 {
			entry.Accuracy = float64(entry.Correct) / float64(entry.Total)
		}
		accuracies = append(accuracies, entry)
	}
	return accuracies, rows.Err()
}
