package quiz

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
		_ = os.Remove(path)
		_ = os.Remove(path + "-wal")
		_ = os.Remove(path + "-shm")
		_ = os.Remove(path + "-journal")
	})
	return store
}

func sampleResult(resultID string, finishedAt time.Time) SessionResult {
	return SessionResult{
		ResultID:      resultID,
		Mode:          ModeCombined,
		QuestionCount: 10,
		AnsweredCount: 8,
		CorrectCount:  6,
		FinishedAt:    finishedAt,
		Chapters: []ChapterResult{
			{Chapter: "Chapter 2", Correct: 2, Total: 5},
			{Chapter: "Chapter 1", Correct: 4, Total: 5},
		},
	}
}

func TestSQLiteStoreSaveAndGetResult(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	finishedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	saved := sampleResult("r_1", finishedAt)
	if err := store.SaveResult(ctx, saved); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	got, err := store.GetResult(ctx, "r_1")
	if err != nil {
		t.Fatalf("GetResult failed: %v", err)
	}
	if got.Mode != ModeCombined || got.QuestionCount != 10 || got.CorrectCount != 6 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if !got.FinishedAt.Equal(finishedAt) {
		t.Fatalf("finished at = %v, want %v", got.FinishedAt, finishedAt)
	}
	if len(got.Chapters) != 2 {
		t.Fatalf("expected 2 chapter rows, got %d", len(got.Chapters))
	}
	// Chapter rows come back in the order they were saved.
	if got.Chapters[0].Chapter != "Chapter 2" || got.Chapters[1].Chapter != "Chapter 1" {
		t.Fatalf("chapter order not preserved: %+v", got.Chapters)
	}
}

func TestSQLiteStoreGetResultNotFound(t *testing.T) {
	store := newTestSQLiteStore(t)

	if _, err := store.GetResult(context.Background(), "r_missing"); !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}
}

func TestSQLiteStoreSaveResultRequiresID(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.SaveResult(context.Background(), SessionResult{}); err == nil {
		t.Fatalf("expected error for empty result id")
	}
}

func TestSQLiteStoreResaveReplacesChapters(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	result := sampleResult("r_1", time.Now().UTC())
	if err := store.SaveResult(ctx, result); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	result.Chapters = []ChapterResult{{Chapter: "Chapter 3", Correct: 1, Total: 2}}
	if err := store.SaveResult(ctx, result); err != nil {
		t.Fatalf("re-save failed: %v", err)
	}

	got, err := store.GetResult(ctx, "r_1")
	if err != nil {
		t.Fatalf("GetResult failed: %v", err)
	}
	if len(got.Chapters) != 1 || got.Chapters[0].Chapter != "Chapter 3" {
		t.Fatalf("re-save did not replace chapter rows: %+v", got.Chapters)
	}
}

func TestSQLiteStoreListRecentResults(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		result := sampleResult("r_"+string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		if err := store.SaveResult(ctx, result); err != nil {
			t.Fatalf("SaveResult failed: %v", err)
		}
	}

	results, err := store.ListRecentResults(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentResults failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ResultID != "r_c" || results[1].ResultID != "r_b" {
		t.Fatalf("expected newest first, got %s then %s", results[0].ResultID, results[1].ResultID)
	}
	if len(results[0].Chapters) != 2 {
		t.Fatalf("listing should include chapter rows, got %d", len(results[0].Chapters))
	}
}

func TestSQLiteStoreChapterAccuracy(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	first := SessionResult{
		ResultID:      "r_1",
		Mode:          ModeMultipleChoice,
		QuestionCount: 10,
		AnsweredCount: 10,
		CorrectCount:  7,
		FinishedAt:    time.Now().UTC(),
		Chapters: []ChapterResult{
			{Chapter: "Chapter 1", Correct: 5, Total: 5},
			{Chapter: "Chapter 2", Correct: 2, Total: 5},
		},
	}
	second := SessionResult{
		ResultID:      "r_2",
		Mode:          ModeMultipleChoice,
		QuestionCount: 5,
		AnsweredCount: 5,
		CorrectCount:  4,
		FinishedAt:    time.Now().UTC(),
		Chapters: []ChapterResult{
			{Chapter: "Chapter 2", Correct: 4, Total: 5},
		},
	}
	if err := store.SaveResult(ctx, first); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if err := store.SaveResult(ctx, second); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	accuracies, err := store.ChapterAccuracy(ctx)
	if err != nil {
		t.Fatalf("ChapterAccuracy failed: %v", err)
	}
	if len(accuracies) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(accuracies))
	}
	// Chapter 2: 6/10 across runs, weakest first.
	if accuracies[0].Chapter != "Chapter 2" || accuracies[0].Correct != 6 || accuracies[0].Total != 10 {
		t.Fatalf("unexpected weakest aggregate: %+v", accuracies[0])
	}
	if accuracies[0].Accuracy != 0.6 {
		t.Fatalf("accuracy = %v, want 0.6", accuracies[0].Accuracy)
	}
	if accuracies[1].Chapter != "Chapter 1" || accuracies[1].Accuracy != 1.0 {
		t.Fatalf("unexpected strongest aggregate: %+v", accuracies[1])
	}
}
