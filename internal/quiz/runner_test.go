package quiz

import (
	"errors"
	"testing"
)

func runnerFixture() *Runner {
	bankMC := append(
		chapterQuestion(TypeMultipleChoice, "Chapter 1", 8),
		chapterQuestion(TypeMultipleChoice, "Chapter 2", 7)...,
	)
	bankTF := chapterQuestion(TypeTrueFalse, "Chapter 1", 5)
	return NewSeededRunner(bankMC, bankTF, 11)
}

func TestNewRunnerDefaults(t *testing.T) {
	runner := runnerFixture()

	if runner.Mode() != ModeMultipleChoice {
		t.Fatalf("default mode = %q, want %q", runner.Mode(), ModeMultipleChoice)
	}
	if runner.Session() != nil {
		t.Fatalf("runner started with a live session")
	}
	// 15 MC questions: menu is [10, 15], default count 10 survives.
	if runner.Count() != 10 {
		t.Fatalf("default count = %d, want 10", runner.Count())
	}
	if !runner.CanStart() {
		t.Fatalf("expected runner startable with default selection")
	}
}

func TestRunnerCountReconciliation(t *testing.T) {
	runner := runnerFixture()

	runner.SetCount(15)
	if runner.Count() != 15 {
		t.Fatalf("count = %d after SetCount(15), want 15", runner.Count())
	}

	// True/false mode has only 5 questions; 15 no longer fits the menu.
	runner.SetMode(ModeTrueFalse)
	if got := len(runner.CurrentPool()); got != 5 {
		t.Fatalf("tf pool = %d, want 5", got)
	}
	if runner.Count() != 5 {
		t.Fatalf("count = %d after shrinking pool, want 5", runner.Count())
	}

	runner.SetMode(Mode("bogus"))
	if runner.Mode() != ModeTrueFalse {
		t.Fatalf("invalid mode changed the runner to %q", runner.Mode())
	}
}

func TestRunnerChapterSelectionGatesStart(t *testing.T) {
	runner := runnerFixture()

	runner.SelectNoChapters()
	if runner.CanStart() {
		t.Fatalf("runner startable with no chapters selected")
	}
	if _, err := runner.Start(""); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	if runner.Session() != nil {
		t.Fatalf("failed start left a session behind")
	}

	runner.SetChapterSelected("Chapter 2", true)
	if !runner.CanStart() {
		t.Fatalf("runner not startable with one chapter selected")
	}

	session, err := runner.Start("")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, q := range session.Questions() {
		if q.Chapter != "Chapter 2" {
			t.Fatalf("session includes deselected chapter %q", q.Chapter)
		}
	}
}

func TestRunnerRetakeWeakest(t *testing.T) {
	runner := runnerFixture()
	runner.SetMode(ModeCombined)
	runner.SetCount(20)

	if _, err := runner.RetakeWeakest(); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("retake without a session should fail, got %v", err)
	}

	session, err := runner.Start("")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Ace Chapter 1, fail everything in Chapter 2.
	for !session.Completed() {
		q, _ := session.Current()
		if q.Chapter == "Chapter 1" {
			session.Answer(q.CorrectIndex())
		} else {
			session.Answer((q.CorrectIndex() + 1) % len(q.Answers))
		}
		session.Advance()
	}

	retake, err := runner.RetakeWeakest()
	if err != nil {
		t.Fatalf("RetakeWeakest: %v", err)
	}
	if runner.ChapterFilter() != "Chapter 2" {
		t.Fatalf("chapter filter = %q, want Chapter 2", runner.ChapterFilter())
	}
	for _, q := range retake.Questions() {
		if q.Chapter != "Chapter 2" {
			t.Fatalf("retake includes chapter %q", q.Chapter)
		}
	}

	runner.Reset()
	if runner.Session() != nil || runner.ChapterFilter() != "" {
		t.Fatalf("Reset left session state behind")
	}
}
