package quiz

import (
	"errors"
	"math/rand"
)

// ErrNoQuestions reports a start attempt whose filtered pool came up empty.
// The session stays unstarted; callers surface it as "no questions match".
var ErrNoQuestions = errors.New("no questions match the current selection")

// ChapterScore counts answered questions for one chapter within a session.
type ChapterScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// ChapterResult is a chapter's score in first-answered order, the order
// insight tie-breaking falls back to.
type ChapterResult struct {
	Chapter string `json:"chapter"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// HistoryEntry records one committed answer, in answer order.
type HistoryEntry struct {
	Question     Question
	ChosenIndex  int
	CorrectIndex int
	Correct      bool
}

// AnswerOutcome is the immediate feedback for a committed answer.
type AnswerOutcome struct {
	Correct      bool
	CorrectIndex int
}

// Session is one administered quiz run: a fixed shuffled question sequence
// plus live answer state. It is touched by a single actor at a time; all
// methods run synchronously to completion.
type Session struct {
	questions []Question

	position  int
	completed bool

	chosen  map[string]int
	locked  map[string]bool
	correct int

	chapterScores map[string]ChapterScore
	chapterOrder  []string
	history       []HistoryEntry
}

// NewSession builds a session from the current pool: optionally narrowed to
// one chapter (the retake-weakest path), shuffled with a Fisher-Yates pass
// over a copy, truncated to count (clamped to [1, pool size]). Answer order
// within questions is never permuted.
func NewSession(pool []Question, count int, chapterFilter string, rng *rand.Rand) (*Session, error) {
	if chapterFilter != "" {
		filtered := make([]Question, 0, len(pool))
		for _, q := range pool {
			if q.Chapter == chapterFilter {
				filtered = append(filtered, q)
			}
		}
		pool = filtered
	}

	shuffled := shuffleQuestions(pool, rng)
	if len(shuffled) == 0 {
		return nil, ErrNoQuestions
	}

	count = clamp(count, 1, len(shuffled))
	return &Session{
		questions:     shuffled[:count],
		chosen:        make(map[string]int),
		locked:        make(map[string]bool),
		chapterScores: make(map[string]ChapterScore),
	}, nil
}

// shuffleQuestions returns a uniformly permuted copy of pool; pool itself is
// never mutated. Deterministic for a fixed rng seed.
func shuffleQuestions(pool []Question, rng *rand.Rand) []Question {
	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

func (s *Session) Len() int {
	return len(s.questions)
}

func (s *Session) Position() int {
	return s.position
}

func (s *Session) Completed() bool {
	return s.completed
}

// Current returns the question at the current position. ok is false only
// after completion.
func (s *Session) Current() (Question, bool) {
	if s.completed {
		return Question{}, false
	}
	return s.questions[s.position], true
}

// Questions returns the fixed ordered sequence chosen at start.
func (s *Session) Questions() []Question {
	questions := make([]Question, len(s.questions))
	copy(questions, s.questions)
	return questions
}

// Selection reports the recorded answer state for the current question:
// the chosen index (-1 when unanswered) and whether it is locked.
func (s *Session) Selection() (chosenIndex int, locked bool) {
	q, ok := s.Current()
	if !ok {
		return -1, false
	}
	key := q.Key()
	if !s.locked[key] {
		return -1, false
	}
	return s.chosen[key], true
}

// Answer commits a choice for the current question. The first answer wins:
// a locked question makes the call a silent no-op (applied=false), as does a
// completed session or an out-of-range index. On commit it records the
// choice, locks the question, updates the correct count and chapter stats,
// and appends a history entry; this is the only score mutation point, and it
// either fully commits or fully no-ops.
func (s *Session) Answer(index int) (AnswerOutcome, bool) {
	q, ok := s.Current()
	if !ok {
		return AnswerOutcome{}, false
	}
	if index < 0 || index >= len(q.Answers) {
		return AnswerOutcome{}, false
	}

	key := q.Key()
	if s.locked[key] {
		return AnswerOutcome{}, false
	}

	correctIndex := q.CorrectIndex()
	isCorrect := index == correctIndex

	s.chosen[key] = index
	s.locked[key] = true
	if isCorrect {
		s.correct++
	}

	score, seen := s.chapterScores[q.Chapter]
	if !seen {
		s.chapterOrder = append(s.chapterOrder, q.Chapter)
	}
	score.Total++
	if isCorrect {
		score.Correct++
	}
	s.chapterScores[q.Chapter] = score

	s.history = append(s.history, HistoryEntry{
		Question:     q,
		ChosenIndex:  index,
		CorrectIndex: correctIndex,
		Correct:      isCorrect,
	})

	return AnswerOutcome{Correct: isCorrect, CorrectIndex: correctIndex}, true
}

// Advance moves forward one question, or transitions to Completed from the
// last one. The core does not require the current question to be answered;
// surfaces gate that.
func (s *Session) Advance() {
	if s.completed {
		return
	}
	if s.position < len(s.questions)-1 {
		s.position++
		return
	}
	s.completed = true
}

// Retreat moves back one question; it never wraps and never unlocks or
// rescores anything already answered.
func (s *Session) Retreat() {
	if s.completed || s.position == 0 {
		return
	}
	s.position--
}

func (s *Session) CorrectCount() int {
	return s.correct
}

func (s *Session) AnsweredCount() int {
	return len(s.history)
}

// ScorePercent is the running score against the full session length,
// rounded to the nearest whole percent.
func (s *Session) ScorePercent() int {
	if len(s.questions) == 0 {
		return 0
	}
	return roundTo(float64(s.correct)/float64(len(s.questions))*100, 1)
}

// ChapterStats returns per-chapter scores in first-answered order.
func (s *Session) ChapterStats() []ChapterResult {
	results := make([]ChapterResult, 0, len(s.chapterOrder))
	for _, chapter := range s.chapterOrder {
		score := s.chapterScores[chapter]
		results = append(results, ChapterResult{
			Chapter: chapter,
			Correct: score.Correct,
			Total:   score.Total,
		})
	}
	return results
}

// History returns the append-only answer log in answer order.
func (s *Session) History() []HistoryEntry {
	history := make([]HistoryEntry, len(s.history))
	copy(history, s.history)
	return history
}
