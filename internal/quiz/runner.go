package quiz

import (
	"math/rand"
	"time"
)

// Runner owns the loaded banks, the chapter catalog, the current settings,
// and the live session. It replaces ambient globals with one explicit state
// object; construction and Reset are the lifecycle calls.
type Runner struct {
	bankMC []Question
	bankTF []Question

	catalog *Catalog
	mode    Mode
	count   int

	session       *Session
	chapterFilter string
	rng           *rand.Rand
}

const defaultCount = 10

// NewRunner builds a runner over normalized banks with a time-seeded
// shuffle source, defaulting to multiple-choice mode with every chapter
// selected.
func NewRunner(bankMC, bankTF []Question) *Runner {
	return NewSeededRunner(bankMC, bankTF, time.Now().UnixNano())
}

// NewSeededRunner is NewRunner with a fixed shuffle seed, for deterministic
// runs and tests.
func NewSeededRunner(bankMC, bankTF []Question, seed int64) *Runner {
	runner := &Runner{
		bankMC:  bankMC,
		bankTF:  bankTF,
		catalog: BuildCatalog(bankMC, bankTF),
		mode:    ModeMultipleChoice,
		count:   defaultCount,
		rng:     rand.New(rand.NewSource(seed)),
	}
	runner.count = ResolveCount(runner.count, runner.CountChoices(), len(runner.CurrentPool()))
	return runner
}

func (r *Runner) Catalog() *Catalog {
	return r.catalog
}

func (r *Runner) Mode() Mode {
	return r.mode
}

// SetMode switches the bank selection and reconciles the question count
// against the new pool. Invalid modes are ignored.
func (r *Runner) SetMode(mode Mode) {
	if !mode.Valid() {
		return
	}
	r.mode = mode
	r.refreshCount()
}

func (r *Runner) Count() int {
	return r.count
}

// SetCount picks a question count; values outside the current menu are
// reconciled the same way a shrinking pool is.
func (r *Runner) SetCount(count int) {
	r.count = ResolveCount(count, r.CountChoices(), len(r.CurrentPool()))
}

// SetChapterSelected toggles one chapter and reconciles the count.
func (r *Runner) SetChapterSelected(chapter string, on bool) {
	r.catalog.SetSelected(chapter, on)
	r.refreshCount()
}

func (r *Runner) SelectAllChapters() {
	r.catalog.SelectAll()
	r.refreshCount()
}

func (r *Runner) SelectNoChapters() {
	r.catalog.SelectNone()
	r.refreshCount()
}

// CurrentPool is the eligible question set for the current mode and
// chapter selection.
func (r *Runner) CurrentPool() []Question {
	return CurrentPool(r.mode, r.catalog, r.bankMC, r.bankTF)
}

// CountChoices is the bounded count menu for the current pool.
func (r *Runner) CountChoices() []int {
	return SensibleCounts(len(r.CurrentPool()))
}

// CanStart reports whether a quiz can begin: at least one chapter selected,
// a non-empty pool, and a positive count.
func (r *Runner) CanStart() bool {
	return r.catalog.SelectedCount() > 0 && len(r.CurrentPool()) > 0 && r.count > 0
}

// Start discards any prior session and begins a new one. chapterFilter
// narrows the pool to a single chapter for the retake-weakest flow; pass ""
// for no narrowing. On ErrNoQuestions the runner stays unstarted.
func (r *Runner) Start(chapterFilter string) (*Session, error) {
	r.session = nil
	r.chapterFilter = ""
	session, err := NewSession(r.CurrentPool(), r.count, chapterFilter, r.rng)
	if err != nil {
		return nil, err
	}
	r.session = session
	r.chapterFilter = chapterFilter
	return session, nil
}

// ChapterFilter is the single-chapter narrowing of the live session, ""
// when the session covers the whole pool or nothing is running.
func (r *Runner) ChapterFilter() string {
	return r.chapterFilter
}

// RetakeWeakest starts a new session narrowed to the weakest chapter of the
// previous one. It fails with ErrNoQuestions when there is no prior session
// or no weakest chapter.
func (r *Runner) RetakeWeakest() (*Session, error) {
	if r.session == nil {
		return nil, ErrNoQuestions
	}
	insights := ComputeInsights(r.session.ChapterStats())
	if insights.Weakest == nil {
		return nil, ErrNoQuestions
	}
	return r.Start(insights.Weakest.Chapter)
}

// Session returns the live session, nil when not started.
func (r *Runner) Session() *Session {
	return r.session
}

// Reset discards the session and returns to the not-started state; banks,
// catalog selection, and settings survive.
func (r *Runner) Reset() {
	r.session = nil
	r.chapterFilter = ""
}

func (r *Runner) refreshCount() {
	r.count = ResolveCount(r.count, r.CountChoices(), len(r.CurrentPool()))
}
