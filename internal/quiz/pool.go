package quiz

import "sort"

// Mode selects which banks feed the question pool.
type Mode string

const (
	ModeMultipleChoice Mode = "mc"
	ModeTrueFalse      Mode = "tf"
	ModeCombined       Mode = "mix"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeMultipleChoice, ModeTrueFalse, ModeCombined:
		return true
	}
	return false
}

func (m Mode) Label() string {
	switch m {
	case ModeMultipleChoice:
		return "Multiple Choice"
	case ModeTrueFalse:
		return "True / False"
	case ModeCombined:
		return "Combined"
	}
	return "Quiz"
}

// CurrentPool computes the eligible questions for a mode and chapter
// selection. Combined mode concatenates MC then TF; order past that does not
// matter because the session shuffles.
func CurrentPool(mode Mode, catalog *Catalog, bankMC, bankTF []Question) []Question {
	var source []Question
	switch mode {
	case ModeMultipleChoice:
		source = bankMC
	case ModeTrueFalse:
		source = bankTF
	default:
		source = make([]Question, 0, len(bankMC)+len(bankTF))
		source = append(source, bankMC...)
		source = append(source, bankTF...)
	}

	pool := make([]Question, 0, len(source))
	for _, q := range source {
		if catalog.IsSelected(q.Chapter) {
			pool = append(pool, q)
		}
	}
	return pool
}

// SensibleCounts builds the question-count menu for a pool: at most six
// distinct ascending values in [1, poolSize], always including poolSize
// itself. Empty for an empty pool.
func SensibleCounts(poolSize int) []int {
	if poolSize <= 0 {
		return []int{}
	}

	uniq := make(map[int]bool)
	add := func(n int) {
		if n >= 1 && n <= poolSize {
			uniq[n] = true
		}
	}

	add(poolSize)
	switch {
	case poolSize <= 13:
		add(5)
		add(10)
	case poolSize <= 25:
		add(10)
		add(15)
		add(20)
	case poolSize <= 60:
		add(10)
		add(25)
		add(50)
	default:
		add(10)
		add(25)
		add(50)
		add(75)
		add(100)
	}

	counts := make([]int, 0, len(uniq))
	for n := range uniq {
		counts = append(counts, n)
	}
	sort.Ints(counts)

	if len(counts) > 6 {
		keep := make(map[int]bool)
		for _, n := range counts[:3] {
			keep[n] = true
		}
		keep[poolSize] = true

		step := 10
		if poolSize >= 100 {
			step = 25
		}
		keep[clamp(roundTo(float64(poolSize)*0.8, step), 1, poolSize)] = true

		counts = counts[:0]
		for n := range keep {
			counts = append(counts, n)
		}
		sort.Ints(counts)

		for len(counts) > 6 {
			counts = append(counts[:2], counts[3:]...)
		}
	}

	return counts
}

// ResolveCount reconciles the previously chosen count against a fresh menu:
// a count of zero, above the pool size, or missing from the menu resets to
// the second-smallest choice (or the only one), else the largest.
func ResolveCount(current int, counts []int, poolSize int) int {
	if len(counts) == 0 {
		return 0
	}

	if current <= 0 || current > poolSize {
		current = counts[min(1, len(counts)-1)]
	}
	for _, n := range counts {
		if n == current {
			return current
		}
	}
	return counts[len(counts)-1]
}

func roundTo(value float64, step int) int {
	if step <= 0 {
		return int(value)
	}
	return int(value/float64(step)+0.5) * step
}

func clamp(n, low, high int) int {
	if n < low {
		return low
	}
	if n > high {
		return high
	}
	return n
}
