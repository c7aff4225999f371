package quiz

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ChapterCount carries per-chapter question totals split by type.
type ChapterCount struct {
	MultipleChoice int `json:"mc"`
	TrueFalse      int `json:"tf"`
	Total          int `json:"total"`
}

// Catalog is the distinct chapter set of both banks plus the current
// selection state. Rebuilding the catalog selects all chapters.
type Catalog struct {
	counts   map[string]ChapterCount
	ordered  []string
	selected map[string]bool
}

// BuildCatalog derives the chapter catalog from the normalized banks. An
// empty catalog (nothing survived normalization) is valid: selection and
// every downstream pool are simply empty.
func BuildCatalog(bankMC, bankTF []Question) *Catalog {
	catalog := &Catalog{
		counts:   make(map[string]ChapterCount),
		selected: make(map[string]bool),
	}

	add := func(q Question) {
		if IsUnknownChapter(q.Chapter) {
			return
		}
		count := catalog.counts[q.Chapter]
		count.Total++
		switch q.Type {
		case TypeMultipleChoice:
			count.MultipleChoice++
		case TypeTrueFalse:
			count.TrueFalse++
		}
		catalog.counts[q.Chapter] = count
	}

	for _, q := range bankMC {
		add(q)
	}
	for _, q := range bankTF {
		add(q)
	}

	catalog.ordered = make([]string, 0, len(catalog.counts))
	for chapter := range catalog.counts {
		catalog.ordered = append(catalog.ordered, chapter)
	}
	sort.SliceStable(catalog.ordered, func(i, j int) bool {
		return chapterBefore(catalog.ordered[i], catalog.ordered[j])
	})

	catalog.SelectAll()
	return catalog
}

// Chapters returns the chapter labels in display order.
func (c *Catalog) Chapters() []string {
	chapters := make([]string, len(c.ordered))
	copy(chapters, c.ordered)
	return chapters
}

func (c *Catalog) Count(chapter string) (ChapterCount, bool) {
	count, ok := c.counts[chapter]
	return count, ok
}

func (c *Catalog) Len() int {
	return len(c.ordered)
}

func (c *Catalog) IsSelected(chapter string) bool {
	return c.selected[chapter]
}

func (c *Catalog) SelectedCount() int {
	return len(c.selected)
}

// SetSelected toggles one chapter; unknown labels are ignored.
func (c *Catalog) SetSelected(chapter string, on bool) {
	if _, ok := c.counts[chapter]; !ok {
		return
	}
	if on {
		c.selected[chapter] = true
		return
	}
	delete(c.selected, chapter)
}

func (c *Catalog) SelectAll() {
	c.selected = make(map[string]bool, len(c.ordered))
	for _, chapter := range c.ordered {
		c.selected[chapter] = true
	}
}

func (c *Catalog) SelectNone() {
	c.selected = make(map[string]bool)
}

var chapterNumberPattern = regexp.MustCompile(`(?i)chapter\s*(\d+)`)

// chapterNumber extracts the integer of a "chapter N" label, or -1 when the
// label carries no such pattern.
func chapterNumber(chapter string) int {
	match := chapterNumberPattern.FindStringSubmatch(chapter)
	if match == nil {
		return -1
	}
	number, err := strconv.Atoi(match[1])
	if err != nil {
		return -1
	}
	return number
}

// chapterBefore orders numbered chapters numerically ahead of unnumbered
// ones; unnumbered labels fall back to case-insensitive lexical order.
func chapterBefore(a, b string) bool {
	numberA := chapterNumber(a)
	numberB := chapterNumber(b)

	if numberA != -1 && numberB != -1 {
		return numberA < numberB
	}
	if numberA != -1 {
		return true
	}
	if numberB != -1 {
		return false
	}
	return strings.ToLower(a) < strings.ToLower(b)
}
