package quiz

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"chapter-quiz/internal/bankfile"
)

type QuestionType string

const (
	TypeMultipleChoice QuestionType = "mc"
	TypeTrueFalse      QuestionType = "tf"
)

// Answer is one option of a question. Text falls back to Label during
// normalization, so Text is always displayable.
type Answer struct {
	Label   string `json:"label,omitempty"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question is a normalized bank record. After Normalize it always has at
// least two answers and a resolvable first-correct index; nothing downstream
// rechecks that.
type Question struct {
	Type    QuestionType `json:"type"`
	ID      string       `json:"id,omitempty"`
	Text    string       `json:"question"`
	Chapter string       `json:"chapter"`
	Section string       `json:"section,omitempty"`
	Page    string       `json:"page,omitempty"`
	Note    string       `json:"note,omitempty"`
	Answers []Answer     `json:"answers"`
}

// CorrectIndex returns the index of the first answer flagged correct, the
// authoritative one when several are flagged. -1 only before normalization.
func (q Question) CorrectIndex() int {
	for idx, answer := range q.Answers {
		if answer.Correct {
			return idx
		}
	}
	return -1
}

// Key derives the stable identity used for selection/lock maps across a
// session. Distinct questions never collide; the same question always
// re-derives the same key.
func (q Question) Key() string {
	prompt := q.Text
	if len(prompt) > 64 {
		prompt = prompt[:64]
	}

	var keyBuilder strings.Builder
	keyBuilder.WriteString(string(q.Type))
	keyBuilder.WriteString("#")
	keyBuilder.WriteString(q.ID)
	keyBuilder.WriteString("#")
	keyBuilder.WriteString(q.Chapter)
	keyBuilder.WriteString("#")
	keyBuilder.WriteString(prompt)

	hash := sha1.Sum([]byte(keyBuilder.String()))
	return "q_" + hex.EncodeToString(hash[:])
}

// Meta joins the display metadata of a question for status lines.
func (q Question) Meta() string {
	parts := make([]string, 0, 3)
	if !IsUnknownChapter(q.Chapter) {
		parts = append(parts, q.Chapter)
	}
	if q.Section != "" {
		parts = append(parts, q.Section)
	}
	if q.Page != "" {
		parts = append(parts, q.Page)
	}
	return strings.Join(parts, " • ")
}

// Normalize converts raw bank records of one declared type into canonical
// Questions. Malformed records (empty prompt, < 2 answers, no correct answer,
// unknown chapter) are silently dropped; a bad bank degrades instead of
// failing the load. Answer order is preserved from source.
func Normalize(raw []bankfile.RawQuestion, questionType QuestionType) []Question {
	questions := make([]Question, 0, len(raw))

	for _, item := range raw {
		question := Question{
			Type:    questionType,
			ID:      coerceText(item.ID),
			Text:    coerceText(item.Question),
			Chapter: coerceText(item.Chapter),
			Section: coerceText(item.Section),
			Page:    coerceText(item.Page),
			Note:    coerceText(item.Note),
			Answers: make([]Answer, 0, len(item.Answers)),
		}

		for _, rawAnswer := range item.Answers {
			label := coerceText(rawAnswer.Label)
			text := coerceText(rawAnswer.Text)
			if text == "" {
				text = label
			}
			question.Answers = append(question.Answers, Answer{
				Label: label,
				Text:  text,
				// Only a strict boolean true marks an answer correct.
				Correct: rawAnswer.Correct == true,
			})
		}

		if question.Text == "" {
			continue
		}
		if len(question.Answers) < 2 || question.CorrectIndex() == -1 {
			continue
		}
		if IsUnknownChapter(question.Chapter) {
			continue
		}

		questions = append(questions, question)
	}

	return questions
}

// IsUnknownChapter reports whether a chapter label matches the unknown
// sentinel set; such records are dropped entirely and never shown.
func IsUnknownChapter(chapter string) bool {
	switch strings.ToLower(strings.TrimSpace(chapter)) {
	case "", "unknown", "unknown chapter", "unknown chapter(s)", "n/a":
		return true
	}
	return false
}

// AnswerLetter maps an answer index to its display letter, A-F, then numeric
// past that. True/false options are lettered like everything else.
func AnswerLetter(index int) string {
	if index >= 0 && index < 6 {
		return string(rune('A' + index))
	}
	return strconv.Itoa(index + 1)
}

// NormalizeLetter trims and uppercases a submitted answer letter, returning
// "" when it is not a single letter.
func NormalizeLetter(answer string) string {
	letter := strings.ToUpper(strings.TrimSpace(answer))
	if len(letter) != 1 {
		return ""
	}
	return letter
}

func coerceText(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		// JSON numbers arrive as float64; keep integral values readable.
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}
