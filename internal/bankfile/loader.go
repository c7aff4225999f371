package bankfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Candidate filenames per bank, tried in order. The list covers the casing
// variants seen on case-sensitive hosts.
var (
	MultiChoiceCandidates = []string{"MULTICHOICE.json", "multichoice.json", "MULTICHOICE.JSON", "Multichoice.json"}
	TrueFalseCandidates   = []string{"TRUEORFALSE.json", "trueorfalse.json", "TRUEORFALSE.JSON", "TrueOrFalse.json"}
)

// RawAnswer mirrors one answer entry of the on-disk bank format. Fields stay
// loosely typed; coercion happens during normalization.
type RawAnswer struct {
	Label   any `json:"label"`
	Text    any `json:"text"`
	Correct any `json:"correct"`
}

// RawQuestion mirrors one record of the on-disk bank format.
type RawQuestion struct {
	ID       any         `json:"id"`
	Question any         `json:"question"`
	Chapter  any         `json:"chapter"`
	Section  any         `json:"section"`
	Page     any         `json:"page"`
	Note     any         `json:"note"`
	Answers  []RawAnswer `json:"answers"`
}

// LoadBank reads the first candidate file under dir that exists and parses as
// JSON. A valid JSON document that is not an array counts as an empty bank.
// All candidates failing is a load failure for the bank.
func LoadBank(dir string, candidates []string) ([]RawQuestion, error) {
	var lastErr error
	for _, name := range candidates {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			lastErr = err
			continue
		}

		var records []RawQuestion
		if err := json.Unmarshal(data, &records); err != nil {
			if json.Valid(data) {
				// Parsed but not an array: tolerate as an empty bank.
				return []RawQuestion{}, nil
			}
			lastErr = fmt.Errorf("%s: %w", name, err)
			continue
		}
		return records, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no candidate filenames given")
	}
	return nil, fmt.Errorf("no readable bank in %s (tried %v): %w", dir, candidates, lastErr)
}

// LoadBanks loads both banks from dir. Either bank exhausting its candidates
// fails the whole load; the normalizer downstream tolerates an empty array.
func LoadBanks(dir string) (mc, tf []RawQuestion, err error) {
	mc, err = LoadBank(dir, MultiChoiceCandidates)
	if err != nil {
		return nil, nil, fmt.Errorf("multiple-choice bank: %w", err)
	}
	tf, err = LoadBank(dir, TrueFalseCandidates)
	if err != nil {
		return nil, nil, fmt.Errorf("true/false bank: %w", err)
	}
	return mc, tf, nil
}
