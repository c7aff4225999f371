package bankfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBank(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadBankReadsFirstCandidate(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "MULTICHOICE.json", `[{"question":"Q?","chapter":"Chapter 1","answers":[{"text":"A","correct":true},{"text":"B"}]}]`)

	records, err := LoadBank(dir, MultiChoiceCandidates)
	if err != nil {
		t.Fatalf("LoadBank failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got, ok := records[0].Question.(string); !ok || got != "Q?" {
		t.Fatalf("unexpected question value: %v", records[0].Question)
	}
	if len(records[0].Answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(records[0].Answers))
	}
}

func TestLoadBankFallsBackThroughCandidates(t *testing.T) {
	dir := t.TempDir()
	// Only the last casing variant exists.
	writeBank(t, dir, "TrueOrFalse.json", `[{"question":"T?","chapter":"Chapter 1","answers":[{"label":"True","correct":true},{"label":"False"}]}]`)

	records, err := LoadBank(dir, TrueFalseCandidates)
	if err != nil {
		t.Fatalf("LoadBank failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestLoadBankToleratesNonArrayJSON(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "MULTICHOICE.json", `{"note":"not a bank"}`)

	records, err := LoadBank(dir, MultiChoiceCandidates)
	if err != nil {
		t.Fatalf("LoadBank failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected an empty bank, got %d records", len(records))
	}
}

func TestLoadBankFailsWhenNoCandidateExists(t *testing.T) {
	if _, err := LoadBank(t.TempDir(), MultiChoiceCandidates); err == nil {
		t.Fatalf("expected error when no candidate file exists")
	}
}

func TestLoadBankFailsOnInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "MULTICHOICE.json", `[{"question": "broken"`)

	if _, err := LoadBank(dir, MultiChoiceCandidates); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestLoadBanks(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "multichoice.json", `[{"question":"Q?","chapter":"Chapter 1","answers":[{"text":"A","correct":true},{"text":"B"}]}]`)
	writeBank(t, dir, "trueorfalse.json", `[]`)

	mc, tf, err := LoadBanks(dir)
	if err != nil {
		t.Fatalf("LoadBanks failed: %v", err)
	}
	if len(mc) != 1 {
		t.Fatalf("expected 1 mc record, got %d", len(mc))
	}
	if len(tf) != 0 {
		t.Fatalf("expected empty tf bank, got %d records", len(tf))
	}

	// A missing true/false bank fails the whole load.
	if err := os.Remove(filepath.Join(dir, "trueorfalse.json")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, _, err := LoadBanks(dir); err == nil {
		t.Fatalf("expected error when a bank is missing")
	}
}
