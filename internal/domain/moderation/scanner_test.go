package moderation

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
)

func words(ws ...string) []BannedWord {
	out := make([]BannedWord, len(ws))
	for i, w := range ws {
		out[i] = BannedWord{ID: uuid.New(), Word: w, CreatedBy: uuid.New()}
	}
	return out
}

func TestScanMatchesWord(t *testing.T) {
	matches := Scan("This is a damn shame", words("damn"))
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Word != "damn" {
		t.Fatalf("expected match for %q, got %q", "damn", matches[0].Word)
	}
}

func TestScanWordBoundary(t *testing.T) {
	if matches := Scan("the classroom was full", words("ass")); len(matches) != 0 {
		t.Fatalf("expected no match inside a longer word, got %d", len(matches))
	}
	if matches := Scan("what an ass move", words("ass")); len(matches) != 1 {
		t.Fatalf("expected boundary match, got %d", len(matches))
	}
}

func TestScanCaseInsensitive(t *testing.T) {
	if matches := Scan("DAMN", words("damn")); len(matches) != 1 {
		t.Fatalf("expected case-insensitive match on text, got %d", len(matches))
	}
	if matches := Scan("damn", words("DaMn")); len(matches) != 1 {
		t.Fatalf("expected case-insensitive match on word, got %d", len(matches))
	}
}

func TestScanEmptyInputs(t *testing.T) {
	if matches := Scan("", words("damn")); len(matches) != 0 {
		t.Fatalf("expected no matches for empty text, got %d", len(matches))
	}
	if matches := Scan("some text", nil); len(matches) != 0 {
		t.Fatalf("expected no matches for empty word list, got %d", len(matches))
	}
}

func TestScanEscapesMetacharacters(t *testing.T) {
	// "a.b" must match only the literal string, not "a<any>b"
	if matches := Scan("we met a.b today", words("a.b")); len(matches) != 1 {
		t.Fatalf("expected literal metacharacter match, got %d", len(matches))
	}
	if matches := Scan("we met axb today", words("a.b")); len(matches) != 0 {
		t.Fatalf("expected no wildcard match, got %d", len(matches))
	}
}

func TestScanOrderFollowsWordList(t *testing.T) {
	matches := Scan("beta then alpha", words("alpha", "beta"))
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Word != "alpha" || matches[1].Word != "beta" {
		t.Fatalf("expected word-list order, got %q then %q", matches[0].Word, matches[1].Word)
	}
}

func TestScanRepeatedOccurrenceCountsOnce(t *testing.T) {
	matches := Scan("damn damn damn", words("damn"))
	if len(matches) != 1 {
		t.Fatalf("expected a repeated word to match once, got %d", len(matches))
	}
}

func TestScanSkipsBlankWords(t *testing.T) {
	matches := Scan("anything at all", words("  ", ""))
	if len(matches) != 0 {
		t.Fatalf("expected blank words to be skipped, got %d matches", len(matches))
	}
}

func TestScanTrimsWords(t *testing.T) {
	matches := Scan("a damn shame", words("  damn  "))
	if len(matches) != 1 {
		t.Fatalf("expected trimmed word to match, got %d", len(matches))
	}
}

func TestScanPreservesCategory(t *testing.T) {
	list := []BannedWord{{
		ID:       uuid.New(),
		Word:     "damn",
		Category: sql.NullString{String: "profanity", Valid: true},
	}}

	matches := Scan("damn", list)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if !matches[0].Category.Valid || matches[0].Category.String != "profanity" {
		t.Fatalf("expected category to be preserved, got %+v", matches[0].Category)
	}
}
