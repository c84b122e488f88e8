package moderation

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Scan tests text against the banned-word list and returns the entries
// that match. Matching is literal, case-insensitive and word-bounded:
// "ass" matches "a damn ass thing" but not "classroom". Words are
// regex-escaped, so a word containing metacharacters is matched as the
// literal string. Results follow word-list order, and a word that
// occurs several times in the text is reported once.
func Scan(text string, words []BannedWord) []BannedWord {
	if text == "" || len(words) == 0 {
		return nil
	}

	lowered := strings.ToLower(text)

	var matches []BannedWord
	for _, w := range words {
		word := strings.ToLower(strings.TrimSpace(w.Word))
		if word == "" {
			continue
		}

		// QuoteMeta keeps this from ever failing, but a bad pattern
		// must not abort the rest of the scan.
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
		if err != nil {
			log.Warn().Err(err).Str("word", w.Word).Msg("Skipping unmatchable banned word")
			continue
		}

		if re.MatchString(lowered) {
			matches = append(matches, w)
		}
	}

	return matches
}
