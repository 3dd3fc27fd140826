package solver

import (
	"cmp"
	"slices"
	"strings"

	"github.com/samdwyer/countdown/internal/validate"
)

// BestWords returns up to limit of the longest words that can be made from
// letters, longest first and alphabetical within a length.
func BestWords(words []string, letters []rune, limit int) []string {
	if limit <= 0 {
		return nil
	}
	var found []string
	seen := make(map[string]struct{})
	for _, w := range words {
		w = strings.ToLower(w)
		if len(w) < validate.MinWordLength || len(w) > len(letters) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		if validate.LettersUsageValid(w, letters) {
			seen[w] = struct{}{}
			found = append(found, w)
		}
	}
	slices.SortFunc(found, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	if len(found) > limit {
		found = found[:limit]
	}
	return found
}
