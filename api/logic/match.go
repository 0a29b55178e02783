/* match.go
 * Contains the logic for processing user input: resolving match names and cleaning up guesses
 * Authors: Zachary Bower
 */

package logic

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrUnknownMatch is returned when user input can't be resolved to a stored match
var ErrUnknownMatch = errors.New("unknown match")

// MatchID builds the id used to store a match between two teams
func MatchID(home string, away string) string {
	return fmt.Sprintf("%s vs %s", strings.TrimSpace(home), strings.TrimSpace(away))
}

// ResolveMatch finds the match the user meant from a list of valid match ids.
// Preconditions: receives the user's input and a slice of valid match ids
// Postconditions: returns the matching id. An exact match is preferred, then a case insensitive one (the first id wins
// when several only differ by case), otherwise the best ranked fuzzy match is used. Returns ErrUnknownMatch if nothing
// matches or if the best fuzzy matches are tied
func ResolveMatch(input string, matchIDs []string) (string, error) {
	trimmed := strings.TrimSpace(input)
	lowerInput := strings.ToLower(trimmed)
	if lowerInput == "" {
		return "", fmt.Errorf("%w: no match name given", ErrUnknownMatch)
	}

	// Convert match ids to lowercase for better matching
	lookup := make(map[string]string, len(matchIDs))
	lowerIDs := make([]string, 0, len(matchIDs))
	for _, id := range matchIDs {
		if id == trimmed {
			return id, nil
		}
		lower := strings.ToLower(id)
		if _, seen := lookup[lower]; seen {
			continue
		}
		lookup[lower] = id
		lowerIDs = append(lowerIDs, lower)
	}

	if id, ok := lookup[lowerInput]; ok {
		return id, nil
	}

	ranks := fuzzy.RankFind(lowerInput, lowerIDs)
	if len(ranks) == 0 {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownMatch, input)
	}
	sort.Stable(ranks)

	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		return "", fmt.Errorf("%w: '%s' could be %s or %s", ErrUnknownMatch, input,
			lookup[ranks[0].Target], lookup[ranks[1].Target])
	}

	return lookup[ranks[0].Target], nil
}

// NormalizeGuess strips the quote characters discord users tend to wrap arguments in and any whitespace, so
// " “2 : 1” " becomes "2:1". It does not validate the guess
func NormalizeGuess(guess string) string {
	replacer := strings.NewReplacer("\"", "", "“", "", "”", "", " ", "", "\t", "")
	return replacer.Replace(strings.TrimSpace(guess))
}
