/* score.go
 * Contains the scoring rules for match score predictions: parsing "home:away" strings, comparing a guess with the
 * actual result and aggregating points per user. Everything in this package is pure, nothing here logs or touches the db
 * Authors: Zachary Bower
 */

package scoring

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Outcome values awarded for a single prediction
const (
	OutcomeMiss   = 0 // wrong result
	OutcomeResult = 1 // right result (home win, away win or draw) but wrong score
	OutcomeExact  = 2 // exact score
)

// Score is a final (or guessed) match score
type Score struct {
	Home int
	Away int
}

// String returns the score in the "home:away" form accepted by ParseScore
func (s Score) String() string {
	return fmt.Sprintf("%d:%d", s.Home, s.Away)
}

// Result is the result category of a score
type Result int

const (
	HomeWin Result = iota
	AwayWin
	Draw
)

func (r Result) String() string {
	switch r {
	case HomeWin:
		return "HOME_WIN"
	case AwayWin:
		return "AWAY_WIN"
	case Draw:
		return "DRAW"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Category classifies a score as a home win, away win or draw
func Category(s Score) Result {
	switch {
	case s.Home > s.Away:
		return HomeWin
	case s.Home < s.Away:
		return AwayWin
	default:
		return Draw
	}
}

// ParseScore parses a string in the format "home:away" into a Score.
// Preconditions: Receives a string with exactly one colon and a non-negative integer either side of it. Whitespace
// around each number is ignored
// Postconditions: Returns the Score, or a *ParseError if the string is not in the expected format
func ParseScore(score string) (Score, error) {
	parts := strings.Split(score, ":")
	if len(parts) != 2 {
		return Score{}, &ParseError{Input: score, Reason: fmt.Sprintf("expected exactly one ':' but found %d", len(parts)-1)}
	}

	home, err := parseGoals(parts[0])
	if err != nil {
		return Score{}, &ParseError{Input: score, Reason: "home " + err.Error()}
	}
	away, err := parseGoals(parts[1])
	if err != nil {
		return Score{}, &ParseError{Input: score, Reason: "away " + err.Error()}
	}

	return Score{Home: home, Away: away}, nil
}

// ValidateScore reports whether score can be parsed, returning the same error ParseScore would
func ValidateScore(score string) error {
	_, err := ParseScore(score)
	return err
}

// parseGoals converts one side of a score string to an int
func parseGoals(segment string) (int, error) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return 0, fmt.Errorf("score is empty")
	}
	n, err := strconv.Atoi(segment)
	if err != nil {
		return 0, fmt.Errorf("score '%s' is not a number", segment)
	}
	if n < 0 {
		return 0, fmt.Errorf("score '%s' is negative", segment)
	}
	return n, nil
}

// CalculateOutcome calculates the outcome of a single guess.
// Returns:
//   - 2 if the guess matches the actual score (both home and away)
//   - 1 if the guess has the same result as the actual score (home win, away win or draw)
//   - 0 otherwise
func CalculateOutcome(guess Score, actual Score) int {
	if guess == actual {
		return OutcomeExact
	}
	if Category(guess) == Category(actual) {
		return OutcomeResult
	}
	return OutcomeMiss
}

// CalculatePoints calculates the points for each user based on their prediction and the actual result.
// Preconditions: Receives a map of user : guess (both in "home:away" format) and the actual result string. The map is
// not modified
// Postconditions: Returns a new map of user : points with one entry for every user in predictions. If the actual result
// can't be parsed a *ParseError is returned, if any guess can't be parsed a *GuessError is returned for the first
// offending user (by user id) and no points are returned
func CalculatePoints(predictions map[string]string, actualResult string) (map[string]int, error) {
	actual, err := ParseScore(actualResult)
	if err != nil {
		return nil, err
	}

	// Iterate users in sorted order so the reported user is the same on every call when several guesses are malformed
	users := make([]string, 0, len(predictions))
	for user := range predictions {
		users = append(users, user)
	}
	sort.Strings(users)

	points := make(map[string]int, len(predictions))
	for _, user := range users {
		guess, err := ParseScore(predictions[user])
		if err != nil {
			return nil, &GuessError{User: user, Err: err}
		}
		points[user] = CalculateOutcome(guess, actual)
	}

	return points, nil
}
