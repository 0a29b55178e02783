/* errors.go
 * Contains the error types returned by the scoring package
 * Authors: Zachary Bower
 */

package scoring

import "fmt"

// ParseError is returned when a score string is not in the "home:away" format
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid score '%s': %s", e.Input, e.Reason)
}

// GuessError is returned by CalculatePoints when a user's guess can't be parsed
type GuessError struct {
	User string
	Err  error
}

func (e *GuessError) Error() string {
	return fmt.Sprintf("prediction for user '%s': %v", e.User, e.Err)
}

func (e *GuessError) Unwrap() error {
	return e.Err
}
