package game

import "fmt"

// Error codes. Callers can branch on the code; the message is for humans.
const (
	CodeNotStarted     = "not_started"
	CodeAlreadyStarted = "already_started"
	CodeEnded          = "ended"
	CodeNotYourTurn    = "not_your_turn"
	CodeNotAllowed     = "not_allowed"
	CodeInvalidCard    = "invalid_card"
	CodeInvalidTarget  = "invalid_target"
	CodePendingAction  = "pending_action"
	CodeRuleViolation  = "rule_violation"
	CodeUnknownPlayer  = "unknown_player"
)

// Error is the single failure kind raised by the game core. An Error is only
// returned from the validation phase of an operation; by the time any state
// has been mutated the operation can no longer fail.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func errf(code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// check returns nil when ok, otherwise a validation error.
func check(ok bool, code, format string, args ...any) error {
	if ok {
		return nil
	}
	return errf(code, format, args...)
}
