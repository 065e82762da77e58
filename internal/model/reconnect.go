package model

import "time"

// ReconnectRecord tracks probe failures for one endpoint over the process
// lifetime. Attempts counts failures only; a success resets
// ConsecutiveFailures and clears FailureReason but never touches Attempts.
// Zero timestamps mean "never".
type ReconnectRecord struct {
	Attempts            int64     `json:"attempts"`
	ConsecutiveFailures int64     `json:"consecutive_failures"`
	LastAttempt         time.Time `json:"last_attempt,omitzero"`
	LastSuccess         time.Time `json:"last_success,omitzero"`
	LastFailure         time.Time `json:"last_failure,omitzero"`
	FailureReason       string    `json:"failure_reason,omitempty"`
}
