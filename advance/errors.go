package advance

import "fmt"

// ValidationError reports input that can never be accepted, an amount of
// zero or less at create or confirm.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ConfigurationError reports a missing prerequisite a human has to fix,
// sequence, journal or account mapping. Never retried.
type ConfigurationError struct {
	Missing string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s (missing %s)", e.Reason, e.Missing)
}

// LedgerError reports a rejected ledger submission. The advance keeps
// its prior state.
type LedgerError struct {
	Reason string
	Err    error
}

func (e *LedgerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.Err.Error())
	}
	return e.Reason
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// StateError reports a transition illegal for the current paid,
// cancelled or travel status.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return e.Reason
}
