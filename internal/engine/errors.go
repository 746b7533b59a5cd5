package engine

import "fmt"

// ValidationError indicates mission creation (or another caller-supplied
// input) was rejected before any state changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// TimerBusyError is returned when a focus timer is requested while another
// mission already holds the timer slot. The running timer is left untouched.
type TimerBusyError struct {
	MissionID string
}

func (e TimerBusyError) Error() string {
	return fmt.Sprintf("a focus timer is already running for mission %s", e.MissionID)
}
