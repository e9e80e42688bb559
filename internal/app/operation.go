package app

import (
	"time"

	"dms-go/internal/dms"
)

// Operation tracks one CLI invocation from start to finish. Its ID tags
// every log line the command writes.
type Operation struct {
	ID         string
	Command    string
	Parameters string
	Status     string // "success" or "error"
	Started    time.Time
	Err        error
}

// NewOperation starts tracking command.
func NewOperation(command, parameters string, clock dms.Clock, ids dms.IDGenerator) *Operation {
	return &Operation{
		ID:         ids.New(),
		Command:    command,
		Parameters: parameters,
		Status:     "success",
		Started:    clock.Now(),
	}
}

// Fail marks the operation as failed with err. The first failure wins.
func (op *Operation) Fail(err error) {
	if err == nil || op.Err != nil {
		return
	}
	op.Status = "error"
	op.Err = err
}

// Failed reports whether Fail was called with a non-nil error.
func (op *Operation) Failed() bool {
	return op.Err != nil
}

// LogArgs returns the key/value pairs that summarize the operation at now.
func (op *Operation) LogArgs(now time.Time) []any {
	args := []any{
		"command", op.Command,
		"status", op.Status,
		"duration", now.Sub(op.Started).Round(time.Millisecond).String(),
	}
	if op.Parameters != "" {
		args = append(args, "parameters", op.Parameters)
	}
	if op.Err != nil {
		args = append(args, "error", op.Err.Error())
	}
	return args
}
