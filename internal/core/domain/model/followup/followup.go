// Package followup holds what a cancellation leaves behind: the recorded cause and
// the task asking an employee to follow up with the client.
package followup

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

const maxCauseLength = 255

// TaskStatus is the progress of a follow-up task.
type TaskStatus string

const (
	TaskStarted   TaskStatus = "started"
	TaskCompleted TaskStatus = "completed"
)

// Task asks an employee to follow up on a canceled order.
type Task struct {
	id                 kernel.UUID
	orderID            kernel.UUID
	assignedEmployeeID kernel.UUID
	status             TaskStatus
}

// NewTask creates a started task.
func NewTask(id, orderID, assignedEmployeeID kernel.UUID) (*Task, error) {
	var assigneeErr error
	if err := assignedEmployeeID.Validate(); err != nil {
		assigneeErr = errs.NewValueIsRequiredErrorWithCause("assigned_employee_id", err)
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), assigneeErr); err != nil {
		return nil, err
	}
	return &Task{id: id, orderID: orderID, assignedEmployeeID: assignedEmployeeID, status: TaskStarted}, nil
}

func (t *Task) ID() kernel.UUID                 { return t.id }
func (t *Task) OrderID() kernel.UUID            { return t.orderID }
func (t *Task) AssignedEmployeeID() kernel.UUID { return t.assignedEmployeeID }
func (t *Task) Status() TaskStatus              { return t.status }

// CancellationCause records why an order was canceled.
type CancellationCause struct {
	orderID kernel.UUID
	cause   string
}

// NewCancellationCause requires a non-empty reason.
func NewCancellationCause(orderID kernel.UUID, cause string) (*CancellationCause, error) {
	cause = strings.TrimSpace(cause)
	var causeErr error
	switch {
	case cause == "":
		causeErr = errs.NewValueIsRequiredError("reason")
	case utf8.RuneCountInString(cause) > maxCauseLength:
		causeErr = errs.NewValueIsInvalidErrorWithCause("reason", fmt.Errorf("must be at most %d characters", maxCauseLength))
	}
	if err := errors.Join(orderID.Validate(), causeErr); err != nil {
		return nil, err
	}
	return &CancellationCause{orderID: orderID, cause: cause}, nil
}

func (c *CancellationCause) OrderID() kernel.UUID { return c.orderID }
func (c *CancellationCause) Cause() string        { return c.cause }
