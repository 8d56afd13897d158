package account

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
)

// EmployeeStatus tells whether an employee can receive follow-up tasks.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Employee is a back-office profile. Only active employees are picked for
// follow-up tasks.
type Employee struct {
	id     kernel.UUID
	userID kernel.UUID
	name   string
	phone  string
	status EmployeeStatus
}

func RestoreEmployee(id, userID kernel.UUID, name, phone string, status EmployeeStatus) (*Employee, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}
	return &Employee{id: id, userID: userID, name: name, phone: phone, status: status}, nil
}

func (e *Employee) ID() kernel.UUID        { return e.id }
func (e *Employee) UserID() kernel.UUID    { return e.userID }
func (e *Employee) Name() string           { return e.name }
func (e *Employee) Phone() string          { return e.phone }
func (e *Employee) Status() EmployeeStatus { return e.status }
func (e *Employee) IsActive() bool         { return e.status == EmployeeActive }

// Partner is a business placing orders on behalf of its customers.
type Partner struct {
	id     kernel.UUID
	userID kernel.UUID
	name   string
	phone  string
}

func RestorePartner(id, userID kernel.UUID, name, phone string) (*Partner, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}
	return &Partner{id: id, userID: userID, name: name, phone: phone}, nil
}

func (p *Partner) ID() kernel.UUID     { return p.id }
func (p *Partner) UserID() kernel.UUID { return p.userID }
func (p *Partner) Name() string        { return p.name }
func (p *Partner) Phone() string       { return p.phone }
