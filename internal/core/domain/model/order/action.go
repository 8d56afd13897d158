package order

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ActionTag names the lifecycle event an audit entry records.
type ActionTag string

const (
	ActionCreated   ActionTag = "created"
	ActionAccepted  ActionTag = "accepted"
	ActionDelivered ActionTag = "delivered"
	ActionCanceled  ActionTag = "canceled"
	ActionRejected  ActionTag = "rejected"
)

// Validate rejects tags outside of the known lifecycle events.
func (t ActionTag) Validate() error {
	switch t {
	case ActionCreated, ActionAccepted, ActionDelivered, ActionCanceled, ActionRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", string(t)))
	}
}

// ActionForTransition maps the target status of a transition to its audit tag.
// A transition back to pending is a rejection.
func ActionForTransition(to Status) (ActionTag, error) {
	switch to {
	case Accepted:
		return ActionAccepted, nil
	case Delivered:
		return ActionDelivered, nil
	case Canceled:
		return ActionCanceled, nil
	case Pending:
		return ActionRejected, nil
	default:
		return "", to.Validate()
	}
}

// Action is an append-only audit entry of the order history. It has no mutators.
type Action struct {
	id          kernel.UUID
	orderID     kernel.UUID
	actorID     kernel.UUID
	tag         ActionTag
	details     string
	performedAt time.Time
}

// NewAction builds an audit entry of actorID on orderID.
func NewAction(
	id kernel.UUID,
	orderID kernel.UUID,
	actorID kernel.UUID,
	tag ActionTag,
	details string,
	performedAt time.Time,
) (*Action, error) {
	var actorErr error
	if err := actorID.Validate(); err != nil {
		actorErr = errs.NewValueIsRequiredErrorWithCause("user_id", err)
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), actorErr, tag.Validate()); err != nil {
		return nil, err
	}

	return &Action{
		id:          id,
		orderID:     orderID,
		actorID:     actorID,
		tag:         tag,
		details:     details,
		performedAt: performedAt,
	}, nil
}

func (a *Action) ID() kernel.UUID        { return a.id }
func (a *Action) OrderID() kernel.UUID   { return a.orderID }
func (a *Action) ActorID() kernel.UUID   { return a.actorID }
func (a *Action) Tag() ActionTag         { return a.tag }
func (a *Action) Details() string        { return a.details }
func (a *Action) PerformedAt() time.Time { return a.performedAt }
