package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/followup"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// transitionOutcome is what the post-commit side effects need to know.
type transitionOutcome struct {
	from          order.Status
	actorName     string
	driverChanged bool
	taskEmployee  *kernel.UUID
	rejectedBy    *kernel.UUID
}

// TransitionOrderCommandHandler runs the order state machine.
//
// Within one unit of work it locks the order, checks the requested transition
// against the table before touching anything, applies the transition together with
// its driver availability and balance effects, writes exactly one audit entry and
// persists the order. Cache invalidation and notifications happen only once the
// transaction is committed.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, selector, invalidator, dispatcher)
//	to := order.Delivered
//	cmd, _ := NewTransitionOrderCommand(orderID, &to, TransitionPayload{}, identity)
//
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // e.g. delivering a pending order
//	}
type TransitionOrderCommandHandler struct {
	uowFactory    UoWFactory
	coordinator   DispatchCoordinator
	ledger        services.ReferralLedger
	audit         AuditRecorder
	selector      ports.EmployeeSelector
	listings      Listings
	notifications Notifications
	now           func() time.Time
}

func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	selector ports.EmployeeSelector,
	listings Listings,
	notifications Notifications,
) *TransitionOrderCommandHandler {
	return &TransitionOrderCommandHandler{
		uowFactory:    uowFactory,
		coordinator:   NewDispatchCoordinator(),
		ledger:        services.NewReferralLedger(),
		audit:         NewAuditRecorder(),
		selector:      selector,
		listings:      listings,
		notifications: notifications,
		now:           time.Now,
	}
}

// Handle applies the command and returns the updated order.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, outcome, err := h.apply(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.afterCommit(ctx, o, cmd.Status(), outcome)
	return o, nil
}

func (h *TransitionOrderCommandHandler) apply(
	ctx context.Context,
	uow UoW,
	cmd TransitionOrderCommand,
) (*order.Order, transitionOutcome, error) {
	var (
		by      = cmd.Actor()
		to      = cmd.Status()
		payload = cmd.Payload()
		dp      *driver.DeliveryPerson
		o       *order.Order
		err     error
	)

	if to != nil && *to == order.Accepted {
		dp, o, err = h.coordinator.ResolveAcceptance(ctx, uow, cmd.OrderID(), by, payload.DeliveryPersonID)
	} else {
		o, err = uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	}
	if err != nil {
		return nil, transitionOutcome{}, err
	}

	outcome := transitionOutcome{from: o.Status(), actorName: by.Label()}

	if to != nil {
		if err = o.Status().ValidateTransition(*to); err != nil {
			return nil, outcome, err
		}
	}
	if err = authorizeTransition(by, o, to); err != nil {
		return nil, outcome, err
	}
	if payload.PartnerID != nil && !actor.IsStaff(by) {
		return nil, outcome, errs.NewUnauthorizedError("update order", "partner_id is managed by staff")
	}

	if err = o.ApplyNotes(payload.Notes); err != nil {
		return nil, outcome, err
	}
	if payload.PartnerID != nil {
		if _, err = uow.PartnerRepository().Get(ctx, *payload.PartnerID); err != nil {
			return nil, outcome, err
		}
		if err = o.AssignPartner(*payload.PartnerID); err != nil {
			return nil, outcome, err
		}
	}

	if to != nil {
		var details string
		switch *to {
		case order.Accepted:
			details, err = h.accept(o, dp)
		case order.Delivered:
			details, err = h.deliver(ctx, uow, o)
		case order.Canceled:
			details, outcome.taskEmployee, err = h.cancel(ctx, uow, o, payload.Reason)
		case order.Pending:
			details, outcome.rejectedBy, err = h.reject(ctx, uow, o, by)
		default:
			err = to.Validate()
		}
		if err != nil {
			return nil, outcome, err
		}
		outcome.driverChanged = true

		tag, tagErr := order.ActionForTransition(*to)
		if tagErr != nil {
			return nil, outcome, tagErr
		}
		if _, err = h.audit.Record(ctx, uow.ActionRepository(), o, by, tag, details); err != nil {
			return nil, outcome, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, outcome, err
	}

	return o, outcome, nil
}

func (h *TransitionOrderCommandHandler) accept(o *order.Order, dp *driver.DeliveryPerson) (string, error) {
	if err := o.Accept(dp.ID()); err != nil {
		return "", err
	}
	return "accepted by " + dp.Name(), nil
}

func (h *TransitionOrderCommandHandler) deliver(ctx context.Context, uow UoW, o *order.Order) (string, error) {
	if err := o.Deliver(h.now()); err != nil {
		return "", err
	}

	repo := uow.DeliveryPersonRepository()
	delivererID := *o.DeliveryPersonID()

	c, err := uow.ClientRepository().Get(ctx, o.ClientID())
	if err != nil {
		return "", err
	}

	ids := []kernel.UUID{delivererID}
	referrer, err := repo.GetByUserID(ctx, c.AddedBy())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		referrer = nil
	case err != nil:
		return "", err
	case !referrer.ID().IsEqual(delivererID):
		ids = append(ids, referrer.ID())
	}

	locked, err := lockDrivers(ctx, repo, ids)
	if err != nil {
		return "", err
	}
	deliverer := locked[delivererID.String()]
	if referrer != nil {
		referrer = locked[referrer.ID().String()]
	}

	settlement, err := h.ledger.ApplyDeliveryCompletion(o, deliverer, referrer)
	if err != nil {
		return "", err
	}

	if err = repo.Update(ctx, deliverer); err != nil {
		return "", err
	}
	if settlement.ReferrerCredited {
		if err = repo.Update(ctx, referrer); err != nil {
			return "", err
		}
	}

	return "delivered by " + deliverer.Name(), nil
}

func (h *TransitionOrderCommandHandler) cancel(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	reason string,
) (string, *kernel.UUID, error) {
	previous, err := o.Cancel(h.now())
	if err != nil {
		return "", nil, err
	}

	if previous != nil {
		if err = restoreDriver(ctx, uow.DeliveryPersonRepository(), *previous); err != nil {
			return "", nil, err
		}
	}

	cause, err := followup.NewCancellationCause(o.ID(), reason)
	if err != nil {
		return "", nil, err
	}
	if err = uow.FollowUpRepository().AddCancellationCause(ctx, cause); err != nil {
		return "", nil, err
	}

	employee, err := h.followUpAssignee(ctx, uow, o)
	if err != nil {
		return "", nil, err
	}
	task, err := followup.NewTask(kernel.NewUUID(), o.ID(), employee.ID())
	if err != nil {
		return "", nil, err
	}
	if err = uow.FollowUpRepository().AddTask(ctx, task); err != nil {
		return "", nil, err
	}

	employeeID := employee.ID()
	return fmt.Sprintf("canceled: %s (follow-up assigned to %s)", cause.Cause(), employee.Name()), &employeeID, nil
}

// followUpAssignee returns the employee who created the order, or one picked by the
// selector among the active employees.
func (h *TransitionOrderCommandHandler) followUpAssignee(
	ctx context.Context,
	uow UoW,
	o *order.Order,
) (*account.Employee, error) {
	employees := uow.EmployeeRepository()

	creator, err := employees.GetByUserID(ctx, o.CreatorID())
	if err == nil {
		return creator, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	candidates, err := employees.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errs.NewObjectNotFoundError("employee", "any active employee")
	}
	return h.selector.SelectFallbackEmployee(ctx, candidates)
}

func (h *TransitionOrderCommandHandler) reject(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	by actor.Identity,
) (string, *kernel.UUID, error) {
	d, ok := by.(actor.DeliveryPerson)
	if !ok {
		return "", nil, errs.NewUnauthorizedError("reject order", "only the assigned delivery person can reject an order")
	}
	if err := o.Reject(d.DeliveryPersonID); err != nil {
		return "", nil, err
	}
	if err := restoreDriver(ctx, uow.DeliveryPersonRepository(), d.DeliveryPersonID); err != nil {
		return "", nil, err
	}

	id := d.DeliveryPersonID
	return "rejected by " + d.Name, &id, nil
}

func (h *TransitionOrderCommandHandler) afterCommit(
	ctx context.Context,
	o *order.Order,
	to *order.Status,
	outcome transitionOutcome,
) {
	h.listings.PendingOrdersChanged(ctx)
	if outcome.driverChanged {
		h.listings.RosterChanged(ctx)
	}

	if to == nil {
		h.notifications.NotifyAdmins(ctx, ports.Notification{
			Title: "Order updated",
			Body:  fmt.Sprintf("Order #%s was updated by %s", o.ID(), outcome.actorName),
			Link:  "/orders.html",
		})
		return
	}

	h.notifications.NotifyAdmins(ctx, ports.Notification{
		Title: "Order " + to.String(),
		Body:  fmt.Sprintf("Order #%s moved from %s to %s by %s", o.ID(), outcome.from, o.Status(), outcome.actorName),
		Link:  "/orders.html",
	})

	switch *to {
	case order.Pending:
		var exclude []kernel.UUID
		if outcome.rejectedBy != nil {
			exclude = append(exclude, *outcome.rejectedBy)
		}
		h.notifications.NotifyAvailableDrivers(ctx, ports.Notification{
			Title: "Order available",
			Body:  fmt.Sprintf("Order #%s is waiting for a driver again", o.ID()),
			Link:  "/livreur.html",
		}, exclude...)
	case order.Canceled:
		if outcome.taskEmployee != nil {
			h.notifications.NotifyEmployee(ctx, *outcome.taskEmployee, ports.Notification{
				Title: "New follow-up task",
				Body:  fmt.Sprintf("A follow-up task was created for order #%s", o.ID()),
				Link:  "/tasks.html",
			})
		}
	default:
	}
}

// authorizeTransition checks who may request which change. Acceptance is checked by
// the dispatch coordinator and rejection by the order itself.
func authorizeTransition(by actor.Identity, o *order.Order, to *order.Status) error {
	if actor.IsStaff(by) {
		return nil
	}

	isOwnerPartner := false
	if p, ok := by.(actor.Partner); ok {
		isOwnerPartner = o.CreatorID().IsEqual(p.User)
	}
	isAssignedDriver := false
	if d, ok := by.(actor.DeliveryPerson); ok {
		isAssignedDriver = o.IsAssignedTo(d.DeliveryPersonID)
	}

	if to == nil {
		if isOwnerPartner || isAssignedDriver {
			return nil
		}
		return errs.NewUnauthorizedError("update order", "order belongs to someone else")
	}

	switch *to {
	case order.Accepted, order.Pending:
		return nil
	case order.Delivered:
		if isAssignedDriver {
			return nil
		}
		return errs.NewUnauthorizedError("deliver order", "only the assigned delivery person or staff can deliver an order")
	case order.Canceled:
		if isOwnerPartner {
			return nil
		}
		return errs.NewUnauthorizedError("cancel order", "only staff or the partner who placed the order can cancel it")
	default:
		return nil
	}
}

// lockDrivers locks the given drivers in a stable order so that two deliveries
// settling the same pair of drivers cannot deadlock.
func lockDrivers(
	ctx context.Context,
	repo ports.DeliveryPersonRepository,
	ids []kernel.UUID,
) (map[string]*driver.DeliveryPerson, error) {
	sorted := append([]kernel.UUID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	locked := make(map[string]*driver.DeliveryPerson, len(sorted))
	for _, id := range sorted {
		dp, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id.String()] = dp
	}
	return locked, nil
}

func restoreDriver(ctx context.Context, repo ports.DeliveryPersonRepository, id kernel.UUID) error {
	dp, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}
	dp.RestoreAvailability()
	return repo.Update(ctx, dp)
}
