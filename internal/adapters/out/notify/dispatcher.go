package notify

import (
	"context"
	"log/slog"
	"sync"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// OpsChannel receives a copy of every admin notification.
type OpsChannel interface {
	Announce(ctx context.Context, n ports.Notification) error
}

// Dispatcher resolves audiences and sends notifications in the background. Delivery
// never blocks or fails the caller.
//
// Example:
//
//	d := notify.NewDispatcher(fcm, tokens, nil, logger)
//	d.NotifyAvailableDrivers(ctx, ports.Notification{Title: "New order"}, takenBy)
//	defer d.Wait()
type Dispatcher struct {
	notifier  ports.Notifier
	directory ports.TokenDirectory
	ops       OpsChannel
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher builds a dispatcher; ops may be nil.
func NewDispatcher(
	notifier ports.Notifier,
	directory ports.TokenDirectory,
	ops OpsChannel,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		notifier:  notifier,
		directory: directory,
		ops:       ops,
		logger:    logger.With("component", "notifications"),
	}
}

func (d *Dispatcher) NotifyAdmins(ctx context.Context, n ports.Notification) {
	d.dispatch(ctx, "admins", n, d.directory.TokensForAdmins)
	if d.ops == nil {
		return
	}
	d.goDetached(ctx, func(ctx context.Context) {
		if err := d.ops.Announce(ctx, n); err != nil {
			d.logger.ErrorContext(ctx, "ops announcement failed", "title", n.Title, "error", err)
		}
	})
}

func (d *Dispatcher) NotifyAvailableDrivers(ctx context.Context, n ports.Notification, exclude ...kernel.UUID) {
	d.dispatch(ctx, "available_drivers", n, func(ctx context.Context) ([]string, error) {
		return d.directory.TokensForAvailableDrivers(ctx, exclude...)
	})
}

func (d *Dispatcher) NotifyEmployee(ctx context.Context, employeeID kernel.UUID, n ports.Notification) {
	d.dispatch(ctx, "employee", n, func(ctx context.Context) ([]string, error) {
		return d.directory.TokensForEmployee(ctx, employeeID)
	})
}

// Wait blocks until every dispatched notification has been handled.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(
	ctx context.Context,
	audience string,
	n ports.Notification,
	tokens func(ctx context.Context) ([]string, error),
) {
	d.goDetached(ctx, func(ctx context.Context) {
		recipients, err := tokens(ctx)
		if err != nil {
			d.logger.ErrorContext(ctx, "cannot resolve notification audience", "audience", audience, "error", err)
			return
		}
		if len(recipients) == 0 {
			d.logger.DebugContext(ctx, "no recipients", "audience", audience)
			return
		}
		if err = d.notifier.Send(ctx, n, recipients); err != nil {
			d.logger.ErrorContext(ctx, "notification failed", "audience", audience, "error", err)
		}
	})
}

// goDetached runs fn with the values of ctx (the tenant) but without its cancellation.
func (d *Dispatcher) goDetached(ctx context.Context, fn func(ctx context.Context)) {
	detached := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.ErrorContext(detached, "notification panicked", "panic", r)
			}
		}()
		fn(detached)
	}()
}
