package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var nadia = client.Details{Phone: "0612345678", Name: "Nadia", Address: "12 rue des Lilas"}

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	uow := NewMockUoW()
	listings := new(MockListings)
	notifications := new(MockNotifications)
	handler := commands.NewCreateOrderCommandHandler(factoryFor(uow), listings, notifications)

	identity := actor.Employee{User: kernel.NewUUID(), EmployeeID: kernel.NewUUID(), Name: "Lina"}
	existing, err := client.RestoreClient(kernel.NewUUID(), nadia.Phone, nadia.Name, nadia.Address, kernel.NewUUID())
	require.NoError(t, err)

	uow.ExpectTransaction(ctx, true)
	uow.Clients.On("FindOrCreateByPhone", ctx, mock.MatchedBy(func(c *client.Client) bool {
		return c.Phone() == nadia.Phone && c.AddedBy().IsEqual(identity.User)
	})).Return(existing, nil).Once()
	uow.Orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.Actions.On("Add", ctx, actionWith(order.ActionCreated, "created by Employee - Lina")).Return(nil).Once()
	listings.On("PendingOrdersChanged", ctx).Once()
	notifications.On("NotifyAvailableDrivers", ctx, mock.Anything, mock.Anything).Once()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), nadia, "2 pizzas", order.Notes{Client: "ring twice"}, nil, identity)
	require.NoError(t, err)

	o, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, o.Status())
	assert.True(t, o.ClientID().IsEqual(existing.ID()))
	assert.True(t, o.CreatorID().IsEqual(identity.User))
	assert.Nil(t, o.DeliveryPersonID())
	uow.AssertAll(t)
	listings.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_PartnerOrdersOnOwnBehalf(t *testing.T) {
	ctx := t.Context()
	uow := NewMockUoW()
	listings := new(MockListings)
	notifications := new(MockNotifications)
	handler := commands.NewCreateOrderCommandHandler(factoryFor(uow), listings, notifications)

	identity := actor.Partner{User: kernel.NewUUID(), PartnerID: kernel.NewUUID(), Name: "Chez Ali"}
	someoneElse := kernel.NewUUID()
	stored, err := client.RestoreClient(kernel.NewUUID(), nadia.Phone, nadia.Name, nadia.Address, identity.User)
	require.NoError(t, err)
	partner, err := account.RestorePartner(identity.PartnerID, identity.User, "Chez Ali", "")
	require.NoError(t, err)

	uow.ExpectTransaction(ctx, true)
	uow.Partners.On("Get", ctx, identity.PartnerID).Return(partner, nil).Once()
	uow.Clients.On("FindOrCreateByPhone", ctx, mock.Anything).Return(stored, nil).Once()
	uow.Orders.On("Add", ctx, mock.Anything).Return(nil).Once()
	uow.Actions.On("Add", ctx, mock.Anything).Return(nil).Once()
	listings.On("PendingOrdersChanged", ctx).Once()
	notifications.On("NotifyAvailableDrivers", ctx, mock.Anything, mock.Anything).Once()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), nadia, "flowers", order.Notes{}, &someoneElse, identity)
	require.NoError(t, err)

	o, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, o.PartnerID())
	assert.True(t, o.PartnerID().IsEqual(identity.PartnerID))
	uow.AssertAll(t)
}

func TestCreateOrderCommandHandler_DriverRegistersClientAsReferrer(t *testing.T) {
	ctx := t.Context()
	uow := NewMockUoW()
	listings := new(MockListings)
	notifications := new(MockNotifications)
	handler := commands.NewCreateOrderCommandHandler(factoryFor(uow), listings, notifications)

	identity := actor.DeliveryPerson{User: kernel.NewUUID(), DeliveryPersonID: kernel.NewUUID(), Name: "Sam"}
	stored, err := client.RestoreClient(kernel.NewUUID(), nadia.Phone, nadia.Name, nadia.Address, identity.User)
	require.NoError(t, err)

	uow.ExpectTransaction(ctx, true)
	uow.Clients.On("FindOrCreateByPhone", ctx, mock.MatchedBy(func(c *client.Client) bool {
		return c.AddedBy().IsEqual(identity.User)
	})).Return(stored, nil).Once()
	uow.Orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.Actions.On("Add", ctx, actionWith(order.ActionCreated, "created by Driver - Sam")).Return(nil).Once()
	listings.On("PendingOrdersChanged", ctx).Once()
	notifications.On("NotifyAvailableDrivers", ctx, mock.Anything, mock.Anything).Once()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), nadia, "parcel", order.Notes{}, nil, identity)
	require.NoError(t, err)

	o, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, o.Status())
	assert.True(t, o.CreatorID().IsEqual(identity.User))
	assert.Nil(t, o.PartnerID())
	assert.Nil(t, o.DeliveryPersonID())
	uow.Partners.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	uow.AssertAll(t)
	listings.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_DriverCannotChoosePartner(t *testing.T) {
	uow := NewMockUoW()
	listings := new(MockListings)
	handler := commands.NewCreateOrderCommandHandler(factoryFor(uow), listings, new(MockNotifications))

	identity := actor.DeliveryPerson{User: kernel.NewUUID(), DeliveryPersonID: kernel.NewUUID(), Name: "Sam"}
	partnerID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), nadia, "parcel", order.Notes{}, &partnerID, identity)
	require.NoError(t, err)

	_, err = handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
	listings.AssertNotCalled(t, "PendingOrdersChanged", mock.Anything)
}

func TestCreateOrderCommandHandler_UnknownPartner(t *testing.T) {
	ctx := t.Context()
	uow := NewMockUoW()
	listings := new(MockListings)
	handler := commands.NewCreateOrderCommandHandler(factoryFor(uow), listings, new(MockNotifications))
	partnerID := kernel.NewUUID()

	uow.ExpectTransaction(ctx, false)
	uow.Partners.On("Get", ctx, partnerID).Return(nil, errs.NewObjectNotFoundError("partner", partnerID)).Once()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), nadia, "parcel", order.Notes{}, &partnerID,
		actor.Admin{User: kernel.NewUUID()})
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.Orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	listings.AssertNotCalled(t, "PendingOrdersChanged", mock.Anything)
	uow.AssertAll(t)
}

func TestNewCreateOrderCommand_CollectsFieldErrors(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), client.Details{Name: "Nadia"}, "  ", order.Notes{},
		nil, actor.Admin{User: kernel.NewUUID()})

	require.Error(t, err)
	fields := errs.FieldErrors(err)
	assert.Contains(t, fields, "client_phone")
	assert.Contains(t, fields, "client_address")
	assert.Contains(t, fields, "request")
	assert.NotContains(t, fields, "client_name")
}
