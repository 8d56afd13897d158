// Package client holds the Client entity: the recipient of a delivery, identified
// by phone number within a tenant.
package client

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

const (
	maxPhoneLength   = 20
	maxNameLength    = 255
	maxAddressLength = 500
)

// Client is the recipient of orders. addedBy is the user that first registered the
// client and is the referrer credited by the referral ledger.
type Client struct {
	id      kernel.UUID
	phone   string
	name    string
	address string
	addedBy kernel.UUID
}

// Details are the client fields supplied when an order is placed.
type Details struct {
	Phone   string
	Name    string
	Address string
}

// Validate checks every field and joins the failures.
func (d Details) Validate() error {
	return errors.Join(
		validateText("client_phone", d.Phone, maxPhoneLength, true),
		validateText("client_name", d.Name, maxNameLength, true),
		validateText("client_address", d.Address, maxAddressLength, true),
	)
}

// Normalize trims surrounding whitespace of every field.
func (d Details) Normalize() Details {
	return Details{
		Phone:   strings.TrimSpace(d.Phone),
		Name:    strings.TrimSpace(d.Name),
		Address: strings.TrimSpace(d.Address),
	}
}

// NewClient registers a client added by addedBy.
func NewClient(id kernel.UUID, details Details, addedBy kernel.UUID) (*Client, error) {
	details = details.Normalize()

	var addedByErr error
	if err := addedBy.Validate(); err != nil {
		addedByErr = errs.NewValueIsRequiredErrorWithCause("added_by", err)
	}
	if err := errors.Join(id.Validate(), details.Validate(), addedByErr); err != nil {
		return nil, err
	}

	return &Client{
		id:      id,
		phone:   details.Phone,
		name:    details.Name,
		address: details.Address,
		addedBy: addedBy,
	}, nil
}

// RestoreClient rebuilds a stored client without re-validating text lengths.
func RestoreClient(id kernel.UUID, phone, name, address string, addedBy kernel.UUID) (*Client, error) {
	if err := errors.Join(id.Validate(), addedBy.Validate()); err != nil {
		return nil, err
	}
	return &Client{id: id, phone: phone, name: name, address: address, addedBy: addedBy}, nil
}

func (c *Client) ID() kernel.UUID      { return c.id }
func (c *Client) Phone() string        { return c.phone }
func (c *Client) Name() string         { return c.name }
func (c *Client) Address() string      { return c.address }
func (c *Client) AddedBy() kernel.UUID { return c.addedBy }

func validateText(field, value string, maxLength int, required bool) error {
	value = strings.TrimSpace(value)
	if required && value == "" {
		return errs.NewValueIsRequiredError(field)
	}
	if utf8.RuneCountInString(value) > maxLength {
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("must be at most %d characters", maxLength))
	}
	return nil
}
