package http

import (
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type DeviceTokenRequest struct {
	Token string `json:"token"`
}

type CreateOrderRequest struct {
	ClientPhone   string       `json:"client_phone"`
	ClientName    string       `json:"client_name"`
	ClientAddress string       `json:"client_address"`
	Request       string       `json:"request"`
	ClientNotes   string       `json:"client_notes"`
	DriverNotes   string       `json:"driver_notes"`
	EmployeeNotes string       `json:"employee_notes"`
	PartnerID     *kernel.UUID `json:"partner_id"`
}

// UpdateOrderRequest changes status, notes or partner of an order. Absent fields
// are left untouched.
type UpdateOrderRequest struct {
	Status           *string      `json:"status"`
	Reason           string       `json:"reason"`
	DeliveryPersonID *kernel.UUID `json:"delivery_person_id"`
	PartnerID        *kernel.UUID `json:"partner_id"`
	Request          *string      `json:"request"`
	ClientNotes      *string      `json:"client_notes"`
	DriverNotes      *string      `json:"driver_notes"`
	EmployeeNotes    *string      `json:"employee_notes"`
}

func (r UpdateOrderRequest) notes() order.NotesPatch {
	return order.NotesPatch{
		Client:   r.ClientNotes,
		Driver:   r.DriverNotes,
		Employee: r.EmployeeNotes,
		Request:  r.Request,
	}
}

type AcceptOrderRequest struct {
	DeliveryPersonID *kernel.UUID `json:"delivery_person_id"`
}

type CreateDeliveryPersonRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Balance  string `json:"balance"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type OrderResponse struct {
	ID                  kernel.UUID  `json:"id"`
	Status              string       `json:"status"`
	ClientID            kernel.UUID  `json:"client_id"`
	PartnerID           *kernel.UUID `json:"partner_id,omitempty"`
	DeliveryPersonID    *kernel.UUID `json:"delivery_person_id,omitempty"`
	Request             string       `json:"request"`
	ClientNotes         string       `json:"client_notes"`
	DriverNotes         string       `json:"driver_notes"`
	EmployeeNotes       string       `json:"employee_notes"`
	CreatedAt           time.Time    `json:"created_at"`
	DeliveredCanceledAt *time.Time   `json:"delivered_canceled_at,omitempty"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	notes := o.Notes()
	return OrderResponse{
		ID:                  o.ID(),
		Status:              o.Status().String(),
		ClientID:            o.ClientID(),
		PartnerID:           o.PartnerID(),
		DeliveryPersonID:    o.DeliveryPersonID(),
		Request:             o.Request(),
		ClientNotes:         notes.Client,
		DriverNotes:         notes.Driver,
		EmployeeNotes:       notes.Employee,
		CreatedAt:           o.CreatedAt(),
		DeliveredCanceledAt: o.DeliveredCanceledAt(),
	}
}

type DeliveryPersonResponse struct {
	ID          kernel.UUID     `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	IsAvailable bool            `json:"is_available"`
	Balance     decimal.Decimal `json:"balance"`
	Latitude    *float64        `json:"latitude,omitempty"`
	Longitude   *float64        `json:"longitude,omitempty"`
}

func newDeliveryPersonResponse(dp *driver.DeliveryPerson) DeliveryPersonResponse {
	resp := DeliveryPersonResponse{
		ID:          dp.ID(),
		Name:        dp.Name(),
		Phone:       dp.Phone(),
		IsAvailable: dp.IsAvailable(),
		Balance:     dp.Balance(),
	}
	if location := dp.Location(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		resp.Latitude, resp.Longitude = &lat, &lng
	}
	return resp
}
