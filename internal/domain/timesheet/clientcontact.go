package timesheet

import (
	"fmt"
	"time"

	rentalvo "rentra/internal/domain/rental/valueobjects"
)

// ClientContact is a person at the client organization who may be
// authorized to approve timesheets and billing documents up to a limit.
type ClientContact struct {
	id                  uint
	clientID            uint
	name                string
	email               string
	phone               string
	canApproveTimesheet bool
	canApproveBilling   bool
	approvalLimit       *rentalvo.Money
	isPrimary           bool
	isActive            bool
	createdAt           time.Time
	updatedAt           time.Time
}

// NewClientContact creates an active contact without approval rights;
// rights are granted explicitly afterwards.
func NewClientContact(clientID uint, name, email, phone string) (*ClientContact, error) {
	if clientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("contact name is required")
	}

	now := time.Now().UTC()
	return &ClientContact{
		clientID:  clientID,
		name:      name,
		email:     email,
		phone:     phone,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructClientContact rebuilds a contact from persistence.
func ReconstructClientContact(
	id, clientID uint,
	name, email, phone string,
	canApproveTimesheet, canApproveBilling bool,
	approvalLimit *rentalvo.Money,
	isPrimary, isActive bool,
	createdAt, updatedAt time.Time,
) (*ClientContact, error) {
	if id == 0 {
		return nil, fmt.Errorf("contact ID cannot be zero")
	}
	if clientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}

	return &ClientContact{
		id:                  id,
		clientID:            clientID,
		name:                name,
		email:               email,
		phone:               phone,
		canApproveTimesheet: canApproveTimesheet,
		canApproveBilling:   canApproveBilling,
		approvalLimit:       approvalLimit,
		isPrimary:           isPrimary,
		isActive:            isActive,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (c *ClientContact) ID() uint                      { return c.id }
func (c *ClientContact) ClientID() uint                { return c.clientID }
func (c *ClientContact) Name() string                  { return c.name }
func (c *ClientContact) Email() string                 { return c.email }
func (c *ClientContact) Phone() string                 { return c.phone }
func (c *ClientContact) CanApproveTimesheet() bool     { return c.canApproveTimesheet }
func (c *ClientContact) CanApproveBilling() bool       { return c.canApproveBilling }
func (c *ClientContact) ApprovalLimit() *rentalvo.Money { return c.approvalLimit }
func (c *ClientContact) IsPrimary() bool               { return c.isPrimary }
func (c *ClientContact) IsActive() bool                { return c.isActive }
func (c *ClientContact) CreatedAt() time.Time          { return c.createdAt }
func (c *ClientContact) UpdatedAt() time.Time          { return c.updatedAt }

// SetID sets the contact ID (only for persistence layer use)
func (c *ClientContact) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("contact ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("contact ID cannot be zero")
	}
	c.id = id
	return nil
}

// GrantApprovalRights grants timesheet/billing approval up to the limit.
func (c *ClientContact) GrantApprovalRights(timesheet, billing bool, limit *rentalvo.Money) {
	c.canApproveTimesheet = timesheet
	c.canApproveBilling = billing
	c.approvalLimit = limit
	c.updatedAt = time.Now().UTC()
}

// Deactivate withdraws the contact from all approval flows.
func (c *ClientContact) Deactivate() {
	c.isActive = false
	c.updatedAt = time.Now().UTC()
}
