package access

import (
	"fmt"
	"strings"
	"time"
)

// Permission is one grantable capability, identified by a unique
// "resource:action" code.
type Permission struct {
	id        uint
	resource  string
	action    string
	createdAt time.Time
}

// NewPermission creates a permission from its resource and action parts.
func NewPermission(resource, action string) (*Permission, error) {
	if resource == "" {
		return nil, fmt.Errorf("permission resource is required")
	}
	if action == "" {
		return nil, fmt.Errorf("permission action is required")
	}

	return &Permission{
		resource:  resource,
		action:    action,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructPermission rebuilds a permission from persistence.
func ReconstructPermission(id uint, resource, action string, createdAt time.Time) (*Permission, error) {
	if id == 0 {
		return nil, fmt.Errorf("permission ID cannot be zero")
	}
	if resource == "" || action == "" {
		return nil, fmt.Errorf("permission resource and action are required")
	}

	return &Permission{
		id:        id,
		resource:  resource,
		action:    action,
		createdAt: createdAt,
	}, nil
}

func (p *Permission) ID() uint             { return p.id }
func (p *Permission) Resource() string     { return p.resource }
func (p *Permission) Action() string       { return p.action }
func (p *Permission) CreatedAt() time.Time { return p.createdAt }

// Code returns the canonical "resource:action" permission code.
func (p *Permission) Code() string {
	return p.resource + ":" + p.action
}

// SetID sets the permission ID (only for persistence layer use)
func (p *Permission) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("permission ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("permission ID cannot be zero")
	}
	p.id = id
	return nil
}

// SplitCode parses a "resource:action" code into its parts.
func SplitCode(code string) (resource, action string, err error) {
	parts := strings.SplitN(code, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid permission code: %s", code)
	}
	return parts[0], parts[1], nil
}
