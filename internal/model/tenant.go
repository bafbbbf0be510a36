package model

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents the tenants table. Tenants are provisioned by ops
// tooling and are read-only to the web layer.
type Tenant struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	OwnerEmail string     `json:"owner_email"`
	WhatsApp   string     `json:"whatsapp"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// TenantDomain represents the tenant_domains table: a custom hostname
// attached to a tenant. Hostnames are matched exactly, one row per name.
type TenantDomain struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
