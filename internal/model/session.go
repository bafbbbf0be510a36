package model

// UserIdentity is the payload carried inside the session cookie.
type UserIdentity struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	TenantSlug string `json:"tenant_slug,omitempty"`
}
