package types

import "fmt"

// Tenant is one logical site within a multi-tenant deployment.
// ID is the canonical identity; Slug is the human identifier used in
// URLs and seed files. Domain is informational.
type Tenant struct {
	ID     int64  `json:"id" yaml:"id" dynamodbav:"id"`
	Slug   string `json:"slug" yaml:"slug" dynamodbav:"slug"`
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty" dynamodbav:"domain"`
}

func (t Tenant) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("tenant id must be positive")
	}
	if t.Slug == "" {
		return fmt.Errorf("tenant slug is required")
	}
	return nil
}

// TenantRef identifies a tenant by canonical id or by slug. The zero
// value means "the ambient tenant".
type TenantRef struct {
	ID   int64
	Slug string
}

func ByID(id int64) TenantRef { return TenantRef{ID: id} }

func BySlug(slug string) TenantRef { return TenantRef{Slug: slug} }

// IsAmbient reports whether the ref carries no explicit identifier.
func (r TenantRef) IsAmbient() bool { return r.ID == 0 && r.Slug == "" }

func (r TenantRef) String() string {
	switch {
	case r.ID != 0:
		return fmt.Sprintf("#%d", r.ID)
	case r.Slug != "":
		return r.Slug
	default:
		return "<ambient>"
	}
}
