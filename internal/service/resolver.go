package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-solutions/storefront-service/internal/model"
	"github.com/vitrina-solutions/storefront-service/internal/monitoring"
)

// DefaultSlug is the tenant served for localhost hosts.
const DefaultSlug = "default"

// TenantLookup is the store surface the resolver needs.
type TenantLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*model.Tenant, error)
	GetDomainByName(ctx context.Context, name string) (*model.TenantDomain, error)
}

// TenantResolver maps an inbound hostname to the tenant whose storefront
// should be served. Not-found is (nil, nil); errors are transport failures.
type TenantResolver struct {
	repo       TenantLookup
	baseDomain string
}

func NewTenantResolver(repo TenantLookup, baseDomain string) *TenantResolver {
	return &TenantResolver{repo: repo, baseDomain: strings.ToLower(baseDomain)}
}

// Resolve tries, in order: the localhost default slug, an exact
// custom-domain match, and a base-domain subdomain. First match wins;
// each strategy issues at most one limited lookup per table.
func (r *TenantResolver) Resolve(ctx context.Context, host string) (*model.Tenant, error) {
	host = normalizeHost(host)

	if strings.Contains(host, "localhost") {
		tenant, err := r.repo.GetBySlug(ctx, DefaultSlug)
		r.observe("localhost", tenant, err)
		return tenant, err
	}

	domain, err := r.repo.GetDomainByName(ctx, host)
	if err != nil {
		r.observe("domain", nil, err)
		return nil, err
	}
	if domain != nil {
		tenant, err := r.repo.GetByID(ctx, domain.TenantID)
		r.observe("domain", tenant, err)
		return tenant, err
	}

	if suffix := "." + r.baseDomain; r.baseDomain != "" && strings.HasSuffix(host, suffix) {
		slug := strings.TrimSuffix(host, suffix)
		tenant, err := r.repo.GetBySlug(ctx, slug)
		r.observe("subdomain", tenant, err)
		return tenant, err
	}

	monitoring.TenantResolutions.WithLabelValues("none").Inc()
	return nil, nil
}

func (r *TenantResolver) observe(strategy string, tenant *model.Tenant, err error) {
	switch {
	case err != nil:
		log.Error().Err(err).Str("strategy", strategy).Msg("tenant resolution failed")
		monitoring.TenantResolutions.WithLabelValues("error").Inc()
	case tenant == nil:
		monitoring.TenantResolutions.WithLabelValues("none").Inc()
	default:
		monitoring.TenantResolutions.WithLabelValues(strategy).Inc()
	}
}

// normalizeHost lowercases the host and strips any port suffix.
func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndex(host, ":"); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return strings.TrimSuffix(host, ".")
}
