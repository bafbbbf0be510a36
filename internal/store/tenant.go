package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitrina-solutions/storefront-service/internal/model"
)

const tenantCacheTTL = 1 * time.Hour

// TenantRepository reads tenants and their custom domains. Tenant rows
// are created by ops tooling, so there is no write path here beyond
// cache invalidation helpers used by that tooling.
type TenantRepository struct {
	db    *sql.DB
	redis RedisClient
}

func NewTenantRepository(db *sql.DB, redis RedisClient) *TenantRepository {
	return &TenantRepository{db: db, redis: redis}
}

const tenantColumns = `id, name, slug, owner_email, whatsapp, status, created_at, updated_at, deleted_at`

func (r *TenantRepository) scanTenant(row *sql.Row) (*model.Tenant, error) {
	t := &model.Tenant{}
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.OwnerEmail, &t.WhatsApp, &t.Status, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// GetByID returns the tenant or (nil, nil) when no row matches.
func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1 AND deleted_at IS NULL`
	return r.scanTenant(r.db.QueryRowContext(ctx, query, id))
}

// GetBySlug resolves a tenant by its subdomain slug, cache-aside through Redis.
func (r *TenantRepository) GetBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	key := fmt.Sprintf("tenant:slug:%s", slug)
	if r.redis != nil {
		if cached, err := r.redis.Get(ctx, key).Result(); err == nil {
			t := &model.Tenant{}
			if err := json.Unmarshal([]byte(cached), t); err == nil {
				return t, nil
			}
		}
	}

	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1 AND deleted_at IS NULL LIMIT 1`
	t, err := r.scanTenant(r.db.QueryRowContext(ctx, query, slug))
	if err != nil || t == nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(t); err == nil {
			r.redis.SetEx(ctx, key, data, tenantCacheTTL)
		}
	}
	return t, nil
}

// GetDomainByName finds a custom-domain record by exact hostname match.
// Returns (nil, nil) when no domain row exists for the name.
func (r *TenantRepository) GetDomainByName(ctx context.Context, name string) (*model.TenantDomain, error) {
	query := `SELECT id, tenant_id, name, created_at FROM tenant_domains WHERE name = $1 LIMIT 1`
	d := &model.TenantDomain{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&d.ID, &d.TenantID, &d.Name, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// InvalidateSlug drops the cached entry for a slug. Used by provisioning
// tooling after it rewrites a tenant row.
func (r *TenantRepository) InvalidateSlug(ctx context.Context, slug string) {
	if r.redis != nil {
		r.redis.Del(ctx, fmt.Sprintf("tenant:slug:%s", slug))
	}
}
