package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTenantRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *TenantRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	return db, mock, NewTenantRepository(db, redisClient)
}

func tenantRows(id uuid.UUID, slug string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "slug", "owner_email", "whatsapp", "status", "created_at", "updated_at", "deleted_at",
	}).AddRow(id, "Tienda "+slug, slug, "owner@"+slug+".pe", "51999000111", "active", now, now, nil)
}

func TestTenantRepository_GetBySlug(t *testing.T) {
	db, mock, repo := setupTenantRepo(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT`).WithArgs("acme").WillReturnRows(tenantRows(id, "acme"))

	tenant, err := repo.GetBySlug(context.Background(), "acme")
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.Equal(t, id, tenant.ID)
	assert.Equal(t, "acme", tenant.Slug)

	// Second call is served from the cache: no further DB expectation.
	cached, err := repo.GetBySlug(context.Background(), "acme")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, id, cached.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantRepository_GetBySlug_NotFound(t *testing.T) {
	db, mock, repo := setupTenantRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	tenant, err := repo.GetBySlug(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, tenant)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantRepository_InvalidateSlug(t *testing.T) {
	db, mock, repo := setupTenantRepo(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT`).WithArgs("acme").WillReturnRows(tenantRows(id, "acme"))
	_, err := repo.GetBySlug(context.Background(), "acme")
	require.NoError(t, err)

	repo.InvalidateSlug(context.Background(), "acme")

	// Cache dropped: the next read goes back to the database.
	mock.ExpectQuery(`SELECT`).WithArgs("acme").WillReturnRows(tenantRows(id, "acme"))
	_, err = repo.GetBySlug(context.Background(), "acme")
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantRepository_GetDomainByName(t *testing.T) {
	db, mock, repo := setupTenantRepo(t)
	defer db.Close()

	domainID, tenantID := uuid.New(), uuid.New()
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "created_at"}).
		AddRow(domainID, tenantID, "www.mitienda.pe", time.Now())
	mock.ExpectQuery(`SELECT`).WithArgs("www.mitienda.pe").WillReturnRows(rows)

	domain, err := repo.GetDomainByName(context.Background(), "www.mitienda.pe")
	require.NoError(t, err)
	require.NotNil(t, domain)
	assert.Equal(t, tenantID, domain.TenantID)

	mock.ExpectQuery(`SELECT`).WithArgs("nope.example.com").WillReturnError(sql.ErrNoRows)
	domain, err = repo.GetDomainByName(context.Background(), "nope.example.com")
	require.NoError(t, err)
	assert.Nil(t, domain)

	require.NoError(t, mock.ExpectationsWereMet())
}
