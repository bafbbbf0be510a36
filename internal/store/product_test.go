package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina-solutions/storefront-service/internal/model"
)

func setupProductRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *ProductRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewProductRepository(db)
}

func productRow(id, tenantID uuid.UUID, name string, featured bool) []driver.Value {
	now := time.Now()
	return []driver.Value{id, tenantID, name, "desc", int64(4990), "PEN", "ropa",
		[]byte(`["https://img.example/1.jpg"]`), featured, now, now}
}

func TestProductRepository_Create(t *testing.T) {
	db, mock, repo := setupProductRepo(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO products`).WillReturnResult(sqlmock.NewResult(0, 1))

	p := &model.Product{
		TenantID:   uuid.New(),
		Name:       "Polo",
		PriceCents: 4990,
		Currency:   "PEN",
		Images:     []string{"https://img.example/1.jpg"},
	}
	err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID(t *testing.T) {
	db, mock, repo := setupProductRepo(t)
	defer db.Close()

	id, tenantID := uuid.New(), uuid.New()
	cols := []string{"id", "tenant_id", "name", "description", "price_cents", "currency", "category", "images", "featured", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT`).WithArgs(tenantID, id).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(productRow(id, tenantID, "Polo", true)...))

	p, err := repo.GetByID(context.Background(), tenantID, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Polo", p.Name)
	assert.Equal(t, []string{"https://img.example/1.jpg"}, p.Images)
	assert.True(t, p.Featured)

	mock.ExpectQuery(`SELECT`).WithArgs(tenantID, id).WillReturnError(sql.ErrNoRows)
	p, err = repo.GetByID(context.Background(), tenantID, id)
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListFeaturedOnly(t *testing.T) {
	db, mock, repo := setupProductRepo(t)
	defer db.Close()

	tenantID := uuid.New()
	cols := []string{"id", "tenant_id", "name", "description", "price_cents", "currency", "category", "images", "featured", "created_at", "updated_at"}
	rows := sqlmock.NewRows(cols).
		AddRow(productRow(uuid.New(), tenantID, "Destacado", true)...)
	mock.ExpectQuery(`AND featured`).WithArgs(tenantID).WillReturnRows(rows)

	products, err := repo.List(context.Background(), tenantID, true)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Destacado", products[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateAndDelete(t *testing.T) {
	db, mock, repo := setupProductRepo(t)
	defer db.Close()

	p := &model.Product{ID: uuid.New(), TenantID: uuid.New(), Name: "Polo"}

	mock.ExpectExec(`UPDATE products`).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), p))

	mock.ExpectExec(`DELETE FROM products`).WithArgs(p.TenantID, p.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), p.TenantID, p.ID))

	require.NoError(t, mock.ExpectationsWereMet())
}
