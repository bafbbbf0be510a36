package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/vitrina-solutions/storefront-service/internal/model"
)

// ProductRepository manages the tenant-scoped product catalog. Image
// lists are stored as a JSONB column.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, tenant_id, name, description, price_cents, currency, category, images, featured, created_at, updated_at`

func scanProduct(scan func(dest ...interface{}) error) (*model.Product, error) {
	p := &model.Product{}
	var images []byte
	err := scan(&p.ID, &p.TenantID, &p.Name, &p.Description, &p.PriceCents, &p.Currency, &p.Category, &images, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func encodeImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	return json.Marshal(images)
}

// Create inserts a product, assigning its ID and timestamps.
func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	images, err := encodeImages(p.Images)
	if err != nil {
		return err
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	query := `INSERT INTO products (` + productColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.db.ExecContext(ctx, query, p.ID, p.TenantID, p.Name, p.Description, p.PriceCents, p.Currency, p.Category, images, p.Featured, p.CreatedAt, p.UpdatedAt)
	return err
}

// GetByID returns the product for the tenant or (nil, nil) when absent.
func (r *ProductRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND id = $2`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, tenantID, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*model.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// List returns the tenant's products, newest first. When featuredOnly is
// set only featured products are returned (the storefront home strip).
func (r *ProductRepository) List(ctx context.Context, tenantID uuid.UUID, featuredOnly bool) ([]*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1`
	if featuredOnly {
		query += ` AND featured`
	}
	query += ` ORDER BY created_at DESC`
	return r.queryProducts(ctx, query, tenantID)
}

// ListByCategory returns the tenant's products in one category, newest first.
func (r *ProductRepository) ListByCategory(ctx context.Context, tenantID uuid.UUID, category string) ([]*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND category = $2 ORDER BY created_at DESC`
	return r.queryProducts(ctx, query, tenantID, category)
}

// Update rewrites the mutable fields of a product.
func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	images, err := encodeImages(p.Images)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	query := `UPDATE products SET name = $3, description = $4, price_cents = $5, currency = $6,
              category = $7, images = $8, featured = $9, updated_at = $10
              WHERE tenant_id = $1 AND id = $2`
	_, err = r.db.ExecContext(ctx, query, p.TenantID, p.ID, p.Name, p.Description, p.PriceCents, p.Currency, p.Category, images, p.Featured, p.UpdatedAt)
	return err
}

// Delete removes a product from the tenant's catalog.
func (r *ProductRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return err
}
