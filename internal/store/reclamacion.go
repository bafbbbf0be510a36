package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/vitrina-solutions/storefront-service/internal/crypto"
	"github.com/vitrina-solutions/storefront-service/internal/model"
)

// ReclamacionRepository persists consumer-complaint records. Rows are
// insert-only; the admin side can list them but never edits them. The
// consumer's document number is encrypted at rest, the plaintext field
// on the model is transient.
type ReclamacionRepository struct {
	db *sql.DB
}

func NewReclamacionRepository(db *sql.DB) *ReclamacionRepository {
	return &ReclamacionRepository{db: db}
}

const reclamacionColumns = `id, tenant_id, consumer_name, consumer_email, consumer_phone, address,
              document_type, encrypted_document, document_iv, claim_kind, good_kind, amount_cents,
              detail, pedido, acepta_terminos, created_at`

// Create inserts a complaint record, assigning its ID and timestamp.
func (r *ReclamacionRepository) Create(ctx context.Context, rec *model.Reclamacion) error {
	encDoc, docIV, err := crypto.Encrypt(rec.DocumentNumber)
	if err != nil {
		return err
	}
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	query := `INSERT INTO reclamaciones (` + reclamacionColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.db.ExecContext(ctx, query, rec.ID, rec.TenantID, rec.ConsumerName, rec.ConsumerEmail,
		rec.ConsumerPhone, rec.Address, rec.DocumentType, encDoc, docIV, rec.ClaimKind,
		rec.GoodKind, rec.AmountCents, rec.Detail, rec.Pedido, rec.AceptaTerminos, rec.CreatedAt)
	return err
}

// ListByTenant returns the tenant's complaints, newest first, with the
// document numbers decrypted for the admin view.
func (r *ReclamacionRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*model.Reclamacion, error) {
	query := `SELECT ` + reclamacionColumns + ` FROM reclamaciones WHERE tenant_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*model.Reclamacion
	for rows.Next() {
		rec := &model.Reclamacion{}
		var encDoc, docIV []byte
		err := rows.Scan(&rec.ID, &rec.TenantID, &rec.ConsumerName, &rec.ConsumerEmail,
			&rec.ConsumerPhone, &rec.Address, &rec.DocumentType, &encDoc, &docIV,
			&rec.ClaimKind, &rec.GoodKind, &rec.AmountCents, &rec.Detail, &rec.Pedido,
			&rec.AceptaTerminos, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		if len(encDoc) > 0 && len(docIV) > 0 {
			if doc, err := crypto.Decrypt(encDoc, docIV); err == nil {
				rec.DocumentNumber = doc
			}
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
