package model

import (
	"time"

	"github.com/google/uuid"
)

// Claim kinds and good kinds accepted by the libro de reclamaciones form.
const (
	ClaimReclamo = "reclamo"
	ClaimQueja   = "queja"

	GoodProducto = "producto"
	GoodServicio = "servicio"
)

// Reclamacion represents the reclamaciones table: a consumer complaint
// record. Rows are insert-only; the record is never edited after creation.
type Reclamacion struct {
	ID             uuid.UUID `json:"id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	ConsumerName   string    `json:"consumer_name"`
	ConsumerEmail  string    `json:"consumer_email"`
	ConsumerPhone  string    `json:"consumer_phone"`
	Address        string    `json:"address"`
	DocumentType   string    `json:"document_type"` // DNI, CE, pasaporte
	DocumentNumber string    `json:"document_number"`
	ClaimKind      string    `json:"claim_kind"` // reclamo or queja
	GoodKind       string    `json:"good_kind"`  // producto or servicio
	AmountCents    int64     `json:"amount_cents"`
	Detail         string    `json:"detail"`
	Pedido         string    `json:"pedido"`
	AceptaTerminos bool      `json:"acepta_terminos"`
	CreatedAt      time.Time `json:"created_at"`
}
