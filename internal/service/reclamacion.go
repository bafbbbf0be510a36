package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vitrina-solutions/storefront-service/internal/model"
	"github.com/vitrina-solutions/storefront-service/internal/monitoring"
)

// ReclamacionStore is the store surface the intake service needs.
type ReclamacionStore interface {
	Create(ctx context.Context, rec *model.Reclamacion) error
}

// MailSender matches mail.Sender without importing the package.
type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ReclamacionInput is the raw complaint form submission.
type ReclamacionInput struct {
	ConsumerName   string
	ConsumerEmail  string
	ConsumerPhone  string
	Address        string
	DocumentType   string
	DocumentNumber string
	ClaimKind      string
	GoodKind       string
	Amount         string
	Detail         string
	Pedido         string
	AceptaTerminos bool
}

// ReclamacionService validates and records consumer complaints and sends
// the two notification mails. Validation failures send nothing.
type ReclamacionService struct {
	repo   ReclamacionStore
	mailer MailSender
}

func NewReclamacionService(repo ReclamacionStore, mailer MailSender) *ReclamacionService {
	return &ReclamacionService{repo: repo, mailer: mailer}
}

var documentTypes = map[string]bool{"DNI": true, "CE": true, "pasaporte": true}

// Validate returns per-field messages for every constraint the form
// violates. An empty map means the submission is acceptable.
func (s *ReclamacionService) Validate(in ReclamacionInput) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.ConsumerName) == "" {
		errs["consumer_name"] = "El nombre es obligatorio"
	}
	if !strings.Contains(in.ConsumerEmail, "@") {
		errs["consumer_email"] = "Ingrese un correo válido"
	}
	if !documentTypes[in.DocumentType] {
		errs["document_type"] = "Tipo de documento inválido"
	}
	if strings.TrimSpace(in.DocumentNumber) == "" {
		errs["document_number"] = "El número de documento es obligatorio"
	}
	if in.ClaimKind != model.ClaimReclamo && in.ClaimKind != model.ClaimQueja {
		errs["claim_kind"] = "Seleccione reclamo o queja"
	}
	if in.GoodKind != model.GoodProducto && in.GoodKind != model.GoodServicio {
		errs["good_kind"] = "Seleccione producto o servicio"
	}
	if strings.TrimSpace(in.Detail) == "" {
		errs["detail"] = "El detalle es obligatorio"
	}
	if in.Amount != "" {
		if _, err := ParseAmountCents(in.Amount); err != nil {
			errs["amount"] = "Monto inválido"
		}
	}
	if !in.AceptaTerminos {
		errs["acepta_terminos"] = "Debe aceptar los términos para continuar"
	}
	return errs
}

// Submit validates, persists and notifies. The returned map carries
// field errors when validation fails; in that case nothing is stored
// and no mail is sent. Mail failures after a successful insert are
// logged and swallowed: the submission still succeeds.
func (s *ReclamacionService) Submit(ctx context.Context, tenant *model.Tenant, contact model.ContactInfo, in ReclamacionInput) (*model.Reclamacion, map[string]string, error) {
	if errs := s.Validate(in); len(errs) > 0 {
		return nil, errs, nil
	}

	amount, _ := ParseAmountCents(in.Amount)
	rec := &model.Reclamacion{
		TenantID:       tenant.ID,
		ConsumerName:   strings.TrimSpace(in.ConsumerName),
		ConsumerEmail:  strings.TrimSpace(in.ConsumerEmail),
		ConsumerPhone:  strings.TrimSpace(in.ConsumerPhone),
		Address:        strings.TrimSpace(in.Address),
		DocumentType:   in.DocumentType,
		DocumentNumber: strings.TrimSpace(in.DocumentNumber),
		ClaimKind:      in.ClaimKind,
		GoodKind:       in.GoodKind,
		AmountCents:    amount,
		Detail:         strings.TrimSpace(in.Detail),
		Pedido:         strings.TrimSpace(in.Pedido),
		AceptaTerminos: in.AceptaTerminos,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, nil, err
	}
	monitoring.ReclamacionesSubmitted.Inc()

	s.notify(ctx, tenant, contact, rec)
	return rec, nil, nil
}

func (s *ReclamacionService) notify(ctx context.Context, tenant *model.Tenant, contact model.ContactInfo, rec *model.Reclamacion) {
	if s.mailer == nil {
		return
	}
	body, err := renderReclamacionMail(tenant, rec)
	if err != nil {
		log.Error().Err(err).Msg("reclamacion mail render failed")
		return
	}

	subject := fmt.Sprintf("Hoja de reclamación %s", rec.ID)
	failures := 0
	if err := s.mailer.Send(ctx, rec.ConsumerEmail, subject, body); err != nil {
		failures++
	}
	storeAddr := contact.Email
	if storeAddr == "" {
		storeAddr = tenant.OwnerEmail
	}
	if storeAddr != "" {
		if err := s.mailer.Send(ctx, storeAddr, subject, body); err != nil {
			failures++
		}
	}
	if failures == 2 {
		monitoring.Alert("reclamacion notifications undeliverable", map[string]string{
			"tenant": tenant.Slug, "reclamacion": rec.ID.String(),
		})
	}
}

// ParseAmountCents converts a decimal money string ("49.90") to cents.
func ParseAmountCents(raw string) (int64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return int64(v*100 + 0.5), nil
}

var reclamacionMailTmpl = template.Must(template.New("reclamacion").Parse(`<html><body>
<h2>Hoja de reclamación — {{.Tenant.Name}}</h2>
<p>Registrada el {{.Rec.CreatedAt.Format "02/01/2006 15:04"}}.</p>
<table>
<tr><td>Consumidor</td><td>{{.Rec.ConsumerName}}</td></tr>
<tr><td>Documento</td><td>{{.Rec.DocumentType}} {{.Rec.DocumentNumber}}</td></tr>
<tr><td>Tipo</td><td>{{.Rec.ClaimKind}}</td></tr>
<tr><td>Bien</td><td>{{.Rec.GoodKind}}</td></tr>
{{if .Rec.AmountCents}}<tr><td>Monto</td><td>{{printf "%.2f" .Amount}}</td></tr>{{end}}
<tr><td>Detalle</td><td>{{.Rec.Detail}}</td></tr>
{{if .Rec.Pedido}}<tr><td>Pedido</td><td>{{.Rec.Pedido}}</td></tr>{{end}}
</table>
<p>Este correo es una constancia de registro. El proveedor responderá en el plazo legal.</p>
</body></html>`))

func renderReclamacionMail(tenant *model.Tenant, rec *model.Reclamacion) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Tenant *model.Tenant
		Rec    *model.Reclamacion
		Amount float64
	}{tenant, rec, float64(rec.AmountCents) / 100}
	if err := reclamacionMailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
