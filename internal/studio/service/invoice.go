package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/store"
	"github.com/trackroomhq/trackroom/pkg/idx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
)

// InvoiceService manages studio invoices. All amounts are integer cents and
// tax rates are basis points; totals come from domain.Invoice.Totals.
type InvoiceService struct {
	Store store.Store
}

// InvoiceLineInput is a line item as submitted by the caller.
type InvoiceLineInput struct {
	Description string
	Quantity    int64
	UnitCents   int64
}

// CreateInvoice records a draft invoice with its lines.
func (s *InvoiceService) CreateInvoice(
	ctx context.Context,
	actorID, studioID, number, clientName, clientEmail string,
	taxRateBps int64,
	lines []InvoiceLineInput,
) (domain.Invoice, error) {
	log := slogx.FromContext(ctx)

	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return domain.Invoice{}, err
	}

	number = strings.TrimSpace(number)
	clientName = strings.TrimSpace(clientName)
	switch {
	case number == "":
		return domain.Invoice{}, E(KindValidation, "invoice number must not be empty")
	case clientName == "":
		return domain.Invoice{}, E(KindValidation, "client name must not be empty")
	case taxRateBps < 0 || taxRateBps > 10000:
		return domain.Invoice{}, E(KindValidation, "tax rate must be between 0 and 10000 basis points")
	case len(lines) == 0:
		return domain.Invoice{}, E(KindValidation, "an invoice needs at least one line")
	}

	inv := domain.Invoice{
		ID:          idx.New().String(),
		StudioID:    studioID,
		Number:      number,
		ClientName:  clientName,
		ClientEmail: domain.NormalizeEmail(clientEmail),
		Status:      domain.InvoiceDraft,
		TaxRateBps:  taxRateBps,
		CreatedBy:   actorID,
	}
	for i, l := range lines {
		if strings.TrimSpace(l.Description) == "" {
			return domain.Invoice{}, E(KindValidation, "every line needs a description")
		}
		if l.Quantity <= 0 || l.UnitCents < 0 {
			return domain.Invoice{}, E(KindValidation, "line quantities must be positive and amounts non-negative")
		}
		inv.Lines = append(inv.Lines, domain.InvoiceLine{
			ID:          idx.New().String(),
			InvoiceID:   inv.ID,
			Position:    i,
			Description: strings.TrimSpace(l.Description),
			Quantity:    l.Quantity,
			UnitCents:   l.UnitCents,
		})
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Invoices().CreateInvoice(ctx, inv)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Invoice{}, E(KindValidation, "an invoice with that number already exists")
		}
		log.Error("failed to create invoice",
			slog.String("studio_id", studioID),
			slog.Any("error", err),
		)
		return domain.Invoice{}, dbError(err)
	}

	log.Info("invoice created",
		slog.String("invoice_id", inv.ID),
		slog.String("studio_id", studioID),
	)
	return inv, nil
}

// GetInvoice returns an invoice with its lines.
func (s *InvoiceService) GetInvoice(ctx context.Context, actorID, studioID, invoiceID string) (domain.Invoice, error) {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleMember); err != nil {
		return domain.Invoice{}, err
	}

	inv, err := s.Store.Invoices().GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invoice{}, E(KindValidation, "invoice not found")
		}
		return domain.Invoice{}, dbError(err)
	}
	if inv.StudioID != studioID {
		return domain.Invoice{}, E(KindValidation, "invoice not found")
	}
	return inv, nil
}

// ListInvoices returns a studio's invoices without lines, newest first.
func (s *InvoiceService) ListInvoices(ctx context.Context, actorID, studioID string) ([]domain.Invoice, error) {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleMember); err != nil {
		return nil, err
	}

	invoices, err := s.Store.Invoices().ListStudioInvoices(ctx, studioID)
	if err != nil {
		return nil, dbError(err)
	}
	return invoices, nil
}

// SetInvoiceStatus advances an invoice through its lifecycle. Transitions
// are forward only and the write is a compare-and-swap on the current
// status.
func (s *InvoiceService) SetInvoiceStatus(ctx context.Context, actorID, studioID, invoiceID string, next domain.InvoiceStatus) error {
	log := slogx.FromContext(ctx)

	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return err
	}

	inv, err := s.Store.Invoices().GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindValidation, "invoice not found")
		}
		return dbError(err)
	}
	if inv.StudioID != studioID {
		return E(KindValidation, "invoice not found")
	}
	if !inv.Status.CanTransition(next) {
		return E(KindValidation, "that status change is not allowed")
	}

	if err := s.Store.Invoices().UpdateInvoiceStatus(ctx, invoiceID, next, inv.Status); err != nil {
		if errors.Is(err, store.ErrStaleRow) {
			return E(KindValidation, "the invoice status changed concurrently; try again")
		}
		return dbError(err)
	}

	log.Info("invoice status changed",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(next)),
	)
	return nil
}
